package repositories

import (
	"fmt"
	"sync"

	"closet/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	r.products[product.ID] = *product
	return nil
}

// GetAll returns all products.
func (r *MockProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrRecordNotFound)
	}
	return &product, nil
}

// GetByType returns all products of one type.
func (r *MockProductRepository) GetByType(productType models.ProductType) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var productList []models.Product
	for _, p := range r.products {
		if p.ProductType == productType {
			productList = append(productList, p)
		}
	}
	return productList, nil
}

// UpdateFields applies a column-keyed partial update, mirroring the GORM
// implementation's Updates call.
func (r *MockProductRepository) UpdateFields(id string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product with ID %s: %w", id, ErrRecordNotFound)
	}

	for column, value := range fields {
		switch column {
		case "product_type":
			product.ProductType = value.(models.ProductType)
		case "product_gender":
			product.ProductGender = value.(models.ProductGender)
		case "product_size_shoe":
			product.ProductSizeShoe = value.(string)
		case "product_sizes":
			product.ProductSizes = value.(string)
		case "product_size_pants_waist":
			product.ProductSizePantsWaist = value.(string)
		case "product_size_pants_inseam":
			product.ProductSizePantsInseam = value.(string)
		case "product_description":
			product.ProductDescription = value.(string)
		case "product_image":
			product.ProductImage = value.(string)
		case "is_hidden":
			product.IsHidden = value.(bool)
		case "is_sold":
			product.IsSold = value.(bool)
		case "updated_by_id":
			switch v := value.(type) {
			case string:
				product.UpdatedByID = &v
			case *string:
				product.UpdatedByID = v
			}
		default:
			return fmt.Errorf("unknown product column %q", column)
		}
	}

	r.products[id] = product
	return nil
}
