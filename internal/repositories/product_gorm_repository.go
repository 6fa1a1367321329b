package repositories

import (
	"errors"
	"fmt"

	"closet/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// Create inserts a new product. An empty ID is filled with a fresh UUID.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// GetAll retrieves all products with their creator and editor resolved.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Preload("CreatedBy").Preload("UpdatedBy").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	err := r.db.Preload("CreatedBy").Preload("UpdatedBy").First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %s: %w", id, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// GetByType retrieves all products of one type.
func (r *GORMProductRepository) GetByType(productType models.ProductType) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Preload("CreatedBy").Preload("UpdatedBy").
		Find(&products, "product_type = ?", productType).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get products of type %s: %w", productType, err)
	}
	return products, nil
}

// UpdateFields applies a column-level partial update to one product.
func (r *GORMProductRepository) UpdateFields(id string, fields map[string]interface{}) error {
	res := r.db.Model(&models.Product{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("failed to update product %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s: %w", id, ErrRecordNotFound)
	}
	return nil
}
