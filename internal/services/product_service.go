package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"closet/internal/models"
	"closet/internal/repositories"
	"closet/pkg/rabbitmq"
)

// ProductPatch is a partial product update. Nil fields are left untouched.
// Creator and flags-at-creation are not patchable through it; the lifecycle
// flags have their own operations but may also be set here as an ordinary
// field update (reversal included).
type ProductPatch struct {
	ProductType            *models.ProductType   `json:"productType" validate:"omitempty,oneof=shoes shirts pants skirt dress jacket accessories"`
	ProductGender          *models.ProductGender `json:"productGender" validate:"omitempty,oneof=male female non-binary"`
	ProductSizeShoe        *string               `json:"productSizeShoe" validate:"omitempty,max=50"`
	ProductSizes           *string               `json:"productSizes" validate:"omitempty,max=50"`
	ProductSizePantsWaist  *string               `json:"productSizePantsWaist" validate:"omitempty,max=50"`
	ProductSizePantsInseam *string               `json:"productSizePantsInseam" validate:"omitempty,max=50"`
	ProductDescription     *string               `json:"productDescription" validate:"omitempty,max=2000"`
	ProductImage           *string               `json:"productImage" validate:"omitempty,max=500"`
	IsHidden               *bool                 `json:"isHidden"`
	IsSold                 *bool                 `json:"isSold"`
}

// Fields flattens the patch into column-keyed updates.
func (p *ProductPatch) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if p == nil {
		return fields
	}
	if p.ProductType != nil {
		fields["product_type"] = *p.ProductType
	}
	if p.ProductGender != nil {
		fields["product_gender"] = *p.ProductGender
	}
	if p.ProductSizeShoe != nil {
		fields["product_size_shoe"] = *p.ProductSizeShoe
	}
	if p.ProductSizes != nil {
		fields["product_sizes"] = *p.ProductSizes
	}
	if p.ProductSizePantsWaist != nil {
		fields["product_size_pants_waist"] = *p.ProductSizePantsWaist
	}
	if p.ProductSizePantsInseam != nil {
		fields["product_size_pants_inseam"] = *p.ProductSizePantsInseam
	}
	if p.ProductDescription != nil {
		fields["product_description"] = *p.ProductDescription
	}
	if p.ProductImage != nil {
		fields["product_image"] = *p.ProductImage
	}
	if p.IsHidden != nil {
		fields["is_hidden"] = *p.IsHidden
	}
	if p.IsSold != nil {
		fields["is_sold"] = *p.IsSold
	}
	return fields
}

// ProductService owns the catalog item lifecycle: creation, partial updates,
// soft-hide and archive-as-sold.
type ProductService struct {
	repo   repositories.ProductRepository
	events rabbitmq.Publisher
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, events rabbitmq.Publisher) *ProductService {
	return &ProductService{
		repo:   repo,
		events: events,
	}
}

// Create stores a new visible, unsold product attributed to the actor.
func (s *ProductService) Create(product *models.Product, actor *models.User) (*models.Product, error) {
	product.ID = ""
	product.IsHidden = false
	product.IsSold = false
	product.CreatedByID = actor.ID
	product.CreatedBy = nil
	product.UpdatedByID = nil
	product.UpdatedBy = nil

	if err := s.repo.Create(product); err != nil {
		log.Printf("failed to create product: %v", err)
		return nil, ErrInternal
	}

	created, err := s.reload(product.ID)
	if err != nil {
		return nil, err
	}
	s.publishEvent("product.created", created)
	return created, nil
}

// GetAll returns every product with creator and editor resolved. An empty
// catalog is ErrNotFound, not an empty success.
func (s *ProductService) GetAll() ([]models.Product, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		log.Printf("failed to list products: %v", err)
		return nil, ErrInternal
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("no products found: %w", ErrNotFound)
	}
	return products, nil
}

// GetByID returns one product.
func (s *ProductService) GetByID(id string) (*models.Product, error) {
	return s.reload(id)
}

// GetByType returns every product of one type. Same empty-result policy as
// GetAll.
func (s *ProductService) GetByType(productType models.ProductType) ([]models.Product, error) {
	products, err := s.repo.GetByType(productType)
	if err != nil {
		log.Printf("failed to list products of type %s: %v", productType, err)
		return nil, ErrInternal
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("no products of type %s found: %w", productType, ErrNotFound)
	}
	return products, nil
}

// Update merges the patch into an existing product, records the actor as the
// last editor and returns the freshly reloaded record rather than the
// in-memory merge, so stored defaults are reflected.
func (s *ProductService) Update(id string, patch *ProductPatch, actor *models.User) (*models.Product, error) {
	if _, err := s.reload(id); err != nil {
		return nil, err
	}

	fields := patch.Fields()
	if len(fields) == 0 {
		return nil, fmt.Errorf("updated product not supplied: %w", ErrInvalidArgument)
	}
	fields["updated_by_id"] = actor.ID

	if err := s.applyFields(id, fields); err != nil {
		return nil, err
	}
	return s.reload(id)
}

// Hide soft-deletes a product by setting its hidden flag. Unconditional and
// idempotent; the sold flag is untouched.
func (s *ProductService) Hide(id string) (*models.Product, error) {
	if err := s.applyFields(id, map[string]interface{}{"is_hidden": true}); err != nil {
		return nil, err
	}
	product, err := s.reload(id)
	if err != nil {
		return nil, err
	}
	s.publishEvent("product.hidden", product)
	return product, nil
}

// Archive marks a product as sold. Unconditional and idempotent; the hidden
// flag is untouched.
func (s *ProductService) Archive(id string) (*models.Product, error) {
	if err := s.applyFields(id, map[string]interface{}{"is_sold": true}); err != nil {
		return nil, err
	}
	product, err := s.reload(id)
	if err != nil {
		return nil, err
	}
	s.publishEvent("product.sold", product)
	return product, nil
}

func (s *ProductService) reload(id string) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s not found: %w", id, ErrNotFound)
		}
		log.Printf("failed to load product %s: %v", id, err)
		return nil, ErrInternal
	}
	return product, nil
}

func (s *ProductService) applyFields(id string, fields map[string]interface{}) error {
	if err := s.repo.UpdateFields(id, fields); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return fmt.Errorf("product %s not found: %w", id, ErrNotFound)
		}
		log.Printf("failed to update product %s: %v", id, err)
		return ErrInternal
	}
	return nil
}

func (s *ProductService) publishEvent(routingKey string, product *models.Product) {
	if s.events == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"productId":   product.ID,
		"productType": product.ProductType,
		"isHidden":    product.IsHidden,
		"isSold":      product.IsSold,
	})
	if err != nil {
		log.Printf("failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.events.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event for product %s: %v", routingKey, product.ID, err)
	}
}
