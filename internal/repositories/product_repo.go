package repositories

import (
	"closet/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	Create(product *models.Product) error
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	GetByType(productType models.ProductType) ([]models.Product, error)
	// UpdateFields applies a partial column update to one product. Keys are
	// column names. Returns ErrRecordNotFound when the id resolves to no row.
	UpdateFields(id string, fields map[string]interface{}) error
}
