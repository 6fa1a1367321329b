package services_test

import (
	"fmt"
	"testing"

	"closet/internal/models"
	"closet/internal/repositories"
	"closet/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByType(productType models.ProductType) ([]models.Product, error) {
	args := m.Called(productType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) UpdateFields(id string, fields map[string]interface{}) error {
	args := m.Called(id, fields)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }

func TestProductService_GetAll_EmptyCatalogIsNotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("GetAll").Return([]models.Product{}, nil).Once()

	products, err := service.GetAll()
	assert.Nil(t, products)
	assert.ErrorIs(t, err, services.ErrNotFound)
	mockRepo.AssertExpectations(t)

	// With one product the same call succeeds
	mockRepo.On("GetAll").Return([]models.Product{{ID: "p1", ProductType: models.TypeShirts}}, nil).Once()
	products, err = service.GetAll()
	assert.NoError(t, err)
	assert.Len(t, products, 1)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetByType_EmptyResultIsNotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("GetByType", models.TypeShoes).Return([]models.Product{}, nil).Once()

	_, err := service.GetByType(models.TypeShoes)
	assert.ErrorIs(t, err, services.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetAll_StorageErrorIsMasked(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("GetAll").Return(nil, fmt.Errorf("connection refused")).Once()

	_, err := service.GetAll()
	assert.ErrorIs(t, err, services.ErrInternal)
	assert.NotContains(t, err.Error(), "connection refused")
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetByID_NotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("GetByID", "missing").
		Return(nil, fmt.Errorf("product: %w", repositories.ErrRecordNotFound)).Once()

	_, err := service.GetByID("missing")
	assert.ErrorIs(t, err, services.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

// The lifecycle tests run against the in-memory repository so flag state and
// read-after-write behavior are observed end to end.
func TestProductService_Lifecycle(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewProductService(repo, nil)
	actor := &models.User{ID: "u1", Email: "creator@example.com", Role: models.RoleCreator}

	created, err := service.Create(&models.Product{ProductType: models.TypeShirts}, actor)
	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.IsHidden)
	assert.False(t, created.IsSold)
	assert.Equal(t, actor.ID, created.CreatedByID)

	got, err := service.GetByID(created.ID)
	assert.NoError(t, err)
	assert.False(t, got.IsHidden)
	assert.False(t, got.IsSold)
	assert.Equal(t, actor.ID, got.CreatedByID)

	// Hide sets the hidden flag only
	hidden, err := service.Hide(created.ID)
	assert.NoError(t, err)
	assert.True(t, hidden.IsHidden)
	assert.False(t, hidden.IsSold)

	// Archive sets the sold flag, hidden stays
	archived, err := service.Archive(created.ID)
	assert.NoError(t, err)
	assert.True(t, archived.IsSold)
	assert.True(t, archived.IsHidden)

	// Both transitions are idempotent
	hiddenAgain, err := service.Hide(created.ID)
	assert.NoError(t, err)
	assert.True(t, hiddenAgain.IsHidden)
	assert.True(t, hiddenAgain.IsSold)

	archivedAgain, err := service.Archive(created.ID)
	assert.NoError(t, err)
	assert.True(t, archivedAgain.IsSold)
	assert.True(t, archivedAgain.IsHidden)
}

func TestProductService_Hide_NotFound(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewProductService(repo, nil)

	_, err := service.Hide("missing")
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = service.Archive("missing")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestProductService_Update(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewProductService(repo, nil)
	creator := &models.User{ID: "u1", Role: models.RoleCreator}
	editor := &models.User{ID: "u2", Role: models.RoleAdmin}

	created, err := service.Create(&models.Product{ProductType: models.TypePants}, creator)
	assert.NoError(t, err)

	// Nil patch fails for an existing id
	_, err = service.Update(created.ID, nil, editor)
	assert.ErrorIs(t, err, services.ErrInvalidArgument)

	// Empty patch fails the same way
	_, err = service.Update(created.ID, &services.ProductPatch{}, editor)
	assert.ErrorIs(t, err, services.ErrInvalidArgument)

	// Unknown id fails with not found
	_, err = service.Update("missing", &services.ProductPatch{ProductDescription: strPtr("x")}, editor)
	assert.ErrorIs(t, err, services.ErrNotFound)

	// A real patch merges fields, records the editor and returns the reloaded record
	patch := &services.ProductPatch{
		ProductDescription:    strPtr("Gently used"),
		ProductSizePantsWaist: strPtr("32"),
	}
	updated, err := service.Update(created.ID, patch, editor)
	assert.NoError(t, err)
	assert.Equal(t, "Gently used", updated.ProductDescription)
	assert.Equal(t, "32", updated.ProductSizePantsWaist)
	assert.Equal(t, models.TypePants, updated.ProductType)
	if assert.NotNil(t, updated.UpdatedByID) {
		assert.Equal(t, editor.ID, *updated.UpdatedByID)
	}
	// Creator attribution never changes
	assert.Equal(t, creator.ID, updated.CreatedByID)
}

func TestProductService_Create_PublishesEvent(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	mockEvents := new(MockPublisher)
	service := services.NewProductService(repo, mockEvents)
	actor := &models.User{ID: "u1", Role: models.RoleCreator}

	mockEvents.On("Publish", "product.created", mock.Anything).Return(nil).Once()
	created, err := service.Create(&models.Product{ProductType: models.TypeDress}, actor)
	assert.NoError(t, err)
	mockEvents.AssertExpectations(t)

	mockEvents.On("Publish", "product.hidden", mock.Anything).Return(nil).Once()
	_, err = service.Hide(created.ID)
	assert.NoError(t, err)
	mockEvents.AssertExpectations(t)

	mockEvents.On("Publish", "product.sold", mock.Anything).Return(nil).Once()
	_, err = service.Archive(created.ID)
	assert.NoError(t, err)
	mockEvents.AssertExpectations(t)
}

// Publish failures are logged, never surfaced to the caller.
func TestProductService_EventFailureDoesNotFailOperation(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	mockEvents := new(MockPublisher)
	service := services.NewProductService(repo, mockEvents)
	actor := &models.User{ID: "u1", Role: models.RoleCreator}

	mockEvents.On("Publish", mock.Anything, mock.Anything).Return(fmt.Errorf("broker down"))

	created, err := service.Create(&models.Product{ProductType: models.TypeSkirt}, actor)
	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
}
