package repositories

import (
	"fmt"

	"closet/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMSubmissionRepository is a GORM implementation of SubmissionRepository.
type GORMSubmissionRepository struct {
	db *gorm.DB
}

// NewGORMSubmissionRepository creates a new instance of GORMSubmissionRepository.
func NewGORMSubmissionRepository(db *gorm.DB) *GORMSubmissionRepository {
	return &GORMSubmissionRepository{
		db: db,
	}
}

// Create inserts a new intake submission.
func (r *GORMSubmissionRepository) Create(form *models.SubmissionForm) error {
	if form.ID == "" {
		form.ID = uuid.New().String()
	}
	if err := r.db.Create(form).Error; err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}
	return nil
}

// GetAll retrieves every stored submission.
func (r *GORMSubmissionRepository) GetAll() ([]models.SubmissionForm, error) {
	var forms []models.SubmissionForm
	if err := r.db.Find(&forms).Error; err != nil {
		return nil, fmt.Errorf("failed to get all submissions: %w", err)
	}
	return forms, nil
}
