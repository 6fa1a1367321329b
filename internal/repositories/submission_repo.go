package repositories

import "closet/internal/models"

// SubmissionRepository defines the interface for intake submission data access.
// Submissions are append-only, so there is no update or delete.
type SubmissionRepository interface {
	Create(form *models.SubmissionForm) error
	GetAll() ([]models.SubmissionForm, error)
}
