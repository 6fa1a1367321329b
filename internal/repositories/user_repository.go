package repositories

import "closet/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetAll() ([]models.User, error)
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	// GetByResetToken resolves an outstanding password-reset token. Expiry is
	// the caller's concern.
	GetByResetToken(token string) (*models.User, error)
	// Search returns one page of users matching the filters plus the total
	// match count. Name and email filters are substring matches, role is an
	// exact match, and results are ordered by last name ascending.
	Search(filters models.UserSearchFilters, limit, offset int) ([]models.User, int64, error)
	// UpdateFields applies a partial column update to one user. Keys are
	// column names. Returns ErrRecordNotFound when the id resolves to no row.
	UpdateFields(id string, fields map[string]interface{}) error
	// Save persists the full record, used for credential and reset-token writes.
	Save(user *models.User) error
	// Delete physically removes the row. Returns ErrRecordNotFound when
	// nothing was deleted.
	Delete(id string) error
}
