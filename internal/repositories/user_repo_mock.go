package repositories

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"closet/internal/models"

	"github.com/google/uuid"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	users map[string]models.User
	mu    sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]models.User),
	}
}

// Create adds a new user.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	r.users[user.ID] = *user
	return nil
}

// GetAll returns every stored user.
func (r *MockUserRepository) GetAll() ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userList := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		userList = append(userList, u)
	}
	return userList, nil
}

// GetByID returns a user by their ID.
func (r *MockUserRepository) GetByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user with ID %s: %w", id, ErrRecordNotFound)
	}
	return &user, nil
}

// GetByEmail returns a user by their email.
func (r *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user with email %s: %w", email, ErrRecordNotFound)
}

// GetByResetToken returns the user holding an outstanding reset token.
func (r *MockUserRepository) GetByResetToken(token string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if token != "" && u.ResetPasswordToken == token {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("reset token: %w", ErrRecordNotFound)
}

// Search mirrors the GORM implementation: substring filters, exact role match,
// last name ascending, limit/offset paging.
func (r *MockUserRepository) Search(filters models.UserSearchFilters, limit, offset int) ([]models.User, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []models.User
	for _, u := range r.users {
		if filters.FirstName != "" && !strings.Contains(u.FirstName, filters.FirstName) {
			continue
		}
		if filters.LastName != "" && !strings.Contains(u.LastName, filters.LastName) {
			continue
		}
		if filters.Email != "" && !strings.Contains(u.Email, filters.Email) {
			continue
		}
		if filters.Role != "" && string(u.Role) != filters.Role {
			continue
		}
		matches = append(matches, u)
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].LastName < matches[j].LastName
	})

	total := int64(len(matches))
	if offset >= len(matches) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matches) {
		end = len(matches)
	}
	return matches[offset:end], total, nil
}

// UpdateFields applies a column-keyed partial update.
func (r *MockUserRepository) UpdateFields(id string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user with ID %s: %w", id, ErrRecordNotFound)
	}

	for column, value := range fields {
		switch column {
		case "first_name":
			user.FirstName = value.(string)
		case "last_name":
			user.LastName = value.(string)
		case "pronoun":
			user.Pronoun = value.(string)
		default:
			return fmt.Errorf("unknown user column %q", column)
		}
	}

	r.users[id] = user
	return nil
}

// Save persists the full user record.
func (r *MockUserRepository) Save(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	r.users[user.ID] = *user
	return nil
}

// Delete removes a user by their ID.
func (r *MockUserRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return fmt.Errorf("user with ID %s: %w", id, ErrRecordNotFound)
	}
	delete(r.users, id)
	return nil
}
