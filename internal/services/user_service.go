package services

import (
	"errors"
	"fmt"
	"log"

	"closet/internal/models"
	"closet/internal/repositories"
)

// SearchPageSize is the fixed directory page size.
const SearchPageSize = 9

// UserPatch is a partial user update. Email, password and role deliberately
// have no field here, so they can never pass this path regardless of what the
// upstream validation lets through.
type UserPatch struct {
	FirstName *string `json:"firstName" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,max=100"`
	Pronoun   *string `json:"pronoun" validate:"omitempty,max=50"`
}

// Fields flattens the patch into column-keyed updates.
func (p *UserPatch) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if p == nil {
		return fields
	}
	if p.FirstName != nil {
		fields["first_name"] = *p.FirstName
	}
	if p.LastName != nil {
		fields["last_name"] = *p.LastName
	}
	if p.Pronoun != nil {
		fields["pronoun"] = *p.Pronoun
	}
	return fields
}

// UserSearchResult is one page of directory search results.
type UserSearchResult struct {
	Data  []models.UserSummary `json:"data"`
	Page  int                  `json:"page"`
	Total int64                `json:"total"`
	Pages int                  `json:"pages"`
}

// UserService is the privileged user directory: summaries, paginated search
// and account maintenance.
type UserService struct {
	repo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

// GetAllSummaries projects every stored user to their safe fields. Unlike the
// catalog, an empty directory is a valid empty list.
func (s *UserService) GetAllSummaries() ([]models.UserSummary, error) {
	users, err := s.repo.GetAll()
	if err != nil {
		log.Printf("failed to list users: %v", err)
		return nil, ErrInternal
	}
	summaries := make([]models.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, users[i].Summary())
	}
	return summaries, nil
}

// Search runs the filtered, paginated directory query. The page is clamped to
// at least 1; storage failures are masked so no engine detail leaks out.
func (s *UserService) Search(filters models.UserSearchFilters) (*UserSearchResult, error) {
	page := filters.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * SearchPageSize

	users, total, err := s.repo.Search(filters, SearchPageSize, offset)
	if err != nil {
		log.Printf("failed to search users: %v", err)
		return nil, fmt.Errorf("error retrieving users: %w", ErrInternal)
	}

	summaries := make([]models.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, users[i].Summary())
	}

	pages := int((total + SearchPageSize - 1) / SearchPageSize)
	return &UserSearchResult{
		Data:  summaries,
		Page:  page,
		Total: total,
		Pages: pages,
	}, nil
}

// GetSummary returns the safe projection of one user.
func (s *UserService) GetSummary(id string) (*models.UserSummary, error) {
	user, err := s.load(id)
	if err != nil {
		return nil, err
	}
	summary := user.Summary()
	return &summary, nil
}

// GetByEmail returns the full record including the password hash. Internal
// authentication use only, never serialized to clients.
func (s *UserService) GetByEmail(email string) (*models.User, error) {
	user, err := s.repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with email %s not found: %w", email, ErrNotFound)
		}
		log.Printf("failed to get user by email: %v", err)
		return nil, ErrInternal
	}
	return user, nil
}

// Update merges the patch into an existing user and returns the freshly
// reloaded record.
func (s *UserService) Update(id string, patch *UserPatch) (*models.User, error) {
	fields := patch.Fields()
	if len(fields) == 0 {
		return nil, fmt.Errorf("updated user not supplied: %w", ErrInvalidArgument)
	}

	if err := s.repo.UpdateFields(id, fields); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s not found: %w", id, ErrNotFound)
		}
		log.Printf("failed to update user %s: %v", id, err)
		return nil, ErrInternal
	}
	return s.load(id)
}

// Delete physically removes the user row. Products they authored keep their
// now-dangling creator reference; no cascade is defined.
func (s *UserService) Delete(id string) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return fmt.Errorf("user %s not found: %w", id, ErrNotFound)
		}
		log.Printf("failed to delete user %s: %v", id, err)
		return ErrInternal
	}
	return nil
}

func (s *UserService) load(id string) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s not found: %w", id, ErrNotFound)
		}
		log.Printf("failed to load user %s: %v", id, err)
		return nil, ErrInternal
	}
	return user, nil
}
