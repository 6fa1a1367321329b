package services

import (
	"encoding/json"
	"log"

	"closet/internal/models"
	"closet/internal/repositories"
	"closet/pkg/rabbitmq"
)

// SubmissionService is the append-only intake collection. No state machine.
type SubmissionService struct {
	repo   repositories.SubmissionRepository
	events rabbitmq.Publisher
}

// NewSubmissionService creates a new SubmissionService.
func NewSubmissionService(repo repositories.SubmissionRepository, events rabbitmq.Publisher) *SubmissionService {
	return &SubmissionService{
		repo:   repo,
		events: events,
	}
}

// Create stores a public intake submission and announces it.
func (s *SubmissionService) Create(form *models.SubmissionForm) (*models.SubmissionForm, error) {
	form.ID = ""
	if err := s.repo.Create(form); err != nil {
		log.Printf("failed to create submission: %v", err)
		return nil, ErrInternal
	}

	if s.events != nil {
		body, err := json.Marshal(map[string]interface{}{
			"submissionId": form.ID,
			"email":        form.Email,
			"size":         form.Size,
		})
		if err != nil {
			log.Printf("failed to marshal intake event: %v", err)
		} else if err := s.events.Publish("intake.received", body); err != nil {
			log.Printf("Warning: failed to publish intake event for %s: %v", form.ID, err)
		}
	}
	return form, nil
}

// GetAll returns every submission. An empty list is a valid success.
func (s *SubmissionService) GetAll() ([]models.SubmissionForm, error) {
	forms, err := s.repo.GetAll()
	if err != nil {
		log.Printf("failed to list submissions: %v", err)
		return nil, ErrInternal
	}
	return forms, nil
}
