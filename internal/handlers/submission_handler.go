package handlers

import (
	"log"

	"closet/internal/middleware"
	"closet/internal/models"
	"closet/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// SubmissionHandler handles HTTP requests for public intake submissions.
type SubmissionHandler struct {
	service  *services.SubmissionService
	validate *validator.Validate
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(service *services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterPublicRoutes wires the anonymous intake route. It must be called
// before any auth middleware is attached to the parent router.
func (h *SubmissionHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Post("/submissions", h.HandleCreateSubmission)
}

// RegisterProtectedRoutes wires the admin-only listing of collected
// submissions.
func (h *SubmissionHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Get("/submissions", middleware.RequireRoles(models.RoleAdmin), h.HandleGetSubmissions)
}

// HandleCreateSubmission accepts a public intake form.
func (h *SubmissionHandler) HandleCreateSubmission(c *fiber.Ctx) error {
	var form models.SubmissionForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing submission body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	form.ID = ""

	if err := h.validate.Struct(form); err != nil {
		return respondValidationError(c, err)
	}

	created, err := h.service.Create(&form)
	if err != nil {
		log.Printf("Error creating submission: %v", err)
		return respondError(c, "Could not create submission", err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleGetSubmissions lists every collected submission.
func (h *SubmissionHandler) HandleGetSubmissions(c *fiber.Ctx) error {
	forms, err := h.service.GetAll()
	if err != nil {
		log.Printf("Error listing submissions: %v", err)
		return respondError(c, "Could not retrieve submissions", err)
	}
	return c.JSON(forms)
}
