package handlers

import (
	"log"

	"closet/internal/middleware"
	"closet/internal/models"
	"closet/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for the user directory.
type UserHandler struct {
	service  *services.UserService
	validate *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the directory routes. The router is expected to be
// bearer-protected already; the whole directory is admin-only.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users", middleware.RequireRoles(models.RoleAdmin))
	userRoutes.Get("/", h.HandleGetUsers)
	userRoutes.Get("/search", h.HandleSearchUsers)
	userRoutes.Get("/:id", h.HandleGetUserByID)
	userRoutes.Patch("/:id", h.HandleUpdateUser)
	userRoutes.Delete("/:id", h.HandleDeleteUser)
}

// HandleGetUsers lists every user as a summary. An empty directory is an
// empty list, not an error.
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	summaries, err := h.service.GetAllSummaries()
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return respondError(c, "Could not retrieve users", err)
	}
	return c.JSON(summaries)
}

// HandleSearchUsers runs the filtered, paginated directory search.
func (h *UserHandler) HandleSearchUsers(c *fiber.Ctx) error {
	filters := models.UserSearchFilters{
		FirstName: c.Query("firstName"),
		LastName:  c.Query("lastName"),
		Email:     c.Query("email"),
		Role:      c.Query("role"),
		Page:      c.QueryInt("page", 1),
	}

	result, err := h.service.Search(filters)
	if err != nil {
		log.Printf("Error searching users: %v", err)
		return respondError(c, "Error retrieving users", err)
	}
	return c.JSON(result)
}

// HandleGetUserByID returns one user summary.
func (h *UserHandler) HandleGetUserByID(c *fiber.Ctx) error {
	userID := c.Params("id")
	summary, err := h.service.GetSummary(userID)
	if err != nil {
		log.Printf("Error getting user %s: %v", userID, err)
		return respondError(c, "Could not retrieve user", err)
	}
	return c.JSON(summary)
}

// HandleUpdateUser applies a partial profile update. Email, password and role
// cannot be changed through this route.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	userID := c.Params("id")

	var patch services.UserPatch
	if err := c.BodyParser(&patch); err != nil {
		log.Printf("Error parsing user patch body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(patch); err != nil {
		return respondValidationError(c, err)
	}

	updated, err := h.service.Update(userID, &patch)
	if err != nil {
		log.Printf("Error updating user %s: %v", userID, err)
		return respondError(c, "Could not update user", err)
	}
	summary := updated.Summary()
	return c.JSON(summary)
}

// HandleDeleteUser physically removes a user.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	userID := c.Params("id")
	if err := h.service.Delete(userID); err != nil {
		log.Printf("Error deleting user %s: %v", userID, err)
		return respondError(c, "Could not delete user", err)
	}
	return c.JSON(fiber.Map{
		"message": "User deleted successfully",
	})
}
