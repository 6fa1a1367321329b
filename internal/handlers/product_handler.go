package handlers

import (
	"log"

	"closet/internal/middleware"
	"closet/internal/models"
	"closet/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for catalog items.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes. The router is expected to be
// bearer-protected already; mutations additionally require staff roles.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	staff := middleware.RequireRoles(models.RoleAdmin, models.RoleCreator)

	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/type/:type", h.HandleGetProductsByType)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", staff, h.HandleCreateProduct)
	productRoutes.Patch("/:id/hide", staff, h.HandleHideProduct)
	productRoutes.Patch("/:id/archive", staff, h.HandleArchiveProduct)
	productRoutes.Patch("/:id", staff, h.HandleUpdateProduct)
}

// HandleGetProducts retrieves all products. An empty catalog is a 404, not an
// empty list.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAll()
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return respondError(c, "Could not retrieve products", err)
	}
	return c.JSON(products)
}

// HandleGetProductsByType retrieves all products of one type.
func (h *ProductHandler) HandleGetProductsByType(c *fiber.Ctx) error {
	productType := models.ProductType(c.Params("type"))
	products, err := h.service.GetByType(productType)
	if err != nil {
		log.Printf("Error getting products of type %s: %v", productType, err)
		return respondError(c, "Could not retrieve products", err)
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	productID := c.Params("id")
	product, err := h.service.GetByID(productID)
	if err != nil {
		log.Printf("Error getting product %s: %v", productID, err)
		return respondError(c, "Could not retrieve product", err)
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product attributed to the caller.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	product.ID = ""

	if err := h.validate.Struct(product); err != nil {
		return respondValidationError(c, err)
	}

	created, err := h.service.Create(&product, middleware.CurrentUser(c))
	if err != nil {
		log.Printf("Error creating product: %v", err)
		return respondError(c, "Could not create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleUpdateProduct applies a partial update and records the caller as the
// last editor.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	productID := c.Params("id")

	var patch services.ProductPatch
	if err := c.BodyParser(&patch); err != nil {
		log.Printf("Error parsing product patch body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(patch); err != nil {
		return respondValidationError(c, err)
	}

	updated, err := h.service.Update(productID, &patch, middleware.CurrentUser(c))
	if err != nil {
		log.Printf("Error updating product %s: %v", productID, err)
		return respondError(c, "Could not update product", err)
	}
	return c.JSON(updated)
}

// HandleHideProduct soft-deletes a product.
func (h *ProductHandler) HandleHideProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	product, err := h.service.Hide(productID)
	if err != nil {
		log.Printf("Error hiding product %s: %v", productID, err)
		return respondError(c, "Could not hide product", err)
	}
	return c.JSON(product)
}

// HandleArchiveProduct marks a product as sold.
func (h *ProductHandler) HandleArchiveProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	product, err := h.service.Archive(productID)
	if err != nil {
		log.Printf("Error archiving product %s: %v", productID, err)
		return respondError(c, "Could not archive product", err)
	}
	return c.JSON(product)
}
