package handler

import (
	"barber-pos-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(s service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

func (h *CatalogHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetCategories()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}

func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid category ID")
	}
	category, err := h.service.GetCategory(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(category)
}

func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var req service.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	category, err := h.service.CreateCategory(&req, getActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Category created", "data": category})
}

func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid category ID")
	}
	var req service.CategoryUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	category, err := h.service.UpdateCategory(id, &req, getActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category updated", "data": category})
}

func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid category ID")
	}
	if err := h.service.DeleteCategory(id, getActor(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category deleted"})
}

func (h *CatalogHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetProducts()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid product ID")
	}
	product, err := h.service.GetProduct(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// GetProductByBarcode is used by the scanner on the sale screen
// GET /api/products/barcode/:barcode
func (h *CatalogHandler) GetProductByBarcode(c *fiber.Ctx) error {
	product, err := h.service.GetProductByBarcode(c.Params("barcode"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	product, err := h.service.CreateProduct(&req, getActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product})
}

func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid product ID")
	}
	var req service.ProductUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	product, err := h.service.UpdateProduct(id, &req, getActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product updated", "data": product})
}

func (h *CatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid product ID")
	}
	if err := h.service.DeleteProduct(id, getActor(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}
