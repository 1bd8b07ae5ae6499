package handler

import (
	"strconv"

	"go-warehouse/internal/middleware"
	"go-warehouse/internal/repository"
	"go-warehouse/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProductHandler struct {
	service service.InventoryService
}

func NewProductHandler(s service.InventoryService) *ProductHandler {
	return &ProductHandler{service: s}
}

// ListProducts returns the catalog visible to the caller
// GET /products?search=&category=&min_stock=
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	filter := repository.ProductFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	}
	if raw := c.Query("min_stock"); raw != "" {
		if threshold, err := strconv.Atoi(raw); err == nil {
			filter.MaxStock = &threshold
		}
	}

	products, err := h.service.ListProducts(user, filter)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	categories, err := h.service.Categories()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	return c.JSON(fiber.Map{
		"products":   products,
		"categories": categories,
		"error":      c.Query("error"),
	})
}

// AddProduct registers a new product in pending state
// POST /products/add
func (h *ProductHandler) AddProduct(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req service.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return redirectWithError(c, "/products", "Invalid request")
	}

	if _, err := h.service.CreateProduct(&req, user); err != nil {
		if err == service.ErrDuplicateSKU {
			return c.Status(400).JSON(fiber.Map{"error": "SKU already exists"})
		}
		return redirectWithError(c, "/products", err.Error())
	}

	return c.Redirect("/products", fiber.StatusFound)
}

// UpdateStock applies a stock-in/out movement
// POST /products/:id/update
func (h *ProductHandler) UpdateStock(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Redirect("/products", fiber.StatusFound)
	}

	var req service.StockAdjustment
	if err := c.BodyParser(&req); err != nil {
		return redirectWithError(c, "/products", "Invalid request")
	}

	if _, err := h.service.AdjustStock(productID, &req, user); err != nil {
		switch err {
		case service.ErrProductNotFound:
			return c.Redirect("/products", fiber.StatusFound)
		case service.ErrForbidden:
			return redirectWithError(c, "/products", "Not allowed to update this product")
		case service.ErrNotApproved:
			return redirectWithError(c, "/products", "Stock can only be updated on approved products")
		case service.ErrInsufficientStock:
			return redirectWithError(c, "/products", "Cannot remove more stock than is available")
		default:
			return redirectWithError(c, "/products", err.Error())
		}
	}

	return c.Redirect("/products", fiber.StatusFound)
}

// EditProduct updates descriptive metadata
// POST /products/:id/edit
func (h *ProductHandler) EditProduct(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Redirect("/products", fiber.StatusFound)
	}

	var req service.EditProductRequest
	if err := c.BodyParser(&req); err != nil {
		return redirectWithError(c, "/products", "Invalid request")
	}

	if _, err := h.service.EditProductInfo(productID, &req, user); err != nil {
		switch err {
		case service.ErrProductNotFound:
			return c.Redirect("/products", fiber.StatusFound)
		case service.ErrForbidden:
			return redirectWithError(c, "/products", "Not allowed to edit this product")
		default:
			return redirectWithError(c, "/products", err.Error())
		}
	}

	return c.Redirect("/products", fiber.StatusFound)
}

// DeleteProduct removes a product and its ledger history
// GET /products/:id/delete
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Redirect("/products", fiber.StatusFound)
	}

	if err := h.service.DeleteProduct(productID, user); err != nil {
		switch err {
		case service.ErrProductNotFound:
			return c.Redirect("/products", fiber.StatusFound)
		case service.ErrForbidden:
			return redirectWithError(c, "/products", "Not allowed to delete this product")
		default:
			return redirectWithError(c, "/products", err.Error())
		}
	}

	return c.Redirect("/products", fiber.StatusFound)
}

// ProductDetail returns a product with its recent ledger entries
// GET /products/:id/detail
func (h *ProductHandler) ProductDetail(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Redirect("/products", fiber.StatusFound)
	}

	detail, err := h.service.GetDetail(productID)
	if err != nil {
		// Missing product degrades to the listing, not an error page
		return c.Redirect("/products", fiber.StatusFound)
	}

	return c.JSON(detail)
}
