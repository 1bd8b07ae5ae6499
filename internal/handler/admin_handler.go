package handler

import (
	"go-warehouse/internal/middleware"
	"go-warehouse/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AdminHandler serves the admin-only surfaces: product approval and the
// user directory. The /admin group is role-gated in the router.
type AdminHandler struct {
	approvalService service.ApprovalService
	userService     service.UserService
}

func NewAdminHandler(approvalService service.ApprovalService, userService service.UserService) *AdminHandler {
	return &AdminHandler{approvalService: approvalService, userService: userService}
}

// PendingProducts lists products awaiting review
// GET /admin/approve-products
func (h *AdminHandler) PendingProducts(c *fiber.Ctx) error {
	products, err := h.approvalService.ListPending()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch pending products"})
	}

	// The review queue must always reflect current state
	c.Set(fiber.HeaderCacheControl, "no-cache, no-store, must-revalidate")

	return c.JSON(fiber.Map{"pending_products": products})
}

// ApproveProduct marks a product approved
// POST /admin/products/:id/approve
func (h *AdminHandler) ApproveProduct(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Redirect("/admin/approve-products", fiber.StatusSeeOther)
	}

	if err := h.approvalService.Approve(productID, user); err != nil {
		return redirectWithError(c, "/admin/approve-products", err.Error())
	}

	return c.Redirect("/admin/approve-products", fiber.StatusSeeOther)
}

// RejectProduct marks a product rejected
// POST /admin/products/:id/reject
func (h *AdminHandler) RejectProduct(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Redirect("/admin/approve-products", fiber.StatusSeeOther)
	}

	if err := h.approvalService.Reject(productID, user); err != nil {
		return redirectWithError(c, "/admin/approve-products", err.Error())
	}

	return c.Redirect("/admin/approve-products", fiber.StatusSeeOther)
}

// ListUsers returns all accounts, newest first
// GET /admin/users
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch users"})
	}

	return c.JSON(fiber.Map{
		"users":   users,
		"error":   c.Query("error"),
		"success": c.Query("success"),
	})
}

// AddUser creates a new account
// POST /admin/users/add
func (h *AdminHandler) AddUser(c *fiber.Ctx) error {
	var req service.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return redirectWithError(c, "/admin/users", "Invalid request")
	}

	if _, err := h.userService.CreateUser(&req); err != nil {
		if err == service.ErrDuplicateEmail {
			return c.Status(400).JSON(fiber.Map{"error": "Email already exists"})
		}
		return redirectWithError(c, "/admin/users", err.Error())
	}

	return c.Redirect("/admin/users", fiber.StatusFound)
}

// ToggleUserStatus flips an account between active and inactive
// GET /admin/users/:id/toggle-status
func (h *AdminHandler) ToggleUserStatus(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Redirect("/admin/users", fiber.StatusFound)
	}

	if err := h.userService.ToggleStatus(targetID, user); err != nil {
		if err == service.ErrSelfModification {
			return redirectWithError(c, "/admin/users", "You cannot deactivate your own account")
		}
		return redirectWithError(c, "/admin/users", err.Error())
	}

	return c.Redirect("/admin/users", fiber.StatusFound)
}

// DeleteUser removes an account while preserving its history rows
// GET /admin/users/:id/delete
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Redirect("/admin/users", fiber.StatusFound)
	}

	if err := h.userService.DeleteUser(targetID, user); err != nil {
		if err == service.ErrSelfModification {
			return redirectWithError(c, "/admin/users", "You cannot delete your own account")
		}
		return redirectWithError(c, "/admin/users", err.Error())
	}

	return c.Redirect("/admin/users?success=User+deleted", fiber.StatusFound)
}
