package handler

import (
	"net/url"

	"go-warehouse/internal/middleware"
	"go-warehouse/internal/service"
	"go-warehouse/pkg/session"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
	userService service.UserService
}

func NewAuthHandler(authService service.AuthService, userService service.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService}
}

// LoginRequest represents the login form body
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Remember string `json:"remember" form:"remember"`
}

// redirectWithError carries a user-visible message back to a page via the
// query string, the way form failures are surfaced throughout the app.
func redirectWithError(c *fiber.Ctx, path, msg string) error {
	return c.Redirect(path+"?error="+url.QueryEscape(msg), fiber.StatusFound)
}

// Home routes the caller to the dashboard or login page
// GET /
func (h *AuthHandler) Home(c *fiber.Ctx) error {
	if middleware.CurrentUser(c) != nil {
		return c.Redirect("/dashboard", fiber.StatusFound)
	}
	return c.Redirect("/login", fiber.StatusFound)
}

// LoginPage serves the login form data
// GET /login
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"title": "Sign in",
		"error": c.Query("error"),
	})
}

// Login handles user authentication
// POST /login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return redirectWithError(c, "/login", "Invalid request")
	}

	if req.Email == "" || req.Password == "" {
		return redirectWithError(c, "/login", "Email and password are required")
	}

	result, err := h.authService.Login(req.Email, req.Password, req.Remember != "")
	if err != nil {
		return redirectWithError(c, "/login", "Incorrect email or password")
	}

	session.SetCookie(c, result.Token, result.TTL)
	return c.Redirect("/dashboard", fiber.StatusFound)
}

// Logout clears the session
// GET /logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	session.ClearCookie(c)
	return c.Redirect("/login", fiber.StatusFound)
}

// Profile returns the caller's account plus directory stats
// GET /profile
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	stats, err := h.userService.GetProfileStats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch profile stats"})
	}

	return c.JSON(fiber.Map{
		"user":    user.ToResponse(),
		"stats":   stats,
		"error":   c.Query("error"),
		"success": c.Query("success"),
	})
}

// UpdateProfile updates contact info and optionally the password
// POST /profile
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req service.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return redirectWithError(c, "/profile", "Invalid request")
	}

	if _, err := h.authService.UpdateProfile(user.ID, &req); err != nil {
		if err == service.ErrInvalidCredentials {
			return redirectWithError(c, "/profile", "Current password is incorrect")
		}
		return redirectWithError(c, "/profile", err.Error())
	}

	return c.Redirect("/profile?success=1", fiber.StatusFound)
}
