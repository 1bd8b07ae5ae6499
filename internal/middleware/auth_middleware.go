package middleware

import (
	"go-warehouse/internal/model"
	"go-warehouse/internal/repository"
	"go-warehouse/pkg/session"

	"github.com/gofiber/fiber/v2"
)

// Locals key under which the resolved caller is stored.
const userKey = "current_user"

// RequireAuth resolves the session cookie to a user record and stores it in
// the request context. Anything short of a valid token for an active user
// clears the cookie and redirects to the login page.
func RequireAuth(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := resolveUser(c, userRepo)
		if user == nil {
			session.ClearCookie(c)
			return c.Redirect("/login", fiber.StatusFound)
		}

		c.Locals(userKey, user)
		return c.Next()
	}
}

// OptionalAuth resolves the caller if a valid session exists but never
// blocks the request. Used by routes that degrade for anonymous callers.
func OptionalAuth(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if user := resolveUser(c, userRepo); user != nil {
			c.Locals(userKey, user)
		}
		return c.Next()
	}
}

// RequireRole gates a route on the caller's role. Must run after
// RequireAuth.
func RequireRole(role model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil || user.Role != role {
			return c.Redirect("/login", fiber.StatusFound)
		}
		return c.Next()
	}
}

// CurrentUser returns the caller set by RequireAuth/OptionalAuth, or nil.
func CurrentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals(userKey).(*model.User)
	return user
}

func resolveUser(c *fiber.Ctx, userRepo repository.UserRepository) *model.User {
	token := c.Cookies(session.CookieName)
	if token == "" {
		return nil
	}

	claims, err := session.ValidateToken(token)
	if err != nil {
		return nil
	}

	// The token only names the user; the record itself is always loaded
	// fresh so deactivation takes effect immediately.
	user, err := userRepo.FindByID(claims.UserID)
	if err != nil || !user.IsActive {
		return nil
	}

	return user
}
