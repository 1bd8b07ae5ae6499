package session

import (
	"errors"
	"os"
	"time"

	"go-warehouse/internal/model"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid or expired session token")
	ErrMissingToken = errors.New("missing session token")
)

// CookieName is the client-side cookie carrying the signed session token.
const CookieName = "wh_session"

const (
	// DefaultTTL is the session lifetime without the "remember" flag.
	DefaultTTL = time.Hour
	// RememberTTL is the extended lifetime when "remember" is requested.
	RememberTTL = 24 * time.Hour
)

// Claims is the signed payload carried in the session cookie. The token is
// server-validated on every request: the user is reloaded by ID, so stale
// role or active-status claims cannot be replayed.
type Claims struct {
	UserID uuid.UUID  `json:"user_id"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

// GetSecretKey returns the signing secret from environment or a default
func GetSecretKey() []byte {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "your-super-secret-key-change-in-production"
	}
	return []byte(secret)
}

// TTL returns the session lifetime for the given remember flag.
func TTL(remember bool) time.Duration {
	if remember {
		return RememberTTL
	}
	return DefaultTTL
}

// GenerateToken creates a signed session token for a user.
func GenerateToken(userID uuid.UUID, role model.Role, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "go-warehouse",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(GetSecretKey())
}

// ValidateToken parses and validates a session token
func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return GetSecretKey(), nil
	})

	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// SetCookie attaches the session token to the response. HTTPOnly keeps the
// token out of reach of page scripts.
func SetCookie(c *fiber.Ctx, token string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		MaxAge:   int(ttl.Seconds()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

// ClearCookie invalidates the session cookie on the client.
func ClearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}
