// Package middleware provides HTTP middleware: authentication, logging,
// metrics, tracing and rate limiting.
package middleware

import (
	"context"
	"strings"

	"devhub/internal/auth"
	"devhub/internal/models"

	"github.com/gofiber/fiber/v2"
)

// TokenHeader is the header carrying the bearer token.
const TokenHeader = "x-auth-token"

// TokenVerifier resolves a token to the user id it was issued for.
type TokenVerifier interface {
	Verify(token string) (uint, error)
}

var _ TokenVerifier = (*auth.TokenManager)(nil)

// AuthRequired rejects requests without a valid token and stores the
// caller's user id in c.Locals("userID") and the request context.
func AuthRequired(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := extractToken(c)
		if tokenString == "" {
			AuthFailures.WithLabelValues("missing").Inc()
			return models.RespondWithError(c,
				models.NewUnauthorizedError("No token, authorization denied"))
		}

		userID, err := verifier.Verify(tokenString)
		if err != nil {
			AuthFailures.WithLabelValues("invalid").Inc()
			return models.RespondWithError(c,
				models.NewUnauthorizedError("Token is not valid"))
		}

		setUser(c, userID)
		return c.Next()
	}
}

// OptionalAuth identifies the caller when a valid token is present and
// otherwise lets the request through anonymously.
func OptionalAuth(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tokenString := extractToken(c); tokenString != "" {
			if userID, err := verifier.Verify(tokenString); err == nil {
				setUser(c, userID)
			}
		}
		return c.Next()
	}
}

func setUser(c *fiber.Ctx, userID uint) {
	c.Locals("userID", userID)
	// Sync to UserContext for logging and downstream services
	ctx := context.WithValue(c.UserContext(), UserIDKey, userID)
	c.SetUserContext(ctx)
}

// extractToken reads x-auth-token, falling back to an Authorization bearer header.
func extractToken(c *fiber.Ctx) string {
	if token := strings.TrimSpace(c.Get(TokenHeader)); token != "" {
		return token
	}

	parts := strings.Fields(c.Get(fiber.HeaderAuthorization))
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

// UserID returns the caller set by AuthRequired or OptionalAuth, or 0.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}
