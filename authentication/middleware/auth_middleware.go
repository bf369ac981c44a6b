package middleware

import (
	"net/http"
	"strings"

	"bazaar/access"
	"bazaar/domain"
	"bazaar/internal/util"
	"bazaar/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CallerIDKey is the Locals key the verified token subject is stored
// under for handlers.
const CallerIDKey = "x-user-id"

// JwtAuthMiddleware verifies the bearer token and stores the user id in
// Locals. Role resolution happens later, explicitly, in each handler.
func JwtAuthMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(http.StatusUnauthorized).JSON(domain.ErrorResponse{Message: "Access denied. No token provided."})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(http.StatusUnauthorized).JSON(domain.ErrorResponse{Message: "Authorization header format must be Bearer {token}"})
		}

		token := parts[1]
		authorized, err := util.IsAuthorized(token, secret)
		if err != nil || !authorized {
			return c.Status(http.StatusUnauthorized).JSON(domain.ErrorResponse{Message: "Invalid token."})
		}

		userID, err := util.ExtractIDFromToken(token, secret)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(domain.ErrorResponse{Message: "Invalid token."})
		}

		c.Locals(CallerIDKey, userID)

		return c.Next()
	}
}

// AdminAuthMiddleware additionally requires the token's user to carry
// the admin flag.
func AdminAuthMiddleware(secret string, store repositories.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(http.StatusUnauthorized).JSON(domain.ErrorResponse{Message: "Access denied. No token provided."})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(http.StatusUnauthorized).JSON(domain.ErrorResponse{Message: "Authorization header format must be Bearer {token}"})
		}

		userIDStr, err := util.ExtractIDFromToken(parts[1], secret)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(domain.ErrorResponse{Message: "Invalid token."})
		}
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(domain.ErrorResponse{Message: "Invalid token."})
		}

		caller, err := access.ResolveCaller(c.Context(), store, userID)
		if err != nil || !caller.IsAdmin() {
			return c.Status(http.StatusForbidden).JSON(domain.ErrorResponse{Message: "Admin access only."})
		}

		c.Locals(CallerIDKey, userIDStr)

		return c.Next()
	}
}
