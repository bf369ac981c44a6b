// Package controllers holds the authenticated HTTP surface: products,
// vendor profile, customer orders, vendor orders, and payouts.
package controllers

import (
	"bazaar/access"
	"bazaar/authentication/middleware"
	"bazaar/domain"
	"bazaar/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func Hello(c *fiber.Ctx) error {
	return c.SendString("Hello, world!")
}

// resolveCaller reads the verified token subject set by the auth
// middleware and derives the caller's role for this request.
func resolveCaller(c *fiber.Ctx, store repositories.Store) (*access.Caller, error) {
	userIDStr, ok := c.Locals(middleware.CallerIDKey).(string)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	return access.ResolveCaller(c.Context(), store, userID)
}
