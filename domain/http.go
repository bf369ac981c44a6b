package domain

import (
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// RespondError translates a domain error at the request boundary.
// Unmapped errors are logged and surface as a generic internal error so
// no internal detail leaks.
func RespondError(c *fiber.Ctx, err error) error {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("internal error on %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(status).JSON(ErrorResponse{Message: "Internal server error"})
	}
	return c.Status(status).JSON(ErrorResponse{Message: err.Error()})
}
