package controllers

import (
	"fmt"
	"net/http"
	"net/mail"

	"bazaar/domain"
	"bazaar/repositories"

	"github.com/gofiber/fiber/v2"
)

// VendorController exposes the caller's own storefront profile.
type VendorController struct {
	Store repositories.Store
}

type UpdateVendorRequest struct {
	Name        *string `json:"name"`
	StoreName   *string `json:"storeName"`
	Email       *string `json:"email"`
	BankAccount *string `json:"bankAccount"`
}

func (r *UpdateVendorRequest) Validate() error {
	if r.Name != nil && (len(*r.Name) < 2 || len(*r.Name) > 50) {
		return domain.Validationf("name", "must be between 2 and 50 characters")
	}
	if r.StoreName != nil && (len(*r.StoreName) < 2 || len(*r.StoreName) > 50) {
		return domain.Validationf("storeName", "must be between 2 and 50 characters")
	}
	if r.Email != nil {
		if _, err := mail.ParseAddress(*r.Email); err != nil {
			return domain.Validationf("email", "must be a valid email address")
		}
	}
	if r.BankAccount != nil && (len(*r.BankAccount) < 10 || len(*r.BankAccount) > 20) {
		return domain.Validationf("bankAccount", "must be between 10 and 20 characters")
	}
	return nil
}

// GetMyVendor handles GET /api/vendor/profile.
func (h *VendorController) GetMyVendor(c *fiber.Ctx) error {
	caller, err := resolveCaller(c, h.Store)
	if err != nil {
		return domain.RespondError(c, err)
	}
	if !caller.IsVendorOwner() {
		return domain.RespondError(c, fmt.Errorf("vendor %w", domain.ErrNotFound))
	}
	return c.JSON(caller.Vendor)
}

// UpdateVendor handles PUT /api/vendor/profile.
func (h *VendorController) UpdateVendor(c *fiber.Ctx) error {
	caller, err := resolveCaller(c, h.Store)
	if err != nil {
		return domain.RespondError(c, err)
	}
	if !caller.IsVendorOwner() {
		return domain.RespondError(c, fmt.Errorf("vendor %w", domain.ErrNotFound))
	}

	var req UpdateVendorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Failed to parse request body"})
	}
	if err := req.Validate(); err != nil {
		return domain.RespondError(c, err)
	}

	vendor := caller.Vendor
	if req.Name != nil {
		vendor.Name = *req.Name
	}
	if req.StoreName != nil {
		vendor.StoreName = *req.StoreName
	}
	if req.Email != nil {
		vendor.Email = *req.Email
	}
	if req.BankAccount != nil {
		vendor.BankAccount = *req.BankAccount
	}
	if err := h.Store.Vendors().Update(c.Context(), vendor); err != nil {
		return domain.RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Vendor updated successfully",
		"vendor":  vendor,
	})
}
