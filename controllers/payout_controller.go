package controllers

import (
	"fmt"

	"bazaar/domain"
	"bazaar/payouts"
	"bazaar/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// PayoutController exposes payout summaries. Owners see their own
// vendors; admins see any vendor.
type PayoutController struct {
	Store   repositories.Store
	Payouts *payouts.Service
}

// GetVendorPayout handles GET /api/payouts/vendors/:vendorId/summary.
// Ownership is checked against the requested vendor row itself, so a
// user owning several storefronts can query any of them. A vendor the
// caller does not own reads as not found.
func (h *PayoutController) GetVendorPayout(c *fiber.Ctx) error {
	caller, err := resolveCaller(c, h.Store)
	if err != nil {
		return domain.RespondError(c, err)
	}

	vendorID, err := uuid.Parse(c.Params("vendorId"))
	if err != nil {
		return domain.RespondError(c, fmt.Errorf("vendor %w", domain.ErrNotFound))
	}
	vendor, err := h.Store.Vendors().FindByID(c.Context(), vendorID)
	if err != nil || vendor.UserID != caller.User.ID {
		return domain.RespondError(c, fmt.Errorf("vendor %w", domain.ErrNotFound))
	}

	summary, err := h.Payouts.ForVendor(c.Context(), *vendor)
	if err != nil {
		return domain.RespondError(c, err)
	}
	return c.JSON(summary)
}

// GetAdminVendorPayout handles
// GET /api/payouts/admin/vendors/:vendorId/summary. Admin tokens only;
// the ownership check is bypassed.
func (h *PayoutController) GetAdminVendorPayout(c *fiber.Ctx) error {
	vendorID, err := uuid.Parse(c.Params("vendorId"))
	if err != nil {
		return domain.RespondError(c, fmt.Errorf("vendor %w", domain.ErrNotFound))
	}

	vendor, err := h.Store.Vendors().FindByID(c.Context(), vendorID)
	if err != nil {
		return domain.RespondError(c, fmt.Errorf("vendor %w", domain.ErrNotFound))
	}

	summary, err := h.Payouts.ForVendor(c.Context(), *vendor)
	if err != nil {
		return domain.RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"vendor_id":         summary.VendorID,
		"vendor":            summary.Vendor,
		"vendor_owner":      vendor.UserID,
		"total_orders":      summary.TotalOrders,
		"total_amount":      summary.TotalAmount,
		"platform_fee":      summary.PlatformFee,
		"net_payout":        summary.NetPayout,
		"accessed_by_admin": true,
	})
}

// GetAllVendorPayoutsCompleted handles GET /api/payouts/completed: one
// record per vendor the caller owns, zeroes for vendors without
// completed orders.
func (h *PayoutController) GetAllVendorPayoutsCompleted(c *fiber.Ctx) error {
	caller, err := resolveCaller(c, h.Store)
	if err != nil {
		return domain.RespondError(c, err)
	}

	summaries, err := h.Payouts.ForOwner(c.Context(), caller.User.ID)
	if err != nil {
		return domain.RespondError(c, err)
	}
	return c.JSON(summaries)
}
