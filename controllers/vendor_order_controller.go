package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"bazaar/domain"
	"bazaar/models"
	"bazaar/payouts"
	"bazaar/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VendorOrderController is the vendor's view of orders: listing,
// fulfillment updates, direct order creation, and the history report.
type VendorOrderController struct {
	Store   repositories.Store
	Payouts *payouts.Service
}

type CreateOrderRequest struct {
	OrderID  string          `json:"orderId"`
	Amount   decimal.Decimal `json:"amount"`
	Status   string          `json:"status"`
	VendorID string          `json:"vendorId"`
}

func (r *CreateOrderRequest) Validate() error {
	if r.OrderID == "" {
		return domain.Validationf("orderId", "is required")
	}
	if !r.Amount.IsPositive() {
		return domain.Validationf("amount", "must be positive")
	}
	if r.Status != "" && r.Status != models.OrderStatusPending && r.Status != models.OrderStatusCompleted {
		return domain.Validationf("status", "must be pending or completed")
	}
	if _, err := uuid.Parse(r.VendorID); err != nil {
		return domain.Validationf("vendorId", "must be a valid UUID")
	}
	return nil
}

type UpdateOrderRequest struct {
	OrderID *string          `json:"order_id"`
	Amount  *decimal.Decimal `json:"amount"`
	Status  *string          `json:"status"`
}

func (r *UpdateOrderRequest) Validate() error {
	if r.OrderID != nil && *r.OrderID == "" {
		return domain.Validationf("order_id", "must not be empty")
	}
	if r.Amount != nil && !r.Amount.IsPositive() {
		return domain.Validationf("amount", "must be positive")
	}
	if r.Status != nil && *r.Status != models.OrderStatusPending && *r.Status != models.OrderStatusCompleted {
		return domain.Validationf("status", "must be pending or completed")
	}
	return nil
}

// vendorCaller requires a vendor profile on the caller. Only the report
// endpoint is bound to this single profile; the order lookups below
// match any vendor the caller owns.
func (h *VendorOrderController) vendorCaller(c *fiber.Ctx) (*models.Vendor, error) {
	caller, err := resolveCaller(c, h.Store)
	if err != nil {
		return nil, err
	}
	if !caller.IsVendorOwner() {
		return nil, fmt.Errorf("%w: no vendor account found for this user", domain.ErrForbidden)
	}
	return caller.Vendor, nil
}

// CreateOrder handles POST /api/vendor/orders: direct creation against
// the caller's own vendor, customerId left empty. A vendor id the
// caller does not own reads as not found.
func (h *VendorOrderController) CreateOrder(c *fiber.Ctx) error {
	caller, err := resolveCaller(c, h.Store)
	if err != nil {
		return domain.RespondError(c, err)
	}

	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Failed to parse request body"})
	}
	if err := req.Validate(); err != nil {
		return domain.RespondError(c, err)
	}

	vendorID := uuid.MustParse(req.VendorID)
	vendor, err := h.Store.Vendors().FindByID(c.Context(), vendorID)
	if err != nil || vendor.UserID != caller.User.ID {
		return domain.RespondError(c, fmt.Errorf("vendor %w", domain.ErrNotFound))
	}

	status := req.Status
	if status == "" {
		status = models.OrderStatusPending
	}
	order := models.Order{
		OrderID:  req.OrderID,
		Amount:   req.Amount,
		Status:   status,
		VendorID: vendorID,
	}
	if err := h.Store.Orders().Create(c.Context(), &order); err != nil {
		return domain.RespondError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Order created successfully",
		"order":   order,
	})
}

// GetAllOrders handles GET /api/vendor/orders: every order across all
// vendors the caller owns.
func (h *VendorOrderController) GetAllOrders(c *fiber.Ctx) error {
	caller, err := resolveCaller(c, h.Store)
	if err != nil {
		return domain.RespondError(c, err)
	}

	orders, err := h.Store.Orders().FindByVendorOwner(c.Context(), caller.User.ID)
	if err != nil {
		return domain.RespondError(c, err)
	}
	return c.JSON(orders)
}

// GetOrderByID handles GET /api/vendor/orders/:id.
func (h *VendorOrderController) GetOrderByID(c *fiber.Ctx) error {
	caller, err := resolveCaller(c, h.Store)
	if err != nil {
		return domain.RespondError(c, err)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return domain.RespondError(c, fmt.Errorf("order %w", domain.ErrNotFound))
	}

	order, err := h.Store.Orders().FindByIDForVendorOwner(c.Context(), uint(id), caller.User.ID)
	if err != nil {
		return domain.RespondError(c, fmt.Errorf("order %w", domain.ErrNotFound))
	}
	return c.JSON(order)
}

// UpdateOrder handles PUT /api/vendor/orders/:id. Completing an order
// here is what feeds the payout calculation.
func (h *VendorOrderController) UpdateOrder(c *fiber.Ctx) error {
	caller, err := resolveCaller(c, h.Store)
	if err != nil {
		return domain.RespondError(c, err)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return domain.RespondError(c, fmt.Errorf("order %w", domain.ErrNotFound))
	}

	var req UpdateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Failed to parse request body"})
	}
	if err := req.Validate(); err != nil {
		return domain.RespondError(c, err)
	}

	order, err := h.Store.Orders().FindByIDForVendorOwner(c.Context(), uint(id), caller.User.ID)
	if err != nil {
		return domain.RespondError(c, fmt.Errorf("order %w", domain.ErrNotFound))
	}

	if req.OrderID != nil {
		order.OrderID = *req.OrderID
	}
	if req.Amount != nil {
		order.Amount = *req.Amount
	}
	if req.Status != nil {
		order.Status = *req.Status
	}
	if err := h.Store.Orders().Update(c.Context(), order); err != nil {
		return domain.RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Order updated successfully",
		"order":   order,
	})
}

// DeleteOrder handles DELETE /api/vendor/orders/:id.
func (h *VendorOrderController) DeleteOrder(c *fiber.Ctx) error {
	caller, err := resolveCaller(c, h.Store)
	if err != nil {
		return domain.RespondError(c, err)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return domain.RespondError(c, fmt.Errorf("order %w", domain.ErrNotFound))
	}

	order, err := h.Store.Orders().FindByIDForVendorOwner(c.Context(), uint(id), caller.User.ID)
	if err != nil {
		return domain.RespondError(c, fmt.Errorf("order %w", domain.ErrNotFound))
	}

	if err := h.Store.Orders().Delete(c.Context(), order.ID); err != nil {
		return domain.RespondError(c, err)
	}
	return c.JSON(domain.MessageResponse{Message: "Order deleted successfully"})
}

// GetOrderReport handles GET /api/vendor/orders/report?from=&to=.
func (h *VendorOrderController) GetOrderReport(c *fiber.Ctx) error {
	vendor, err := h.vendorCaller(c)
	if err != nil {
		return domain.RespondError(c, err)
	}

	fromStr, toStr := c.Query("from"), c.Query("to")
	if fromStr == "" || toStr == "" {
		return domain.RespondError(c, domain.Validationf("from/to", "dates are required"))
	}
	from, err := parseDate(fromStr)
	if err != nil {
		return domain.RespondError(c, domain.Validationf("from", "must be a valid date"))
	}
	to, err := parseDate(toStr)
	if err != nil {
		return domain.RespondError(c, domain.Validationf("to", "must be a valid date"))
	}

	report, err := h.Payouts.Report(c.Context(), vendor.ID, from, to)
	if err != nil {
		return domain.RespondError(c, err)
	}
	return c.JSON(report)
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
