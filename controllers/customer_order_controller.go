package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"bazaar/checkout"
	"bazaar/domain"
	"bazaar/models"
	"bazaar/repositories"

	"github.com/gofiber/fiber/v2"
)

// CustomerOrderController owns the checkout path and a customer's view
// of their own orders. The generic checkout deliberately does not bar
// vendor-owning users from buying; only the login split separates the
// two surfaces.
type CustomerOrderController struct {
	Store    repositories.Store
	Checkout *checkout.Service
}

type PlaceOrderRequest struct {
	Items []checkout.CartItem `json:"items"`
}

// PlaceOrder handles POST /api/orders. One order per vendor in the
// cart; each vendor group commits independently, so orders placed
// before a mid-cart failure stay placed and are reported back with the
// error.
func (h *CustomerOrderController) PlaceOrder(c *fiber.Ctx) error {
	caller, err := resolveCaller(c, h.Store)
	if err != nil {
		return domain.RespondError(c, err)
	}

	var req PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Failed to parse request body"})
	}

	customerID := caller.User.ID
	placed, err := h.Checkout.PlaceOrder(c.Context(), &customerID, req.Items)
	if err != nil {
		if len(placed) > 0 {
			return c.Status(domain.HTTPStatus(err)).JSON(fiber.Map{
				"error":  err.Error(),
				"orders": placed,
			})
		}
		return domain.RespondError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Order(s) placed successfully",
		"orders":  placed,
	})
}

// GetMyOrders handles GET /api/orders/mine.
func (h *CustomerOrderController) GetMyOrders(c *fiber.Ctx) error {
	caller, err := resolveCaller(c, h.Store)
	if err != nil {
		return domain.RespondError(c, err)
	}

	orders, err := h.Store.Orders().FindByCustomerID(c.Context(), caller.User.ID)
	if err != nil {
		return domain.RespondError(c, err)
	}

	out := make([]fiber.Map, 0, len(orders))
	for _, order := range orders {
		entry, err := h.orderWithItems(c, order)
		if err != nil {
			return domain.RespondError(c, err)
		}
		out = append(out, entry)
	}
	return c.JSON(out)
}

// GetMyOrderByID handles GET /api/orders/mine/:id. Another customer's
// order reads as not found, never as forbidden, so order ids cannot be
// probed.
func (h *CustomerOrderController) GetMyOrderByID(c *fiber.Ctx) error {
	caller, err := resolveCaller(c, h.Store)
	if err != nil {
		return domain.RespondError(c, err)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return domain.RespondError(c, fmt.Errorf("order %w", domain.ErrNotFound))
	}

	order, err := h.Store.Orders().FindByIDForCustomer(c.Context(), uint(id), caller.User.ID)
	if err != nil {
		return domain.RespondError(c, fmt.Errorf("order %w", domain.ErrNotFound))
	}

	entry, err := h.orderWithItems(c, *order)
	if err != nil {
		return domain.RespondError(c, err)
	}
	return c.JSON(entry)
}

func (h *CustomerOrderController) orderWithItems(c *fiber.Ctx, order models.Order) (fiber.Map, error) {
	items, err := h.Store.OrderItems().FindByOrderID(c.Context(), order.ID)
	if err != nil {
		return nil, err
	}
	return fiber.Map{
		"id":         order.ID,
		"orderId":    order.OrderID,
		"amount":     order.Amount,
		"status":     order.Status,
		"vendorId":   order.VendorID,
		"customerId": order.CustomerID,
		"created_at": order.CreatedAt,
		"items":      items,
	}, nil
}
