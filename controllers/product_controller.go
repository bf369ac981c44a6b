package controllers

import (
	"fmt"
	"net/http"

	"bazaar/domain"
	"bazaar/models"
	"bazaar/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductController manages the catalog. Browse endpoints are public;
// everything else is scoped to the caller's own vendor.
type ProductController struct {
	Store repositories.Store
}

type CreateProductRequest struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Stock       *int            `json:"stock"`
}

func (r *CreateProductRequest) Validate() error {
	if len(r.Name) < 2 || len(r.Name) > 100 {
		return domain.Validationf("name", "must be between 2 and 100 characters")
	}
	if !r.Price.IsPositive() {
		return domain.Validationf("price", "must be positive")
	}
	if r.Stock == nil {
		return domain.Validationf("stock", "is required")
	}
	if *r.Stock < 0 {
		return domain.Validationf("stock", "must not be negative")
	}
	return nil
}

type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
	Stock       *int             `json:"stock"`
}

func (r *UpdateProductRequest) Validate() error {
	if r.Name != nil && (len(*r.Name) < 2 || len(*r.Name) > 100) {
		return domain.Validationf("name", "must be between 2 and 100 characters")
	}
	if r.Price != nil && !r.Price.IsPositive() {
		return domain.Validationf("price", "must be positive")
	}
	if r.Stock != nil && *r.Stock < 0 {
		return domain.Validationf("stock", "must not be negative")
	}
	return nil
}

// CreateProduct handles POST /api/products (vendor only).
func (h *ProductController) CreateProduct(c *fiber.Ctx) error {
	caller, err := resolveCaller(c, h.Store)
	if err != nil {
		return domain.RespondError(c, err)
	}
	if !caller.IsVendorOwner() {
		return c.Status(http.StatusForbidden).JSON(fiber.Map{"error": "No vendor account found for this user."})
	}

	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Failed to parse request body"})
	}
	if err := req.Validate(); err != nil {
		return domain.RespondError(c, err)
	}

	product := models.Product{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Stock:       *req.Stock,
		VendorID:    caller.Vendor.ID,
	}
	if err := h.Store.Products().Create(c.Context(), &product); err != nil {
		return domain.RespondError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Product created successfully",
		"product": product,
	})
}

// GetMyProducts handles GET /api/products/mine (vendor only).
func (h *ProductController) GetMyProducts(c *fiber.Ctx) error {
	caller, err := resolveCaller(c, h.Store)
	if err != nil {
		return domain.RespondError(c, err)
	}
	if !caller.IsVendorOwner() {
		return c.Status(http.StatusForbidden).JSON(fiber.Map{"error": "No vendor account found for this user."})
	}

	products, err := h.Store.Products().FindByVendorID(c.Context(), caller.Vendor.ID)
	if err != nil {
		return domain.RespondError(c, err)
	}
	return c.JSON(products)
}

// UpdateProduct handles PUT /api/products/:id (vendor only, own rows).
func (h *ProductController) UpdateProduct(c *fiber.Ctx) error {
	caller, err := resolveCaller(c, h.Store)
	if err != nil {
		return domain.RespondError(c, err)
	}
	if !caller.IsVendorOwner() {
		return c.Status(http.StatusForbidden).JSON(fiber.Map{"error": "No vendor account found for this user."})
	}

	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return domain.RespondError(c, fmt.Errorf("product %w", domain.ErrNotFound))
	}

	var req UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Failed to parse request body"})
	}
	if err := req.Validate(); err != nil {
		return domain.RespondError(c, err)
	}

	product, err := h.Store.Products().FindByIDForVendor(c.Context(), productID, caller.Vendor.ID)
	if err != nil {
		return domain.RespondError(c, fmt.Errorf("product %w", domain.ErrNotFound))
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if err := h.Store.Products().Update(c.Context(), product); err != nil {
		return domain.RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Product updated successfully",
		"product": product,
	})
}

// DeleteProduct handles DELETE /api/products/:id (vendor only, own
// rows). Hard delete, no soft-delete or versioning.
func (h *ProductController) DeleteProduct(c *fiber.Ctx) error {
	caller, err := resolveCaller(c, h.Store)
	if err != nil {
		return domain.RespondError(c, err)
	}
	if !caller.IsVendorOwner() {
		return c.Status(http.StatusForbidden).JSON(fiber.Map{"error": "No vendor account found for this user."})
	}

	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return domain.RespondError(c, fmt.Errorf("product %w", domain.ErrNotFound))
	}

	product, err := h.Store.Products().FindByIDForVendor(c.Context(), productID, caller.Vendor.ID)
	if err != nil {
		return domain.RespondError(c, fmt.Errorf("product %w", domain.ErrNotFound))
	}

	if err := h.Store.Products().Delete(c.Context(), product.ID); err != nil {
		return domain.RespondError(c, err)
	}
	return c.JSON(domain.MessageResponse{Message: "Product deleted successfully"})
}

// GetAllProducts handles GET /api/products (public browse).
func (h *ProductController) GetAllProducts(c *fiber.Ctx) error {
	products, err := h.Store.Products().FindAll(c.Context())
	if err != nil {
		return domain.RespondError(c, err)
	}
	return c.JSON(products)
}

// GetProductByID handles GET /api/products/:id (public).
func (h *ProductController) GetProductByID(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return domain.RespondError(c, fmt.Errorf("product %w", domain.ErrNotFound))
	}
	product, err := h.Store.Products().FindByID(c.Context(), productID)
	if err != nil {
		return domain.RespondError(c, fmt.Errorf("product %w", domain.ErrNotFound))
	}
	return c.JSON(product)
}
