package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/mail"

	"bazaar/domain"
	"bazaar/internal/util"
	"bazaar/models"
	"bazaar/repositories"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// AuthController handles registration and the two login surfaces. The
// customer and vendor login paths are mutually exclusive for a given
// account: each rejects credentials belonging to the other side.
type AuthController struct {
	Store       repositories.Store
	JWTSecret   string
	TokenExpiry int // hours
}

type RegisterCustomerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *RegisterCustomerRequest) Validate() error {
	if len(r.Name) < 2 || len(r.Name) > 50 {
		return domain.Validationf("name", "must be between 2 and 50 characters")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return domain.Validationf("email", "must be a valid email address")
	}
	if len(r.Password) < 6 {
		return domain.Validationf("password", "must be at least 6 characters")
	}
	return nil
}

type RegisterVendorRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	StoreName   string `json:"storeName"`
	BankAccount string `json:"bankAccount"`
}

func (r *RegisterVendorRequest) Validate() error {
	base := RegisterCustomerRequest{Name: r.Name, Email: r.Email, Password: r.Password}
	if err := base.Validate(); err != nil {
		return err
	}
	if len(r.StoreName) < 2 || len(r.StoreName) > 100 {
		return domain.Validationf("storeName", "must be between 2 and 100 characters")
	}
	if len(r.BankAccount) < 6 || len(r.BankAccount) > 30 {
		return domain.Validationf("bankAccount", "must be between 6 and 30 characters")
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return domain.Validationf("email", "must be a valid email address")
	}
	if r.Password == "" {
		return domain.Validationf("password", "is required")
	}
	return nil
}

// RegisterCustomer handles POST /api/auth/register-customer.
func (a *AuthController) RegisterCustomer(c *fiber.Ctx) error {
	var req RegisterCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Failed to parse request body"})
	}
	if err := req.Validate(); err != nil {
		return domain.RespondError(c, err)
	}

	if _, err := a.Store.Users().FindByEmail(c.Context(), req.Email); err == nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "User already exists"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.RespondError(c, err)
	}

	// Registration never grants the admin flag.
	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashed),
	}
	if err := a.Store.Users().Create(c.Context(), &user); err != nil {
		return domain.RespondError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"user": fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

// RegisterVendor handles POST /api/auth/register-vendor. The user and
// vendor rows are created in one transaction.
func (a *AuthController) RegisterVendor(c *fiber.Ctx) error {
	var req RegisterVendorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Failed to parse request body"})
	}
	if err := req.Validate(); err != nil {
		return domain.RespondError(c, err)
	}

	_, userErr := a.Store.Users().FindByEmail(c.Context(), req.Email)
	_, vendorErr := a.Store.Vendors().FindByEmail(c.Context(), req.Email)
	if userErr == nil || vendorErr == nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "A vendor account with this email already exists"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.RespondError(c, err)
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashed),
	}
	vendor := models.Vendor{
		Name:        req.Name,
		Email:       req.Email,
		StoreName:   req.StoreName,
		BankAccount: req.BankAccount,
	}
	err = a.Store.Transact(c.Context(), func(tx repositories.Store) error {
		if err := tx.Users().Create(c.Context(), &user); err != nil {
			return err
		}
		vendor.UserID = user.ID
		return tx.Vendors().Create(c.Context(), &vendor)
	})
	if err != nil {
		return domain.RespondError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Vendor account created successfully",
		"user": fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
		"vendor": fiber.Map{
			"id":          vendor.ID,
			"storeName":   vendor.StoreName,
			"bankAccount": vendor.BankAccount,
		},
	})
}

func (a *AuthController) checkCredentials(c *fiber.Ctx, req LoginRequest) (*models.User, error) {
	user, err := a.Store.Users().FindByEmail(c.Context(), req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// LoginCustomer handles POST /api/auth/login. Vendor-owning accounts are
// turned away toward the vendor login.
func (a *AuthController) LoginCustomer(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Failed to parse request body"})
	}
	if err := req.Validate(); err != nil {
		return domain.RespondError(c, err)
	}

	user, err := a.checkCredentials(c, req)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
		}
		return domain.RespondError(c, err)
	}

	if _, err := a.Store.Vendors().FindByUserID(c.Context(), user.ID); err == nil {
		return domain.RespondError(c, fmt.Errorf("%w: this account is a vendor, use the vendor login", domain.ErrVendorAccountMismatch))
	}

	token, err := util.CreateAccessToken(user, a.JWTSecret, a.TokenExpiry)
	if err != nil {
		return domain.RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user": fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

// LoginVendor handles POST /api/auth/login-vendor. Accounts without a
// vendor profile are turned away toward the customer login.
func (a *AuthController) LoginVendor(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Failed to parse request body"})
	}
	if err := req.Validate(); err != nil {
		return domain.RespondError(c, err)
	}

	user, err := a.checkCredentials(c, req)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
		}
		return domain.RespondError(c, err)
	}

	vendor, err := a.Store.Vendors().FindByUserID(c.Context(), user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.RespondError(c, fmt.Errorf("%w: no vendor account found for this user", domain.ErrVendorAccountMismatch))
		}
		return domain.RespondError(c, err)
	}

	token, err := util.CreateAccessToken(user, a.JWTSecret, a.TokenExpiry)
	if err != nil {
		return domain.RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user": fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
		"vendor": fiber.Map{
			"id":          vendor.ID,
			"storeName":   vendor.StoreName,
			"bankAccount": vendor.BankAccount,
		},
	})
}
