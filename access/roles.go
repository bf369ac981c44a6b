// Package access derives the caller's role once per request. It
// replaces implicit attach-vendor-to-request middleware: handlers call
// ResolveCaller explicitly and pass the result around.
package access

import (
	"context"
	"errors"

	"bazaar/domain"
	"bazaar/models"
	"bazaar/repositories"

	"github.com/google/uuid"
)

// Caller is a resolved request identity. Vendor is nil when the user
// owns no storefront; a user owning several storefronts gets one
// profile attached here, and id-targeted operations check ownership
// against the requested row instead.
type Caller struct {
	User   models.User
	Vendor *models.Vendor
}

func (c *Caller) IsAdmin() bool       { return c.User.IsAdmin }
func (c *Caller) IsVendorOwner() bool { return c.Vendor != nil }

// ResolveCaller loads the user behind a verified token subject and the
// vendor profile it owns, if any. An unknown user id reads as an invalid
// credential, not a missing row.
func ResolveCaller(ctx context.Context, store repositories.Store, userID uuid.UUID) (*Caller, error) {
	user, err := store.Users().FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	caller := &Caller{User: *user}
	vendor, err := store.Vendors().FindByUserID(ctx, userID)
	if err == nil {
		caller.Vendor = vendor
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return caller, nil
}
