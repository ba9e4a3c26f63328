package ports

import (
	"context"

	"github.com/SextoAndar/sexto-andar-auth/internal/core/domain"
)

// AccountPage is one page of account listings.
type AccountPage struct {
	Accounts []domain.Account
	Total    int64
	Page     int
	Size     int
}

// AdminService owns every transition touching the ADMIN role. Check ordering
// on mutations is fixed, authorization first, so an unauthorized caller never
// learns whether a target exists.
type AdminService interface {
	// BootstrapCreate creates an ADMIN without an authenticated caller. It is
	// reachable only from the operator CLI, never from an HTTP route.
	BootstrapCreate(ctx context.Context, input RegisterInput) (*domain.Account, error)

	CreateAdmin(ctx context.Context, caller domain.Identity, input RegisterInput) (*domain.Account, error)
	DeleteAdmin(ctx context.Context, caller domain.Identity, targetID string) error

	// DeleteUser removes a non-admin account. Admin accounts go through
	// DeleteAdmin, which carries the self and last-admin invariants.
	DeleteUser(ctx context.Context, caller domain.Identity, targetID string) error

	// ListUsers returns a page of non-admin accounts.
	ListUsers(ctx context.Context, page, size int) (*AccountPage, error)

	// GetUser returns a non-admin account by id. Admin accounts are not
	// exposed through this path.
	GetUser(ctx context.Context, id string) (*domain.Account, error)
}
