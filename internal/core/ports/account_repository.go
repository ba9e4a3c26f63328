package ports

import (
	"context"

	"github.com/SextoAndar/sexto-andar-auth/internal/core/domain"
)

// AccountRepository defines the credential-store interface. Uniqueness of
// username and email is enforced by the store itself (unique indexes); the
// service layer pre-checks only to produce precise duplicate errors.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
	EmailTaken(ctx context.Context, email string) (bool, error)

	// ListNonAdmins returns a page of USER and PROPERTY_OWNER accounts plus
	// the total count of non-admin accounts.
	ListNonAdmins(ctx context.Context, page, size int) ([]domain.Account, int64, error)

	CountAdmins(ctx context.Context) (int64, error)

	// DeleteAdmin removes the ADMIN account with the given id. The existence,
	// role, and not-last-admin checks run atomically with the delete so two
	// concurrent deletions cannot jointly remove the final two admins.
	// Returns domain.ErrAccountNotFound or domain.ErrLastAdmin on violation.
	DeleteAdmin(ctx context.Context, id string) error

	// DeleteUser removes a USER or PROPERTY_OWNER account. An id that is
	// missing or belongs to an ADMIN yields domain.ErrAccountNotFound.
	DeleteUser(ctx context.Context, id string) error

	SetProfilePicture(ctx context.Context, id string, data []byte, contentType string) error
	ClearProfilePicture(ctx context.Context, id string) error
}
