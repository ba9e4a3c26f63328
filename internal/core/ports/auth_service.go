package ports

import (
	"context"
	"time"

	"github.com/SextoAndar/sexto-andar-auth/internal/core/domain"
)

// RegisterInput carries the fields common to all account-creation paths.
// The plaintext password lives only in this struct for the duration of the
// call; it is hashed before anything is persisted and never logged.
type RegisterInput struct {
	Username    string
	FullName    string
	Email       string
	PhoneNumber string
	Password    string
}

// Introspection is the result of validating a token on behalf of a remote
// caller. Verification failures yield Active=false, never an error.
type Introspection struct {
	Active    bool
	Subject   string
	Username  string
	Role      domain.Role
	ExpiresAt time.Time
	Reason    string
}

type AuthService interface {
	// Register creates a USER or PROPERTY_OWNER account. ADMIN creation goes
	// through AdminService exclusively.
	Register(ctx context.Context, role domain.Role, input RegisterInput) (*domain.Account, error)

	// Login verifies credentials and issues a signed session token.
	Login(ctx context.Context, username, password string) (string, *domain.Account, error)

	// Introspect validates a token for service-to-service checks.
	Introspect(token string) Introspection
}
