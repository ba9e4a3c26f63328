package ports

import (
	"context"

	"github.com/SextoAndar/sexto-andar-auth/internal/core/domain"
)

// AccountService covers self-service operations on an existing account:
// resolving the caller's own record and managing the profile picture.
type AccountService interface {
	GetByID(ctx context.Context, id string) (*domain.Account, error)

	// SetProfilePicture stores or replaces the owner's picture.
	SetProfilePicture(ctx context.Context, ownerID string, data []byte, contentType string) error

	// GetProfilePicture returns the raw bytes and stored content type.
	// Pictures are public: any caller may fetch any account's picture.
	GetProfilePicture(ctx context.Context, accountID string) ([]byte, string, error)

	DeleteProfilePicture(ctx context.Context, ownerID string) error
}
