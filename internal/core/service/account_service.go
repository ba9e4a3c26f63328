package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/SextoAndar/sexto-andar-auth/internal/core/domain"
	"github.com/SextoAndar/sexto-andar-auth/internal/core/ports"
)

// maxPictureBytes caps inline picture storage at 2 MiB.
const maxPictureBytes = 2 << 20

var allowedPictureTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

// AccountService implements self-service operations: resolving the caller's
// own record and the profile picture lifecycle. Pictures are owner-managed
// but publicly readable.
type AccountService struct {
	repo ports.AccountRepository
	log  zerolog.Logger
}

func NewAccountService(repo ports.AccountRepository, log zerolog.Logger) *AccountService {
	return &AccountService{repo: repo, log: log}
}

func (s *AccountService) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return s.repo.FindByID(ctx, id)
}

// SetProfilePicture stores or replaces the owner's picture after validating
// size and content type.
func (s *AccountService) SetProfilePicture(ctx context.Context, ownerID string, data []byte, contentType string) error {
	if len(data) == 0 {
		return domain.ErrEmptyPicture
	}
	if len(data) > maxPictureBytes {
		return domain.ErrPictureTooLarge
	}
	if _, ok := allowedPictureTypes[contentType]; !ok {
		return domain.ErrUnsupportedPictureType
	}

	if err := s.repo.SetProfilePicture(ctx, ownerID, data, contentType); err != nil {
		return err
	}

	s.log.Info().
		Str("account_id", ownerID).
		Str("content_type", contentType).
		Int("bytes", len(data)).
		Msg("profile picture updated")
	return nil
}

func (s *AccountService) GetProfilePicture(ctx context.Context, accountID string) ([]byte, string, error) {
	account, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		return nil, "", err
	}
	if !account.HasProfilePicture() {
		return nil, "", domain.ErrNoProfilePicture
	}
	return account.ProfilePicture, account.ProfilePictureType, nil
}

func (s *AccountService) DeleteProfilePicture(ctx context.Context, ownerID string) error {
	account, err := s.repo.FindByID(ctx, ownerID)
	if err != nil {
		return err
	}
	if !account.HasProfilePicture() {
		return domain.ErrNoProfilePicture
	}

	if err := s.repo.ClearProfilePicture(ctx, ownerID); err != nil {
		return err
	}

	s.log.Info().Str("account_id", ownerID).Msg("profile picture removed")
	return nil
}
