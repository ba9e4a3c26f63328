package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/SextoAndar/sexto-andar-auth/internal/core/domain"
)

func newTestAccountService(t *testing.T) (*AccountService, *stubAccountRepo) {
	t.Helper()
	repo := newStubAccountRepo()
	if _, err := repo.Create(context.Background(), &domain.Account{
		ID:       "acc-1",
		Username: "alice",
		Email:    "alice@example.com",
		Role:     domain.RoleUser,
	}); err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return NewAccountService(repo, zerolog.Nop()), repo
}

func TestAccountService_ProfilePictureLifecycle(t *testing.T) {
	svc, _ := newTestAccountService(t)
	picture := []byte{0xFF, 0xD8, 0xFF, 0xE0}

	if err := svc.SetProfilePicture(context.Background(), "acc-1", picture, "image/jpeg"); err != nil {
		t.Fatalf("SetProfilePicture returned error: %v", err)
	}

	data, contentType, err := svc.GetProfilePicture(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("GetProfilePicture returned error: %v", err)
	}
	if !bytes.Equal(data, picture) {
		t.Fatalf("picture bytes do not round-trip")
	}
	if contentType != "image/jpeg" {
		t.Fatalf("unexpected content type: %s", contentType)
	}

	if err := svc.DeleteProfilePicture(context.Background(), "acc-1"); err != nil {
		t.Fatalf("DeleteProfilePicture returned error: %v", err)
	}
	if _, _, err := svc.GetProfilePicture(context.Background(), "acc-1"); !errors.Is(err, domain.ErrNoProfilePicture) {
		t.Fatalf("expected ErrNoProfilePicture after delete, got %v", err)
	}
}

func TestAccountService_SetProfilePicture_Validation(t *testing.T) {
	svc, _ := newTestAccountService(t)

	// A zero-byte upload is its own failure mode, not a size violation.
	if err := svc.SetProfilePicture(context.Background(), "acc-1", nil, "image/png"); !errors.Is(err, domain.ErrEmptyPicture) {
		t.Fatalf("empty picture: expected ErrEmptyPicture, got %v", err)
	}
	if err := svc.SetProfilePicture(context.Background(), "acc-1", []byte{}, "image/png"); !errors.Is(err, domain.ErrEmptyPicture) {
		t.Fatalf("zero-length picture: expected ErrEmptyPicture, got %v", err)
	}

	huge := make([]byte, maxPictureBytes+1)
	if err := svc.SetProfilePicture(context.Background(), "acc-1", huge, "image/png"); !errors.Is(err, domain.ErrPictureTooLarge) {
		t.Fatalf("oversized picture: expected ErrPictureTooLarge, got %v", err)
	}

	if err := svc.SetProfilePicture(context.Background(), "acc-1", []byte{1}, "image/gif"); !errors.Is(err, domain.ErrUnsupportedPictureType) {
		t.Fatalf("gif: expected ErrUnsupportedPictureType, got %v", err)
	}
	if err := svc.SetProfilePicture(context.Background(), "acc-1", []byte{1}, "application/pdf"); !errors.Is(err, domain.ErrUnsupportedPictureType) {
		t.Fatalf("pdf: expected ErrUnsupportedPictureType, got %v", err)
	}
}

func TestAccountService_DeleteProfilePicture_NonePresent(t *testing.T) {
	svc, _ := newTestAccountService(t)

	if err := svc.DeleteProfilePicture(context.Background(), "acc-1"); !errors.Is(err, domain.ErrNoProfilePicture) {
		t.Fatalf("expected ErrNoProfilePicture, got %v", err)
	}
}

func TestAccountService_GetByID(t *testing.T) {
	svc, _ := newTestAccountService(t)

	account, err := svc.GetByID(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if account.Username != "alice" {
		t.Fatalf("unexpected account: %+v", account)
	}

	if _, err := svc.GetByID(context.Background(), "missing"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}
