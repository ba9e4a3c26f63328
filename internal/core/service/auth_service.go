package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/SextoAndar/sexto-andar-auth/internal/core/domain"
	"github.com/SextoAndar/sexto-andar-auth/internal/core/ports"
)

// LoginLimiter abstracts the failed-login throttle (Redis). A limiter error
// degrades open: authentication proceeds rather than locking everyone out
// when the store is down.
type LoginLimiter interface {
	Throttled(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// AuthService implements registration, login, and token introspection.
type AuthService struct {
	repo    ports.AccountRepository
	hasher  *PasswordHasher
	tokens  *TokenService
	limiter LoginLimiter
	log     zerolog.Logger
}

func NewAuthService(
	repo ports.AccountRepository,
	hasher *PasswordHasher,
	tokens *TokenService,
	limiter LoginLimiter,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, limiter: limiter, log: log}
}

// Register creates a USER or PROPERTY_OWNER account. Username and email are
// normalized to lowercase before the uniqueness checks so casing variants
// collide. The returned account carries the hash internally but handlers
// only ever project public fields.
func (s *AuthService) Register(ctx context.Context, role domain.Role, input ports.RegisterInput) (*domain.Account, error) {
	if role != domain.RoleUser && role != domain.RolePropertyOwner {
		return nil, domain.ErrForbidden
	}

	account, err := createAccount(ctx, s.repo, s.hasher, role, input)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("account_id", account.ID).
		Str("username", account.Username).
		Str("role", string(account.Role)).
		Msg("account registered")

	return account, nil
}

// Login verifies credentials and issues a session token. An unknown username
// and a wrong password both surface as domain.ErrInvalidCredentials so the
// caller cannot tell which check failed.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.Account, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if throttled, err := s.limiter.Throttled(ctx, username); err != nil {
		s.log.Warn().Err(err).Msg("login throttle check failed, proceeding")
	} else if throttled {
		return "", nil, domain.ErrLoginThrottled
	}

	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			s.recordFailure(ctx, username)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		s.recordFailure(ctx, username)
		return "", nil, domain.ErrInvalidCredentials
	}

	if err := s.limiter.Reset(ctx, username); err != nil {
		s.log.Warn().Err(err).Msg("login throttle reset failed")
	}

	token, err := s.tokens.Issue(account)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().
		Str("account_id", account.ID).
		Str("username", account.Username).
		Msg("login succeeded")

	return token, account, nil
}

// Introspect validates a token for remote services that do not hold the
// signing secret. It never returns an error: any verification failure is
// reported as an inactive token with a machine-readable reason.
func (s *AuthService) Introspect(token string) ports.Introspection {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return ports.Introspection{Active: false, Reason: verifyResult(err)}
	}

	return ports.Introspection{
		Active:    true,
		Subject:   claims.Subject,
		Username:  claims.Username,
		Role:      domain.Role(claims.Role),
		ExpiresAt: claims.ExpiresAt.Time,
	}
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if err := s.limiter.RecordFailure(ctx, username); err != nil {
		s.log.Warn().Err(err).Msg("failed to record login failure")
	}
}

func verifyResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenSignature):
		return "bad_signature"
	default:
		return "malformed"
	}
}

// createAccount runs the duplicate checks, hashes the password, and persists
// a new account. Shared by public registration and both admin-creation paths.
func createAccount(
	ctx context.Context,
	repo ports.AccountRepository,
	hasher *PasswordHasher,
	role domain.Role,
	input ports.RegisterInput,
) (*domain.Account, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if taken, err := repo.UsernameTaken(ctx, username); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrDuplicateUsername
	}
	if taken, err := repo.EmailTaken(ctx, email); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrDuplicateEmail
	}

	hash, err := hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return repo.Create(ctx, &domain.Account{
		ID:           uuid.NewString(),
		Username:     username,
		FullName:     input.FullName,
		Email:        email,
		PhoneNumber:  input.PhoneNumber,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}
