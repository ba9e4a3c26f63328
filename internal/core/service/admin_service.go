package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/SextoAndar/sexto-andar-auth/internal/core/domain"
	"github.com/SextoAndar/sexto-andar-auth/internal/core/ports"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// AdminService enforces the invariants around the ADMIN role. Mutation checks
// run in a fixed order (authorization before existence before business rules)
// so an unauthorized caller never learns whether a target exists.
type AdminService struct {
	repo   ports.AccountRepository
	audit  ports.AuditRepository
	hasher *PasswordHasher
	events ports.EventPublisher
	log    zerolog.Logger
}

func NewAdminService(
	repo ports.AccountRepository,
	audit ports.AuditRepository,
	hasher *PasswordHasher,
	events ports.EventPublisher,
	log zerolog.Logger,
) *AdminService {
	return &AdminService{repo: repo, audit: audit, hasher: hasher, events: events, log: log}
}

// BootstrapCreate creates an ADMIN with no authenticated caller. There is no
// admin yet to authorize the first one, so this path is wired only to the
// operator CLI and is still subject to the uniqueness constraints.
func (s *AdminService) BootstrapCreate(ctx context.Context, input ports.RegisterInput) (*domain.Account, error) {
	created, err := createAccount(ctx, s.repo, s.hasher, domain.RoleAdmin, input)
	if err != nil {
		s.record(ctx, domain.AuditBootstrapCreate, domain.Identity{Username: "operator"}, "", input.Username, domain.AuditOutcomeDenied, denialReason(err))
		return nil, err
	}

	s.record(ctx, domain.AuditBootstrapCreate, domain.Identity{Username: "operator"}, created.ID, created.Username, domain.AuditOutcomeSuccess, "")
	s.log.Info().
		Str("account_id", created.ID).
		Str("username", created.Username).
		Msg("bootstrap admin created")

	return created, nil
}

// CreateAdmin creates a new ADMIN on behalf of an existing one.
func (s *AdminService) CreateAdmin(ctx context.Context, caller domain.Identity, input ports.RegisterInput) (*domain.Account, error) {
	if caller.Role != domain.RoleAdmin {
		s.record(ctx, domain.AuditCreateAdmin, caller, "", input.Username, domain.AuditOutcomeDenied, "forbidden")
		return nil, domain.ErrForbidden
	}

	created, err := createAccount(ctx, s.repo, s.hasher, domain.RoleAdmin, input)
	if err != nil {
		s.record(ctx, domain.AuditCreateAdmin, caller, "", input.Username, domain.AuditOutcomeDenied, denialReason(err))
		return nil, err
	}

	s.record(ctx, domain.AuditCreateAdmin, caller, created.ID, created.Username, domain.AuditOutcomeSuccess, "")
	s.log.Info().
		Str("actor_id", caller.ID).
		Str("account_id", created.ID).
		Str("username", created.Username).
		Msg("admin created")

	return created, nil
}

// DeleteAdmin removes another ADMIN account. A target that is missing or not
// an admin is reported as not found. The final count-and-delete runs
// atomically in the repository so concurrent deletions cannot remove the
// last two admins together.
func (s *AdminService) DeleteAdmin(ctx context.Context, caller domain.Identity, targetID string) error {
	if caller.Role != domain.RoleAdmin {
		s.record(ctx, domain.AuditDeleteAdmin, caller, targetID, "", domain.AuditOutcomeDenied, "forbidden")
		return domain.ErrForbidden
	}

	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil || !target.IsAdmin() {
		if err == nil || errors.Is(err, domain.ErrAccountNotFound) {
			err = domain.ErrAccountNotFound
		}
		s.record(ctx, domain.AuditDeleteAdmin, caller, targetID, "", domain.AuditOutcomeDenied, denialReason(err))
		return err
	}

	if target.ID == caller.ID {
		s.record(ctx, domain.AuditDeleteAdmin, caller, target.ID, target.Username, domain.AuditOutcomeDenied, "self_deletion")
		return domain.ErrSelfDeletion
	}

	if err := s.repo.DeleteAdmin(ctx, target.ID); err != nil {
		s.record(ctx, domain.AuditDeleteAdmin, caller, target.ID, target.Username, domain.AuditOutcomeDenied, denialReason(err))
		return err
	}

	s.record(ctx, domain.AuditDeleteAdmin, caller, target.ID, target.Username, domain.AuditOutcomeSuccess, "")
	s.events.Publish(ports.AccountEvent{
		Type:       ports.EventAccountDeleted,
		AccountID:  target.ID,
		Username:   target.Username,
		OccurredAt: time.Now().UTC(),
	})
	s.log.Info().
		Str("actor_id", caller.ID).
		Str("account_id", target.ID).
		Str("username", target.Username).
		Msg("admin deleted")

	return nil
}

// DeleteUser removes a USER or PROPERTY_OWNER account. A missing target is
// not found; an ADMIN target is forbidden, since admin removal runs through
// DeleteAdmin and its invariants. Deletion publishes the same lifecycle
// event as admin deletion so downstream services can clean up either way.
func (s *AdminService) DeleteUser(ctx context.Context, caller domain.Identity, targetID string) error {
	if caller.Role != domain.RoleAdmin {
		s.record(ctx, domain.AuditDeleteUser, caller, targetID, "", domain.AuditOutcomeDenied, "forbidden")
		return domain.ErrForbidden
	}

	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		s.record(ctx, domain.AuditDeleteUser, caller, targetID, "", domain.AuditOutcomeDenied, denialReason(err))
		return err
	}

	if target.IsAdmin() {
		s.record(ctx, domain.AuditDeleteUser, caller, target.ID, target.Username, domain.AuditOutcomeDenied, "forbidden")
		return domain.ErrForbidden
	}

	if err := s.repo.DeleteUser(ctx, target.ID); err != nil {
		s.record(ctx, domain.AuditDeleteUser, caller, target.ID, target.Username, domain.AuditOutcomeDenied, denialReason(err))
		return err
	}

	s.record(ctx, domain.AuditDeleteUser, caller, target.ID, target.Username, domain.AuditOutcomeSuccess, "")
	s.events.Publish(ports.AccountEvent{
		Type:       ports.EventAccountDeleted,
		AccountID:  target.ID,
		Username:   target.Username,
		OccurredAt: time.Now().UTC(),
	})
	s.log.Info().
		Str("actor_id", caller.ID).
		Str("account_id", target.ID).
		Str("username", target.Username).
		Msg("user deleted")

	return nil
}

// ListUsers returns a page of non-admin accounts.
func (s *AdminService) ListUsers(ctx context.Context, page, size int) (*ports.AccountPage, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > maxPageSize {
		size = defaultPageSize
	}

	accounts, total, err := s.repo.ListNonAdmins(ctx, page, size)
	if err != nil {
		return nil, err
	}
	return &ports.AccountPage{Accounts: accounts, Total: total, Page: page, Size: size}, nil
}

// GetUser returns a non-admin account by id. Admin accounts are never
// exposed through the user-management surface.
func (s *AdminService) GetUser(ctx context.Context, id string) (*domain.Account, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return account, nil
}

// record appends an audit entry. Audit persistence is best effort: a failed
// write is logged loudly but does not fail or roll back the mutation itself.
func (s *AdminService) record(ctx context.Context, action domain.AuditAction, actor domain.Identity, targetID, target string, outcome, reason string) {
	entry := &domain.AuditEntry{
		Action:        action,
		ActorID:       actor.ID,
		ActorUsername: actor.Username,
		TargetID:      targetID,
		Target:        target,
		Outcome:       outcome,
		Reason:        reason,
		Timestamp:     time.Now().UTC(),
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.log.Error().Err(err).
			Str("action", string(action)).
			Str("actor_id", actor.ID).
			Str("target_id", targetID).
			Msg("audit write failed")
	}
}

func denialReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicateUsername):
		return "duplicate_username"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return "duplicate_email"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrSelfDeletion):
		return "self_deletion"
	case errors.Is(err, domain.ErrLastAdmin):
		return "last_admin"
	default:
		return "error"
	}
}
