package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/SextoAndar/sexto-andar-auth/internal/core/domain"
	"github.com/SextoAndar/sexto-andar-auth/internal/core/ports"
)

type stubAuditRepo struct {
	entries []domain.AuditEntry
}

func (r *stubAuditRepo) Record(_ context.Context, entry *domain.AuditEntry) error {
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *stubAuditRepo) last(t *testing.T) domain.AuditEntry {
	t.Helper()
	if len(r.entries) == 0 {
		t.Fatalf("no audit entries recorded")
	}
	return r.entries[len(r.entries)-1]
}

type stubPublisher struct {
	events []ports.AccountEvent
}

func (p *stubPublisher) Publish(event ports.AccountEvent) {
	p.events = append(p.events, event)
}

type adminFixture struct {
	repo   *stubAccountRepo
	audit  *stubAuditRepo
	events *stubPublisher
	svc    *AdminService
}

func newAdminFixture() *adminFixture {
	repo := newStubAccountRepo()
	audit := &stubAuditRepo{}
	events := &stubPublisher{}
	svc := NewAdminService(repo, audit, testHasher(), events, zerolog.Nop())
	return &adminFixture{repo: repo, audit: audit, events: events, svc: svc}
}

func (f *adminFixture) seed(t *testing.T, id, username string, role domain.Role) *domain.Account {
	t.Helper()
	account := &domain.Account{
		ID:        id,
		Username:  username,
		Email:     username + "@example.com",
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.repo.Create(context.Background(), account); err != nil {
		t.Fatalf("seed %s: %v", username, err)
	}
	return account
}

func adminIdentity(id, username string) domain.Identity {
	return domain.Identity{ID: id, Username: username, Role: domain.RoleAdmin}
}

func TestAdminService_BootstrapCreate(t *testing.T) {
	f := newAdminFixture()

	account, err := f.svc.BootstrapCreate(context.Background(), registerInput("root"))
	if err != nil {
		t.Fatalf("BootstrapCreate returned error: %v", err)
	}
	if account.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role: %s", account.Role)
	}

	entry := f.audit.last(t)
	if entry.Action != domain.AuditBootstrapCreate || entry.Outcome != domain.AuditOutcomeSuccess {
		t.Fatalf("unexpected audit entry: %+v", entry)
	}
	if entry.ActorUsername != "operator" {
		t.Fatalf("unexpected actor: %q", entry.ActorUsername)
	}
}

func TestAdminService_CreateAdmin_Success(t *testing.T) {
	f := newAdminFixture()
	f.seed(t, "adm-1", "root", domain.RoleAdmin)

	account, err := f.svc.CreateAdmin(context.Background(), adminIdentity("adm-1", "root"), registerInput("second"))
	if err != nil {
		t.Fatalf("CreateAdmin returned error: %v", err)
	}
	if !account.IsAdmin() {
		t.Fatalf("expected ADMIN role, got %s", account.Role)
	}

	entry := f.audit.last(t)
	if entry.Action != domain.AuditCreateAdmin || entry.Outcome != domain.AuditOutcomeSuccess {
		t.Fatalf("unexpected audit entry: %+v", entry)
	}
	if entry.ActorID != "adm-1" || entry.TargetID != account.ID {
		t.Fatalf("unexpected audit actors: %+v", entry)
	}
}

func TestAdminService_CreateAdmin_NonAdminCaller(t *testing.T) {
	f := newAdminFixture()
	f.seed(t, "usr-1", "mallory", domain.RoleUser)

	caller := domain.Identity{ID: "usr-1", Username: "mallory", Role: domain.RoleUser}
	if _, err := f.svc.CreateAdmin(context.Background(), caller, registerInput("evil")); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// Denials are audited too.
	entry := f.audit.last(t)
	if entry.Outcome != domain.AuditOutcomeDenied || entry.Reason != "forbidden" {
		t.Fatalf("unexpected audit entry: %+v", entry)
	}
}

func TestAdminService_CreateAdmin_Duplicate(t *testing.T) {
	f := newAdminFixture()
	f.seed(t, "adm-1", "root", domain.RoleAdmin)

	if _, err := f.svc.CreateAdmin(context.Background(), adminIdentity("adm-1", "root"), registerInput("root")); !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
	if entry := f.audit.last(t); entry.Reason != "duplicate_username" {
		t.Fatalf("unexpected audit reason: %q", entry.Reason)
	}
}

func TestAdminService_DeleteAdmin_Success(t *testing.T) {
	f := newAdminFixture()
	f.seed(t, "adm-1", "root", domain.RoleAdmin)
	f.seed(t, "adm-2", "second", domain.RoleAdmin)

	if err := f.svc.DeleteAdmin(context.Background(), adminIdentity("adm-1", "root"), "adm-2"); err != nil {
		t.Fatalf("DeleteAdmin returned error: %v", err)
	}

	if _, err := f.repo.FindByID(context.Background(), "adm-2"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected account to be deleted, got %v", err)
	}

	if len(f.events.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(f.events.events))
	}
	event := f.events.events[0]
	if event.Type != ports.EventAccountDeleted || event.AccountID != "adm-2" || event.Username != "second" {
		t.Fatalf("unexpected event: %+v", event)
	}
}

func TestAdminService_DeleteAdmin_Forbidden(t *testing.T) {
	f := newAdminFixture()
	f.seed(t, "adm-1", "root", domain.RoleAdmin)

	caller := domain.Identity{ID: "usr-1", Username: "mallory", Role: domain.RoleUser}

	// The authorization check runs before the existence check: a non-admin
	// caller gets the same answer for real and fictitious targets.
	if err := f.svc.DeleteAdmin(context.Background(), caller, "adm-1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("real target: expected ErrForbidden, got %v", err)
	}
	if err := f.svc.DeleteAdmin(context.Background(), caller, "no-such-id"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("missing target: expected ErrForbidden, got %v", err)
	}
}

func TestAdminService_DeleteAdmin_TargetNotFound(t *testing.T) {
	f := newAdminFixture()
	f.seed(t, "adm-1", "root", domain.RoleAdmin)
	f.seed(t, "adm-2", "second", domain.RoleAdmin)
	f.seed(t, "usr-1", "plainuser", domain.RoleUser)

	caller := adminIdentity("adm-1", "root")

	if err := f.svc.DeleteAdmin(context.Background(), caller, "no-such-id"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("missing id: expected ErrAccountNotFound, got %v", err)
	}

	// A non-admin target is reported as not found, not as a role violation:
	// this endpoint only ever resolves admin accounts.
	if err := f.svc.DeleteAdmin(context.Background(), caller, "usr-1"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("non-admin target: expected ErrAccountNotFound, got %v", err)
	}
	if _, err := f.repo.FindByID(context.Background(), "usr-1"); err != nil {
		t.Fatalf("non-admin account must survive: %v", err)
	}
}

func TestAdminService_DeleteAdmin_Self(t *testing.T) {
	f := newAdminFixture()
	f.seed(t, "adm-1", "root", domain.RoleAdmin)
	f.seed(t, "adm-2", "second", domain.RoleAdmin)

	if err := f.svc.DeleteAdmin(context.Background(), adminIdentity("adm-1", "root"), "adm-1"); !errors.Is(err, domain.ErrSelfDeletion) {
		t.Fatalf("expected ErrSelfDeletion, got %v", err)
	}
	if entry := f.audit.last(t); entry.Reason != "self_deletion" {
		t.Fatalf("unexpected audit reason: %q", entry.Reason)
	}
	if len(f.events.events) != 0 {
		t.Fatalf("no event must be published on denial")
	}
}

func TestAdminService_DeleteAdmin_LastAdmin(t *testing.T) {
	f := newAdminFixture()
	f.seed(t, "adm-1", "root", domain.RoleAdmin)
	f.seed(t, "adm-2", "second", domain.RoleAdmin)

	if err := f.svc.DeleteAdmin(context.Background(), adminIdentity("adm-1", "root"), "adm-2"); err != nil {
		t.Fatalf("first delete returned error: %v", err)
	}

	// adm-1 is now the only admin; nobody can remove it but itself, and
	// self-deletion is blocked first. Simulate a second admin identity whose
	// account is already gone trying to take out the survivor.
	if err := f.svc.DeleteAdmin(context.Background(), adminIdentity("adm-2", "second"), "adm-1"); !errors.Is(err, domain.ErrLastAdmin) {
		t.Fatalf("expected ErrLastAdmin, got %v", err)
	}
	if entry := f.audit.last(t); entry.Reason != "last_admin" {
		t.Fatalf("unexpected audit reason: %q", entry.Reason)
	}
}

func TestAdminService_DeleteUser_Success(t *testing.T) {
	f := newAdminFixture()
	f.seed(t, "adm-1", "root", domain.RoleAdmin)
	f.seed(t, "usr-1", "plainuser", domain.RoleUser)

	if err := f.svc.DeleteUser(context.Background(), adminIdentity("adm-1", "root"), "usr-1"); err != nil {
		t.Fatalf("DeleteUser returned error: %v", err)
	}

	if _, err := f.repo.FindByID(context.Background(), "usr-1"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected account to be deleted, got %v", err)
	}

	entry := f.audit.last(t)
	if entry.Action != domain.AuditDeleteUser || entry.Outcome != domain.AuditOutcomeSuccess {
		t.Fatalf("unexpected audit entry: %+v", entry)
	}

	if len(f.events.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(f.events.events))
	}
	event := f.events.events[0]
	if event.Type != ports.EventAccountDeleted || event.AccountID != "usr-1" || event.Username != "plainuser" {
		t.Fatalf("unexpected event: %+v", event)
	}
}

func TestAdminService_DeleteUser_AdminTarget(t *testing.T) {
	f := newAdminFixture()
	f.seed(t, "adm-1", "root", domain.RoleAdmin)
	f.seed(t, "adm-2", "second", domain.RoleAdmin)

	// Admin accounts are out of reach for this operation even when the
	// caller could delete them through the admin endpoint.
	if err := f.svc.DeleteUser(context.Background(), adminIdentity("adm-1", "root"), "adm-2"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := f.repo.FindByID(context.Background(), "adm-2"); err != nil {
		t.Fatalf("admin account must survive: %v", err)
	}
	if entry := f.audit.last(t); entry.Outcome != domain.AuditOutcomeDenied || entry.Reason != "forbidden" {
		t.Fatalf("unexpected audit entry: %+v", entry)
	}
	if len(f.events.events) != 0 {
		t.Fatalf("no event must be published on denial")
	}
}

func TestAdminService_DeleteUser_NotFound(t *testing.T) {
	f := newAdminFixture()
	f.seed(t, "adm-1", "root", domain.RoleAdmin)

	if err := f.svc.DeleteUser(context.Background(), adminIdentity("adm-1", "root"), "no-such-id"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAdminService_DeleteUser_NonAdminCaller(t *testing.T) {
	f := newAdminFixture()
	f.seed(t, "usr-1", "mallory", domain.RoleUser)
	f.seed(t, "usr-2", "victim", domain.RoleUser)

	caller := domain.Identity{ID: "usr-1", Username: "mallory", Role: domain.RoleUser}
	if err := f.svc.DeleteUser(context.Background(), caller, "usr-2"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := f.repo.FindByID(context.Background(), "usr-2"); err != nil {
		t.Fatalf("target account must survive: %v", err)
	}
}

func TestAdminService_ListUsers(t *testing.T) {
	f := newAdminFixture()
	f.seed(t, "adm-1", "root", domain.RoleAdmin)
	base := time.Now().UTC()
	for i, name := range []string{"u1", "u2", "u3"} {
		account := &domain.Account{
			ID:        name,
			Username:  name,
			Email:     name + "@example.com",
			Role:      domain.RoleUser,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		if _, err := f.repo.Create(context.Background(), account); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}

	page, err := f.svc.ListUsers(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}
	if page.Total != 3 {
		t.Fatalf("expected total 3, got %d", page.Total)
	}
	if len(page.Accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(page.Accounts))
	}
	for _, a := range page.Accounts {
		if a.IsAdmin() {
			t.Fatalf("admin leaked into user listing: %+v", a)
		}
	}

	page, err = f.svc.ListUsers(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("ListUsers page 2 returned error: %v", err)
	}
	if len(page.Accounts) != 1 {
		t.Fatalf("expected 1 account on page 2, got %d", len(page.Accounts))
	}
}

func TestAdminService_ListUsers_ClampsParams(t *testing.T) {
	f := newAdminFixture()

	page, err := f.svc.ListUsers(context.Background(), -5, 1000)
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}
	if page.Page != 1 || page.Size != defaultPageSize {
		t.Fatalf("expected clamped page=1 size=%d, got page=%d size=%d", defaultPageSize, page.Page, page.Size)
	}
}

func TestAdminService_GetUser(t *testing.T) {
	f := newAdminFixture()
	f.seed(t, "adm-1", "root", domain.RoleAdmin)
	f.seed(t, "usr-1", "plainuser", domain.RoleUser)

	account, err := f.svc.GetUser(context.Background(), "usr-1")
	if err != nil {
		t.Fatalf("GetUser returned error: %v", err)
	}
	if account.Username != "plainuser" {
		t.Fatalf("unexpected account: %+v", account)
	}

	if _, err := f.svc.GetUser(context.Background(), "adm-1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("admin target: expected ErrForbidden, got %v", err)
	}
	if _, err := f.svc.GetUser(context.Background(), "nope"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("missing target: expected ErrAccountNotFound, got %v", err)
	}
}
