package domain

import "time"

// AuditAction identifies an admin mutation recorded in the audit trail.
type AuditAction string

const (
	AuditCreateAdmin     AuditAction = "create_admin"
	AuditDeleteAdmin     AuditAction = "delete_admin"
	AuditDeleteUser      AuditAction = "delete_user"
	AuditBootstrapCreate AuditAction = "bootstrap_create"
)

// Audit outcomes. Denied attempts are recorded too: the trail exists for
// forensic review, not just bookkeeping of successes.
const (
	AuditOutcomeSuccess = "success"
	AuditOutcomeDenied  = "denied"
)

// AuditEntry is one append-only record of an admin mutation attempt.
type AuditEntry struct {
	Action        AuditAction `bson:"action"`
	ActorID       string      `bson:"actor_id"`
	ActorUsername string      `bson:"actor_username,omitempty"`
	TargetID      string      `bson:"target_id,omitempty"`
	Target        string      `bson:"target,omitempty"`
	Outcome       string      `bson:"outcome"`
	Reason        string      `bson:"reason,omitempty"`
	Timestamp     time.Time   `bson:"timestamp"`
}
