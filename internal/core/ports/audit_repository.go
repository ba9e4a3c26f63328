package ports

import (
	"context"

	"github.com/SextoAndar/sexto-andar-auth/internal/core/domain"
)

// AuditRepository persists the append-only admin-mutation trail.
type AuditRepository interface {
	Record(ctx context.Context, entry *domain.AuditEntry) error
}
