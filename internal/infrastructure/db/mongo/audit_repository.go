package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/SextoAndar/sexto-andar-auth/internal/core/domain"
)

const auditCollection = "audit_log"

// AuditRepository persists the append-only admin-mutation trail. Entries are
// only ever inserted; nothing in the service updates or deletes them.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

func (r *AuditRepository) Record(ctx context.Context, entry *domain.AuditEntry) error {
	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}
