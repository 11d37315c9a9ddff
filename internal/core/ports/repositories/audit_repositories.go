package repositories

import (
	"context"

	"github.com/openprocure/procurement_backend/internal/core/domain"
)

// AuditWriter appends immutable workflow audit entries. The backing table is
// insert-only; no update or delete operation is exposed.
type AuditWriter interface {
	AppendHistoryEntry(ctx context.Context, entry domain.ApprovalHistoryEntry) error
}

// AuditReader reads the append-only audit trail.
type AuditReader interface {
	// ListHistoryByEntity returns all entries for an entity, oldest first.
	ListHistoryByEntity(ctx context.Context, entityType domain.AuditEntityType, entityID string) ([]domain.ApprovalHistoryEntry, error)
}

// AuditRepositoryFacade combines audit read and append interfaces.
type AuditRepositoryFacade interface {
	AuditWriter
	AuditReader
}
