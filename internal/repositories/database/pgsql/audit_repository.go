package pgsql

import (
	"context"
	"fmt"

	"github.com/openprocure/procurement_backend/internal/core/domain"
	portsrepo "github.com/openprocure/procurement_backend/internal/core/ports/repositories"
	"github.com/openprocure/procurement_backend/internal/models"
	"github.com/openprocure/procurement_backend/internal/utils/mapping"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new repository for the workflow audit trail.
// The backing table is insert-only; no update or delete is implemented.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

// AppendHistoryEntry inserts one audit entry.
func (r *PgxAuditRepository) AppendHistoryEntry(ctx context.Context, entry domain.ApprovalHistoryEntry) error {
	m := mapping.ToModelHistoryEntry(entry)

	query := `
		INSERT INTO approval_history (entry_id, entity_type, entity_id, rfq_id, actor_id, actor_name,
		                              action, previous_status, new_status, comments, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EntryID,
		m.EntityType,
		m.EntityID,
		m.RfqID,
		m.ActorID,
		m.ActorName,
		m.Action,
		m.PreviousStatus,
		m.NewStatus,
		m.Comments,
		m.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit entry for %s %s: %w", m.EntityType, m.EntityID, err)
	}
	return nil
}

// ListHistoryByEntity returns all entries for an entity, oldest first.
func (r *PgxAuditRepository) ListHistoryByEntity(ctx context.Context, entityType domain.AuditEntityType, entityID string) ([]domain.ApprovalHistoryEntry, error) {
	query := `
		SELECT entry_id, entity_type, entity_id, rfq_id, actor_id, actor_name,
		       action, previous_status, new_status, comments, occurred_at
		FROM approval_history
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY occurred_at ASC, entry_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, string(entityType), entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries for %s %s: %w", entityType, entityID, err)
	}
	defer rows.Close()

	var entries []models.ApprovalHistoryEntry
	for rows.Next() {
		var m models.ApprovalHistoryEntry
		if err := rows.Scan(
			&m.EntryID,
			&m.EntityType,
			&m.EntityID,
			&m.RfqID,
			&m.ActorID,
			&m.ActorName,
			&m.Action,
			&m.PreviousStatus,
			&m.NewStatus,
			&m.Comments,
			&m.OccurredAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry row: %w", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit entry rows: %w", err)
	}

	return mapping.ToDomainHistoryEntrySlice(entries), nil
}
