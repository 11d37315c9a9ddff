package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/openprocure/procurement_backend/internal/apperrors"
	"github.com/openprocure/procurement_backend/internal/core/domain"
	portsrepo "github.com/openprocure/procurement_backend/internal/core/ports/repositories"
	"github.com/openprocure/procurement_backend/internal/models"
	"github.com/openprocure/procurement_backend/internal/utils/mapping"
	"github.com/openprocure/procurement_backend/internal/utils/pagination"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLineItemRepository struct {
	BaseRepository
}

// newPgxLineItemRepository creates a new repository for RFQ line item data.
func newPgxLineItemRepository(pool *pgxpool.Pool) portsrepo.LineItemRepositoryFacade {
	return &PgxLineItemRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.LineItemRepositoryFacade = (*PgxLineItemRepository)(nil)

const lineItemColumns = `line_item_id, rfq_id, description, status, selected_quote_id, submitted_by, submitted_at, director_decision, decision_comments, decision_at, version, created_at, created_by, last_updated_at, last_updated_by`

func scanLineItem(row pgx.Row) (*models.RfqLineItem, error) {
	var m models.RfqLineItem
	err := row.Scan(
		&m.LineItemID,
		&m.RfqID,
		&m.Description,
		&m.Status,
		&m.SelectedQuoteID,
		&m.SubmittedBy,
		&m.SubmittedAt,
		&m.DirectorDecision,
		&m.DecisionComments,
		&m.DecisionAt,
		&m.Version,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindRfqByID retrieves an RFQ by its ID.
func (r *PgxLineItemRepository) FindRfqByID(ctx context.Context, rfqID string) (*domain.Rfq, error) {
	query := `
		SELECT rfq_id, title, status, pr_status, created_at, created_by, last_updated_at, last_updated_by
		FROM rfqs
		WHERE rfq_id = $1;
	`
	var m models.Rfq
	err := r.Pool.QueryRow(ctx, query, rfqID).Scan(
		&m.RfqID,
		&m.Title,
		&m.Status,
		&m.PrStatus,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: rfq %s", apperrors.ErrNotFound, rfqID)
		}
		return nil, fmt.Errorf("failed to find rfq %s: %w", rfqID, err)
	}
	rfq := mapping.ToDomainRfq(m)
	return &rfq, nil
}

// FindLineItemByID retrieves a line item scoped to its owning RFQ.
func (r *PgxLineItemRepository) FindLineItemByID(ctx context.Context, rfqID, lineItemID string) (*domain.RfqLineItem, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM rfq_line_items
		WHERE rfq_id = $1 AND line_item_id = $2;
	`, lineItemColumns)

	m, err := scanLineItem(r.Pool.QueryRow(ctx, query, rfqID, lineItemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: line item %s in rfq %s", apperrors.ErrNotFound, lineItemID, rfqID)
		}
		return nil, fmt.Errorf("failed to find line item %s: %w", lineItemID, err)
	}
	item := mapping.ToDomainLineItem(*m)
	return &item, nil
}

// ListLineItemsByRfq retrieves all line items of an RFQ ordered by creation.
func (r *PgxLineItemRepository) ListLineItemsByRfq(ctx context.Context, rfqID string) ([]domain.RfqLineItem, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM rfq_line_items
		WHERE rfq_id = $1
		ORDER BY created_at ASC, line_item_id ASC;
	`, lineItemColumns)

	rows, err := r.Pool.Query(ctx, query, rfqID)
	if err != nil {
		return nil, fmt.Errorf("failed to list line items for rfq %s: %w", rfqID, err)
	}
	defer rows.Close()

	var items []models.RfqLineItem
	for rows.Next() {
		m, err := scanLineItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line item row: %w", err)
		}
		items = append(items, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line item rows: %w", err)
	}

	return mapping.ToDomainLineItemSlice(items), nil
}

// ListLineItemsByStatus retrieves a page of line items in a status using
// keyset pagination on (created_at, line_item_id). It fetches limit+1 rows to
// decide whether a next token is needed.
func (r *PgxLineItemRepository) ListLineItemsByStatus(ctx context.Context, status domain.LineItemStatus, submittedBy *string, limit int, nextToken *string) ([]domain.RfqLineItem, *string, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM rfq_line_items
		WHERE status = $1
		  AND ($2::text IS NULL OR submitted_by = $2)
	`, lineItemColumns)
	args := []interface{}{string(status), submittedBy}

	if nextToken != nil && *nextToken != "" {
		createdAt, lastID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (created_at, line_item_id) > ($3, $4)`
		args = append(args, createdAt, lastID)
	}

	query += fmt.Sprintf(` ORDER BY created_at ASC, line_item_id ASC LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list line items by status %s: %w", status, err)
	}
	defer rows.Close()

	var items []models.RfqLineItem
	for rows.Next() {
		m, err := scanLineItem(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan line item row: %w", err)
		}
		items = append(items, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating line item rows: %w", err)
	}

	var token *string
	if len(items) > limit {
		items = items[:limit]
		last := items[len(items)-1]
		t := pagination.EncodeToken(last.CreatedAt, last.LineItemID)
		token = &t
	}

	return mapping.ToDomainLineItemSlice(items), token, nil
}

// UpdateLineItemSubmission persists a purchaser submission guarded by the
// stored version. Zero rows affected means the row moved on concurrently.
func (r *PgxLineItemRepository) UpdateLineItemSubmission(ctx context.Context, item domain.RfqLineItem, expectedVersion int64) error {
	m := mapping.ToModelLineItem(item)

	query := `
		UPDATE rfq_line_items
		SET status = $1, selected_quote_id = $2, submitted_by = $3, submitted_at = $4,
		    director_decision = $5, decision_comments = $6, decision_at = $7,
		    version = $8, last_updated_at = $9, last_updated_by = $10
		WHERE rfq_id = $11 AND line_item_id = $12 AND version = $13;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Status,
		m.SelectedQuoteID,
		m.SubmittedBy,
		m.SubmittedAt,
		m.DirectorDecision,
		m.DecisionComments,
		m.DecisionAt,
		m.Version,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.RfqID,
		m.LineItemID,
		expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to update line item submission %s: %w", m.LineItemID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: line item %s version %d is stale", apperrors.ErrConflict, m.LineItemID, expectedVersion)
	}
	return nil
}

// UpdateLineItemDecision persists a director decision guarded by the stored version.
func (r *PgxLineItemRepository) UpdateLineItemDecision(ctx context.Context, item domain.RfqLineItem, expectedVersion int64) error {
	m := mapping.ToModelLineItem(item)

	query := `
		UPDATE rfq_line_items
		SET status = $1, selected_quote_id = $2, director_decision = $3,
		    decision_comments = $4, decision_at = $5,
		    version = $6, last_updated_at = $7, last_updated_by = $8
		WHERE rfq_id = $9 AND line_item_id = $10 AND version = $11;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Status,
		m.SelectedQuoteID,
		m.DirectorDecision,
		m.DecisionComments,
		m.DecisionAt,
		m.Version,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.RfqID,
		m.LineItemID,
		expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to update line item decision %s: %w", m.LineItemID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: line item %s version %d is stale", apperrors.ErrConflict, m.LineItemID, expectedVersion)
	}
	return nil
}

// SaveInvitations inserts one invitation row per target purchaser in a single
// transaction.
func (r *PgxLineItemRepository) SaveInvitations(ctx context.Context, invitations []domain.PurchaserInvitation) error {
	if len(invitations) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
		INSERT INTO purchaser_invitations (invitation_id, rfq_id, line_item_id, purchaser_id, message, invited_by, invited_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, inv := range invitations {
		m := mapping.ToModelInvitation(inv)
		if _, err := tx.Exec(ctx, query,
			m.InvitationID,
			m.RfqID,
			m.LineItemID,
			m.PurchaserID,
			m.Message,
			m.InvitedBy,
			m.InvitedAt,
		); err != nil {
			return fmt.Errorf("failed to save invitation for purchaser %s: %w", m.PurchaserID, err)
		}
	}

	return r.Commit(ctx, tx)
}
