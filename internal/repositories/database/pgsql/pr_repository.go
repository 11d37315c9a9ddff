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

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPrRepository struct {
	BaseRepository
}

// newPgxPrRepository creates a new repository for purchase requisition data.
func newPgxPrRepository(pool *pgxpool.Pool) portsrepo.PrRepositoryFacade {
	return &PgxPrRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.PrRepositoryFacade = (*PgxPrRepository)(nil)

// FindPrRecordByRfqID retrieves the PR record for an RFQ, if any.
func (r *PgxPrRepository) FindPrRecordByRfqID(ctx context.Context, rfqID string) (*domain.PrRecord, error) {
	query := `
		SELECT rfq_id, pr_number, pr_date, filled_by, filled_at, department_confirmer_id,
		       confirmation_status, confirmation_notes, confirmed_at, version,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM pr_records
		WHERE rfq_id = $1;
	`
	var m models.PrRecord
	err := r.Pool.QueryRow(ctx, query, rfqID).Scan(
		&m.RfqID,
		&m.PrNumber,
		&m.PrDate,
		&m.FilledBy,
		&m.FilledAt,
		&m.DepartmentConfirmerID,
		&m.ConfirmationStatus,
		&m.ConfirmationNotes,
		&m.ConfirmedAt,
		&m.Version,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: pr record for rfq %s", apperrors.ErrNotFound, rfqID)
		}
		return nil, fmt.Errorf("failed to find pr record for rfq %s: %w", rfqID, err)
	}
	pr := mapping.ToDomainPrRecord(m)
	return &pr, nil
}

// CreatePrRecordAndCompleteRfq inserts the PR record and updates the RFQ's
// status fields within a single transaction. The primary key on rfq_id makes
// a second fill fail as a unique violation, surfaced as ErrConflict.
func (r *PgxPrRepository) CreatePrRecordAndCompleteRfq(ctx context.Context, pr domain.PrRecord, rfq domain.Rfq) error {
	m := mapping.ToModelPrRecord(pr)
	rfqModel := mapping.ToModelRfq(rfq)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	insertQuery := `
		INSERT INTO pr_records (rfq_id, pr_number, pr_date, filled_by, filled_at, department_confirmer_id,
		                        confirmation_status, confirmation_notes, confirmed_at, version,
		                        created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.RfqID,
		m.PrNumber,
		m.PrDate,
		m.FilledBy,
		m.FilledAt,
		m.DepartmentConfirmerID,
		m.ConfirmationStatus,
		m.ConfirmationNotes,
		m.ConfirmedAt,
		m.Version,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: pr record for rfq %s already exists", apperrors.ErrConflict, m.RfqID)
		}
		return fmt.Errorf("failed to insert pr record for rfq %s: %w", m.RfqID, err)
	}

	updateQuery := `
		UPDATE rfqs
		SET status = $1, pr_status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE rfq_id = $5;
	`
	tag, err := tx.Exec(ctx, updateQuery,
		rfqModel.Status,
		rfqModel.PrStatus,
		rfqModel.LastUpdatedAt,
		rfqModel.LastUpdatedBy,
		rfqModel.RfqID,
	)
	if err != nil {
		return fmt.Errorf("failed to update rfq %s on pr fill: %w", rfqModel.RfqID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: rfq %s", apperrors.ErrNotFound, rfqModel.RfqID)
	}

	return r.Commit(ctx, tx)
}

// UpdatePrConfirmation persists the department confirmation against the
// expected version. When completeRfq is set the RFQ moves to COMPLETED in the
// same transaction.
func (r *PgxPrRepository) UpdatePrConfirmation(ctx context.Context, pr domain.PrRecord, expectedVersion int64, completeRfq bool) error {
	m := mapping.ToModelPrRecord(pr)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	updateQuery := `
		UPDATE pr_records
		SET department_confirmer_id = $1, confirmation_status = $2, confirmation_notes = $3,
		    confirmed_at = $4, version = $5, last_updated_at = $6, last_updated_by = $7
		WHERE rfq_id = $8 AND version = $9;
	`
	tag, err := tx.Exec(ctx, updateQuery,
		m.DepartmentConfirmerID,
		m.ConfirmationStatus,
		m.ConfirmationNotes,
		m.ConfirmedAt,
		m.Version,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.RfqID,
		expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to update pr confirmation for rfq %s: %w", m.RfqID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: pr record for rfq %s version %d is stale", apperrors.ErrConflict, m.RfqID, expectedVersion)
	}

	if completeRfq {
		rfqQuery := `
			UPDATE rfqs
			SET status = $1, pr_status = $2, last_updated_at = $3, last_updated_by = $4
			WHERE rfq_id = $5;
		`
		if _, err := tx.Exec(ctx, rfqQuery,
			string(domain.RfqCompleted),
			string(domain.PrConfirmedRfq),
			m.LastUpdatedAt,
			m.LastUpdatedBy,
			m.RfqID,
		); err != nil {
			return fmt.Errorf("failed to complete rfq %s on pr confirmation: %w", m.RfqID, err)
		}
	}

	return r.Commit(ctx, tx)
}
