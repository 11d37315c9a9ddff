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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReconciliationRepository struct {
	BaseRepository
}

// newPgxReconciliationRepository creates a new repository for reconciliation data.
func newPgxReconciliationRepository(pool *pgxpool.Pool) portsrepo.ReconciliationRepositoryFacade {
	return &PgxReconciliationRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ReconciliationRepositoryFacade = (*PgxReconciliationRepository)(nil)

const reconciliationColumns = `reconciliation_id, supplier_id, period, status, matched_invoice_id, matched_receipt_ids, expected_amount, matched_amount, variance, dispute_reason, version, created_at, created_by, last_updated_at, last_updated_by`

func scanReconciliation(row pgx.Row) (*models.ReconciliationRecord, error) {
	var m models.ReconciliationRecord
	err := row.Scan(
		&m.ReconciliationID,
		&m.SupplierID,
		&m.Period,
		&m.Status,
		&m.MatchedInvoiceID,
		&m.MatchedReceiptIDs,
		&m.ExpectedAmount,
		&m.MatchedAmount,
		&m.Variance,
		&m.DisputeReason,
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

// FindReconciliationByID retrieves a reconciliation record by its identifier.
func (r *PgxReconciliationRepository) FindReconciliationByID(ctx context.Context, reconciliationID string) (*domain.ReconciliationRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM reconciliation_records
		WHERE reconciliation_id = $1;
	`, reconciliationColumns)

	m, err := scanReconciliation(r.Pool.QueryRow(ctx, query, reconciliationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: reconciliation %s", apperrors.ErrNotFound, reconciliationID)
		}
		return nil, fmt.Errorf("failed to find reconciliation %s: %w", reconciliationID, err)
	}
	rec := mapping.ToDomainReconciliation(*m)
	return &rec, nil
}

// ListReconciliations retrieves a page of reconciliation records using keyset
// pagination on (created_at, reconciliation_id).
func (r *PgxReconciliationRepository) ListReconciliations(ctx context.Context, supplierID *string, limit int, nextToken *string) ([]domain.ReconciliationRecord, *string, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM reconciliation_records
		WHERE ($1::text IS NULL OR supplier_id = $1)
	`, reconciliationColumns)
	args := []interface{}{supplierID}

	if nextToken != nil && *nextToken != "" {
		createdAt, lastID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (created_at, reconciliation_id) > ($2, $3)`
		args = append(args, createdAt, lastID)
	}

	query += fmt.Sprintf(` ORDER BY created_at ASC, reconciliation_id ASC LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list reconciliations: %w", err)
	}
	defer rows.Close()

	var records []models.ReconciliationRecord
	for rows.Next() {
		m, err := scanReconciliation(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan reconciliation row: %w", err)
		}
		records = append(records, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating reconciliation rows: %w", err)
	}

	var token *string
	if len(records) > limit {
		records = records[:limit]
		last := records[len(records)-1]
		t := pagination.EncodeToken(last.CreatedAt, last.ReconciliationID)
		token = &t
	}

	return mapping.ToDomainReconciliationSlice(records), token, nil
}

// SaveReconciliation inserts a new reconciliation record.
func (r *PgxReconciliationRepository) SaveReconciliation(ctx context.Context, record domain.ReconciliationRecord) error {
	m := mapping.ToModelReconciliation(record)

	query := `
		INSERT INTO reconciliation_records (reconciliation_id, supplier_id, period, status, matched_invoice_id,
		                                    matched_receipt_ids, expected_amount, matched_amount, variance,
		                                    dispute_reason, version, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ReconciliationID,
		m.SupplierID,
		m.Period,
		m.Status,
		m.MatchedInvoiceID,
		m.MatchedReceiptIDs,
		m.ExpectedAmount,
		m.MatchedAmount,
		m.Variance,
		m.DisputeReason,
		m.Version,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: reconciliation %s already exists", apperrors.ErrDuplicate, m.ReconciliationID)
		}
		return fmt.Errorf("failed to save reconciliation %s: %w", m.ReconciliationID, err)
	}
	return nil
}

// UpdateReconciliation persists status, amounts and receipt links guarded by
// the stored version.
func (r *PgxReconciliationRepository) UpdateReconciliation(ctx context.Context, record domain.ReconciliationRecord, expectedVersion int64) error {
	m := mapping.ToModelReconciliation(record)

	query := `
		UPDATE reconciliation_records
		SET status = $1, matched_receipt_ids = $2, expected_amount = $3, matched_amount = $4,
		    variance = $5, dispute_reason = $6, version = $7, last_updated_at = $8, last_updated_by = $9
		WHERE reconciliation_id = $10 AND version = $11;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Status,
		m.MatchedReceiptIDs,
		m.ExpectedAmount,
		m.MatchedAmount,
		m.Variance,
		m.DisputeReason,
		m.Version,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.ReconciliationID,
		expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to update reconciliation %s: %w", m.ReconciliationID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: reconciliation %s version %d is stale", apperrors.ErrConflict, m.ReconciliationID, expectedVersion)
	}
	return nil
}

// FindInvoiceByID retrieves a supplier invoice.
func (r *PgxReconciliationRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `
		SELECT invoice_id, supplier_id, amount, issued_at
		FROM invoices
		WHERE invoice_id = $1;
	`
	var m models.Invoice
	err := r.Pool.QueryRow(ctx, query, invoiceID).Scan(
		&m.InvoiceID,
		&m.SupplierID,
		&m.Amount,
		&m.IssuedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, invoiceID)
		}
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	invoice := mapping.ToDomainInvoice(m)
	return &invoice, nil
}

// FindReceiptsByIDs retrieves the warehouse receipts for the given ids. The
// caller decides how to treat ids with no matching row.
func (r *PgxReconciliationRepository) FindReceiptsByIDs(ctx context.Context, receiptIDs []string) ([]domain.WarehouseReceipt, error) {
	if len(receiptIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT receipt_id, supplier_id, amount, received_at
		FROM warehouse_receipts
		WHERE receipt_id = ANY($1);
	`
	rows, err := r.Pool.Query(ctx, query, receiptIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find receipts: %w", err)
	}
	defer rows.Close()

	var receipts []domain.WarehouseReceipt
	for rows.Next() {
		var m models.WarehouseReceipt
		if err := rows.Scan(&m.ReceiptID, &m.SupplierID, &m.Amount, &m.ReceivedAt); err != nil {
			return nil, fmt.Errorf("failed to scan receipt row: %w", err)
		}
		receipts = append(receipts, mapping.ToDomainReceipt(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating receipt rows: %w", err)
	}

	return receipts, nil
}
