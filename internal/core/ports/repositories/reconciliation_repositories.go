package repositories

import (
	"context"

	"github.com/openprocure/procurement_backend/internal/core/domain"
)

// ReconciliationReader defines read operations for reconciliation records.
type ReconciliationReader interface {
	// FindReconciliationByID retrieves a reconciliation record by its identifier.
	FindReconciliationByID(ctx context.Context, reconciliationID string) (*domain.ReconciliationRecord, error)

	// ListReconciliations retrieves a paginated list, optionally filtered by
	// supplier, using token-based pagination.
	ListReconciliations(ctx context.Context, supplierID *string, limit int, nextToken *string) ([]domain.ReconciliationRecord, *string, error)
}

// ReconciliationWriter defines write operations for reconciliation records.
type ReconciliationWriter interface {
	// SaveReconciliation inserts a new reconciliation record.
	SaveReconciliation(ctx context.Context, record domain.ReconciliationRecord) error

	// UpdateReconciliation persists status, amounts and receipt links against
	// the expected version; stale versions return apperrors.ErrConflict.
	UpdateReconciliation(ctx context.Context, record domain.ReconciliationRecord, expectedVersion int64) error
}

// InvoiceReader reads supplier invoices owned by an external collaborator.
type InvoiceReader interface {
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
}

// ReceiptReader reads warehouse receipts owned by an external collaborator.
type ReceiptReader interface {
	FindReceiptsByIDs(ctx context.Context, receiptIDs []string) ([]domain.WarehouseReceipt, error)
}

// ReconciliationRepositoryFacade combines all reconciliation repository interfaces.
type ReconciliationRepositoryFacade interface {
	ReconciliationReader
	ReconciliationWriter
	InvoiceReader
	ReceiptReader
}
