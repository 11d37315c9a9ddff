package repositories

import (
	"context"

	"github.com/openprocure/procurement_backend/internal/core/domain"
)

// PrReader defines read operations for purchase requisition records.
type PrReader interface {
	// FindPrRecordByRfqID retrieves the PR record for an RFQ, if any.
	FindPrRecordByRfqID(ctx context.Context, rfqID string) (*domain.PrRecord, error)
}

// PrWriter defines write operations for purchase requisition records.
type PrWriter interface {
	// CreatePrRecordAndCompleteRfq inserts the PR record and updates the RFQ's
	// status fields within a single database transaction. A unique-violation on
	// the PR row surfaces as apperrors.ErrConflict.
	CreatePrRecordAndCompleteRfq(ctx context.Context, pr domain.PrRecord, rfq domain.Rfq) error

	// UpdatePrConfirmation persists the department confirmation against the
	// expected version; completeRfq also moves the RFQ to COMPLETED in the same
	// transaction.
	UpdatePrConfirmation(ctx context.Context, pr domain.PrRecord, expectedVersion int64, completeRfq bool) error
}

// PrRepositoryFacade combines all PR repository interfaces.
type PrRepositoryFacade interface {
	PrReader
	PrWriter
}
