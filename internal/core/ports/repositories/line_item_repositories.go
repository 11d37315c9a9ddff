package repositories

import (
	"context"

	"github.com/openprocure/procurement_backend/internal/core/domain"
)

// RfqReader defines read operations for RFQ aggregate data.
type RfqReader interface {
	// FindRfqByID retrieves a specific RFQ by its unique identifier.
	FindRfqByID(ctx context.Context, rfqID string) (*domain.Rfq, error)
}

// LineItemReader defines read operations for RFQ line items.
type LineItemReader interface {
	// FindLineItemByID retrieves a line item scoped to its owning RFQ.
	FindLineItemByID(ctx context.Context, rfqID, lineItemID string) (*domain.RfqLineItem, error)

	// ListLineItemsByRfq retrieves all line items of an RFQ.
	ListLineItemsByRfq(ctx context.Context, rfqID string) ([]domain.RfqLineItem, error)

	// ListLineItemsByStatus retrieves a paginated list of line items in a given
	// status, optionally restricted to a submitter, using token-based pagination.
	ListLineItemsByStatus(ctx context.Context, status domain.LineItemStatus, submittedBy *string, limit int, nextToken *string) ([]domain.RfqLineItem, *string, error)
}

// LineItemWriter defines guarded write operations for RFQ line items.
// Both update methods perform a compare-and-swap on the stored version and
// return apperrors.ErrConflict when the row has moved on.
type LineItemWriter interface {
	// UpdateLineItemSubmission persists a purchaser submission (status, quote,
	// submitter stamp) against the expected version.
	UpdateLineItemSubmission(ctx context.Context, item domain.RfqLineItem, expectedVersion int64) error

	// UpdateLineItemDecision persists a director decision against the expected version.
	UpdateLineItemDecision(ctx context.Context, item domain.RfqLineItem, expectedVersion int64) error

	// SaveInvitations inserts one invitation row per target purchaser.
	SaveInvitations(ctx context.Context, invitations []domain.PurchaserInvitation) error
}

// LineItemRepositoryFacade combines all line-item repository interfaces.
type LineItemRepositoryFacade interface {
	RfqReader
	LineItemReader
	LineItemWriter
}
