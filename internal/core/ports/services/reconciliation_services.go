package services

import (
	"context"

	"github.com/openprocure/procurement_backend/internal/core/domain"
	"github.com/openprocure/procurement_backend/internal/dto"
)

// ReconciliationReaderSvc defines read operations over reconciliation records.
type ReconciliationReaderSvc interface {
	// GetReconciliation retrieves one reconciliation record.
	GetReconciliation(ctx context.Context, reconciliationID string) (*domain.ReconciliationRecord, error)

	// ListReconciliations retrieves a paginated listing, scoped to the actor's
	// supplier affiliation when present.
	ListReconciliations(ctx context.Context, actor domain.Actor, params dto.ListReconciliationsParams) (*dto.ListReconciliationsResponse, error)
}

// ReconciliationWriterSvc defines the reconciliation state machine operations.
type ReconciliationWriterSvc interface {
	// SubmitForMatching creates a reconciliation record for an invoice and runs
	// the matching algorithm over the linked receipts.
	SubmitForMatching(ctx context.Context, req dto.SubmitMatchingRequest, actor domain.Actor) (*domain.ReconciliationRecord, error)

	// AttachReceipts links further receipts to an open reconciliation and
	// re-runs matching.
	AttachReceipts(ctx context.Context, reconciliationID string, receiptIDs []string, actor domain.Actor) (*domain.ReconciliationRecord, error)

	// ResolveDispute acts on a disputed reconciliation (adjust, rematch or escalate).
	ResolveDispute(ctx context.Context, reconciliationID string, req dto.ResolveDisputeRequest, actor domain.Actor) (*domain.ReconciliationRecord, error)

	// ApproveReconciliation moves a matched reconciliation to APPROVED.
	ApproveReconciliation(ctx context.Context, reconciliationID string, actor domain.Actor) (*domain.ReconciliationRecord, error)

	// SettleReconciliation locks an approved reconciliation for payment processing.
	SettleReconciliation(ctx context.Context, reconciliationID string, actor domain.Actor) (*domain.ReconciliationRecord, error)
}

// ReconciliationSvcFacade combines the reconciliation state machine interfaces.
type ReconciliationSvcFacade interface {
	ReconciliationReaderSvc
	ReconciliationWriterSvc
}
