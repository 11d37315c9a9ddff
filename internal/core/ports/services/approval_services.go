package services

import (
	"context"

	"github.com/openprocure/procurement_backend/internal/core/domain"
	"github.com/openprocure/procurement_backend/internal/dto"
)

// ApprovalReaderSvc defines read operations over the line-item approval workflow.
type ApprovalReaderSvc interface {
	// GetPendingApprovals retrieves line items awaiting review, scoped to the
	// actor's role: directors see every pending item, purchasers only their own
	// submissions.
	GetPendingApprovals(ctx context.Context, actor domain.Actor, params dto.ListPendingApprovalsParams) (*dto.ListPendingApprovalsResponse, error)

	// GetApprovalHistory returns the line item's audit trail, oldest first.
	GetApprovalHistory(ctx context.Context, lineItemID string) ([]domain.ApprovalHistoryEntry, error)
}

// ApprovalWriterSvc defines the mutating line-item approval operations.
type ApprovalWriterSvc interface {
	// SubmitLineItem records a purchaser's quote selection and moves the line
	// item to PENDING_DIRECTOR_APPROVAL.
	SubmitLineItem(ctx context.Context, rfqID, lineItemID, selectedQuoteID string, actor domain.Actor) (*domain.RfqLineItem, error)

	// DirectorApprove applies a director decision to a pending line item.
	DirectorApprove(ctx context.Context, rfqID, lineItemID string, req dto.DirectorDecisionRequest, actor domain.Actor) (*domain.RfqLineItem, error)

	// InvitePurchasers records one invitation per target purchaser without
	// touching the line item's status.
	InvitePurchasers(ctx context.Context, rfqID, lineItemID string, purchaserIDs []string, message string, actor domain.Actor) ([]domain.PurchaserInvitation, error)
}

// ApprovalSvcFacade combines the line-item approval engine interfaces.
type ApprovalSvcFacade interface {
	ApprovalReaderSvc
	ApprovalWriterSvc
}
