package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/openprocure/procurement_backend/internal/apperrors"
	"github.com/openprocure/procurement_backend/internal/core/domain"
	portsrepo "github.com/openprocure/procurement_backend/internal/core/ports/repositories"
	portssvc "github.com/openprocure/procurement_backend/internal/core/ports/services"
	"github.com/openprocure/procurement_backend/internal/dto"
	"github.com/openprocure/procurement_backend/internal/middleware"
)

var (
	ErrQuoteMissing     = errors.New("selected quote id is required")
	ErrNoInvitees       = errors.New("at least one purchaser must be invited")
	ErrUnknownStatus    = errors.New("unknown line item status filter")
	ErrUnknownDecision  = errors.New("unknown director decision")
	ErrLineItemFinal    = errors.New("line item has reached a terminal status")
	ErrSubmissionActive = errors.New("an approval cycle is already active for this line item")
)

// approvalService owns the per-line-item state machine from quote submission
// through director decision, including re-quote cycles.
type approvalService struct {
	lineItemRepo portsrepo.LineItemRepositoryFacade
	auditRepo    portsrepo.AuditReader
	gate         portssvc.PermissionGateSvc
	recorder     portssvc.AuditTrailRecorderSvc
}

// NewApprovalService creates the line-item approval engine.
func NewApprovalService(
	lineItemRepo portsrepo.LineItemRepositoryFacade,
	auditRepo portsrepo.AuditReader,
	gate portssvc.PermissionGateSvc,
	recorder portssvc.AuditTrailRecorderSvc,
) portssvc.ApprovalSvcFacade {
	return &approvalService{
		lineItemRepo: lineItemRepo,
		auditRepo:    auditRepo,
		gate:         gate,
		recorder:     recorder,
	}
}

var _ portssvc.ApprovalSvcFacade = (*approvalService)(nil)

// SubmitLineItem records a purchaser's quote selection and moves the line item
// to PENDING_DIRECTOR_APPROVAL. A repeated submission of the identical quote
// while already pending is a no-op transition that still appends a
// RESUBMITTED audit entry for traceability.
func (s *approvalService) SubmitLineItem(ctx context.Context, rfqID, lineItemID, selectedQuoteID string, actor domain.Actor) (*domain.RfqLineItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if selectedQuoteID == "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrQuoteMissing)
	}

	if err := s.gate.Require(actor, domain.CapSubmitQuote); err != nil {
		logger.Warn("Authorization failed for SubmitLineItem", slog.String("line_item_id", lineItemID), slog.String("error", err.Error()))
		return nil, err
	}

	item, err := s.lineItemRepo.FindLineItemByID(ctx, rfqID, lineItemID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find line item for submission", slog.String("line_item_id", lineItemID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	// Idempotent resubmission: same quote while still pending leaves the row
	// untouched but is still recorded in the trail.
	if item.Status == domain.LineItemPending && item.SelectedQuoteID != nil && *item.SelectedQuoteID == selectedQuoteID {
		s.recorder.Record(ctx, domain.ApprovalHistoryEntry{
			EntityType:     domain.AuditEntityLineItem,
			EntityID:       item.LineItemID,
			RfqID:          &item.RfqID,
			ActorID:        actor.UserID,
			ActorName:      actor.Name,
			Action:         domain.ActionResubmitted,
			PreviousStatus: string(domain.LineItemPending),
			NewStatus:      string(domain.LineItemPending),
		})
		logger.Info("Idempotent resubmission recorded", slog.String("line_item_id", item.LineItemID))
		return item, nil
	}

	if !domain.CanTransitionLineItem(item.Status, domain.LineItemPending) {
		if item.Status == domain.LineItemPending {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrTransition, ErrSubmissionActive)
		}
		return nil, fmt.Errorf("%w: cannot submit line item in status %s", apperrors.ErrTransition, item.Status)
	}

	previousStatus := item.Status
	action := domain.ActionSubmitted
	if previousStatus == domain.LineItemRequoted {
		action = domain.ActionResubmitted
	}

	now := time.Now().UTC()
	expectedVersion := item.Version

	item.Status = domain.LineItemPending
	item.SelectedQuoteID = &selectedQuoteID
	item.SubmittedBy = &actor.UserID
	item.SubmittedAt = &now
	item.DirectorDecision = nil
	item.DecisionComments = nil
	item.DecisionAt = nil
	item.Version = expectedVersion + 1
	item.LastUpdatedAt = now
	item.LastUpdatedBy = actor.UserID

	if err := s.lineItemRepo.UpdateLineItemSubmission(ctx, *item, expectedVersion); err != nil {
		logger.Error("Failed to persist line item submission", slog.String("line_item_id", item.LineItemID), slog.String("error", err.Error()))
		return nil, err
	}

	s.recorder.Record(ctx, domain.ApprovalHistoryEntry{
		EntityType:     domain.AuditEntityLineItem,
		EntityID:       item.LineItemID,
		RfqID:          &item.RfqID,
		ActorID:        actor.UserID,
		ActorName:      actor.Name,
		Action:         action,
		PreviousStatus: string(previousStatus),
		NewStatus:      string(domain.LineItemPending),
	})

	logger.Info("Line item submitted for approval",
		slog.String("line_item_id", item.LineItemID),
		slog.String("selected_quote_id", selectedQuoteID),
	)
	return item, nil
}

// DirectorApprove applies a director decision to a pending line item. A stale
// version observed by a concurrent decision surfaces as ErrConflict; the
// winner's decision is the persisted end state.
func (s *approvalService) DirectorApprove(ctx context.Context, rfqID, lineItemID string, req dto.DirectorDecisionRequest, actor domain.Actor) (*domain.RfqLineItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.gate.Require(actor, domain.CapDecideApproval); err != nil {
		logger.Warn("Authorization failed for DirectorApprove", slog.String("line_item_id", lineItemID), slog.String("error", err.Error()))
		return nil, err
	}

	item, err := s.lineItemRepo.FindLineItemByID(ctx, rfqID, lineItemID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find line item for decision", slog.String("line_item_id", lineItemID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	if item.Status != domain.LineItemPending {
		return nil, fmt.Errorf("%w: line item is %s, expected %s", apperrors.ErrTransition, item.Status, domain.LineItemPending)
	}

	var targetStatus domain.LineItemStatus
	var decision domain.DirectorDecision
	var action domain.AuditAction

	switch req.Decision {
	case string(domain.DecisionApprove):
		targetStatus = domain.LineItemApproved
		decision = domain.DecisionApprove
		action = domain.ActionApproved
	case string(domain.DecisionReject):
		decision = domain.DecisionReject
		if req.NewQuoteID != nil && *req.NewQuoteID != "" {
			// Reject-with-requote reopens the cycle against the new target quote.
			targetStatus = domain.LineItemRequoted
			action = domain.ActionRequoted
		} else {
			targetStatus = domain.LineItemRejected
			action = domain.ActionRejected
		}
	default:
		return nil, fmt.Errorf("%w: %s %q", apperrors.ErrValidation, ErrUnknownDecision, req.Decision)
	}

	if !domain.CanTransitionLineItem(item.Status, targetStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrTransition, item.Status, targetStatus)
	}

	now := time.Now().UTC()
	expectedVersion := item.Version

	item.Status = targetStatus
	item.DirectorDecision = &decision
	item.DecisionAt = &now
	if req.Comments != "" {
		item.DecisionComments = &req.Comments
	} else {
		item.DecisionComments = nil
	}
	if targetStatus == domain.LineItemRequoted {
		item.SelectedQuoteID = req.NewQuoteID
	}
	item.Version = expectedVersion + 1
	item.LastUpdatedAt = now
	item.LastUpdatedBy = actor.UserID

	if err := s.lineItemRepo.UpdateLineItemDecision(ctx, *item, expectedVersion); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Concurrent decision lost the version race", slog.String("line_item_id", item.LineItemID))
		} else {
			logger.Error("Failed to persist director decision", slog.String("line_item_id", item.LineItemID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	s.recorder.Record(ctx, domain.ApprovalHistoryEntry{
		EntityType:     domain.AuditEntityLineItem,
		EntityID:       item.LineItemID,
		RfqID:          &item.RfqID,
		ActorID:        actor.UserID,
		ActorName:      actor.Name,
		Action:         action,
		PreviousStatus: string(domain.LineItemPending),
		NewStatus:      string(targetStatus),
		Comments:       item.DecisionComments,
	})

	logger.Info("Director decision applied",
		slog.String("line_item_id", item.LineItemID),
		slog.String("decision", string(decision)),
		slog.String("new_status", string(targetStatus)),
	)
	return item, nil
}

// GetPendingApprovals retrieves line items awaiting review. Directors see all
// items in the requested status; purchasers only their own submissions.
func (s *approvalService) GetPendingApprovals(ctx context.Context, actor domain.Actor, params dto.ListPendingApprovalsParams) (*dto.ListPendingApprovalsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.gate.Require(actor, domain.CapViewApprovals); err != nil {
		logger.Warn("Authorization failed for GetPendingApprovals", slog.String("error", err.Error()))
		return nil, err
	}

	status := domain.LineItemPending
	if params.Status != "" {
		status = domain.LineItemStatus(params.Status)
		switch status {
		case domain.LineItemDraft, domain.LineItemPending, domain.LineItemApproved, domain.LineItemRequoted, domain.LineItemRejected:
		default:
			return nil, fmt.Errorf("%w: %s %q", apperrors.ErrValidation, ErrUnknownStatus, params.Status)
		}
	}

	var submittedBy *string
	if !actor.HasCapability(domain.CapDecideApproval) {
		submittedBy = &actor.UserID
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	items, nextToken, err := s.lineItemRepo.ListLineItemsByStatus(ctx, status, submittedBy, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list line items by status", slog.String("status", string(status)), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve pending approvals: %w", err)
	}

	logger.Debug("Pending approvals listed", slog.Int("count", len(items)), slog.String("status", string(status)))
	return &dto.ListPendingApprovalsResponse{
		Items:     dto.ToLineItemResponses(items),
		NextToken: nextToken,
	}, nil
}

// GetApprovalHistory returns the ordered append-only history for a line item,
// oldest first.
func (s *approvalService) GetApprovalHistory(ctx context.Context, lineItemID string) ([]domain.ApprovalHistoryEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entries, err := s.auditRepo.ListHistoryByEntity(ctx, domain.AuditEntityLineItem, lineItemID)
	if err != nil {
		logger.Error("Failed to fetch approval history", slog.String("line_item_id", lineItemID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve approval history for line item %s: %w", lineItemID, err)
	}
	return entries, nil
}

// InvitePurchasers records one invitation per target purchaser. The line
// item's status is never touched and no audit transition is recorded.
func (s *approvalService) InvitePurchasers(ctx context.Context, rfqID, lineItemID string, purchaserIDs []string, message string, actor domain.Actor) ([]domain.PurchaserInvitation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(purchaserIDs) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNoInvitees)
	}

	if err := s.gate.Require(actor, domain.CapInvitePurchasers); err != nil {
		logger.Warn("Authorization failed for InvitePurchasers", slog.String("line_item_id", lineItemID), slog.String("error", err.Error()))
		return nil, err
	}

	if _, err := s.lineItemRepo.FindLineItemByID(ctx, rfqID, lineItemID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	invitations := make([]domain.PurchaserInvitation, 0, len(purchaserIDs))
	for _, purchaserID := range uniqueStrings(purchaserIDs) {
		invitations = append(invitations, domain.PurchaserInvitation{
			InvitationID: uuid.NewString(),
			RfqID:        rfqID,
			LineItemID:   lineItemID,
			PurchaserID:  purchaserID,
			Message:      message,
			InvitedBy:    actor.UserID,
			InvitedAt:    now,
		})
	}

	if err := s.lineItemRepo.SaveInvitations(ctx, invitations); err != nil {
		logger.Error("Failed to save purchaser invitations", slog.String("line_item_id", lineItemID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save invitations: %w", err)
	}

	logger.Info("Purchasers invited", slog.String("line_item_id", lineItemID), slog.Int("count", len(invitations)))
	return invitations, nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
