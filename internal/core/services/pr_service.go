package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/openprocure/procurement_backend/internal/apperrors"
	"github.com/openprocure/procurement_backend/internal/core/domain"
	portsrepo "github.com/openprocure/procurement_backend/internal/core/ports/repositories"
	portssvc "github.com/openprocure/procurement_backend/internal/core/ports/services"
	"github.com/openprocure/procurement_backend/internal/dto"
	"github.com/openprocure/procurement_backend/internal/middleware"
)

var (
	ErrPrNumberMissing  = errors.New("pr number is required")
	ErrPrAlreadyFilled  = errors.New("a PR record already exists for this RFQ")
	ErrRfqNotApproved   = errors.New("all line items must be approved before filling the PR")
	ErrRfqWithoutItems  = errors.New("RFQ has no line items")
	ErrUnknownPrVerdict = errors.New("unknown confirmation status")
)

// prService owns the hand-off from a fully approved RFQ to a confirmed
// purchase requisition.
type prService struct {
	prRepo       portsrepo.PrRepositoryFacade
	lineItemRepo portsrepo.LineItemRepositoryFacade
	gate         portssvc.PermissionGateSvc
	recorder     portssvc.AuditTrailRecorderSvc
}

// NewPrService creates the PR confirmation workflow service.
func NewPrService(
	prRepo portsrepo.PrRepositoryFacade,
	lineItemRepo portsrepo.LineItemRepositoryFacade,
	gate portssvc.PermissionGateSvc,
	recorder portssvc.AuditTrailRecorderSvc,
) portssvc.PrSvcFacade {
	return &prService{
		prRepo:       prRepo,
		lineItemRepo: lineItemRepo,
		gate:         gate,
		recorder:     recorder,
	}
}

var _ portssvc.PrSvcFacade = (*prService)(nil)

// FillPr files the PR number for a fully approved RFQ. The PR record, its
// self-confirmation and the RFQ status update land in a single transaction.
func (s *prService) FillPr(ctx context.Context, rfqID string, req dto.FillPrRequest, actor domain.Actor) (*domain.PrRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.PrNumber == "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrPrNumberMissing)
	}

	if err := s.gate.Require(actor, domain.CapFillPr); err != nil {
		logger.Warn("Authorization failed for FillPr", slog.String("rfq_id", rfqID), slog.String("error", err.Error()))
		return nil, err
	}

	rfq, err := s.lineItemRepo.FindRfqByID(ctx, rfqID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find RFQ for PR fill", slog.String("rfq_id", rfqID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	// A second fill must fail loudly, never overwrite.
	if _, err := s.prRepo.FindPrRecordByRfqID(ctx, rfqID); err == nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrPrAlreadyFilled)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check existing PR record", slog.String("rfq_id", rfqID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to check existing PR record: %w", err)
	}

	items, err := s.lineItemRepo.ListLineItemsByRfq(ctx, rfqID)
	if err != nil {
		logger.Error("Failed to list line items for PR fill", slog.String("rfq_id", rfqID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list line items: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrRfqWithoutItems)
	}
	for _, item := range items {
		if item.Status != domain.LineItemApproved {
			return nil, fmt.Errorf("%w: %s: line item %s is %s", apperrors.ErrValidation, ErrRfqNotApproved, item.LineItemID, item.Status)
		}
	}

	now := time.Now().UTC()
	prDate := now
	if req.PrDate != nil {
		prDate = *req.PrDate
	}

	pr := domain.PrRecord{
		RfqID:    rfqID,
		PrNumber: req.PrNumber,
		PrDate:   prDate,
		FilledBy: actor.UserID,
		FilledAt: now,
		// The filler's own confirmation is stamped at creation time.
		DepartmentConfirmerID: &actor.UserID,
		ConfirmationStatus:    domain.PrConfirmed,
		ConfirmedAt:           &now,
		Version:               1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	updatedRfq := *rfq
	updatedRfq.PrStatus = domain.PrConfirmedRfq
	updatedRfq.Status = domain.RfqCompleted
	updatedRfq.LastUpdatedAt = now
	updatedRfq.LastUpdatedBy = actor.UserID

	if err := s.prRepo.CreatePrRecordAndCompleteRfq(ctx, pr, updatedRfq); err != nil {
		logger.Error("Failed to create PR record", slog.String("rfq_id", rfqID), slog.String("error", err.Error()))
		return nil, err
	}

	s.recorder.Record(ctx, domain.ApprovalHistoryEntry{
		EntityType:     domain.AuditEntityPrRecord,
		EntityID:       rfqID,
		RfqID:          &rfqID,
		ActorID:        actor.UserID,
		ActorName:      actor.Name,
		Action:         domain.ActionPrFilled,
		PreviousStatus: string(domain.PrUnfilled),
		NewStatus:      string(domain.PrConfirmed),
	})

	logger.Info("PR filled", slog.String("rfq_id", rfqID), slog.String("pr_number", pr.PrNumber))
	return &pr, nil
}

// ConfirmPr records the department's verdict on a filled PR.
func (s *prService) ConfirmPr(ctx context.Context, rfqID string, req dto.ConfirmPrRequest, actor domain.Actor) (*domain.PrRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.gate.RequireAny(actor, domain.CapConfirmPr); err != nil {
		logger.Warn("Authorization failed for ConfirmPr", slog.String("rfq_id", rfqID), slog.String("error", err.Error()))
		return nil, err
	}

	var verdict domain.PrConfirmationStatus
	var action domain.AuditAction
	switch req.ConfirmationStatus {
	case string(domain.PrConfirmed):
		verdict = domain.PrConfirmed
		action = domain.ActionPrConfirmed
	case string(domain.PrRejected):
		verdict = domain.PrRejected
		action = domain.ActionPrRejected
	default:
		return nil, fmt.Errorf("%w: %s %q", apperrors.ErrValidation, ErrUnknownPrVerdict, req.ConfirmationStatus)
	}

	pr, err := s.prRepo.FindPrRecordByRfqID(ctx, rfqID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find PR record for confirmation", slog.String("rfq_id", rfqID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	previousStatus := pr.ConfirmationStatus
	now := time.Now().UTC()
	expectedVersion := pr.Version

	pr.DepartmentConfirmerID = &actor.UserID
	pr.ConfirmationStatus = verdict
	pr.ConfirmationNotes = req.ConfirmationNotes
	pr.ConfirmedAt = &now
	pr.Version = expectedVersion + 1
	pr.LastUpdatedAt = now
	pr.LastUpdatedBy = actor.UserID

	// A confirmed PR also forces the RFQ to COMPLETED if it was not already.
	completeRfq := verdict == domain.PrConfirmed

	if err := s.prRepo.UpdatePrConfirmation(ctx, *pr, expectedVersion, completeRfq); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Concurrent PR confirmation lost the version race", slog.String("rfq_id", rfqID))
		} else {
			logger.Error("Failed to persist PR confirmation", slog.String("rfq_id", rfqID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	s.recorder.Record(ctx, domain.ApprovalHistoryEntry{
		EntityType:     domain.AuditEntityPrRecord,
		EntityID:       rfqID,
		RfqID:          &rfqID,
		ActorID:        actor.UserID,
		ActorName:      actor.Name,
		Action:         action,
		PreviousStatus: string(previousStatus),
		NewStatus:      string(verdict),
		Comments:       req.ConfirmationNotes,
	})

	logger.Info("PR confirmation recorded", slog.String("rfq_id", rfqID), slog.String("verdict", string(verdict)))
	return pr, nil
}

// GetPrRecord retrieves the PR record for an RFQ.
func (s *prService) GetPrRecord(ctx context.Context, rfqID string) (*domain.PrRecord, error) {
	pr, err := s.prRepo.FindPrRecordByRfqID(ctx, rfqID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find PR record", slog.String("rfq_id", rfqID), slog.String("error", err.Error()))
		}
		return nil, err
	}
	return pr, nil
}
