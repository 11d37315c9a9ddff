package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openprocure/procurement_backend/internal/apperrors"
	"github.com/openprocure/procurement_backend/internal/core/domain"
	portsrepo "github.com/openprocure/procurement_backend/internal/core/ports/repositories"
	portssvc "github.com/openprocure/procurement_backend/internal/core/ports/services"
	"github.com/openprocure/procurement_backend/internal/dto"
	"github.com/openprocure/procurement_backend/internal/middleware"
)

var (
	ErrSupplierMismatch     = errors.New("invoice does not belong to the given supplier")
	ErrReceiptMissing       = errors.New("one or more receipts could not be found")
	ErrNotDisputed          = errors.New("reconciliation is not disputed")
	ErrAdjustAmountRequired = errors.New("adjusted amount is required for an ADJUST resolution")
	ErrUnknownResolution    = errors.New("unknown dispute resolution")
	ErrReconLocked          = errors.New("reconciliation is locked for payment processing")
)

// reconciliationService matches supplier invoices against warehouse receipts
// and drives the record through dispute, approval and settlement.
type reconciliationService struct {
	reconRepo portsrepo.ReconciliationRepositoryFacade
	gate      portssvc.PermissionGateSvc
	recorder  portssvc.AuditTrailRecorderSvc
	tolerance decimal.Decimal
}

// NewReconciliationService creates the reconciliation state machine. The
// tolerance is the allowed deviation between expected and receipt-covered
// amounts before a dispute is raised.
func NewReconciliationService(
	reconRepo portsrepo.ReconciliationRepositoryFacade,
	gate portssvc.PermissionGateSvc,
	recorder portssvc.AuditTrailRecorderSvc,
	tolerance decimal.Decimal,
) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		reconRepo: reconRepo,
		gate:      gate,
		recorder:  recorder,
		tolerance: tolerance,
	}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// SubmitForMatching creates a reconciliation record for an invoice and runs
// the matching algorithm over the linked warehouse receipts.
func (s *reconciliationService) SubmitForMatching(ctx context.Context, req dto.SubmitMatchingRequest, actor domain.Actor) (*domain.ReconciliationRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.gate.Require(actor, domain.CapSubmitMatching); err != nil {
		logger.Warn("Authorization failed for SubmitForMatching", slog.String("invoice_id", req.InvoiceID), slog.String("error", err.Error()))
		return nil, err
	}

	invoice, err := s.reconRepo.FindInvoiceByID(ctx, req.InvoiceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find invoice for matching", slog.String("invoice_id", req.InvoiceID), slog.String("error", err.Error()))
		}
		return nil, err
	}
	if invoice.SupplierID != req.SupplierID {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrSupplierMismatch)
	}

	receiptIDs := uniqueStrings(req.ReceiptIDs)
	receiptTotal, err := s.sumReceipts(ctx, receiptIDs)
	if err != nil {
		return nil, err
	}

	status, matched, variance := domain.ClassifyMatch(invoice.Amount, receiptTotal, s.tolerance)

	now := time.Now().UTC()
	record := domain.ReconciliationRecord{
		ReconciliationID:  uuid.NewString(),
		SupplierID:        req.SupplierID,
		Period:            req.Period,
		Status:            status,
		MatchedInvoiceID:  invoice.InvoiceID,
		MatchedReceiptIDs: receiptIDs,
		ExpectedAmount:    invoice.Amount,
		MatchedAmount:     matched,
		Variance:          variance,
		Version:           1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.reconRepo.SaveReconciliation(ctx, record); err != nil {
		logger.Error("Failed to save reconciliation record", slog.String("invoice_id", req.InvoiceID), slog.String("error", err.Error()))
		return nil, err
	}

	s.recorder.Record(ctx, domain.ApprovalHistoryEntry{
		EntityType:     domain.AuditEntityReconciliation,
		EntityID:       record.ReconciliationID,
		ActorID:        actor.UserID,
		ActorName:      actor.Name,
		Action:         domain.ActionMatchingRun,
		PreviousStatus: string(domain.ReconPendingMatching),
		NewStatus:      string(status),
	})

	logger.Info("Invoice submitted for matching",
		slog.String("reconciliation_id", record.ReconciliationID),
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("status", string(status)),
	)
	return &record, nil
}

// AttachReceipts links further receipts to an open reconciliation and re-runs
// matching. Approved and settled records are immutable.
func (s *reconciliationService) AttachReceipts(ctx context.Context, reconciliationID string, receiptIDs []string, actor domain.Actor) (*domain.ReconciliationRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(receiptIDs) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrReceiptMissing)
	}

	if err := s.gate.Require(actor, domain.CapSubmitMatching); err != nil {
		logger.Warn("Authorization failed for AttachReceipts", slog.String("reconciliation_id", reconciliationID), slog.String("error", err.Error()))
		return nil, err
	}

	record, err := s.reconRepo.FindReconciliationByID(ctx, reconciliationID)
	if err != nil {
		return nil, err
	}

	if record.Status == domain.ReconApproved || record.Status == domain.ReconSettled {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrTransition, ErrReconLocked)
	}

	previousStatus := record.Status
	mergedIDs := uniqueStrings(append(append([]string{}, record.MatchedReceiptIDs...), receiptIDs...))
	receiptTotal, err := s.sumReceipts(ctx, mergedIDs)
	if err != nil {
		return nil, err
	}

	status, matched, variance := domain.ClassifyMatch(record.ExpectedAmount, receiptTotal, s.tolerance)
	if status != record.Status && !domain.CanTransitionReconciliation(record.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrTransition, record.Status, status)
	}

	now := time.Now().UTC()
	expectedVersion := record.Version

	record.MatchedReceiptIDs = mergedIDs
	record.Status = status
	record.MatchedAmount = matched
	record.Variance = variance
	if status != domain.ReconDisputed {
		record.DisputeReason = nil
	}
	record.Version = expectedVersion + 1
	record.LastUpdatedAt = now
	record.LastUpdatedBy = actor.UserID

	if err := s.reconRepo.UpdateReconciliation(ctx, *record, expectedVersion); err != nil {
		logger.Error("Failed to persist attached receipts", slog.String("reconciliation_id", reconciliationID), slog.String("error", err.Error()))
		return nil, err
	}

	s.recorder.Record(ctx, domain.ApprovalHistoryEntry{
		EntityType:     domain.AuditEntityReconciliation,
		EntityID:       record.ReconciliationID,
		ActorID:        actor.UserID,
		ActorName:      actor.Name,
		Action:         domain.ActionReceiptAttached,
		PreviousStatus: string(previousStatus),
		NewStatus:      string(status),
	})

	logger.Info("Receipts attached to reconciliation",
		slog.String("reconciliation_id", record.ReconciliationID),
		slog.Int("receipt_count", len(mergedIDs)),
		slog.String("status", string(status)),
	)
	return record, nil
}

// ResolveDispute acts on a disputed reconciliation. ADJUST replaces the
// expected amount and re-matches, REMATCH recomputes from the linked
// receipts, ESCALATE leaves the record disputed with the reason on file.
func (s *reconciliationService) ResolveDispute(ctx context.Context, reconciliationID string, req dto.ResolveDisputeRequest, actor domain.Actor) (*domain.ReconciliationRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.gate.RequireAny(actor, domain.CapResolveDispute); err != nil {
		logger.Warn("Authorization failed for ResolveDispute", slog.String("reconciliation_id", reconciliationID), slog.String("error", err.Error()))
		return nil, err
	}

	record, err := s.reconRepo.FindReconciliationByID(ctx, reconciliationID)
	if err != nil {
		return nil, err
	}

	// A supplier actor may only act on their own reconciliations.
	if actor.SupplierID != nil && *actor.SupplierID != record.SupplierID {
		return nil, fmt.Errorf("%w: reconciliation belongs to another supplier", apperrors.ErrForbidden)
	}

	if record.Status != domain.ReconDisputed {
		return nil, fmt.Errorf("%w: %s (status: %s)", apperrors.ErrTransition, ErrNotDisputed, record.Status)
	}

	expectedAmount := record.ExpectedAmount
	switch req.Resolution {
	case string(domain.ResolutionAdjust):
		if req.AdjustedAmount == nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAdjustAmountRequired)
		}
		expectedAmount = *req.AdjustedAmount
	case string(domain.ResolutionRematch):
		// Recompute against the current receipts with the expected amount unchanged.
	case string(domain.ResolutionEscalate):
		return s.escalateDispute(ctx, record, req.Reason, actor)
	default:
		return nil, fmt.Errorf("%w: %s %q", apperrors.ErrValidation, ErrUnknownResolution, req.Resolution)
	}

	receiptTotal, err := s.sumReceipts(ctx, record.MatchedReceiptIDs)
	if err != nil {
		return nil, err
	}

	previousStatus := record.Status
	status, matched, variance := domain.ClassifyMatch(expectedAmount, receiptTotal, s.tolerance)
	if status != record.Status && !domain.CanTransitionReconciliation(record.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrTransition, record.Status, status)
	}

	now := time.Now().UTC()
	expectedVersion := record.Version

	record.ExpectedAmount = expectedAmount
	record.Status = status
	record.MatchedAmount = matched
	record.Variance = variance
	if status == domain.ReconDisputed {
		reason := req.Reason
		record.DisputeReason = &reason
	} else {
		record.DisputeReason = nil
	}
	record.Version = expectedVersion + 1
	record.LastUpdatedAt = now
	record.LastUpdatedBy = actor.UserID

	if err := s.reconRepo.UpdateReconciliation(ctx, *record, expectedVersion); err != nil {
		logger.Error("Failed to persist dispute resolution", slog.String("reconciliation_id", reconciliationID), slog.String("error", err.Error()))
		return nil, err
	}

	comments := req.Reason
	s.recorder.Record(ctx, domain.ApprovalHistoryEntry{
		EntityType:     domain.AuditEntityReconciliation,
		EntityID:       record.ReconciliationID,
		ActorID:        actor.UserID,
		ActorName:      actor.Name,
		Action:         domain.ActionDisputeResolved,
		PreviousStatus: string(previousStatus),
		NewStatus:      string(status),
		Comments:       &comments,
	})

	logger.Info("Dispute resolved",
		slog.String("reconciliation_id", record.ReconciliationID),
		slog.String("resolution", req.Resolution),
		slog.String("status", string(status)),
	)
	return record, nil
}

// escalateDispute keeps the record disputed but files the reason and audits
// the escalation.
func (s *reconciliationService) escalateDispute(ctx context.Context, record *domain.ReconciliationRecord, reason string, actor domain.Actor) (*domain.ReconciliationRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	expectedVersion := record.Version

	record.DisputeReason = &reason
	record.Version = expectedVersion + 1
	record.LastUpdatedAt = now
	record.LastUpdatedBy = actor.UserID

	if err := s.reconRepo.UpdateReconciliation(ctx, *record, expectedVersion); err != nil {
		logger.Error("Failed to persist dispute escalation", slog.String("reconciliation_id", record.ReconciliationID), slog.String("error", err.Error()))
		return nil, err
	}

	s.recorder.Record(ctx, domain.ApprovalHistoryEntry{
		EntityType:     domain.AuditEntityReconciliation,
		EntityID:       record.ReconciliationID,
		ActorID:        actor.UserID,
		ActorName:      actor.Name,
		Action:         domain.ActionDisputeResolved,
		PreviousStatus: string(domain.ReconDisputed),
		NewStatus:      string(domain.ReconDisputed),
		Comments:       &reason,
	})

	logger.Info("Dispute escalated", slog.String("reconciliation_id", record.ReconciliationID))
	return record, nil
}

// ApproveReconciliation moves a matched reconciliation to APPROVED.
func (s *reconciliationService) ApproveReconciliation(ctx context.Context, reconciliationID string, actor domain.Actor) (*domain.ReconciliationRecord, error) {
	return s.transition(ctx, reconciliationID, domain.ReconApproved, domain.CapApproveRecon, domain.ActionReconApproved, actor)
}

// SettleReconciliation locks an approved reconciliation for payment
// processing. No further mutation is permitted once settled.
func (s *reconciliationService) SettleReconciliation(ctx context.Context, reconciliationID string, actor domain.Actor) (*domain.ReconciliationRecord, error) {
	return s.transition(ctx, reconciliationID, domain.ReconSettled, domain.CapSettleRecon, domain.ActionReconSettled, actor)
}

// transition applies a plain table-checked status move under the version CAS.
func (s *reconciliationService) transition(ctx context.Context, reconciliationID string, target domain.ReconciliationStatus, cap domain.Capability, action domain.AuditAction, actor domain.Actor) (*domain.ReconciliationRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.gate.Require(actor, cap); err != nil {
		logger.Warn("Authorization failed for reconciliation transition", slog.String("reconciliation_id", reconciliationID), slog.String("target", string(target)), slog.String("error", err.Error()))
		return nil, err
	}

	record, err := s.reconRepo.FindReconciliationByID(ctx, reconciliationID)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransitionReconciliation(record.Status, target) {
		return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrTransition, record.Status, target)
	}

	previousStatus := record.Status
	now := time.Now().UTC()
	expectedVersion := record.Version

	record.Status = target
	record.Version = expectedVersion + 1
	record.LastUpdatedAt = now
	record.LastUpdatedBy = actor.UserID

	if err := s.reconRepo.UpdateReconciliation(ctx, *record, expectedVersion); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Concurrent reconciliation transition lost the version race", slog.String("reconciliation_id", reconciliationID))
		} else {
			logger.Error("Failed to persist reconciliation transition", slog.String("reconciliation_id", reconciliationID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	s.recorder.Record(ctx, domain.ApprovalHistoryEntry{
		EntityType:     domain.AuditEntityReconciliation,
		EntityID:       record.ReconciliationID,
		ActorID:        actor.UserID,
		ActorName:      actor.Name,
		Action:         action,
		PreviousStatus: string(previousStatus),
		NewStatus:      string(target),
	})

	logger.Info("Reconciliation transitioned",
		slog.String("reconciliation_id", record.ReconciliationID),
		slog.String("status", string(target)),
	)
	return record, nil
}

// GetReconciliation retrieves one reconciliation record.
func (s *reconciliationService) GetReconciliation(ctx context.Context, reconciliationID string) (*domain.ReconciliationRecord, error) {
	record, err := s.reconRepo.FindReconciliationByID(ctx, reconciliationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find reconciliation", slog.String("reconciliation_id", reconciliationID), slog.String("error", err.Error()))
		}
		return nil, err
	}
	return record, nil
}

// ListReconciliations retrieves a paginated listing. Supplier-affiliated
// actors are always scoped to their own supplier.
func (s *reconciliationService) ListReconciliations(ctx context.Context, actor domain.Actor, params dto.ListReconciliationsParams) (*dto.ListReconciliationsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	supplierID := params.SupplierID
	if actor.SupplierID != nil {
		supplierID = actor.SupplierID
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	records, nextToken, err := s.reconRepo.ListReconciliations(ctx, supplierID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list reconciliations", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve reconciliations: %w", err)
	}

	return &dto.ListReconciliationsResponse{
		Reconciliations: dto.ToReconciliationResponses(records),
		NextToken:       nextToken,
	}, nil
}

// sumReceipts loads the given receipts and totals their amounts, failing when
// any id cannot be resolved.
func (s *reconciliationService) sumReceipts(ctx context.Context, receiptIDs []string) (decimal.Decimal, error) {
	if len(receiptIDs) == 0 {
		return decimal.Zero, nil
	}

	receipts, err := s.reconRepo.FindReceiptsByIDs(ctx, receiptIDs)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to fetch receipts: %w", err)
	}
	if len(receipts) != len(receiptIDs) {
		return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrNotFound, ErrReceiptMissing)
	}

	total := decimal.Zero
	for _, receipt := range receipts {
		total = total.Add(receipt.Amount)
	}
	return total, nil
}
