package services

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/openprocure/procurement_backend/internal/core/domain"
	portsrepo "github.com/openprocure/procurement_backend/internal/core/ports/repositories"
	portssvc "github.com/openprocure/procurement_backend/internal/core/ports/services"
	"github.com/openprocure/procurement_backend/internal/middleware"
)

// AuditTrailRecorder appends an immutable record of every accepted workflow
// transition. A failed append must never roll back or block the transition
// that triggered it, so errors are logged and counted instead of returned.
type AuditTrailRecorder struct {
	auditRepo portsrepo.AuditWriter
	failures  atomic.Int64
}

// NewAuditTrailRecorder creates a recorder backed by the audit repository.
func NewAuditTrailRecorder(auditRepo portsrepo.AuditWriter) *AuditTrailRecorder {
	return &AuditTrailRecorder{auditRepo: auditRepo}
}

var _ portssvc.AuditTrailRecorderSvc = (*AuditTrailRecorder)(nil)

// Record appends one audit entry, stamping id and time when absent.
func (r *AuditTrailRecorder) Record(ctx context.Context, entry domain.ApprovalHistoryEntry) {
	if entry.EntryID == "" {
		entry.EntryID = uuid.NewString()
	}
	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = time.Now().UTC()
	}

	if err := r.auditRepo.AppendHistoryEntry(ctx, entry); err != nil {
		r.failures.Add(1)
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to append audit entry",
			slog.String("entity_type", string(entry.EntityType)),
			slog.String("entity_id", entry.EntityID),
			slog.String("action", string(entry.Action)),
			slog.Int64("audit_failures_total", r.failures.Load()),
			slog.String("error", err.Error()),
		)
	}
}

// Failures returns the number of audit appends that have failed since start.
// Exposed so operators can alert on persistent audit loss.
func (r *AuditTrailRecorder) Failures() int64 {
	return r.failures.Load()
}
