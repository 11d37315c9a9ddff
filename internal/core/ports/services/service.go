package services

import (
	"context"

	"github.com/openprocure/procurement_backend/internal/core/domain"
)

// PermissionGateSvc evaluates whether an actor's granted capability set
// authorizes a requested operation. Stateless; checked before any state
// read or write in every mutating workflow operation.
type PermissionGateSvc interface {
	// Require returns nil when the actor holds every listed capability, or an
	// error matching apperrors.ErrForbidden otherwise.
	Require(actor domain.Actor, caps ...domain.Capability) error

	// RequireAny returns nil when the actor holds at least one listed capability.
	RequireAny(actor domain.Actor, caps ...domain.Capability) error
}

// AuditTrailRecorderSvc appends immutable records of accepted transitions.
// Recording is best-effort: failures are logged and counted but never
// surface to the calling workflow.
type AuditTrailRecorderSvc interface {
	Record(ctx context.Context, entry domain.ApprovalHistoryEntry)
}

// ServiceContainer bundles all services for handler registration.
type ServiceContainer struct {
	Approval       ApprovalSvcFacade
	Pr             PrSvcFacade
	Reconciliation ReconciliationSvcFacade
}
