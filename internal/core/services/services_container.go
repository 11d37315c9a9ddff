package services

import (
	portsrepo "github.com/openprocure/procurement_backend/internal/core/ports/repositories"
	portssvc "github.com/openprocure/procurement_backend/internal/core/ports/services"
	"github.com/openprocure/procurement_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Gate and recorder are shared by every workflow service.
	gate := NewPermissionGate()
	recorder := NewAuditTrailRecorder(repos.AuditRepo)

	container.Approval = NewApprovalService(
		repos.LineItemRepo,
		repos.AuditRepo,
		gate,
		recorder,
	)

	container.Pr = NewPrService(
		repos.PrRepo,
		repos.LineItemRepo,
		gate,
		recorder,
	)

	container.Reconciliation = NewReconciliationService(
		repos.ReconciliationRepo,
		gate,
		recorder,
		cfg.ReconTolerance,
	)

	return container
}
