package services

import (
	"fmt"

	"github.com/openprocure/procurement_backend/internal/apperrors"
	"github.com/openprocure/procurement_backend/internal/core/domain"
	portssvc "github.com/openprocure/procurement_backend/internal/core/ports/services"
)

// permissionGate is the stateless capability-set evaluator consumed by all
// workflow services. Denial short-circuits before any state read or write.
type permissionGate struct{}

// NewPermissionGate creates the capability evaluator.
func NewPermissionGate() portssvc.PermissionGateSvc {
	return &permissionGate{}
}

var _ portssvc.PermissionGateSvc = (*permissionGate)(nil)

// Require returns nil when the actor holds every listed capability.
func (g *permissionGate) Require(actor domain.Actor, caps ...domain.Capability) error {
	for _, cap := range caps {
		if !actor.HasCapability(cap) {
			return fmt.Errorf("%w: role %s lacks capability %s", apperrors.ErrForbidden, actor.Role, cap)
		}
	}
	return nil
}

// RequireAny returns nil when the actor holds at least one listed capability.
func (g *permissionGate) RequireAny(actor domain.Actor, caps ...domain.Capability) error {
	if len(caps) == 0 {
		return nil
	}
	if actor.HasAnyCapability(caps...) {
		return nil
	}
	return fmt.Errorf("%w: role %s holds none of the required capabilities", apperrors.ErrForbidden, actor.Role)
}
