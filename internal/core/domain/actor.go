package domain

// Capability is a single named permission required by a workflow operation.
type Capability string

const (
	CapSubmitQuote      Capability = "line_item:submit"
	CapDecideApproval   Capability = "line_item:decide"
	CapViewApprovals    Capability = "line_item:view"
	CapInvitePurchasers Capability = "line_item:invite"
	CapFillPr           Capability = "pr:fill"
	CapConfirmPr        Capability = "pr:confirm"
	CapSubmitMatching   Capability = "reconciliation:submit"
	CapResolveDispute   Capability = "reconciliation:resolve"
	CapApproveRecon     Capability = "reconciliation:approve"
	CapSettleRecon      Capability = "reconciliation:settle"
)

// Role is a named position that maps to a default capability set.
type Role string

const (
	RolePurchaser      Role = "PURCHASER"
	RoleDirector       Role = "DIRECTOR"
	RoleDepartmentUser Role = "DEPARTMENT_USER"
	RoleFinanceStaff   Role = "FINANCE_STAFF"
	RoleWarehouseStaff Role = "WAREHOUSE_STAFF"
	RoleSupplier       Role = "SUPPLIER"
)

// roleCapabilities is the fixed role -> granted capability catalog.
// Roles do not inherit from each other; each set is listed in full.
var roleCapabilities = map[Role][]Capability{
	RolePurchaser: {
		CapSubmitQuote, CapViewApprovals, CapFillPr, CapConfirmPr,
	},
	RoleDirector: {
		CapDecideApproval, CapViewApprovals, CapInvitePurchasers,
	},
	RoleDepartmentUser: {
		CapConfirmPr, CapViewApprovals,
	},
	RoleFinanceStaff: {
		CapSubmitMatching, CapResolveDispute, CapApproveRecon, CapSettleRecon, CapViewApprovals,
	},
	RoleWarehouseStaff: {
		CapSubmitMatching,
	},
	RoleSupplier: {
		CapResolveDispute,
	},
}

// CapabilitiesForRole returns the granted capability set for a role.
// Unknown roles get no capabilities.
func CapabilitiesForRole(role Role) []Capability {
	caps := roleCapabilities[role]
	out := make([]Capability, len(caps))
	copy(out, caps)
	return out
}

// Actor is the acting identity resolved by the auth layer. Capabilities hold
// the full granted set; SupplierID is set only for supplier-affiliated users.
type Actor struct {
	UserID       string       `json:"userID"`
	Name         string       `json:"name"`
	Role         Role         `json:"role"`
	Capabilities []Capability `json:"capabilities"`
	SupplierID   *string      `json:"supplierID,omitempty"`
}

// HasCapability reports whether the actor's granted set contains cap.
func (a Actor) HasCapability(cap Capability) bool {
	for _, c := range a.Capabilities {
		if c == cap {
			return true
		}
	}
	return false
}

// HasAnyCapability reports whether the actor holds at least one of caps.
func (a Actor) HasAnyCapability(caps ...Capability) bool {
	for _, c := range caps {
		if a.HasCapability(c) {
			return true
		}
	}
	return false
}
