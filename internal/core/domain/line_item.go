package domain

import "time"

// LineItemStatus indicates where a line item sits in its approval cycle.
type LineItemStatus string

const (
	LineItemDraft    LineItemStatus = "DRAFT"
	LineItemPending  LineItemStatus = "PENDING_DIRECTOR_APPROVAL"
	LineItemApproved LineItemStatus = "APPROVED"
	LineItemRequoted LineItemStatus = "REQUOTED"
	LineItemRejected LineItemStatus = "REJECTED"
)

// DirectorDecision is the recorded outcome of a director review.
type DirectorDecision string

const (
	DecisionApprove DirectorDecision = "APPROVE"
	DecisionReject  DirectorDecision = "REJECT"
)

// lineItemTransitions is the closed transition table for line items.
// Any transition not listed here is invalid. APPROVED and REJECTED have no
// outgoing edges; reopening a finalized RFQ is an out-of-band action.
var lineItemTransitions = map[LineItemStatus][]LineItemStatus{
	LineItemDraft:    {LineItemPending},
	LineItemPending:  {LineItemApproved, LineItemRequoted, LineItemRejected},
	LineItemRequoted: {LineItemPending},
	LineItemApproved: {},
	LineItemRejected: {},
}

// CanTransitionLineItem reports whether moving from one status to another is
// allowed by the transition table.
func CanTransitionLineItem(from, to LineItemStatus) bool {
	for _, next := range lineItemTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminalLineItemStatus reports whether a status has no outgoing transitions.
func IsTerminalLineItemStatus(s LineItemStatus) bool {
	return len(lineItemTransitions[s]) == 0
}

// RfqLineItem is a single purchasable unit within an RFQ. Version increments
// on every accepted mutation and backs the optimistic concurrency check; two
// concurrent director decisions can never both succeed.
type RfqLineItem struct {
	LineItemID       string            `json:"lineItemID"` // Primary Key (e.g., UUID)
	RfqID            string            `json:"rfqID"`
	Description      string            `json:"description"`
	Status           LineItemStatus    `json:"status"`
	SelectedQuoteID  *string           `json:"selectedQuoteID,omitempty"`
	SubmittedBy      *string           `json:"submittedBy,omitempty"`
	SubmittedAt      *time.Time        `json:"submittedAt,omitempty"`
	DirectorDecision *DirectorDecision `json:"directorDecision,omitempty"`
	DecisionComments *string           `json:"decisionComments,omitempty"`
	DecisionAt       *time.Time        `json:"decisionAt,omitempty"`
	Version          int64             `json:"version"`
	AuditFields
}
