package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationStatus indicates where a reconciliation record sits between
// invoice submission and settlement.
type ReconciliationStatus string

const (
	ReconPendingMatching  ReconciliationStatus = "PENDING_MATCHING"
	ReconPartiallyMatched ReconciliationStatus = "PARTIALLY_MATCHED"
	ReconMatched          ReconciliationStatus = "MATCHED"
	ReconDisputed         ReconciliationStatus = "DISPUTED"
	ReconApproved         ReconciliationStatus = "APPROVED"
	ReconSettled          ReconciliationStatus = "SETTLED"
)

// reconTransitions is the closed transition table for reconciliation records.
// SETTLED is terminal; a disputed record must be resolved back to a matched
// state before approval.
var reconTransitions = map[ReconciliationStatus][]ReconciliationStatus{
	ReconPendingMatching:  {ReconPartiallyMatched, ReconMatched, ReconDisputed},
	ReconPartiallyMatched: {ReconPartiallyMatched, ReconMatched, ReconDisputed, ReconApproved},
	ReconMatched:          {ReconDisputed, ReconApproved},
	ReconDisputed:         {ReconMatched, ReconPartiallyMatched, ReconDisputed},
	ReconApproved:         {ReconSettled},
	ReconSettled:          {},
}

// CanTransitionReconciliation reports whether moving between the two statuses
// is allowed by the transition table.
func CanTransitionReconciliation(from, to ReconciliationStatus) bool {
	for _, next := range reconTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// DisputeResolution names the way a disputed reconciliation is acted on.
type DisputeResolution string

const (
	ResolutionAdjust   DisputeResolution = "ADJUST"
	ResolutionRematch  DisputeResolution = "REMATCH"
	ResolutionEscalate DisputeResolution = "ESCALATE"
)

// ReconciliationRecord ties a supplier invoice to the warehouse receipts that
// cover it. MatchedAmount never exceeds the sum of the linked receipts'
// amounts. Version backs the optimistic concurrency check.
type ReconciliationRecord struct {
	ReconciliationID  string               `json:"reconciliationID"` // Primary Key (e.g., UUID)
	SupplierID        string               `json:"supplierID"`
	Period            string               `json:"period"` // e.g. "2026-08"
	Status            ReconciliationStatus `json:"status"`
	MatchedInvoiceID  string               `json:"matchedInvoiceID"`
	MatchedReceiptIDs []string             `json:"matchedReceiptIDs"`
	ExpectedAmount    decimal.Decimal      `json:"expectedAmount"`
	MatchedAmount     decimal.Decimal      `json:"matchedAmount"`
	Variance          decimal.Decimal      `json:"variance"`
	DisputeReason     *string              `json:"disputeReason,omitempty"`
	Version           int64                `json:"version"`
	AuditFields
}

// Invoice is a supplier invoice consulted by the matching algorithm.
// Owned by an external collaborator; read-only here.
type Invoice struct {
	InvoiceID  string          `json:"invoiceID"`
	SupplierID string          `json:"supplierID"`
	Amount     decimal.Decimal `json:"amount"`
	IssuedAt   time.Time       `json:"issuedAt"`
}

// WarehouseReceipt is a goods receipt consulted by the matching algorithm.
// Owned by an external collaborator; read-only here.
type WarehouseReceipt struct {
	ReceiptID  string          `json:"receiptID"`
	SupplierID string          `json:"supplierID"`
	Amount     decimal.Decimal `json:"amount"`
	ReceivedAt time.Time       `json:"receivedAt"`
}

// ClassifyMatch compares the receipt total against the expected amount and
// returns the resulting status with the capped matched amount and variance.
// Under-coverage beyond tolerance is a partial match awaiting more receipts;
// over-coverage beyond tolerance is a dispute.
func ClassifyMatch(expected, receiptTotal, tolerance decimal.Decimal) (ReconciliationStatus, decimal.Decimal, decimal.Decimal) {
	matched := receiptTotal
	if matched.GreaterThan(expected) {
		matched = expected
	}
	variance := expected.Sub(receiptTotal)

	switch {
	case variance.Abs().LessThanOrEqual(tolerance):
		return ReconMatched, matched, variance
	case receiptTotal.LessThan(expected):
		return ReconPartiallyMatched, matched, variance
	default:
		return ReconDisputed, matched, variance
	}
}
