package dto

import (
	"github.com/openprocure/procurement_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SubmitMatchingRequest submits an invoice for reconciliation against a set
// of warehouse receipts.
type SubmitMatchingRequest struct {
	SupplierID string   `json:"supplierID" binding:"required"`
	Period     string   `json:"period" binding:"required"`
	InvoiceID  string   `json:"invoiceID" binding:"required"`
	ReceiptIDs []string `json:"receiptIDs"`
}

// AttachReceiptsRequest links further warehouse receipts to an open
// reconciliation and re-runs matching.
type AttachReceiptsRequest struct {
	ReceiptIDs []string `json:"receiptIDs" binding:"required,min=1"`
}

// ResolveDisputeRequest acts on a disputed reconciliation.
type ResolveDisputeRequest struct {
	Resolution     string           `json:"resolution" binding:"required,oneof=ADJUST REMATCH ESCALATE"`
	AdjustedAmount *decimal.Decimal `json:"adjustedAmount,omitempty"`
	Reason         string           `json:"reason"`
}

// ListReconciliationsParams holds query parameters for the reconciliation listing.
type ListReconciliationsParams struct {
	SupplierID *string `form:"supplierID"`
	Limit      int     `form:"limit"`
	NextToken  *string `form:"nextToken"`
}

// ReconciliationResponse is the API representation of a reconciliation record.
type ReconciliationResponse struct {
	ReconciliationID  string          `json:"reconciliationID"`
	SupplierID        string          `json:"supplierID"`
	Period            string          `json:"period"`
	Status            string          `json:"status"`
	MatchedInvoiceID  string          `json:"matchedInvoiceID"`
	MatchedReceiptIDs []string        `json:"matchedReceiptIDs"`
	ExpectedAmount    decimal.Decimal `json:"expectedAmount"`
	MatchedAmount     decimal.Decimal `json:"matchedAmount"`
	Variance          decimal.Decimal `json:"variance"`
	DisputeReason     *string         `json:"disputeReason,omitempty"`
	Version           int64           `json:"version"`
}

// ListReconciliationsResponse is a page of reconciliation records plus the
// continuation token.
type ListReconciliationsResponse struct {
	Reconciliations []ReconciliationResponse `json:"reconciliations"`
	NextToken       *string                  `json:"nextToken,omitempty"`
}

// ToReconciliationResponse converts a domain.ReconciliationRecord to its API
// representation.
func ToReconciliationResponse(rec *domain.ReconciliationRecord) ReconciliationResponse {
	return ReconciliationResponse{
		ReconciliationID:  rec.ReconciliationID,
		SupplierID:        rec.SupplierID,
		Period:            rec.Period,
		Status:            string(rec.Status),
		MatchedInvoiceID:  rec.MatchedInvoiceID,
		MatchedReceiptIDs: rec.MatchedReceiptIDs,
		ExpectedAmount:    rec.ExpectedAmount,
		MatchedAmount:     rec.MatchedAmount,
		Variance:          rec.Variance,
		DisputeReason:     rec.DisputeReason,
		Version:           rec.Version,
	}
}

// ToReconciliationResponses converts a slice of reconciliation records.
func ToReconciliationResponses(records []domain.ReconciliationRecord) []ReconciliationResponse {
	responses := make([]ReconciliationResponse, len(records))
	for i := range records {
		responses[i] = ToReconciliationResponse(&records[i])
	}
	return responses
}
