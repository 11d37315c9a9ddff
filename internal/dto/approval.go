package dto

import (
	"time"

	"github.com/openprocure/procurement_backend/internal/core/domain"
)

// SubmitLineItemRequest is the purchaser's quote selection for a line item.
type SubmitLineItemRequest struct {
	SelectedQuoteID string `json:"selectedQuoteID" binding:"required"`
}

// DirectorDecisionRequest carries a director's verdict on a pending line item.
// NewQuoteID is only meaningful with a REJECT decision and reopens the cycle.
type DirectorDecisionRequest struct {
	Decision   string  `json:"decision" binding:"required,oneof=APPROVE REJECT"`
	Comments   string  `json:"comments"`
	NewQuoteID *string `json:"newQuoteID,omitempty"`
}

// InvitePurchasersRequest asks one or more purchasers to quote a line item.
type InvitePurchasersRequest struct {
	PurchaserIDs []string `json:"purchaserIDs" binding:"required,min=1"`
	Message      string   `json:"message"`
}

// ListPendingApprovalsParams holds query parameters for the pending approvals listing.
type ListPendingApprovalsParams struct {
	Status    string  `form:"status"`
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// LineItemResponse is the API representation of an RFQ line item.
type LineItemResponse struct {
	LineItemID       string     `json:"lineItemID"`
	RfqID            string     `json:"rfqID"`
	Description      string     `json:"description"`
	Status           string     `json:"status"`
	SelectedQuoteID  *string    `json:"selectedQuoteID,omitempty"`
	SubmittedBy      *string    `json:"submittedBy,omitempty"`
	SubmittedAt      *time.Time `json:"submittedAt,omitempty"`
	DirectorDecision *string    `json:"directorDecision,omitempty"`
	DecisionComments *string    `json:"decisionComments,omitempty"`
	DecisionAt       *time.Time `json:"decisionAt,omitempty"`
	Version          int64      `json:"version"`
}

// ListPendingApprovalsResponse is a page of line items plus the continuation token.
type ListPendingApprovalsResponse struct {
	Items     []LineItemResponse `json:"items"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ApprovalHistoryEntryResponse is one audit trail entry for an entity.
type ApprovalHistoryEntryResponse struct {
	EntryID        string    `json:"entryID"`
	Action         string    `json:"action"`
	ActorID        string    `json:"actorID"`
	ActorName      string    `json:"actorName"`
	PreviousStatus string    `json:"previousStatus"`
	NewStatus      string    `json:"newStatus"`
	Comments       *string   `json:"comments,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// ToLineItemResponse converts a domain.RfqLineItem to its API representation.
func ToLineItemResponse(item *domain.RfqLineItem) LineItemResponse {
	resp := LineItemResponse{
		LineItemID:       item.LineItemID,
		RfqID:            item.RfqID,
		Description:      item.Description,
		Status:           string(item.Status),
		SelectedQuoteID:  item.SelectedQuoteID,
		SubmittedBy:      item.SubmittedBy,
		SubmittedAt:      item.SubmittedAt,
		DecisionComments: item.DecisionComments,
		DecisionAt:       item.DecisionAt,
		Version:          item.Version,
	}
	if item.DirectorDecision != nil {
		decision := string(*item.DirectorDecision)
		resp.DirectorDecision = &decision
	}
	return resp
}

// ToLineItemResponses converts a slice of line items.
func ToLineItemResponses(items []domain.RfqLineItem) []LineItemResponse {
	responses := make([]LineItemResponse, len(items))
	for i := range items {
		responses[i] = ToLineItemResponse(&items[i])
	}
	return responses
}

// ToApprovalHistoryResponses converts audit entries, preserving order.
func ToApprovalHistoryResponses(entries []domain.ApprovalHistoryEntry) []ApprovalHistoryEntryResponse {
	responses := make([]ApprovalHistoryEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = ApprovalHistoryEntryResponse{
			EntryID:        e.EntryID,
			Action:         string(e.Action),
			ActorID:        e.ActorID,
			ActorName:      e.ActorName,
			PreviousStatus: e.PreviousStatus,
			NewStatus:      e.NewStatus,
			Comments:       e.Comments,
			OccurredAt:     e.OccurredAt,
		}
	}
	return responses
}
