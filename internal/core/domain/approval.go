package domain

import "time"

// AuditEntityType names the kind of entity an audit entry refers to.
type AuditEntityType string

const (
	AuditEntityLineItem       AuditEntityType = "LINE_ITEM"
	AuditEntityPrRecord       AuditEntityType = "PR_RECORD"
	AuditEntityReconciliation AuditEntityType = "RECONCILIATION"
)

// AuditAction names the transition an audit entry records.
type AuditAction string

const (
	ActionSubmitted       AuditAction = "SUBMITTED"
	ActionResubmitted     AuditAction = "RESUBMITTED"
	ActionApproved        AuditAction = "APPROVED"
	ActionRejected        AuditAction = "REJECTED"
	ActionRequoted        AuditAction = "REQUOTED"
	ActionPrFilled        AuditAction = "PR_FILLED"
	ActionPrConfirmed     AuditAction = "PR_CONFIRMED"
	ActionPrRejected      AuditAction = "PR_REJECTED"
	ActionMatchingRun     AuditAction = "MATCHING_RUN"
	ActionReceiptAttached AuditAction = "RECEIPT_ATTACHED"
	ActionDisputeResolved AuditAction = "DISPUTE_RESOLVED"
	ActionReconApproved   AuditAction = "RECON_APPROVED"
	ActionReconSettled    AuditAction = "RECON_SETTLED"
)

// ApprovalHistoryEntry is one immutable record in the workflow audit trail.
// Entries are created exactly once per accepted transition and never mutated
// or deleted; the count per entity equals the number of accepted transitions.
type ApprovalHistoryEntry struct {
	EntryID        string          `json:"entryID"` // Primary Key (e.g., UUID)
	EntityType     AuditEntityType `json:"entityType"`
	EntityID       string          `json:"entityID"`
	RfqID          *string         `json:"rfqID,omitempty"`
	ActorID        string          `json:"actorID"`
	ActorName      string          `json:"actorName"`
	Action         AuditAction     `json:"action"`
	PreviousStatus string          `json:"previousStatus"`
	NewStatus      string          `json:"newStatus"`
	Comments       *string         `json:"comments,omitempty"`
	OccurredAt     time.Time       `json:"occurredAt"`
}

// PurchaserInvitation is a side-channel notification asking a purchaser to
// quote a line item. It never affects the line item's status.
type PurchaserInvitation struct {
	InvitationID string    `json:"invitationID"` // Primary Key (e.g., UUID)
	RfqID        string    `json:"rfqID"`
	LineItemID   string    `json:"lineItemID"`
	PurchaserID  string    `json:"purchaserID"`
	Message      string    `json:"message"`
	InvitedBy    string    `json:"invitedBy"`
	InvitedAt    time.Time `json:"invitedAt"`
}
