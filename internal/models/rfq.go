package models

import "time"

// Rfq is the database row for a request-for-quotation.
type Rfq struct {
	RfqID    string `db:"rfq_id"`
	Title    string `db:"title"`
	Status   string `db:"status"`
	PrStatus string `db:"pr_status"`
	AuditFields
}

// RfqLineItem is the database row for one line item. Nullable columns use
// pointer types; version backs the optimistic concurrency check.
type RfqLineItem struct {
	LineItemID       string     `db:"line_item_id"`
	RfqID            string     `db:"rfq_id"`
	Description      string     `db:"description"`
	Status           string     `db:"status"`
	SelectedQuoteID  *string    `db:"selected_quote_id"`
	SubmittedBy      *string    `db:"submitted_by"`
	SubmittedAt      *time.Time `db:"submitted_at"`
	DirectorDecision *string    `db:"director_decision"`
	DecisionComments *string    `db:"decision_comments"`
	DecisionAt       *time.Time `db:"decision_at"`
	Version          int64      `db:"version"`
	AuditFields
}

// PurchaserInvitation is the database row for a quote invitation.
type PurchaserInvitation struct {
	InvitationID string    `db:"invitation_id"`
	RfqID        string    `db:"rfq_id"`
	LineItemID   string    `db:"line_item_id"`
	PurchaserID  string    `db:"purchaser_id"`
	Message      string    `db:"message"`
	InvitedBy    string    `db:"invited_by"`
	InvitedAt    time.Time `db:"invited_at"`
}
