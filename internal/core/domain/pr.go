package domain

import "time"

// PrConfirmationStatus is the department's verdict on a filled PR.
type PrConfirmationStatus string

const (
	PrConfirmed PrConfirmationStatus = "CONFIRMED"
	PrRejected  PrConfirmationStatus = "REJECTED"
)

// PrRecord is the purchase requisition filed once every line item of an RFQ
// is approved. One-to-one with the RFQ; the filler's own confirmation is
// stamped at creation time.
type PrRecord struct {
	RfqID                 string               `json:"rfqID"` // Primary Key, FK to Rfq
	PrNumber              string               `json:"prNumber"`
	PrDate                time.Time            `json:"prDate"`
	FilledBy              string               `json:"filledBy"`
	FilledAt              time.Time            `json:"filledAt"`
	DepartmentConfirmerID *string              `json:"departmentConfirmerID,omitempty"`
	ConfirmationStatus    PrConfirmationStatus `json:"confirmationStatus"`
	ConfirmationNotes     *string              `json:"confirmationNotes,omitempty"`
	ConfirmedAt           *time.Time           `json:"confirmedAt,omitempty"`
	Version               int64                `json:"version"`
	AuditFields
}
