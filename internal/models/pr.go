package models

import "time"

// PrRecord is the database row for a purchase requisition. rfq_id is both
// the primary key and the foreign key to rfqs, enforcing one PR per RFQ.
type PrRecord struct {
	RfqID                 string     `db:"rfq_id"`
	PrNumber              string     `db:"pr_number"`
	PrDate                time.Time  `db:"pr_date"`
	FilledBy              string     `db:"filled_by"`
	FilledAt              time.Time  `db:"filled_at"`
	DepartmentConfirmerID *string    `db:"department_confirmer_id"`
	ConfirmationStatus    string     `db:"confirmation_status"`
	ConfirmationNotes     *string    `db:"confirmation_notes"`
	ConfirmedAt           *time.Time `db:"confirmed_at"`
	Version               int64      `db:"version"`
	AuditFields
}
