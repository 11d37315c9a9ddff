package dto

import (
	"time"

	"github.com/openprocure/procurement_backend/internal/core/domain"
)

// FillPrRequest files the purchase requisition number for a fully approved RFQ.
type FillPrRequest struct {
	PrNumber string     `json:"prNumber" binding:"required"`
	PrDate   *time.Time `json:"prDate,omitempty"`
}

// ConfirmPrRequest records the department's verdict on a filled PR.
type ConfirmPrRequest struct {
	ConfirmationStatus string  `json:"confirmationStatus" binding:"required,oneof=CONFIRMED REJECTED"`
	ConfirmationNotes  *string `json:"confirmationNotes,omitempty"`
}

// PrRecordResponse is the API representation of a purchase requisition record.
type PrRecordResponse struct {
	RfqID                 string     `json:"rfqID"`
	PrNumber              string     `json:"prNumber"`
	PrDate                time.Time  `json:"prDate"`
	FilledBy              string     `json:"filledBy"`
	FilledAt              time.Time  `json:"filledAt"`
	DepartmentConfirmerID *string    `json:"departmentConfirmerID,omitempty"`
	ConfirmationStatus    string     `json:"confirmationStatus"`
	ConfirmationNotes     *string    `json:"confirmationNotes,omitempty"`
	ConfirmedAt           *time.Time `json:"confirmedAt,omitempty"`
}

// ToPrRecordResponse converts a domain.PrRecord to its API representation.
func ToPrRecordResponse(pr *domain.PrRecord) PrRecordResponse {
	return PrRecordResponse{
		RfqID:                 pr.RfqID,
		PrNumber:              pr.PrNumber,
		PrDate:                pr.PrDate,
		FilledBy:              pr.FilledBy,
		FilledAt:              pr.FilledAt,
		DepartmentConfirmerID: pr.DepartmentConfirmerID,
		ConfirmationStatus:    string(pr.ConfirmationStatus),
		ConfirmationNotes:     pr.ConfirmationNotes,
		ConfirmedAt:           pr.ConfirmedAt,
	}
}
