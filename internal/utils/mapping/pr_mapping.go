package mapping

import (
	"github.com/openprocure/procurement_backend/internal/core/domain"
	"github.com/openprocure/procurement_backend/internal/models"
)

// ToModelPrRecord converts a domain PrRecord to a model PrRecord
func ToModelPrRecord(d domain.PrRecord) models.PrRecord {
	return models.PrRecord{
		RfqID:                 d.RfqID,
		PrNumber:              d.PrNumber,
		PrDate:                d.PrDate,
		FilledBy:              d.FilledBy,
		FilledAt:              d.FilledAt,
		DepartmentConfirmerID: d.DepartmentConfirmerID,
		ConfirmationStatus:    string(d.ConfirmationStatus),
		ConfirmationNotes:     d.ConfirmationNotes,
		ConfirmedAt:           d.ConfirmedAt,
		Version:               d.Version,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPrRecord converts a model PrRecord to a domain PrRecord
func ToDomainPrRecord(m models.PrRecord) domain.PrRecord {
	return domain.PrRecord{
		RfqID:                 m.RfqID,
		PrNumber:              m.PrNumber,
		PrDate:                m.PrDate,
		FilledBy:              m.FilledBy,
		FilledAt:              m.FilledAt,
		DepartmentConfirmerID: m.DepartmentConfirmerID,
		ConfirmationStatus:    domain.PrConfirmationStatus(m.ConfirmationStatus),
		ConfirmationNotes:     m.ConfirmationNotes,
		ConfirmedAt:           m.ConfirmedAt,
		Version:               m.Version,
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}
}
