package mapping

import (
	"github.com/openprocure/procurement_backend/internal/core/domain"
	"github.com/openprocure/procurement_backend/internal/models"
)

// ToModelRfq converts a domain Rfq to a model Rfq
func ToModelRfq(d domain.Rfq) models.Rfq {
	return models.Rfq{
		RfqID:       d.RfqID,
		Title:       d.Title,
		Status:      string(d.Status),
		PrStatus:    string(d.PrStatus),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRfq converts a model Rfq to a domain Rfq
func ToDomainRfq(m models.Rfq) domain.Rfq {
	return domain.Rfq{
		RfqID:       m.RfqID,
		Title:       m.Title,
		Status:      domain.RfqStatus(m.Status),
		PrStatus:    domain.RfqPrStatus(m.PrStatus),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLineItem converts a domain RfqLineItem to a model RfqLineItem
func ToModelLineItem(d domain.RfqLineItem) models.RfqLineItem {
	var decision *string
	if d.DirectorDecision != nil {
		s := string(*d.DirectorDecision)
		decision = &s
	}
	return models.RfqLineItem{
		LineItemID:       d.LineItemID,
		RfqID:            d.RfqID,
		Description:      d.Description,
		Status:           string(d.Status),
		SelectedQuoteID:  d.SelectedQuoteID,
		SubmittedBy:      d.SubmittedBy,
		SubmittedAt:      d.SubmittedAt,
		DirectorDecision: decision,
		DecisionComments: d.DecisionComments,
		DecisionAt:       d.DecisionAt,
		Version:          d.Version,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLineItem converts a model RfqLineItem to a domain RfqLineItem
func ToDomainLineItem(m models.RfqLineItem) domain.RfqLineItem {
	var decision *domain.DirectorDecision
	if m.DirectorDecision != nil {
		d := domain.DirectorDecision(*m.DirectorDecision)
		decision = &d
	}
	return domain.RfqLineItem{
		LineItemID:       m.LineItemID,
		RfqID:            m.RfqID,
		Description:      m.Description,
		Status:           domain.LineItemStatus(m.Status),
		SelectedQuoteID:  m.SelectedQuoteID,
		SubmittedBy:      m.SubmittedBy,
		SubmittedAt:      m.SubmittedAt,
		DirectorDecision: decision,
		DecisionComments: m.DecisionComments,
		DecisionAt:       m.DecisionAt,
		Version:          m.Version,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLineItemSlice converts a slice of model line items to domain line items
func ToDomainLineItemSlice(ms []models.RfqLineItem) []domain.RfqLineItem {
	ds := make([]domain.RfqLineItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLineItem(m)
	}
	return ds
}

// ToModelInvitation converts a domain PurchaserInvitation to its model
func ToModelInvitation(d domain.PurchaserInvitation) models.PurchaserInvitation {
	return models.PurchaserInvitation{
		InvitationID: d.InvitationID,
		RfqID:        d.RfqID,
		LineItemID:   d.LineItemID,
		PurchaserID:  d.PurchaserID,
		Message:      d.Message,
		InvitedBy:    d.InvitedBy,
		InvitedAt:    d.InvitedAt,
	}
}
