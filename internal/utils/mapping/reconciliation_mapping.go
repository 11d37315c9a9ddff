package mapping

import (
	"github.com/openprocure/procurement_backend/internal/core/domain"
	"github.com/openprocure/procurement_backend/internal/models"
)

// ToModelReconciliation converts a domain ReconciliationRecord to its model
func ToModelReconciliation(d domain.ReconciliationRecord) models.ReconciliationRecord {
	return models.ReconciliationRecord{
		ReconciliationID:  d.ReconciliationID,
		SupplierID:        d.SupplierID,
		Period:            d.Period,
		Status:            string(d.Status),
		MatchedInvoiceID:  d.MatchedInvoiceID,
		MatchedReceiptIDs: d.MatchedReceiptIDs,
		ExpectedAmount:    d.ExpectedAmount,
		MatchedAmount:     d.MatchedAmount,
		Variance:          d.Variance,
		DisputeReason:     d.DisputeReason,
		Version:           d.Version,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReconciliation converts a model ReconciliationRecord to its domain form
func ToDomainReconciliation(m models.ReconciliationRecord) domain.ReconciliationRecord {
	return domain.ReconciliationRecord{
		ReconciliationID:  m.ReconciliationID,
		SupplierID:        m.SupplierID,
		Period:            m.Period,
		Status:            domain.ReconciliationStatus(m.Status),
		MatchedInvoiceID:  m.MatchedInvoiceID,
		MatchedReceiptIDs: m.MatchedReceiptIDs,
		ExpectedAmount:    m.ExpectedAmount,
		MatchedAmount:     m.MatchedAmount,
		Variance:          m.Variance,
		DisputeReason:     m.DisputeReason,
		Version:           m.Version,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainReconciliationSlice converts a slice of model records to domain records
func ToDomainReconciliationSlice(ms []models.ReconciliationRecord) []domain.ReconciliationRecord {
	ds := make([]domain.ReconciliationRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainReconciliation(m)
	}
	return ds
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:  m.InvoiceID,
		SupplierID: m.SupplierID,
		Amount:     m.Amount,
		IssuedAt:   m.IssuedAt,
	}
}

// ToDomainReceipt converts a model WarehouseReceipt to a domain WarehouseReceipt
func ToDomainReceipt(m models.WarehouseReceipt) domain.WarehouseReceipt {
	return domain.WarehouseReceipt{
		ReceiptID:  m.ReceiptID,
		SupplierID: m.SupplierID,
		Amount:     m.Amount,
		ReceivedAt: m.ReceivedAt,
	}
}
