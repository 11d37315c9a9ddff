package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationRecord is the database row tying an invoice to its receipts.
// matched_receipt_ids is stored as a text[] column.
type ReconciliationRecord struct {
	ReconciliationID  string          `db:"reconciliation_id"`
	SupplierID        string          `db:"supplier_id"`
	Period            string          `db:"period"`
	Status            string          `db:"status"`
	MatchedInvoiceID  string          `db:"matched_invoice_id"`
	MatchedReceiptIDs []string        `db:"matched_receipt_ids"`
	ExpectedAmount    decimal.Decimal `db:"expected_amount"`
	MatchedAmount     decimal.Decimal `db:"matched_amount"`
	Variance          decimal.Decimal `db:"variance"`
	DisputeReason     *string         `db:"dispute_reason"`
	Version           int64           `db:"version"`
	AuditFields
}

// Invoice is the read-only database row for a supplier invoice.
type Invoice struct {
	InvoiceID  string          `db:"invoice_id"`
	SupplierID string          `db:"supplier_id"`
	Amount     decimal.Decimal `db:"amount"`
	IssuedAt   time.Time       `db:"issued_at"`
}

// WarehouseReceipt is the read-only database row for a goods receipt.
type WarehouseReceipt struct {
	ReceiptID  string          `db:"receipt_id"`
	SupplierID string          `db:"supplier_id"`
	Amount     decimal.Decimal `db:"amount"`
	ReceivedAt time.Time       `db:"received_at"`
}
