package domain

// RfqStatus indicates the overall state of a request-for-quotation.
type RfqStatus string

const (
	RfqOpen      RfqStatus = "OPEN"
	RfqPrPending RfqStatus = "PR_PENDING"
	RfqCompleted RfqStatus = "COMPLETED"
)

// RfqPrStatus tracks the purchase-requisition hand-off at the RFQ level.
type RfqPrStatus string

const (
	PrUnfilled     RfqPrStatus = "UNFILLED"
	PrConfirmedRfq RfqPrStatus = "CONFIRMED"
	PrRejectedRfq  RfqPrStatus = "REJECTED"
)

// Rfq is the aggregate root owning a set of independently approved line items.
// Supplier, contract and document references are managed by collaborators and
// appear here only as ids.
type Rfq struct {
	RfqID    string      `json:"rfqID"` // Primary Key (e.g., UUID)
	Title    string      `json:"title"`
	Status   RfqStatus   `json:"status"`
	PrStatus RfqPrStatus `json:"prStatus"`
	AuditFields
}
