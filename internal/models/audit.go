package models

import "time"

// ApprovalHistoryEntry is the insert-only database row for one workflow
// transition. The table carries no updated_at column on purpose.
type ApprovalHistoryEntry struct {
	EntryID        string    `db:"entry_id"`
	EntityType     string    `db:"entity_type"`
	EntityID       string    `db:"entity_id"`
	RfqID          *string   `db:"rfq_id"`
	ActorID        string    `db:"actor_id"`
	ActorName      string    `db:"actor_name"`
	Action         string    `db:"action"`
	PreviousStatus string    `db:"previous_status"`
	NewStatus      string    `db:"new_status"`
	Comments       *string   `db:"comments"`
	OccurredAt     time.Time `db:"occurred_at"`
}
