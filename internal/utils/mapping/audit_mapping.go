package mapping

import (
	"github.com/openprocure/procurement_backend/internal/core/domain"
	"github.com/openprocure/procurement_backend/internal/models"
)

// ToModelHistoryEntry converts a domain ApprovalHistoryEntry to its model
func ToModelHistoryEntry(d domain.ApprovalHistoryEntry) models.ApprovalHistoryEntry {
	return models.ApprovalHistoryEntry{
		EntryID:        d.EntryID,
		EntityType:     string(d.EntityType),
		EntityID:       d.EntityID,
		RfqID:          d.RfqID,
		ActorID:        d.ActorID,
		ActorName:      d.ActorName,
		Action:         string(d.Action),
		PreviousStatus: d.PreviousStatus,
		NewStatus:      d.NewStatus,
		Comments:       d.Comments,
		OccurredAt:     d.OccurredAt,
	}
}

// ToDomainHistoryEntry converts a model ApprovalHistoryEntry to its domain form
func ToDomainHistoryEntry(m models.ApprovalHistoryEntry) domain.ApprovalHistoryEntry {
	return domain.ApprovalHistoryEntry{
		EntryID:        m.EntryID,
		EntityType:     domain.AuditEntityType(m.EntityType),
		EntityID:       m.EntityID,
		RfqID:          m.RfqID,
		ActorID:        m.ActorID,
		ActorName:      m.ActorName,
		Action:         domain.AuditAction(m.Action),
		PreviousStatus: m.PreviousStatus,
		NewStatus:      m.NewStatus,
		Comments:       m.Comments,
		OccurredAt:     m.OccurredAt,
	}
}

// ToDomainHistoryEntrySlice converts a slice of model entries to domain entries
func ToDomainHistoryEntrySlice(ms []models.ApprovalHistoryEntry) []domain.ApprovalHistoryEntry {
	ds := make([]domain.ApprovalHistoryEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainHistoryEntry(m)
	}
	return ds
}
