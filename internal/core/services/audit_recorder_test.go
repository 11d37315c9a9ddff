package services_test

import (
	"context"
	"testing"

	"github.com/openprocure/procurement_backend/internal/core/domain"
	"github.com/openprocure/procurement_backend/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuditTrailRecorder_StampsIDAndTime(t *testing.T) {
	ctx := context.Background()
	mockAudit := new(MockAuditRepository)
	recorder := services.NewAuditTrailRecorder(mockAudit)

	mockAudit.On("AppendHistoryEntry", ctx, mock.MatchedBy(func(e domain.ApprovalHistoryEntry) bool {
		return e.EntryID != "" && !e.OccurredAt.IsZero()
	})).Return(nil).Once()

	recorder.Record(ctx, domain.ApprovalHistoryEntry{
		EntityType: domain.AuditEntityLineItem,
		EntityID:   "li-1",
		Action:     domain.ActionSubmitted,
	})

	mockAudit.AssertExpectations(t)
	assert.Equal(t, int64(0), recorder.Failures())
}

func TestAuditTrailRecorder_FailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	mockAudit := new(MockAuditRepository)
	recorder := services.NewAuditTrailRecorder(mockAudit)

	mockAudit.On("AppendHistoryEntry", ctx, mock.AnythingOfType("domain.ApprovalHistoryEntry")).Return(assert.AnError).Twice()

	// Record never panics or propagates the repository failure.
	require.NotPanics(t, func() {
		recorder.Record(ctx, domain.ApprovalHistoryEntry{EntityID: "li-1", Action: domain.ActionApproved})
		recorder.Record(ctx, domain.ApprovalHistoryEntry{EntityID: "li-2", Action: domain.ActionRejected})
	})

	mockAudit.AssertExpectations(t)
	assert.Equal(t, int64(2), recorder.Failures())
}
