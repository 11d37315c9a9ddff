package domain_test

import (
	"testing"

	"github.com/openprocure/procurement_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestCanTransitionLineItem(t *testing.T) {
	tests := []struct {
		name string
		from domain.LineItemStatus
		to   domain.LineItemStatus
		want bool
	}{
		{"draft to pending", domain.LineItemDraft, domain.LineItemPending, true},
		{"requoted back to pending", domain.LineItemRequoted, domain.LineItemPending, true},
		{"pending to approved", domain.LineItemPending, domain.LineItemApproved, true},
		{"pending to requoted", domain.LineItemPending, domain.LineItemRequoted, true},
		{"pending to rejected", domain.LineItemPending, domain.LineItemRejected, true},
		{"draft straight to approved", domain.LineItemDraft, domain.LineItemApproved, false},
		{"approved is terminal", domain.LineItemApproved, domain.LineItemPending, false},
		{"rejected is terminal", domain.LineItemRejected, domain.LineItemPending, false},
		{"rejected cannot be resubmitted", domain.LineItemRejected, domain.LineItemRequoted, false},
		{"pending cannot loop to pending", domain.LineItemPending, domain.LineItemPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.CanTransitionLineItem(tt.from, tt.to))
		})
	}
}

func TestIsTerminalLineItemStatus(t *testing.T) {
	assert.True(t, domain.IsTerminalLineItemStatus(domain.LineItemApproved))
	assert.True(t, domain.IsTerminalLineItemStatus(domain.LineItemRejected))
	assert.False(t, domain.IsTerminalLineItemStatus(domain.LineItemDraft))
	assert.False(t, domain.IsTerminalLineItemStatus(domain.LineItemPending))
	assert.False(t, domain.IsTerminalLineItemStatus(domain.LineItemRequoted))
}

func TestCapabilitiesForRole(t *testing.T) {
	purchaser := domain.Actor{Role: domain.RolePurchaser, Capabilities: domain.CapabilitiesForRole(domain.RolePurchaser)}
	assert.True(t, purchaser.HasCapability(domain.CapSubmitQuote))
	assert.True(t, purchaser.HasCapability(domain.CapFillPr))
	assert.False(t, purchaser.HasCapability(domain.CapDecideApproval))

	director := domain.Actor{Role: domain.RoleDirector, Capabilities: domain.CapabilitiesForRole(domain.RoleDirector)}
	assert.True(t, director.HasCapability(domain.CapDecideApproval))
	assert.True(t, director.HasCapability(domain.CapInvitePurchasers))
	assert.False(t, director.HasCapability(domain.CapSubmitQuote))

	unknown := domain.Actor{Role: domain.Role("AUDITOR"), Capabilities: domain.CapabilitiesForRole(domain.Role("AUDITOR"))}
	assert.Empty(t, unknown.Capabilities)
	assert.False(t, unknown.HasAnyCapability(domain.CapSubmitQuote, domain.CapDecideApproval))
}
