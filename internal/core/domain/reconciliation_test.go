package domain_test

import (
	"testing"

	"github.com/openprocure/procurement_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestClassifyMatch(t *testing.T) {
	tolerance := decimal.NewFromFloat(0.5)

	tests := []struct {
		name         string
		expected     string
		receiptTotal string
		wantStatus   domain.ReconciliationStatus
		wantMatched  string
		wantVariance string
	}{
		{"exact match", "1000.00", "1000.00", domain.ReconMatched, "1000.00", "0.00"},
		{"within tolerance under", "1000.00", "999.60", domain.ReconMatched, "999.60", "0.40"},
		{"within tolerance over", "1000.00", "1000.40", domain.ReconMatched, "1000.00", "-0.40"},
		{"80 percent coverage is partial", "1000.00", "800.00", domain.ReconPartiallyMatched, "800.00", "200.00"},
		{"just below tolerance boundary", "1000.00", "999.49", domain.ReconPartiallyMatched, "999.49", "0.51"},
		{"over-coverage beyond tolerance disputes", "1000.00", "1100.00", domain.ReconDisputed, "1000.00", "-100.00"},
		{"no receipts yet", "1000.00", "0", domain.ReconPartiallyMatched, "0", "1000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expected := decimal.RequireFromString(tt.expected)
			receiptTotal := decimal.RequireFromString(tt.receiptTotal)

			status, matched, variance := domain.ClassifyMatch(expected, receiptTotal, tolerance)

			assert.Equal(t, tt.wantStatus, status)
			assert.True(t, matched.Equal(decimal.RequireFromString(tt.wantMatched)), "matched amount %s", matched)
			assert.True(t, variance.Equal(decimal.RequireFromString(tt.wantVariance)), "variance %s", variance)
			// The matched amount is always bounded by the receipt total.
			assert.True(t, matched.LessThanOrEqual(receiptTotal) || receiptTotal.IsZero())
		})
	}
}

func TestCanTransitionReconciliation(t *testing.T) {
	tests := []struct {
		name string
		from domain.ReconciliationStatus
		to   domain.ReconciliationStatus
		want bool
	}{
		{"pending to matched", domain.ReconPendingMatching, domain.ReconMatched, true},
		{"pending to partial", domain.ReconPendingMatching, domain.ReconPartiallyMatched, true},
		{"partial gains receipts", domain.ReconPartiallyMatched, domain.ReconMatched, true},
		{"matched to approved", domain.ReconMatched, domain.ReconApproved, true},
		{"matched to disputed", domain.ReconMatched, domain.ReconDisputed, true},
		{"dispute resolved to matched", domain.ReconDisputed, domain.ReconMatched, true},
		{"disputed cannot be approved directly", domain.ReconDisputed, domain.ReconApproved, false},
		{"approved to settled", domain.ReconApproved, domain.ReconSettled, true},
		{"settled is terminal", domain.ReconSettled, domain.ReconApproved, false},
		{"settled cannot be rematched", domain.ReconSettled, domain.ReconMatched, false},
		{"pending cannot skip to settled", domain.ReconPendingMatching, domain.ReconSettled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.CanTransitionReconciliation(tt.from, tt.to))
		})
	}
}
