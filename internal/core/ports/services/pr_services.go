package services

import (
	"context"

	"github.com/openprocure/procurement_backend/internal/core/domain"
	"github.com/openprocure/procurement_backend/internal/dto"
)

// PrSvcFacade owns the hand-off from a fully approved RFQ to a confirmed
// purchase requisition.
type PrSvcFacade interface {
	// FillPr files the PR number once every line item of the RFQ is approved.
	FillPr(ctx context.Context, rfqID string, req dto.FillPrRequest, actor domain.Actor) (*domain.PrRecord, error)

	// ConfirmPr records the department's confirmation or rejection of a filled PR.
	ConfirmPr(ctx context.Context, rfqID string, req dto.ConfirmPrRequest, actor domain.Actor) (*domain.PrRecord, error)

	// GetPrRecord retrieves the PR record for an RFQ.
	GetPrRecord(ctx context.Context, rfqID string) (*domain.PrRecord, error)
}
