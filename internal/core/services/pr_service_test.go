package services_test

import (
	"context"
	"testing"

	"github.com/openprocure/procurement_backend/internal/apperrors"
	"github.com/openprocure/procurement_backend/internal/core/domain"
	portssvc "github.com/openprocure/procurement_backend/internal/core/ports/services"
	"github.com/openprocure/procurement_backend/internal/core/services"
	"github.com/openprocure/procurement_backend/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock PrRepository ---
type MockPrRepository struct {
	mock.Mock
}

func (m *MockPrRepository) FindPrRecordByRfqID(ctx context.Context, rfqID string) (*domain.PrRecord, error) {
	args := m.Called(ctx, rfqID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PrRecord), args.Error(1)
}

func (m *MockPrRepository) CreatePrRecordAndCompleteRfq(ctx context.Context, pr domain.PrRecord, rfq domain.Rfq) error {
	args := m.Called(ctx, pr, rfq)
	return args.Error(0)
}

func (m *MockPrRepository) UpdatePrConfirmation(ctx context.Context, pr domain.PrRecord, expectedVersion int64, completeRfq bool) error {
	args := m.Called(ctx, pr, expectedVersion, completeRfq)
	return args.Error(0)
}

// --- Test Suite ---
type PrServiceTestSuite struct {
	suite.Suite
	mockPrRepo   *MockPrRepository
	mockLineRepo *MockLineItemRepository
	mockAudit    *MockAuditRepository
	service      portssvc.PrSvcFacade
	purchaser    domain.Actor
	deptUser     domain.Actor
}

func (suite *PrServiceTestSuite) SetupTest() {
	suite.mockPrRepo = new(MockPrRepository)
	suite.mockLineRepo = new(MockLineItemRepository)
	suite.mockAudit = new(MockAuditRepository)
	gate := services.NewPermissionGate()
	recorder := services.NewAuditTrailRecorder(suite.mockAudit)
	suite.service = services.NewPrService(suite.mockPrRepo, suite.mockLineRepo, gate, recorder)
	suite.purchaser = newActor(domain.RolePurchaser)
	suite.deptUser = newActor(domain.RoleDepartmentUser)
}

func approvedRfq() (*domain.Rfq, []domain.RfqLineItem) {
	rfq := &domain.Rfq{
		RfqID:    uuid.NewString(),
		Title:    "Warehouse racking",
		Status:   domain.RfqPrPending,
		PrStatus: domain.PrUnfilled,
	}
	items := []domain.RfqLineItem{
		{LineItemID: uuid.NewString(), RfqID: rfq.RfqID, Status: domain.LineItemApproved, Version: 3},
		{LineItemID: uuid.NewString(), RfqID: rfq.RfqID, Status: domain.LineItemApproved, Version: 2},
	}
	return rfq, items
}

// --- FillPr ---

func (suite *PrServiceTestSuite) TestFillPr_Success() {
	ctx := context.Background()
	rfq, items := approvedRfq()

	suite.mockLineRepo.On("FindRfqByID", ctx, rfq.RfqID).Return(rfq, nil).Once()
	suite.mockPrRepo.On("FindPrRecordByRfqID", ctx, rfq.RfqID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockLineRepo.On("ListLineItemsByRfq", ctx, rfq.RfqID).Return(items, nil).Once()
	suite.mockPrRepo.On("CreatePrRecordAndCompleteRfq", ctx, mock.MatchedBy(func(pr domain.PrRecord) bool {
		return pr.RfqID == rfq.RfqID &&
			pr.PrNumber == "PR-2026-0042" &&
			pr.ConfirmationStatus == domain.PrConfirmed &&
			pr.DepartmentConfirmerID != nil && *pr.DepartmentConfirmerID == suite.purchaser.UserID &&
			pr.Version == 1
	}), mock.MatchedBy(func(r domain.Rfq) bool {
		return r.Status == domain.RfqCompleted && r.PrStatus == domain.PrConfirmedRfq
	})).Return(nil).Once()
	suite.mockAudit.On("AppendHistoryEntry", ctx, mock.MatchedBy(func(e domain.ApprovalHistoryEntry) bool {
		return e.Action == domain.ActionPrFilled && e.EntityType == domain.AuditEntityPrRecord
	})).Return(nil).Once()

	pr, err := suite.service.FillPr(ctx, rfq.RfqID, dto.FillPrRequest{PrNumber: "PR-2026-0042"}, suite.purchaser)

	suite.Require().NoError(err)
	suite.Require().NotNil(pr)
	suite.Equal(domain.PrConfirmed, pr.ConfirmationStatus)
	suite.NotNil(pr.ConfirmedAt)
	suite.mockPrRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *PrServiceTestSuite) TestFillPr_MissingPrNumber() {
	ctx := context.Background()

	pr, err := suite.service.FillPr(ctx, uuid.NewString(), dto.FillPrRequest{}, suite.purchaser)

	suite.Require().Error(err)
	suite.Nil(pr)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLineRepo.AssertNotCalled(suite.T(), "FindRfqByID", mock.Anything, mock.Anything)
}

func (suite *PrServiceTestSuite) TestFillPr_Forbidden() {
	ctx := context.Background()
	director := newActor(domain.RoleDirector)

	pr, err := suite.service.FillPr(ctx, uuid.NewString(), dto.FillPrRequest{PrNumber: "PR-1"}, director)

	suite.Require().Error(err)
	suite.Nil(pr)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *PrServiceTestSuite) TestFillPr_AlreadyFilled() {
	ctx := context.Background()
	rfq, _ := approvedRfq()
	existing := &domain.PrRecord{RfqID: rfq.RfqID, PrNumber: "PR-1", Version: 1}

	suite.mockLineRepo.On("FindRfqByID", ctx, rfq.RfqID).Return(rfq, nil).Once()
	suite.mockPrRepo.On("FindPrRecordByRfqID", ctx, rfq.RfqID).Return(existing, nil).Once()

	pr, err := suite.service.FillPr(ctx, rfq.RfqID, dto.FillPrRequest{PrNumber: "PR-2"}, suite.purchaser)

	suite.Require().Error(err)
	suite.Nil(pr)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPrRepo.AssertNotCalled(suite.T(), "CreatePrRecordAndCompleteRfq", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PrServiceTestSuite) TestFillPr_NotAllApproved() {
	ctx := context.Background()
	rfq, items := approvedRfq()
	items[1].Status = domain.LineItemPending

	suite.mockLineRepo.On("FindRfqByID", ctx, rfq.RfqID).Return(rfq, nil).Once()
	suite.mockPrRepo.On("FindPrRecordByRfqID", ctx, rfq.RfqID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockLineRepo.On("ListLineItemsByRfq", ctx, rfq.RfqID).Return(items, nil).Once()

	pr, err := suite.service.FillPr(ctx, rfq.RfqID, dto.FillPrRequest{PrNumber: "PR-3"}, suite.purchaser)

	suite.Require().Error(err)
	suite.Nil(pr)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPrRepo.AssertNotCalled(suite.T(), "CreatePrRecordAndCompleteRfq", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PrServiceTestSuite) TestFillPr_EmptyRfq() {
	ctx := context.Background()
	rfq, _ := approvedRfq()

	suite.mockLineRepo.On("FindRfqByID", ctx, rfq.RfqID).Return(rfq, nil).Once()
	suite.mockPrRepo.On("FindPrRecordByRfqID", ctx, rfq.RfqID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockLineRepo.On("ListLineItemsByRfq", ctx, rfq.RfqID).Return([]domain.RfqLineItem{}, nil).Once()

	pr, err := suite.service.FillPr(ctx, rfq.RfqID, dto.FillPrRequest{PrNumber: "PR-4"}, suite.purchaser)

	suite.Require().Error(err)
	suite.Nil(pr)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PrServiceTestSuite) TestFillPr_RfqNotFound() {
	ctx := context.Background()
	rfqID := uuid.NewString()

	suite.mockLineRepo.On("FindRfqByID", ctx, rfqID).Return(nil, apperrors.ErrNotFound).Once()

	pr, err := suite.service.FillPr(ctx, rfqID, dto.FillPrRequest{PrNumber: "PR-5"}, suite.purchaser)

	suite.Require().Error(err)
	suite.Nil(pr)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- ConfirmPr ---

func filledPr(rfqID string) *domain.PrRecord {
	confirmer := uuid.NewString()
	return &domain.PrRecord{
		RfqID:                 rfqID,
		PrNumber:              "PR-2026-0042",
		ConfirmationStatus:    domain.PrConfirmed,
		DepartmentConfirmerID: &confirmer,
		Version:               1,
	}
}

func (suite *PrServiceTestSuite) TestConfirmPr_Confirm() {
	ctx := context.Background()
	rfqID := uuid.NewString()
	pr := filledPr(rfqID)
	notes := "quantities verified"

	suite.mockPrRepo.On("FindPrRecordByRfqID", ctx, rfqID).Return(pr, nil).Once()
	suite.mockPrRepo.On("UpdatePrConfirmation", ctx, mock.MatchedBy(func(p domain.PrRecord) bool {
		return p.ConfirmationStatus == domain.PrConfirmed &&
			p.DepartmentConfirmerID != nil && *p.DepartmentConfirmerID == suite.deptUser.UserID &&
			p.Version == 2
	}), int64(1), true).Return(nil).Once()
	suite.mockAudit.On("AppendHistoryEntry", ctx, mock.MatchedBy(func(e domain.ApprovalHistoryEntry) bool {
		return e.Action == domain.ActionPrConfirmed
	})).Return(nil).Once()

	updated, err := suite.service.ConfirmPr(ctx, rfqID, dto.ConfirmPrRequest{ConfirmationStatus: "CONFIRMED", ConfirmationNotes: &notes}, suite.deptUser)

	suite.Require().NoError(err)
	suite.Equal(domain.PrConfirmed, updated.ConfirmationStatus)
	suite.mockPrRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *PrServiceTestSuite) TestConfirmPr_Reject() {
	ctx := context.Background()
	rfqID := uuid.NewString()
	pr := filledPr(rfqID)

	suite.mockPrRepo.On("FindPrRecordByRfqID", ctx, rfqID).Return(pr, nil).Once()
	suite.mockPrRepo.On("UpdatePrConfirmation", ctx, mock.MatchedBy(func(p domain.PrRecord) bool {
		return p.ConfirmationStatus == domain.PrRejected
	}), int64(1), false).Return(nil).Once()
	suite.mockAudit.On("AppendHistoryEntry", ctx, mock.MatchedBy(func(e domain.ApprovalHistoryEntry) bool {
		return e.Action == domain.ActionPrRejected
	})).Return(nil).Once()

	updated, err := suite.service.ConfirmPr(ctx, rfqID, dto.ConfirmPrRequest{ConfirmationStatus: "REJECTED"}, suite.deptUser)

	suite.Require().NoError(err)
	suite.Equal(domain.PrRejected, updated.ConfirmationStatus)
	suite.mockPrRepo.AssertExpectations(suite.T())
}

func (suite *PrServiceTestSuite) TestConfirmPr_UnknownVerdict() {
	ctx := context.Background()

	updated, err := suite.service.ConfirmPr(ctx, uuid.NewString(), dto.ConfirmPrRequest{ConfirmationStatus: "PENDING"}, suite.deptUser)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPrRepo.AssertNotCalled(suite.T(), "FindPrRecordByRfqID", mock.Anything, mock.Anything)
}

func (suite *PrServiceTestSuite) TestConfirmPr_VersionConflict() {
	ctx := context.Background()
	rfqID := uuid.NewString()
	pr := filledPr(rfqID)

	suite.mockPrRepo.On("FindPrRecordByRfqID", ctx, rfqID).Return(pr, nil).Once()
	suite.mockPrRepo.On("UpdatePrConfirmation", ctx, mock.AnythingOfType("domain.PrRecord"), int64(1), true).Return(apperrors.ErrConflict).Once()

	updated, err := suite.service.ConfirmPr(ctx, rfqID, dto.ConfirmPrRequest{ConfirmationStatus: "CONFIRMED"}, suite.deptUser)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockAudit.AssertNotCalled(suite.T(), "AppendHistoryEntry", mock.Anything, mock.Anything)
}

// --- GetPrRecord ---

func (suite *PrServiceTestSuite) TestGetPrRecord_Success() {
	ctx := context.Background()
	rfqID := uuid.NewString()
	pr := filledPr(rfqID)

	suite.mockPrRepo.On("FindPrRecordByRfqID", ctx, rfqID).Return(pr, nil).Once()

	got, err := suite.service.GetPrRecord(ctx, rfqID)

	suite.Require().NoError(err)
	suite.Equal(pr, got)
}

func (suite *PrServiceTestSuite) TestGetPrRecord_NotFound() {
	ctx := context.Background()
	rfqID := uuid.NewString()

	suite.mockPrRepo.On("FindPrRecordByRfqID", ctx, rfqID).Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.GetPrRecord(ctx, rfqID)

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestPrServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PrServiceTestSuite))
}
