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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LineItemRepository ---
type MockLineItemRepository struct {
	mock.Mock
}

func (m *MockLineItemRepository) FindRfqByID(ctx context.Context, rfqID string) (*domain.Rfq, error) {
	args := m.Called(ctx, rfqID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rfq), args.Error(1)
}

func (m *MockLineItemRepository) FindLineItemByID(ctx context.Context, rfqID, lineItemID string) (*domain.RfqLineItem, error) {
	args := m.Called(ctx, rfqID, lineItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RfqLineItem), args.Error(1)
}

func (m *MockLineItemRepository) ListLineItemsByRfq(ctx context.Context, rfqID string) ([]domain.RfqLineItem, error) {
	args := m.Called(ctx, rfqID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RfqLineItem), args.Error(1)
}

func (m *MockLineItemRepository) ListLineItemsByStatus(ctx context.Context, status domain.LineItemStatus, submittedBy *string, limit int, nextToken *string) ([]domain.RfqLineItem, *string, error) {
	args := m.Called(ctx, status, submittedBy, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.RfqLineItem), token, args.Error(2)
}

func (m *MockLineItemRepository) UpdateLineItemSubmission(ctx context.Context, item domain.RfqLineItem, expectedVersion int64) error {
	args := m.Called(ctx, item, expectedVersion)
	return args.Error(0)
}

func (m *MockLineItemRepository) UpdateLineItemDecision(ctx context.Context, item domain.RfqLineItem, expectedVersion int64) error {
	args := m.Called(ctx, item, expectedVersion)
	return args.Error(0)
}

func (m *MockLineItemRepository) SaveInvitations(ctx context.Context, invitations []domain.PurchaserInvitation) error {
	args := m.Called(ctx, invitations)
	return args.Error(0)
}

// --- Mock AuditRepository ---
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) AppendHistoryEntry(ctx context.Context, entry domain.ApprovalHistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) ListHistoryByEntity(ctx context.Context, entityType domain.AuditEntityType, entityID string) ([]domain.ApprovalHistoryEntry, error) {
	args := m.Called(ctx, entityType, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApprovalHistoryEntry), args.Error(1)
}

func newActor(role domain.Role) domain.Actor {
	return domain.Actor{
		UserID:       uuid.NewString(),
		Name:         "Test Actor",
		Role:         role,
		Capabilities: domain.CapabilitiesForRole(role),
	}
}

// --- Test Suite ---
type ApprovalServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockLineItemRepository
	mockAudit *MockAuditRepository
	service   portssvc.ApprovalSvcFacade
	purchaser domain.Actor
	director  domain.Actor
}

func (suite *ApprovalServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockLineItemRepository)
	suite.mockAudit = new(MockAuditRepository)
	gate := services.NewPermissionGate()
	recorder := services.NewAuditTrailRecorder(suite.mockAudit)
	suite.service = services.NewApprovalService(suite.mockRepo, suite.mockAudit, gate, recorder)
	suite.purchaser = newActor(domain.RolePurchaser)
	suite.director = newActor(domain.RoleDirector)
}

func draftItem(rfqID string) *domain.RfqLineItem {
	return &domain.RfqLineItem{
		LineItemID:  uuid.NewString(),
		RfqID:       rfqID,
		Description: "Industrial fasteners",
		Status:      domain.LineItemDraft,
		Version:     1,
	}
}

// --- SubmitLineItem ---

func (suite *ApprovalServiceTestSuite) TestSubmitLineItem_Success() {
	ctx := context.Background()
	rfqID := uuid.NewString()
	quoteID := uuid.NewString()
	item := draftItem(rfqID)

	suite.mockRepo.On("FindLineItemByID", ctx, rfqID, item.LineItemID).Return(item, nil).Once()
	suite.mockRepo.On("UpdateLineItemSubmission", ctx, mock.MatchedBy(func(li domain.RfqLineItem) bool {
		return li.Status == domain.LineItemPending &&
			li.SelectedQuoteID != nil && *li.SelectedQuoteID == quoteID &&
			li.SubmittedBy != nil && *li.SubmittedBy == suite.purchaser.UserID &&
			li.Version == 2
	}), int64(1)).Return(nil).Once()
	suite.mockAudit.On("AppendHistoryEntry", ctx, mock.MatchedBy(func(e domain.ApprovalHistoryEntry) bool {
		return e.Action == domain.ActionSubmitted &&
			e.PreviousStatus == string(domain.LineItemDraft) &&
			e.NewStatus == string(domain.LineItemPending)
	})).Return(nil).Once()

	updated, err := suite.service.SubmitLineItem(ctx, rfqID, item.LineItemID, quoteID, suite.purchaser)

	suite.Require().NoError(err)
	suite.Require().NotNil(updated)
	suite.Equal(domain.LineItemPending, updated.Status)
	suite.Equal(int64(2), updated.Version)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestSubmitLineItem_MissingQuote() {
	ctx := context.Background()

	updated, err := suite.service.SubmitLineItem(ctx, uuid.NewString(), uuid.NewString(), "", suite.purchaser)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindLineItemByID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestSubmitLineItem_Forbidden() {
	ctx := context.Background()

	updated, err := suite.service.SubmitLineItem(ctx, uuid.NewString(), uuid.NewString(), uuid.NewString(), suite.director)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindLineItemByID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestSubmitLineItem_IdempotentResubmission() {
	ctx := context.Background()
	rfqID := uuid.NewString()
	quoteID := uuid.NewString()
	item := draftItem(rfqID)
	item.Status = domain.LineItemPending
	item.SelectedQuoteID = &quoteID
	item.Version = 2

	suite.mockRepo.On("FindLineItemByID", ctx, rfqID, item.LineItemID).Return(item, nil).Once()
	suite.mockAudit.On("AppendHistoryEntry", ctx, mock.MatchedBy(func(e domain.ApprovalHistoryEntry) bool {
		return e.Action == domain.ActionResubmitted &&
			e.PreviousStatus == string(domain.LineItemPending) &&
			e.NewStatus == string(domain.LineItemPending)
	})).Return(nil).Once()

	updated, err := suite.service.SubmitLineItem(ctx, rfqID, item.LineItemID, quoteID, suite.purchaser)

	suite.Require().NoError(err)
	suite.Equal(int64(2), updated.Version)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateLineItemSubmission", mock.Anything, mock.Anything, mock.Anything)
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestSubmitLineItem_DifferentQuoteWhilePending() {
	ctx := context.Background()
	rfqID := uuid.NewString()
	existingQuote := uuid.NewString()
	item := draftItem(rfqID)
	item.Status = domain.LineItemPending
	item.SelectedQuoteID = &existingQuote

	suite.mockRepo.On("FindLineItemByID", ctx, rfqID, item.LineItemID).Return(item, nil).Once()

	updated, err := suite.service.SubmitLineItem(ctx, rfqID, item.LineItemID, uuid.NewString(), suite.purchaser)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrTransition)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateLineItemSubmission", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestSubmitLineItem_TerminalStatus() {
	ctx := context.Background()
	rfqID := uuid.NewString()
	item := draftItem(rfqID)
	item.Status = domain.LineItemApproved

	suite.mockRepo.On("FindLineItemByID", ctx, rfqID, item.LineItemID).Return(item, nil).Once()

	updated, err := suite.service.SubmitLineItem(ctx, rfqID, item.LineItemID, uuid.NewString(), suite.purchaser)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrTransition)
}

func (suite *ApprovalServiceTestSuite) TestSubmitLineItem_AfterRequote() {
	ctx := context.Background()
	rfqID := uuid.NewString()
	newQuote := uuid.NewString()
	item := draftItem(rfqID)
	item.Status = domain.LineItemRequoted
	item.Version = 3

	suite.mockRepo.On("FindLineItemByID", ctx, rfqID, item.LineItemID).Return(item, nil).Once()
	suite.mockRepo.On("UpdateLineItemSubmission", ctx, mock.MatchedBy(func(li domain.RfqLineItem) bool {
		return li.Status == domain.LineItemPending && li.Version == 4
	}), int64(3)).Return(nil).Once()
	suite.mockAudit.On("AppendHistoryEntry", ctx, mock.MatchedBy(func(e domain.ApprovalHistoryEntry) bool {
		return e.Action == domain.ActionResubmitted &&
			e.PreviousStatus == string(domain.LineItemRequoted)
	})).Return(nil).Once()

	updated, err := suite.service.SubmitLineItem(ctx, rfqID, item.LineItemID, newQuote, suite.purchaser)

	suite.Require().NoError(err)
	suite.Equal(domain.LineItemPending, updated.Status)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

// --- DirectorApprove ---

func pendingItem(rfqID string) *domain.RfqLineItem {
	quoteID := uuid.NewString()
	item := draftItem(rfqID)
	item.Status = domain.LineItemPending
	item.SelectedQuoteID = &quoteID
	item.Version = 2
	return item
}

func (suite *ApprovalServiceTestSuite) TestDirectorApprove_Approve() {
	ctx := context.Background()
	rfqID := uuid.NewString()
	item := pendingItem(rfqID)

	suite.mockRepo.On("FindLineItemByID", ctx, rfqID, item.LineItemID).Return(item, nil).Once()
	suite.mockRepo.On("UpdateLineItemDecision", ctx, mock.MatchedBy(func(li domain.RfqLineItem) bool {
		return li.Status == domain.LineItemApproved &&
			li.DirectorDecision != nil && *li.DirectorDecision == domain.DecisionApprove &&
			li.Version == 3
	}), int64(2)).Return(nil).Once()
	suite.mockAudit.On("AppendHistoryEntry", ctx, mock.MatchedBy(func(e domain.ApprovalHistoryEntry) bool {
		return e.Action == domain.ActionApproved && e.NewStatus == string(domain.LineItemApproved)
	})).Return(nil).Once()

	updated, err := suite.service.DirectorApprove(ctx, rfqID, item.LineItemID, dto.DirectorDecisionRequest{Decision: "APPROVE"}, suite.director)

	suite.Require().NoError(err)
	suite.Equal(domain.LineItemApproved, updated.Status)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestDirectorApprove_RejectTerminal() {
	ctx := context.Background()
	rfqID := uuid.NewString()
	item := pendingItem(rfqID)

	suite.mockRepo.On("FindLineItemByID", ctx, rfqID, item.LineItemID).Return(item, nil).Once()
	suite.mockRepo.On("UpdateLineItemDecision", ctx, mock.MatchedBy(func(li domain.RfqLineItem) bool {
		return li.Status == domain.LineItemRejected &&
			li.DecisionComments != nil && *li.DecisionComments == "over budget"
	}), int64(2)).Return(nil).Once()
	suite.mockAudit.On("AppendHistoryEntry", ctx, mock.MatchedBy(func(e domain.ApprovalHistoryEntry) bool {
		return e.Action == domain.ActionRejected && e.NewStatus == string(domain.LineItemRejected)
	})).Return(nil).Once()

	updated, err := suite.service.DirectorApprove(ctx, rfqID, item.LineItemID, dto.DirectorDecisionRequest{Decision: "REJECT", Comments: "over budget"}, suite.director)

	suite.Require().NoError(err)
	suite.Equal(domain.LineItemRejected, updated.Status)
	suite.True(domain.IsTerminalLineItemStatus(updated.Status))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestDirectorApprove_RejectWithRequote() {
	ctx := context.Background()
	rfqID := uuid.NewString()
	newQuote := uuid.NewString()
	item := pendingItem(rfqID)

	suite.mockRepo.On("FindLineItemByID", ctx, rfqID, item.LineItemID).Return(item, nil).Once()
	suite.mockRepo.On("UpdateLineItemDecision", ctx, mock.MatchedBy(func(li domain.RfqLineItem) bool {
		return li.Status == domain.LineItemRequoted &&
			li.SelectedQuoteID != nil && *li.SelectedQuoteID == newQuote
	}), int64(2)).Return(nil).Once()
	suite.mockAudit.On("AppendHistoryEntry", ctx, mock.MatchedBy(func(e domain.ApprovalHistoryEntry) bool {
		return e.Action == domain.ActionRequoted && e.NewStatus == string(domain.LineItemRequoted)
	})).Return(nil).Once()

	updated, err := suite.service.DirectorApprove(ctx, rfqID, item.LineItemID, dto.DirectorDecisionRequest{Decision: "REJECT", NewQuoteID: &newQuote}, suite.director)

	suite.Require().NoError(err)
	suite.Equal(domain.LineItemRequoted, updated.Status)
	suite.False(domain.IsTerminalLineItemStatus(updated.Status))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestDirectorApprove_ConcurrentDecisionConflict() {
	ctx := context.Background()
	rfqID := uuid.NewString()
	item := pendingItem(rfqID)

	suite.mockRepo.On("FindLineItemByID", ctx, rfqID, item.LineItemID).Return(item, nil).Once()
	suite.mockRepo.On("UpdateLineItemDecision", ctx, mock.AnythingOfType("domain.RfqLineItem"), int64(2)).Return(apperrors.ErrConflict).Once()

	updated, err := suite.service.DirectorApprove(ctx, rfqID, item.LineItemID, dto.DirectorDecisionRequest{Decision: "REJECT"}, suite.director)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrConflict)
	// The losing decision must leave no trace in the audit trail.
	suite.mockAudit.AssertNotCalled(suite.T(), "AppendHistoryEntry", mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestDirectorApprove_NotPending() {
	ctx := context.Background()
	rfqID := uuid.NewString()
	item := draftItem(rfqID)
	item.Status = domain.LineItemApproved

	suite.mockRepo.On("FindLineItemByID", ctx, rfqID, item.LineItemID).Return(item, nil).Once()

	updated, err := suite.service.DirectorApprove(ctx, rfqID, item.LineItemID, dto.DirectorDecisionRequest{Decision: "APPROVE"}, suite.director)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrTransition)
}

func (suite *ApprovalServiceTestSuite) TestDirectorApprove_UnknownDecision() {
	ctx := context.Background()
	rfqID := uuid.NewString()
	item := pendingItem(rfqID)

	suite.mockRepo.On("FindLineItemByID", ctx, rfqID, item.LineItemID).Return(item, nil).Once()

	updated, err := suite.service.DirectorApprove(ctx, rfqID, item.LineItemID, dto.DirectorDecisionRequest{Decision: "MAYBE"}, suite.director)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ApprovalServiceTestSuite) TestDirectorApprove_Forbidden() {
	ctx := context.Background()

	updated, err := suite.service.DirectorApprove(ctx, uuid.NewString(), uuid.NewString(), dto.DirectorDecisionRequest{Decision: "APPROVE"}, suite.purchaser)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindLineItemByID", mock.Anything, mock.Anything, mock.Anything)
}

// --- Re-quote cycle end to end ---

func (suite *ApprovalServiceTestSuite) TestRequoteCycle_AuditEntryPerTransition() {
	ctx := context.Background()
	rfqID := uuid.NewString()
	firstQuote := uuid.NewString()
	secondQuote := uuid.NewString()
	item := draftItem(rfqID)

	suite.mockRepo.On("FindLineItemByID", ctx, rfqID, item.LineItemID).Return(item, nil)
	suite.mockRepo.On("UpdateLineItemSubmission", ctx, mock.AnythingOfType("domain.RfqLineItem"), mock.AnythingOfType("int64")).Return(nil)
	suite.mockRepo.On("UpdateLineItemDecision", ctx, mock.AnythingOfType("domain.RfqLineItem"), mock.AnythingOfType("int64")).Return(nil)
	suite.mockAudit.On("AppendHistoryEntry", ctx, mock.AnythingOfType("domain.ApprovalHistoryEntry")).Return(nil)

	// submit -> reject with requote -> resubmit -> approve
	_, err := suite.service.SubmitLineItem(ctx, rfqID, item.LineItemID, firstQuote, suite.purchaser)
	suite.Require().NoError(err)

	_, err = suite.service.DirectorApprove(ctx, rfqID, item.LineItemID, dto.DirectorDecisionRequest{Decision: "REJECT", NewQuoteID: &secondQuote}, suite.director)
	suite.Require().NoError(err)

	_, err = suite.service.SubmitLineItem(ctx, rfqID, item.LineItemID, secondQuote, suite.purchaser)
	suite.Require().NoError(err)

	_, err = suite.service.DirectorApprove(ctx, rfqID, item.LineItemID, dto.DirectorDecisionRequest{Decision: "APPROVE"}, suite.director)
	suite.Require().NoError(err)

	suite.Equal(domain.LineItemApproved, item.Status)
	suite.Equal(int64(5), item.Version)
	// Four accepted transitions, four audit entries.
	suite.mockAudit.AssertNumberOfCalls(suite.T(), "AppendHistoryEntry", 4)
}

// --- GetPendingApprovals ---

func (suite *ApprovalServiceTestSuite) TestGetPendingApprovals_DirectorSeesAll() {
	ctx := context.Background()
	items := []domain.RfqLineItem{*pendingItem(uuid.NewString())}

	suite.mockRepo.On("ListLineItemsByStatus", ctx, domain.LineItemPending, (*string)(nil), 20, (*string)(nil)).Return(items, nil, nil).Once()

	resp, err := suite.service.GetPendingApprovals(ctx, suite.director, dto.ListPendingApprovalsParams{})

	suite.Require().NoError(err)
	suite.Len(resp.Items, 1)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestGetPendingApprovals_PurchaserScopedToOwn() {
	ctx := context.Background()

	suite.mockRepo.On("ListLineItemsByStatus", ctx, domain.LineItemPending, &suite.purchaser.UserID, 20, (*string)(nil)).Return([]domain.RfqLineItem{}, nil, nil).Once()

	resp, err := suite.service.GetPendingApprovals(ctx, suite.purchaser, dto.ListPendingApprovalsParams{})

	suite.Require().NoError(err)
	suite.Empty(resp.Items)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestGetPendingApprovals_UnknownStatus() {
	ctx := context.Background()

	resp, err := suite.service.GetPendingApprovals(ctx, suite.director, dto.ListPendingApprovalsParams{Status: "SHIPPED"})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- GetApprovalHistory ---

func (suite *ApprovalServiceTestSuite) TestGetApprovalHistory_OrderedEntries() {
	ctx := context.Background()
	lineItemID := uuid.NewString()
	entries := []domain.ApprovalHistoryEntry{
		{Action: domain.ActionSubmitted},
		{Action: domain.ActionRequoted},
		{Action: domain.ActionResubmitted},
		{Action: domain.ActionApproved},
	}

	suite.mockAudit.On("ListHistoryByEntity", ctx, domain.AuditEntityLineItem, lineItemID).Return(entries, nil).Once()

	got, err := suite.service.GetApprovalHistory(ctx, lineItemID)

	suite.Require().NoError(err)
	suite.Len(got, 4)
	suite.Equal(domain.ActionSubmitted, got[0].Action)
	suite.Equal(domain.ActionApproved, got[3].Action)
	suite.mockAudit.AssertExpectations(suite.T())
}

// --- InvitePurchasers ---

func (suite *ApprovalServiceTestSuite) TestInvitePurchasers_Success() {
	ctx := context.Background()
	rfqID := uuid.NewString()
	item := pendingItem(rfqID)
	purchaserA := uuid.NewString()
	purchaserB := uuid.NewString()

	suite.mockRepo.On("FindLineItemByID", ctx, rfqID, item.LineItemID).Return(item, nil).Once()
	suite.mockRepo.On("SaveInvitations", ctx, mock.MatchedBy(func(invs []domain.PurchaserInvitation) bool {
		return len(invs) == 2 && invs[0].InvitedBy == suite.director.UserID
	})).Return(nil).Once()

	invitations, err := suite.service.InvitePurchasers(ctx, rfqID, item.LineItemID, []string{purchaserA, purchaserB, purchaserA}, "please quote", suite.director)

	suite.Require().NoError(err)
	suite.Len(invitations, 2)
	// Invitations never touch the line item status or the audit trail.
	suite.mockAudit.AssertNotCalled(suite.T(), "AppendHistoryEntry", mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestInvitePurchasers_NoInvitees() {
	ctx := context.Background()

	invitations, err := suite.service.InvitePurchasers(ctx, uuid.NewString(), uuid.NewString(), nil, "", suite.director)

	suite.Require().Error(err)
	suite.Nil(invitations)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ApprovalServiceTestSuite) TestSubmitLineItem_NotFound() {
	ctx := context.Background()
	rfqID := uuid.NewString()
	lineItemID := uuid.NewString()

	suite.mockRepo.On("FindLineItemByID", ctx, rfqID, lineItemID).Return(nil, apperrors.ErrNotFound).Once()

	updated, err := suite.service.SubmitLineItem(ctx, rfqID, lineItemID, uuid.NewString(), suite.purchaser)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ApprovalServiceTestSuite) TestSubmitLineItem_RepoFailure() {
	ctx := context.Background()
	rfqID := uuid.NewString()
	item := draftItem(rfqID)
	expectedErr := assert.AnError

	suite.mockRepo.On("FindLineItemByID", ctx, rfqID, item.LineItemID).Return(item, nil).Once()
	suite.mockRepo.On("UpdateLineItemSubmission", ctx, mock.AnythingOfType("domain.RfqLineItem"), int64(1)).Return(expectedErr).Once()

	updated, err := suite.service.SubmitLineItem(ctx, rfqID, item.LineItemID, uuid.NewString(), suite.purchaser)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, expectedErr)
	suite.mockAudit.AssertNotCalled(suite.T(), "AppendHistoryEntry", mock.Anything, mock.Anything)
}

func TestApprovalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ApprovalServiceTestSuite))
}
