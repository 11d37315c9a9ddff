package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/openprocure/procurement_backend/internal/apperrors"
	portssvc "github.com/openprocure/procurement_backend/internal/core/ports/services"
	"github.com/openprocure/procurement_backend/internal/dto"
	"github.com/openprocure/procurement_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// approvalHandler handles HTTP requests for the line-item approval workflow.
type approvalHandler struct {
	approvalService portssvc.ApprovalSvcFacade
}

// newApprovalHandler creates a new approvalHandler.
func newApprovalHandler(as portssvc.ApprovalSvcFacade) *approvalHandler {
	return &approvalHandler{
		approvalService: as,
	}
}

// registerApprovalRoutes registers routes for the line-item approval workflow.
func registerApprovalRoutes(rg *gin.RouterGroup, approvalService portssvc.ApprovalSvcFacade) {
	h := newApprovalHandler(approvalService)

	rg.POST("/rfqs/:rfqID/line-items/:lineItemID/submit", h.submitLineItem)
	rg.POST("/rfqs/:rfqID/line-items/:lineItemID/decision", h.directorDecision)
	rg.POST("/rfqs/:rfqID/line-items/:lineItemID/invitations", h.invitePurchasers)
	rg.GET("/approvals/pending", h.listPendingApprovals)
	rg.GET("/line-items/:lineItemID/history", h.getApprovalHistory)
}

// respondWorkflowError maps the workflow sentinel errors onto HTTP statuses.
func respondWorkflowError(c *gin.Context, logger *slog.Logger, err error, internalMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		logger.Error(internalMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalMsg})
	}
}

// submitLineItem godoc
// @Summary Submit a line item for director approval
// @Description Records the purchaser's selected quote and moves the line item to PENDING_DIRECTOR_APPROVAL
// @Tags approvals
// @Accept  json
// @Produce  json
// @Param   rfqID path string true "RFQ ID"
// @Param   lineItemID path string true "Line Item ID"
// @Param   submission body dto.SubmitLineItemRequest true "Quote selection"
// @Success 200 {object} dto.LineItemResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Missing capability"
// @Failure 404 {object} map[string]string "Line item not found"
// @Failure 422 {object} map[string]string "Invalid transition"
// @Security BearerAuth
// @Router /rfqs/{rfqID}/line-items/{lineItemID}/submit [post]
func (h *approvalHandler) submitLineItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rfqID := c.Param("rfqID")
	lineItemID := c.Param("lineItemID")

	var req dto.SubmitLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SubmitLineItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	item, err := h.approvalService.SubmitLineItem(c.Request.Context(), rfqID, lineItemID, req.SelectedQuoteID, actor)
	if err != nil {
		respondWorkflowError(c, logger, err, "Failed to submit line item")
		return
	}

	c.JSON(http.StatusOK, dto.ToLineItemResponse(item))
}

// directorDecision godoc
// @Summary Apply a director decision
// @Description Approves or rejects a pending line item; a rejection with a new quote reopens the cycle
// @Tags approvals
// @Accept  json
// @Produce  json
// @Param   rfqID path string true "RFQ ID"
// @Param   lineItemID path string true "Line Item ID"
// @Param   decision body dto.DirectorDecisionRequest true "Decision"
// @Success 200 {object} dto.LineItemResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Missing capability"
// @Failure 404 {object} map[string]string "Line item not found"
// @Failure 409 {object} map[string]string "Concurrent decision already applied"
// @Failure 422 {object} map[string]string "Line item not pending"
// @Security BearerAuth
// @Router /rfqs/{rfqID}/line-items/{lineItemID}/decision [post]
func (h *approvalHandler) directorDecision(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rfqID := c.Param("rfqID")
	lineItemID := c.Param("lineItemID")

	var req dto.DirectorDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for DirectorDecision", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	item, err := h.approvalService.DirectorApprove(c.Request.Context(), rfqID, lineItemID, req, actor)
	if err != nil {
		respondWorkflowError(c, logger, err, "Failed to apply director decision")
		return
	}

	c.JSON(http.StatusOK, dto.ToLineItemResponse(item))
}

// invitePurchasers godoc
// @Summary Invite purchasers to quote a line item
// @Description Records one invitation per purchaser without changing the line item's status
// @Tags approvals
// @Accept  json
// @Produce  json
// @Param   rfqID path string true "RFQ ID"
// @Param   lineItemID path string true "Line Item ID"
// @Param   invitations body dto.InvitePurchasersRequest true "Invitees"
// @Success 201 {object} map[string]int "Number of invitations created"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Missing capability"
// @Failure 404 {object} map[string]string "Line item not found"
// @Security BearerAuth
// @Router /rfqs/{rfqID}/line-items/{lineItemID}/invitations [post]
func (h *approvalHandler) invitePurchasers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rfqID := c.Param("rfqID")
	lineItemID := c.Param("lineItemID")

	var req dto.InvitePurchasersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for InvitePurchasers", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invitations, err := h.approvalService.InvitePurchasers(c.Request.Context(), rfqID, lineItemID, req.PurchaserIDs, req.Message, actor)
	if err != nil {
		respondWorkflowError(c, logger, err, "Failed to invite purchasers")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"invited": len(invitations)})
}

// listPendingApprovals godoc
// @Summary List line items awaiting review
// @Description Directors see every item in the requested status; purchasers only their own submissions
// @Tags approvals
// @Produce  json
// @Param   status query string false "Line item status filter (default PENDING_DIRECTOR_APPROVAL)"
// @Param   limit query int false "Page size (default 20)"
// @Param   nextToken query string false "Continuation token"
// @Success 200 {object} dto.ListPendingApprovalsResponse
// @Failure 400 {object} map[string]string "Unknown status"
// @Failure 403 {object} map[string]string "Missing capability"
// @Security BearerAuth
// @Router /approvals/pending [get]
func (h *approvalHandler) listPendingApprovals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListPendingApprovalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.approvalService.GetPendingApprovals(c.Request.Context(), actor, params)
	if err != nil {
		respondWorkflowError(c, logger, err, "Failed to list pending approvals")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getApprovalHistory godoc
// @Summary Get the approval history of a line item
// @Description Returns the append-only audit trail for a line item, oldest first
// @Tags approvals
// @Produce  json
// @Param   lineItemID path string true "Line Item ID"
// @Success 200 {array} dto.ApprovalHistoryEntryResponse
// @Failure 500 {object} map[string]string "Failed to retrieve history"
// @Security BearerAuth
// @Router /line-items/{lineItemID}/history [get]
func (h *approvalHandler) getApprovalHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	lineItemID := c.Param("lineItemID")

	entries, err := h.approvalService.GetApprovalHistory(c.Request.Context(), lineItemID)
	if err != nil {
		respondWorkflowError(c, logger, err, "Failed to retrieve approval history")
		return
	}

	c.JSON(http.StatusOK, dto.ToApprovalHistoryResponses(entries))
}
