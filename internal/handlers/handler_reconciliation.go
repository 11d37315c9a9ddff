package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/openprocure/procurement_backend/internal/core/ports/services"
	"github.com/openprocure/procurement_backend/internal/dto"
	"github.com/openprocure/procurement_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// reconciliationHandler handles HTTP requests for invoice reconciliation.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

// newReconciliationHandler creates a new reconciliationHandler.
func newReconciliationHandler(rs portssvc.ReconciliationSvcFacade) *reconciliationHandler {
	return &reconciliationHandler{
		reconciliationService: rs,
	}
}

// registerReconciliationRoutes registers routes for the reconciliation workflow.
func registerReconciliationRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newReconciliationHandler(reconciliationService)

	reconciliations := rg.Group("/reconciliations")
	{
		reconciliations.POST("", h.submitForMatching)
		reconciliations.GET("", h.listReconciliations)
		reconciliations.GET("/:id", h.getReconciliation)
		reconciliations.POST("/:id/receipts", h.attachReceipts)
		reconciliations.POST("/:id/dispute/resolution", h.resolveDispute)
		reconciliations.POST("/:id/approve", h.approveReconciliation)
		reconciliations.POST("/:id/settle", h.settleReconciliation)
	}
}

// submitForMatching godoc
// @Summary Submit an invoice for matching
// @Description Creates a reconciliation record and runs the matching algorithm against the linked receipts
// @Tags reconciliations
// @Accept  json
// @Produce  json
// @Param   matching body dto.SubmitMatchingRequest true "Invoice and receipts"
// @Success 201 {object} dto.ReconciliationResponse
// @Failure 400 {object} map[string]string "Invoice does not belong to the supplier"
// @Failure 403 {object} map[string]string "Missing capability"
// @Failure 404 {object} map[string]string "Invoice or receipt not found"
// @Security BearerAuth
// @Router /reconciliations [post]
func (h *reconciliationHandler) submitForMatching(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SubmitMatchingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SubmitForMatching", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	record, err := h.reconciliationService.SubmitForMatching(c.Request.Context(), req, actor)
	if err != nil {
		respondWorkflowError(c, logger, err, "Failed to submit invoice for matching")
		return
	}

	c.JSON(http.StatusCreated, dto.ToReconciliationResponse(record))
}

// attachReceipts godoc
// @Summary Attach further receipts to a reconciliation
// @Description Links additional warehouse receipts and re-runs matching; approved and settled records are immutable
// @Tags reconciliations
// @Accept  json
// @Produce  json
// @Param   id path string true "Reconciliation ID"
// @Param   receipts body dto.AttachReceiptsRequest true "Receipt IDs"
// @Success 200 {object} dto.ReconciliationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Reconciliation or receipt not found"
// @Failure 422 {object} map[string]string "Record locked for payment"
// @Security BearerAuth
// @Router /reconciliations/{id}/receipts [post]
func (h *reconciliationHandler) attachReceipts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reconciliationID := c.Param("id")

	var req dto.AttachReceiptsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AttachReceipts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	record, err := h.reconciliationService.AttachReceipts(c.Request.Context(), reconciliationID, req.ReceiptIDs, actor)
	if err != nil {
		respondWorkflowError(c, logger, err, "Failed to attach receipts")
		return
	}

	c.JSON(http.StatusOK, dto.ToReconciliationResponse(record))
}

// resolveDispute godoc
// @Summary Resolve a disputed reconciliation
// @Description ADJUST replaces the expected amount, REMATCH recomputes, ESCALATE keeps the dispute on file
// @Tags reconciliations
// @Accept  json
// @Produce  json
// @Param   id path string true "Reconciliation ID"
// @Param   resolution body dto.ResolveDisputeRequest true "Resolution"
// @Success 200 {object} dto.ReconciliationResponse
// @Failure 400 {object} map[string]string "Adjusted amount required"
// @Failure 403 {object} map[string]string "Reconciliation belongs to another supplier"
// @Failure 422 {object} map[string]string "Not disputed"
// @Security BearerAuth
// @Router /reconciliations/{id}/dispute/resolution [post]
func (h *reconciliationHandler) resolveDispute(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reconciliationID := c.Param("id")

	var req dto.ResolveDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ResolveDispute", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	record, err := h.reconciliationService.ResolveDispute(c.Request.Context(), reconciliationID, req, actor)
	if err != nil {
		respondWorkflowError(c, logger, err, "Failed to resolve dispute")
		return
	}

	c.JSON(http.StatusOK, dto.ToReconciliationResponse(record))
}

// approveReconciliation godoc
// @Summary Approve a matched reconciliation
// @Tags reconciliations
// @Produce  json
// @Param   id path string true "Reconciliation ID"
// @Success 200 {object} dto.ReconciliationResponse
// @Failure 403 {object} map[string]string "Missing capability"
// @Failure 409 {object} map[string]string "Concurrent transition already applied"
// @Failure 422 {object} map[string]string "Not in an approvable status"
// @Security BearerAuth
// @Router /reconciliations/{id}/approve [post]
func (h *reconciliationHandler) approveReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reconciliationID := c.Param("id")

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	record, err := h.reconciliationService.ApproveReconciliation(c.Request.Context(), reconciliationID, actor)
	if err != nil {
		respondWorkflowError(c, logger, err, "Failed to approve reconciliation")
		return
	}

	c.JSON(http.StatusOK, dto.ToReconciliationResponse(record))
}

// settleReconciliation godoc
// @Summary Settle an approved reconciliation
// @Description Locks the record for payment processing; no further mutation is permitted
// @Tags reconciliations
// @Produce  json
// @Param   id path string true "Reconciliation ID"
// @Success 200 {object} dto.ReconciliationResponse
// @Failure 403 {object} map[string]string "Missing capability"
// @Failure 422 {object} map[string]string "Not approved"
// @Security BearerAuth
// @Router /reconciliations/{id}/settle [post]
func (h *reconciliationHandler) settleReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reconciliationID := c.Param("id")

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	record, err := h.reconciliationService.SettleReconciliation(c.Request.Context(), reconciliationID, actor)
	if err != nil {
		respondWorkflowError(c, logger, err, "Failed to settle reconciliation")
		return
	}

	c.JSON(http.StatusOK, dto.ToReconciliationResponse(record))
}

// getReconciliation godoc
// @Summary Get a reconciliation record
// @Tags reconciliations
// @Produce  json
// @Param   id path string true "Reconciliation ID"
// @Success 200 {object} dto.ReconciliationResponse
// @Failure 404 {object} map[string]string "Reconciliation not found"
// @Security BearerAuth
// @Router /reconciliations/{id} [get]
func (h *reconciliationHandler) getReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reconciliationID := c.Param("id")

	record, err := h.reconciliationService.GetReconciliation(c.Request.Context(), reconciliationID)
	if err != nil {
		respondWorkflowError(c, logger, err, "Failed to retrieve reconciliation")
		return
	}

	c.JSON(http.StatusOK, dto.ToReconciliationResponse(record))
}

// listReconciliations godoc
// @Summary List reconciliation records
// @Description Supplier-affiliated actors are always scoped to their own supplier
// @Tags reconciliations
// @Produce  json
// @Param   supplierID query string false "Supplier filter"
// @Param   limit query int false "Page size (default 20)"
// @Param   nextToken query string false "Continuation token"
// @Success 200 {object} dto.ListReconciliationsResponse
// @Security BearerAuth
// @Router /reconciliations [get]
func (h *reconciliationHandler) listReconciliations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListReconciliationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.reconciliationService.ListReconciliations(c.Request.Context(), actor, params)
	if err != nil {
		respondWorkflowError(c, logger, err, "Failed to list reconciliations")
		return
	}

	c.JSON(http.StatusOK, resp)
}
