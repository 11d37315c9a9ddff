package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/openprocure/procurement_backend/internal/core/ports/services"
	"github.com/openprocure/procurement_backend/internal/dto"
	"github.com/openprocure/procurement_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// prHandler handles HTTP requests for the purchase requisition hand-off.
type prHandler struct {
	prService portssvc.PrSvcFacade
}

// newPrHandler creates a new prHandler.
func newPrHandler(ps portssvc.PrSvcFacade) *prHandler {
	return &prHandler{
		prService: ps,
	}
}

// registerPrRoutes registers routes for the PR workflow.
func registerPrRoutes(rg *gin.RouterGroup, prService portssvc.PrSvcFacade) {
	h := newPrHandler(prService)

	rg.POST("/rfqs/:rfqID/pr", h.fillPr)
	rg.PUT("/rfqs/:rfqID/pr/confirmation", h.confirmPr)
	rg.GET("/rfqs/:rfqID/pr", h.getPrRecord)
}

// fillPr godoc
// @Summary File the PR number for a fully approved RFQ
// @Description Creates the purchase requisition record and completes the RFQ in one transaction
// @Tags pr
// @Accept  json
// @Produce  json
// @Param   rfqID path string true "RFQ ID"
// @Param   pr body dto.FillPrRequest true "PR details"
// @Success 201 {object} dto.PrRecordResponse
// @Failure 400 {object} map[string]string "Line items not all approved"
// @Failure 403 {object} map[string]string "Missing capability"
// @Failure 404 {object} map[string]string "RFQ not found"
// @Failure 409 {object} map[string]string "PR already filled"
// @Security BearerAuth
// @Router /rfqs/{rfqID}/pr [post]
func (h *prHandler) fillPr(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rfqID := c.Param("rfqID")

	var req dto.FillPrRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for FillPr", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	pr, err := h.prService.FillPr(c.Request.Context(), rfqID, req, actor)
	if err != nil {
		respondWorkflowError(c, logger, err, "Failed to fill PR")
		return
	}

	c.JSON(http.StatusCreated, dto.ToPrRecordResponse(pr))
}

// confirmPr godoc
// @Summary Record the department's verdict on a filled PR
// @Tags pr
// @Accept  json
// @Produce  json
// @Param   rfqID path string true "RFQ ID"
// @Param   confirmation body dto.ConfirmPrRequest true "Verdict"
// @Success 200 {object} dto.PrRecordResponse
// @Failure 400 {object} map[string]string "Unknown verdict"
// @Failure 403 {object} map[string]string "Missing capability"
// @Failure 404 {object} map[string]string "PR record not found"
// @Failure 409 {object} map[string]string "Concurrent confirmation already applied"
// @Security BearerAuth
// @Router /rfqs/{rfqID}/pr/confirmation [put]
func (h *prHandler) confirmPr(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rfqID := c.Param("rfqID")

	var req dto.ConfirmPrRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ConfirmPr", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	pr, err := h.prService.ConfirmPr(c.Request.Context(), rfqID, req, actor)
	if err != nil {
		respondWorkflowError(c, logger, err, "Failed to confirm PR")
		return
	}

	c.JSON(http.StatusOK, dto.ToPrRecordResponse(pr))
}

// getPrRecord godoc
// @Summary Get the PR record of an RFQ
// @Tags pr
// @Produce  json
// @Param   rfqID path string true "RFQ ID"
// @Success 200 {object} dto.PrRecordResponse
// @Failure 404 {object} map[string]string "PR record not found"
// @Security BearerAuth
// @Router /rfqs/{rfqID}/pr [get]
func (h *prHandler) getPrRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rfqID := c.Param("rfqID")

	pr, err := h.prService.GetPrRecord(c.Request.Context(), rfqID)
	if err != nil {
		respondWorkflowError(c, logger, err, "Failed to retrieve PR record")
		return
	}

	c.JSON(http.StatusOK, dto.ToPrRecordResponse(pr))
}
