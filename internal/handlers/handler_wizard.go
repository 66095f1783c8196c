package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	portssvc "github.com/JuanseMastrangelo/asset-movements-console/internal/core/ports/services"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/dto"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/middleware"
	"github.com/gin-gonic/gin"
)

// wizardHandler serves the wizard controller and its four steps.
type wizardHandler struct {
	wizardService portssvc.WizardSvcFacade
	maxFiles      int
	maxFileBytes  int64
}

func newWizardHandler(ws portssvc.WizardSvcFacade, maxFiles int, maxFileBytes int64) *wizardHandler {
	return &wizardHandler{wizardService: ws, maxFiles: maxFiles, maxFileBytes: maxFileBytes}
}

// registerWizardRoutes registers the wizard routes on the authenticated group.
func registerWizardRoutes(rg *gin.RouterGroup, ws portssvc.WizardSvcFacade, maxFiles int, maxFileBytes int64) {
	h := newWizardHandler(ws, maxFiles, maxFileBytes)

	wizards := rg.Group("/wizards")
	{
		wizards.POST("", h.startWizard)
		wizards.GET("/:wizardID", h.getWizard)
		wizards.DELETE("/:wizardID", h.discardWizard)
		wizards.GET("/:wizardID/events", h.listWizardEvents)

		clients := wizards.Group("/:wizardID/clients")
		{
			clients.GET("", h.listClients)
			clients.POST("", h.createClient)
			clients.PUT("/selection", h.selectClient)
			clients.POST("/complete", h.completeClientStep)
			clients.POST("/:clientID/report", h.sendClientReport)
		}

		operation := wizards.Group("/:wizardID/operation")
		{
			operation.GET("", h.loadOperation)
			operation.POST("/preview", h.previewOperation)
			operation.POST("", h.submitOperation)
		}

		values := wizards.Group("/:wizardID/values")
		{
			values.GET("", h.loadValues)
			values.POST("/preview", h.applyValuesChange)
			values.POST("", h.submitValues)
		}

		logistics := wizards.Group("/:wizardID/logistics")
		{
			logistics.GET("", h.loadLogistics)
			logistics.POST("/quote", h.quoteLogistics)
			logistics.POST("/link", h.linkLogistics)
			logistics.PATCH("/status", h.updateLogisticsStatus)
			logistics.GET("/summary", h.logisticsSummary)
			logistics.POST("/complete", h.completeLogisticsStep)
		}
	}
}

// startWizard godoc
// @Summary Start a wizard
// @Description Opens a wizard. With a transactionId the existing transaction is fetched and the wizard resumes at the logistics step when logistics are linked, otherwise at the operation step.
// @Tags wizards
// @Accept json
// @Produce json
// @Param wizard body dto.StartWizardRequest false "Transaction to resume"
// @Success 201 {object} dto.WizardView
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Transaction not found"
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /wizards [post]
func (h *wizardHandler) startWizard(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req dto.StartWizardRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBindError(c, err)
		return
	}

	view, err := h.wizardService.StartWizard(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "start wizard")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Wizard started",
		slog.String("wizard_id", view.WizardID),
		slog.String("step", string(view.CurrentStep)))
	c.JSON(http.StatusCreated, view)
}

// getWizard godoc
// @Summary Get wizard state
// @Tags wizards
// @Produce json
// @Param wizardID path string true "Wizard ID"
// @Success 200 {object} dto.WizardView
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /wizards/{wizardID} [get]
func (h *wizardHandler) getWizard(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := h.wizardService.GetWizard(c.Request.Context(), id, c.Param("wizardID"))
	if err != nil {
		respondError(c, err, "get wizard")
		return
	}
	c.JSON(http.StatusOK, view)
}

// discardWizard godoc
// @Summary Discard a wizard
// @Description Drops the wizard. Requests still running for it answer 410.
// @Tags wizards
// @Param wizardID path string true "Wizard ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /wizards/{wizardID} [delete]
func (h *wizardHandler) discardWizard(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	if err := h.wizardService.DiscardWizard(c.Request.Context(), id, c.Param("wizardID")); err != nil {
		respondError(c, err, "discard wizard")
		return
	}
	c.Status(http.StatusNoContent)
}

// listWizardEvents godoc
// @Summary List wizard events
// @Description Pages through the wizard's audit journal, oldest first.
// @Tags wizards
// @Produce json
// @Param wizardID path string true "Wizard ID"
// @Param limit query int false "Page size (1-100)"
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListEventsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /wizards/{wizardID}/events [get]
func (h *wizardHandler) listWizardEvents(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var params dto.ListEventsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	resp, err := h.wizardService.ListWizardEvents(c.Request.Context(), id, c.Param("wizardID"), params)
	if err != nil {
		respondError(c, err, "list wizard events")
		return
	}
	c.JSON(http.StatusOK, resp)
}
