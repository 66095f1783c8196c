package handlers

import (
	"fmt"
	"net/http"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/dto"
	"github.com/gin-gonic/gin"
)

// loadLogistics godoc
// @Summary Load the logistics step
// @Tags logistics-step
// @Produce json
// @Param wizardID path string true "Wizard ID"
// @Success 200 {object} dto.LogisticsView
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /wizards/{wizardID}/logistics [get]
func (h *wizardHandler) loadLogistics(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := h.wizardService.LoadLogistics(c.Request.Context(), id, c.Param("wizardID"))
	if err != nil {
		respondError(c, err, "load logistics")
		return
	}
	c.JSON(http.StatusOK, view)
}

// quoteLogistics godoc
// @Summary Calculate the delivery price
// @Tags logistics-step
// @Accept json
// @Produce json
// @Param wizardID path string true "Wizard ID"
// @Param quote body dto.QuoteLogisticsRequest true "Origin, destination and service"
// @Success 200 {object} dto.LogisticsView
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Logistics already linked"
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /wizards/{wizardID}/logistics/quote [post]
func (h *wizardHandler) quoteLogistics(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req dto.QuoteLogisticsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	view, err := h.wizardService.QuoteLogistics(c.Request.Context(), id, c.Param("wizardID"), req)
	if err != nil {
		respondError(c, err, "calculate logistics price")
		return
	}
	c.JSON(http.StatusOK, view)
}

// linkLogistics godoc
// @Summary Link logistics to the transaction
// @Description Requires a price calculated for the same addresses and service. The record is created with status PENDING.
// @Tags logistics-step
// @Accept json
// @Produce json
// @Param wizardID path string true "Wizard ID"
// @Param logistics body dto.LinkLogisticsRequest true "Logistics form"
// @Success 201 {object} dto.LogisticsView
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "No matching price calculation"
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /wizards/{wizardID}/logistics/link [post]
func (h *wizardHandler) linkLogistics(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req dto.LinkLogisticsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	view, err := h.wizardService.LinkLogistics(c.Request.Context(), id, c.Param("wizardID"), req)
	if err != nil {
		respondError(c, err, "link logistics")
		return
	}
	c.JSON(http.StatusCreated, view)
}

// updateLogisticsStatus godoc
// @Summary Change the delivery status
// @Tags logistics-step
// @Accept json
// @Produce json
// @Param wizardID path string true "Wizard ID"
// @Param status body dto.UpdateLogisticsStatusRequest true "New status"
// @Success 200 {object} dto.LogisticsView
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Nothing linked"
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /wizards/{wizardID}/logistics/status [patch]
func (h *wizardHandler) updateLogisticsStatus(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req dto.UpdateLogisticsStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	view, err := h.wizardService.UpdateLogisticsStatus(c.Request.Context(), id, c.Param("wizardID"), req.Status)
	if err != nil {
		respondError(c, err, "update logistics status")
		return
	}
	c.JSON(http.StatusOK, view)
}

// logisticsSummary godoc
// @Summary Download the logistics summary
// @Tags logistics-step
// @Produce plain
// @Param wizardID path string true "Wizard ID"
// @Success 200 {string} string "Plain-text summary"
// @Failure 422 {object} ErrorResponse "Nothing linked"
// @Security BearerAuth
// @Router /wizards/{wizardID}/logistics/summary [get]
func (h *wizardHandler) logisticsSummary(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	wizardID := c.Param("wizardID")
	summary, err := h.wizardService.LogisticsSummary(c.Request.Context(), id, wizardID)
	if err != nil {
		respondError(c, err, "render logistics summary")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="logistics-%s.txt"`, wizardID))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(summary))
}

// completeLogisticsStep godoc
// @Summary Complete the logistics step
// @Description Finishes the wizard. Logistics are optional.
// @Tags logistics-step
// @Produce json
// @Param wizardID path string true "Wizard ID"
// @Success 200 {object} dto.WizardView
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /wizards/{wizardID}/logistics/complete [post]
func (h *wizardHandler) completeLogisticsStep(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := h.wizardService.CompleteLogisticsStep(c.Request.Context(), id, c.Param("wizardID"))
	if err != nil {
		respondError(c, err, "complete logistics step")
		return
	}
	c.JSON(http.StatusOK, view)
}
