package handlers

import (
	"net/http"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/dto"
	"github.com/gin-gonic/gin"
)

// loadOperation godoc
// @Summary Load the operation step
// @Tags operation-step
// @Produce json
// @Param wizardID path string true "Wizard ID"
// @Success 200 {object} dto.OperationView
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse "Reference data unavailable"
// @Security BearerAuth
// @Router /wizards/{wizardID}/operation [get]
func (h *wizardHandler) loadOperation(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := h.wizardService.LoadOperation(c.Request.Context(), id, c.Param("wizardID"))
	if err != nil {
		respondError(c, err, "load operation")
		return
	}
	c.JSON(http.StatusOK, view)
}

// previewOperation godoc
// @Summary Preview the operation form
// @Description Derives exchange rates and egress options for the form without saving anything to the backend.
// @Tags operation-step
// @Accept json
// @Produce json
// @Param wizardID path string true "Wizard ID"
// @Param form body dto.OperationForm true "Operation form"
// @Success 200 {object} dto.OperationView
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /wizards/{wizardID}/operation/preview [post]
func (h *wizardHandler) previewOperation(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var form dto.OperationForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondBindError(c, err)
		return
	}
	view, err := h.wizardService.PreviewOperation(c.Request.Context(), id, c.Param("wizardID"), form)
	if err != nil {
		respondError(c, err, "preview operation")
		return
	}
	c.JSON(http.StatusOK, view)
}

// submitOperation godoc
// @Summary Submit the operation step
// @Description Creates the transaction, or patches it when the wizard already has one. A transaction that is no longer PENDING advances unchanged.
// @Tags operation-step
// @Accept json
// @Produce json
// @Param wizardID path string true "Wizard ID"
// @Param form body dto.OperationForm true "Operation form"
// @Success 200 {object} dto.WizardView
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "No transaction rule for the pair"
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /wizards/{wizardID}/operation [post]
func (h *wizardHandler) submitOperation(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var form dto.OperationForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondBindError(c, err)
		return
	}
	view, err := h.wizardService.SubmitOperation(c.Request.Context(), id, c.Param("wizardID"), form)
	if err != nil {
		respondError(c, err, "submit operation")
		return
	}
	c.JSON(http.StatusOK, view)
}
