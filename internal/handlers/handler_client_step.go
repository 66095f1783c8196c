package handlers

import (
	"log/slog"
	"net/http"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/dto"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/middleware"
	"github.com/gin-gonic/gin"
)

// listClients godoc
// @Summary List or search clients
// @Description Without a name lists every client. With a name the search is debounced; a newer search answers the older one with 409.
// @Tags client-step
// @Produce json
// @Param wizardID path string true "Wizard ID"
// @Param name query string false "Name filter"
// @Success 200 {object} dto.ClientStepView
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Superseded by a newer search or wrong step"
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /wizards/{wizardID}/clients [get]
func (h *wizardHandler) listClients(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var params dto.ListClientsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	view, err := h.wizardService.ListClients(c.Request.Context(), id, c.Param("wizardID"), params.Name)
	if err != nil {
		respondError(c, err, "list clients")
		return
	}
	c.JSON(http.StatusOK, view)
}

// createClient godoc
// @Summary Create a client
// @Description Creates the client, refreshes the list and selects the new client.
// @Tags client-step
// @Accept json
// @Produce json
// @Param wizardID path string true "Wizard ID"
// @Param client body dto.CreateClientRequest true "Client details"
// @Success 201 {object} dto.ClientStepView
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /wizards/{wizardID}/clients [post]
func (h *wizardHandler) createClient(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	view, err := h.wizardService.CreateClient(c.Request.Context(), id, c.Param("wizardID"), req)
	if err != nil {
		respondError(c, err, "create client")
		return
	}
	if view.Selected != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Info("Client created", slog.String("client_id", view.Selected.ID))
	}
	c.JSON(http.StatusCreated, view)
}

// selectClient godoc
// @Summary Select a client
// @Tags client-step
// @Accept json
// @Produce json
// @Param wizardID path string true "Wizard ID"
// @Param selection body dto.SelectClientRequest true "Client to select"
// @Success 200 {object} dto.ClientStepView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Client not in the current list"
// @Security BearerAuth
// @Router /wizards/{wizardID}/clients/selection [put]
func (h *wizardHandler) selectClient(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req dto.SelectClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	view, err := h.wizardService.SelectClient(c.Request.Context(), id, c.Param("wizardID"), req.ClientID)
	if err != nil {
		respondError(c, err, "select client")
		return
	}
	c.JSON(http.StatusOK, view)
}

// sendClientReport godoc
// @Summary Send a client report
// @Tags client-step
// @Param wizardID path string true "Wizard ID"
// @Param clientID path string true "Client ID"
// @Success 202
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "A report is already being sent"
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /wizards/{wizardID}/clients/{clientID}/report [post]
func (h *wizardHandler) sendClientReport(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	if err := h.wizardService.SendClientReport(c.Request.Context(), id, c.Param("wizardID"), c.Param("clientID")); err != nil {
		respondError(c, err, "send client report")
		return
	}
	c.Status(http.StatusAccepted)
}

// completeClientStep godoc
// @Summary Complete the client step
// @Tags client-step
// @Produce json
// @Param wizardID path string true "Wizard ID"
// @Success 200 {object} dto.WizardView
// @Failure 400 {object} ErrorResponse "No client selected"
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /wizards/{wizardID}/clients/complete [post]
func (h *wizardHandler) completeClientStep(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := h.wizardService.CompleteClientStep(c.Request.Context(), id, c.Param("wizardID"))
	if err != nil {
		respondError(c, err, "complete client step")
		return
	}
	c.JSON(http.StatusOK, view)
}
