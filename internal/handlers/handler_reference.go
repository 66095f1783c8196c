package handlers

import (
	"net/http"

	portssvc "github.com/JuanseMastrangelo/asset-movements-console/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

type referenceHandler struct {
	referenceService portssvc.ReferenceSvc
}

func registerReferenceRoutes(rg *gin.RouterGroup, referenceService portssvc.ReferenceSvc) {
	h := &referenceHandler{referenceService: referenceService}

	reference := rg.Group("/reference")
	{
		reference.GET("/assets", h.listAssets)
		reference.GET("/transaction-rules", h.listTransactionRules)
		reference.GET("/logistic-settings", h.listLogisticSettings)
	}
}

// listAssets godoc
// @Summary List assets
// @Tags reference
// @Produce json
// @Success 200 {array} domain.Asset
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /reference/assets [get]
func (h *referenceHandler) listAssets(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	assets, err := h.referenceService.ListAssets(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "list assets")
		return
	}
	c.JSON(http.StatusOK, assets)
}

// listTransactionRules godoc
// @Summary List transaction rules
// @Description Directed source -> target asset conversions the backend allows.
// @Tags reference
// @Produce json
// @Success 200 {array} domain.TransactionRule
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /reference/transaction-rules [get]
func (h *referenceHandler) listTransactionRules(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	rules, err := h.referenceService.ListTransactionRules(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "list transaction rules")
		return
	}
	c.JSON(http.StatusOK, rules)
}

// listLogisticSettings godoc
// @Summary List logistic services
// @Tags reference
// @Produce json
// @Success 200 {array} domain.LogisticSettings
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /reference/logistic-settings [get]
func (h *referenceHandler) listLogisticSettings(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	settings, err := h.referenceService.ListLogisticSettings(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "list logistic settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}
