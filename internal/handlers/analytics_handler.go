package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finledger/internal/services"
)

// AnalyticsHandler serves the income/expense summary.
type AnalyticsHandler struct {
	analyticsService services.AnalyticsServicer
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService services.AnalyticsServicer) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GetSummary handles the analytics request
// @Summary     Income and expense summary
// @Description Totals by type and by category over all of the user's transactions. List filters are not applied.
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} analytics.Summary "Summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analytics [get]
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.analyticsService.GetSummary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
