package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gestionale/gestionale/internal/analytics"
	"github.com/gestionale/gestionale/internal/api/middleware"
)

const defaultMonthsBack = 12

type AnalyticsHandler struct {
	analyticsService *analytics.Service
}

func NewAnalyticsHandler(analyticsService *analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// Financial is the analytics entry point. monthsBack falls back to a year
// when absent or unparseable; the window resolver clamps it further.
func (h *AnalyticsHandler) Financial(c *gin.Context) {
	caller, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	monthsBack, err := strconv.Atoi(c.Query("monthsBack"))
	if err != nil || monthsBack <= 0 {
		monthsBack = defaultMonthsBack
	}

	resp, err := h.analyticsService.Report(c.Request.Context(), caller, monthsBack)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}
