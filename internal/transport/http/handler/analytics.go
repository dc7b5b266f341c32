package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mellow-ai/internal/app"
	"mellow-ai/internal/transport/http/response"
)

type AnalyticsHandler struct {
	analyticsService *app.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *app.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

func (h *AnalyticsHandler) Overview(c *gin.Context) {
	overview, err := h.analyticsService.Overview()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "load analytics failed")
		return
	}
	response.OK(c, overview)
}

func (h *AnalyticsHandler) Trends(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))

	trends, err := h.analyticsService.Trends(days)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "load trends failed")
		return
	}
	response.OK(c, trends)
}

func (h *AnalyticsHandler) Insights(c *gin.Context) {
	insights, err := h.analyticsService.Insights()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "load insights failed")
		return
	}
	response.OK(c, insights)
}
