package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mlorenzato/ritmo/internal/adapters/handler/http/middleware"
	"github.com/mlorenzato/ritmo/internal/core/services"
	"github.com/mlorenzato/ritmo/internal/core/streak"
)

type StatsHandler struct {
	svc *services.StatsService
}

func NewStatsHandler(svc *services.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats", h.GetReport)
}

func (h *StatsHandler) GetReport(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	window := c.DefaultQuery("window", string(streak.WindowWeek))
	monthly := c.Query("monthly") == "true"

	report, err := h.svc.GetReport(c.Request.Context(), services.ReportInput{
		UserID:         userID,
		Window:         window,
		MonthlyBuckets: monthly,
		Today:          time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, streak.ErrInvalidArgument) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid window, expected week|month|year|all"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve statistics"})
		return
	}

	c.JSON(http.StatusOK, report)
}
