package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/virtual-queue/internal/httperr"
	"github.com/BruksfildServices01/virtual-queue/internal/httpresp"
	"github.com/BruksfildServices01/virtual-queue/internal/middleware"
	ucStats "github.com/BruksfildServices01/virtual-queue/internal/usecase/stats"
)

// StatsHandler serves the owner dashboard figures.
type StatsHandler struct {
	stats *ucStats.BusinessStats
}

func NewStatsHandler(stats *ucStats.BusinessStats) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// businessStat adapts a business-scoped aggregate to a handler writing
// {"success": true, key: value}.
func businessStat[T any](
	key string,
	fn func(ctx context.Context, businessID string) (T, error),
) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := fn(c.Request.Context(), middleware.IdentityFrom(c).ID)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		httpresp.Success(c, http.StatusOK, gin.H{key: v})
	}
}

func (h *StatsHandler) Projects() gin.HandlerFunc {
	return businessStat("stats", h.stats.ProjectStats)
}

func (h *StatsHandler) Users() gin.HandlerFunc {
	return businessStat("stats", h.stats.UserStats)
}

func (h *StatsHandler) UserGrowth() gin.HandlerFunc {
	return businessStat("data", h.stats.UserGrowth)
}

func (h *StatsHandler) ProjectActivity() gin.HandlerFunc {
	return businessStat("data", h.stats.ProjectActivity)
}
