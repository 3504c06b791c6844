package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/virtual-queue/internal/dto"
	"github.com/BruksfildServices01/virtual-queue/internal/httperr"
	"github.com/BruksfildServices01/virtual-queue/internal/httpresp"
	ucProject "github.com/BruksfildServices01/virtual-queue/internal/usecase/project"
	ucStats "github.com/BruksfildServices01/virtual-queue/internal/usecase/stats"
)

// AdminHandler serves the system-wide dashboard. Routes are admin only.
type AdminHandler struct {
	stats    *ucStats.SystemStats
	listings *ucProject.AdminListings
}

func NewAdminHandler(
	stats *ucStats.SystemStats,
	listings *ucProject.AdminListings,
) *AdminHandler {
	return &AdminHandler{stats: stats, listings: listings}
}

func systemStat[T any](key string, fn func(ctx context.Context) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := fn(c.Request.Context())
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		httpresp.Success(c, http.StatusOK, gin.H{key: v})
	}
}

// -------- Stats --------

func (h *AdminHandler) Overview() gin.HandlerFunc {
	return systemStat("stats", h.stats.Overview)
}

func (h *AdminHandler) BusinessSummary() gin.HandlerFunc {
	return systemStat("stats", h.stats.BusinessSummary)
}

func (h *AdminHandler) ProjectSummary() gin.HandlerFunc {
	return systemStat("stats", h.stats.ProjectSummary)
}

func (h *AdminHandler) BusinessGrowth() gin.HandlerFunc {
	return systemStat("data", h.stats.BusinessGrowth)
}

func (h *AdminHandler) ProjectGrowth() gin.HandlerFunc {
	return systemStat("data", h.stats.ProjectGrowth)
}

func (h *AdminHandler) UserGrowth() gin.HandlerFunc {
	return systemStat("data", h.stats.UserGrowth)
}

// -------- Listings --------

func (h *AdminHandler) Businesses(c *gin.Context) {
	list, err := h.listings.Businesses(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.NewAdminBusinesses(list))
}

func (h *AdminHandler) Projects(c *gin.Context) {
	list, err := h.listings.Projects(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.NewAdminProjects(list))
}
