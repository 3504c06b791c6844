package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/virtual-queue/internal/audit"
	"github.com/BruksfildServices01/virtual-queue/internal/dto"
	"github.com/BruksfildServices01/virtual-queue/internal/httperr"
	"github.com/BruksfildServices01/virtual-queue/internal/middleware"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	store audit.Store
}

func NewAuditLogsHandler(store audit.Store) *AuditLogsHandler {
	return &AuditLogsHandler{store: store}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	// --------------------------------------------------
	// Query (always scoped to the session's business)
	// --------------------------------------------------
	q := audit.Query{
		BusinessID: middleware.IdentityFrom(c).ID,
		Action:     c.Query("action"),
		Entity:     c.Query("entity"),
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}

	if from, err := time.Parse("2006-01-02", c.Query("from")); err == nil {
		q.From = &from
	}
	if to, err := time.Parse("2006-01-02", c.Query("to")); err == nil {
		end := to.Add(24 * time.Hour)
		q.To = &end
	}

	logs, total, err := h.store.List(c.Request.Context(), q)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuditLogPage{
		Page:  page,
		Limit: limit,
		Total: total,
		Logs:  logs,
	})
}
