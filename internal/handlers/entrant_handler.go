package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/virtual-queue/internal/httperr"
	"github.com/BruksfildServices01/virtual-queue/internal/httpresp"
	"github.com/BruksfildServices01/virtual-queue/internal/middleware"
	ucEntrant "github.com/BruksfildServices01/virtual-queue/internal/usecase/entrant"
)

// ======================================================
// HANDLER
// ======================================================

type EntrantHandler struct {
	list       *ucEntrant.ListEntrants
	first      *ucEntrant.FirstActive
	serve      *ucEntrant.ServeNext
	deactivate *ucEntrant.DeactivateEntrant
	delete     *ucEntrant.DeleteEntrant
}

func NewEntrantHandler(
	list *ucEntrant.ListEntrants,
	first *ucEntrant.FirstActive,
	serve *ucEntrant.ServeNext,
	deactivate *ucEntrant.DeactivateEntrant,
	delete *ucEntrant.DeleteEntrant,
) *EntrantHandler {
	return &EntrantHandler{
		list:       list,
		first:      first,
		serve:      serve,
		deactivate: deactivate,
		delete:     delete,
	}
}

// ======================================================
// TABLE
// ======================================================

// List accepts ?status= and column filters as ?filter[<column id>]=query.
func (h *EntrantHandler) List(c *gin.Context) {
	table, err := h.list.Execute(c.Request.Context(), ucEntrant.ListInput{
		BusinessID: middleware.IdentityFrom(c).ID,
		ProjectID:  c.Param("projectId"),
		Status:     c.Query("status"),
		Filters:    c.QueryMap("filter"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Success(c, http.StatusOK, gin.H{
		"columns": table.Columns,
		"users":   table.Entrants,
		"total":   len(table.Entrants),
	})
}

func (h *EntrantHandler) Columns(c *gin.Context) {
	cols, err := h.list.Columns(
		c.Request.Context(),
		middleware.IdentityFrom(c).ID,
		c.Param("projectId"),
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Success(c, http.StatusOK, gin.H{"columns": cols})
}

// ======================================================
// QUEUE
// ======================================================

// Next peeks at the head of the queue; user is null when it is empty.
func (h *EntrantHandler) Next(c *gin.Context) {
	e, err := h.first.Execute(
		c.Request.Context(),
		middleware.IdentityFrom(c).ID,
		c.Param("projectId"),
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Success(c, http.StatusOK, gin.H{"user": e})
}

func (h *EntrantHandler) Serve(c *gin.Context) {
	e, err := h.serve.Execute(
		c.Request.Context(),
		middleware.IdentityFrom(c).ID,
		c.Param("projectId"),
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Success(c, http.StatusOK, gin.H{"user": e})
}

// ======================================================
// ENTRANT
// ======================================================

func (h *EntrantHandler) Deactivate(c *gin.Context) {
	e, err := h.deactivate.Execute(
		c.Request.Context(),
		middleware.IdentityFrom(c).ID,
		c.Param("entrantId"),
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Success(c, http.StatusOK, gin.H{"user": e})
}

func (h *EntrantHandler) Delete(c *gin.Context) {
	e, err := h.delete.Execute(
		c.Request.Context(),
		middleware.IdentityFrom(c).ID,
		c.Param("entrantId"),
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Success(c, http.StatusOK, gin.H{"user": e})
}
