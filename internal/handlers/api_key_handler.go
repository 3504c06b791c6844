package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/virtual-queue/internal/domain/project"
	"github.com/BruksfildServices01/virtual-queue/internal/dto"
	"github.com/BruksfildServices01/virtual-queue/internal/httperr"
	"github.com/BruksfildServices01/virtual-queue/internal/httpresp"
	"github.com/BruksfildServices01/virtual-queue/internal/middleware"
	ucProject "github.com/BruksfildServices01/virtual-queue/internal/usecase/project"
)

// ======================================================
// HANDLER
// ======================================================

// APIKeyHandler is the programmatic surface. The caller is identified by
// the project api key in "Authorization: Bearer".
type APIKeyHandler struct {
	list       *ucProject.ListProjects
	get        *ucProject.GetProject
	update     *ucProject.UpdateProject
	regenerate *ucProject.RegenerateAPIKey
	delete     *ucProject.DeleteProject
}

func NewAPIKeyHandler(
	list *ucProject.ListProjects,
	get *ucProject.GetProject,
	update *ucProject.UpdateProject,
	regenerate *ucProject.RegenerateAPIKey,
	delete *ucProject.DeleteProject,
) *APIKeyHandler {
	return &APIKeyHandler{
		list:       list,
		get:        get,
		update:     update,
		regenerate: regenerate,
		delete:     delete,
	}
}

// ======================================================
// KEY-BOUND PROJECT
// ======================================================

func (h *APIKeyHandler) List(c *gin.Context) {
	list, err := h.list.ExecuteWithKey(
		c.Request.Context(),
		c.Query("businessId"),
		middleware.APIKeyFrom(c),
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Success(c, http.StatusOK, gin.H{"projects": dto.NewProjects(list)})
}

func (h *APIKeyHandler) Get(c *gin.Context) {
	p, err := h.get.ExecuteByAPIKey(c.Request.Context(), middleware.APIKeyFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Success(c, http.StatusOK, gin.H{"project": dto.NewProjectWithUsers(p)})
}

func (h *APIKeyHandler) Delete(c *gin.Context) {
	p, err := h.delete.ExecuteByAPIKey(c.Request.Context(), middleware.APIKeyFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Success(c, http.StatusOK, gin.H{"project": dto.NewProjectWithUsers(p)})
}

func (h *APIKeyHandler) Update(c *gin.Context) {
	var req dto.UpdateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	patch, err := toPatch(req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	respondProject(c)(h.update.ExecuteByAPIKey(c.Request.Context(), middleware.APIKeyFrom(c), patch))
}

func (h *APIKeyHandler) Regenerate(c *gin.Context) {
	respondProject(c)(h.regenerate.ExecuteByAPIKey(c.Request.Context(), middleware.APIKeyFrom(c)))
}

// ======================================================
// ID-ADDRESSED PROJECT
// ======================================================

// GetByID answers 404 when the project is not the business's and 401
// when the key does not match it.
func (h *APIKeyHandler) GetByID(c *gin.Context) {
	p, err := h.get.ExecuteWithKey(
		c.Request.Context(),
		c.Param("projectId"),
		c.Query("byUsername") == "true",
		c.Query("businessId"),
		middleware.APIKeyFrom(c),
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Success(c, http.StatusOK, gin.H{"project": dto.NewProjectWithUsers(p)})
}

func (h *APIKeyHandler) DeleteByID(c *gin.Context) {
	ctx := c.Request.Context()

	p, err := h.get.ExecuteWithKey(
		ctx,
		c.Param("projectId"),
		c.Query("byUsername") == "true",
		c.Query("businessId"),
		middleware.APIKeyFrom(c),
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	deleted, err := h.delete.Execute(ctx, domain.Scope{ID: p.ID, APIKey: p.APIKey})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Success(c, http.StatusOK, gin.H{"project": dto.NewProjectWithUsers(deleted)})
}
