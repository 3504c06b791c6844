package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/virtual-queue/internal/domain/project"
	"github.com/BruksfildServices01/virtual-queue/internal/dto"
	"github.com/BruksfildServices01/virtual-queue/internal/formschema"
	"github.com/BruksfildServices01/virtual-queue/internal/httperr"
	"github.com/BruksfildServices01/virtual-queue/internal/httpresp"
	"github.com/BruksfildServices01/virtual-queue/internal/middleware"
	ucProject "github.com/BruksfildServices01/virtual-queue/internal/usecase/project"
)

// ======================================================
// HANDLER
// ======================================================

// ProjectHandler serves the owner dashboard. Every operation is scoped to
// the session's business.
type ProjectHandler struct {
	create       *ucProject.CreateProject
	list         *ucProject.ListProjects
	get          *ucProject.GetProject
	getByName    *ucProject.GetProjectByUsername
	update       *ucProject.UpdateProject
	customFields *ucProject.ManageCustomFields
	regenerate   *ucProject.RegenerateAPIKey
	delete       *ucProject.DeleteProject
}

func NewProjectHandler(
	create *ucProject.CreateProject,
	list *ucProject.ListProjects,
	get *ucProject.GetProject,
	getByName *ucProject.GetProjectByUsername,
	update *ucProject.UpdateProject,
	customFields *ucProject.ManageCustomFields,
	regenerate *ucProject.RegenerateAPIKey,
	delete *ucProject.DeleteProject,
) *ProjectHandler {
	return &ProjectHandler{
		create:       create,
		list:         list,
		get:          get,
		getByName:    getByName,
		update:       update,
		customFields: customFields,
		regenerate:   regenerate,
		delete:       delete,
	}
}

func ownerScope(c *gin.Context) domain.Scope {
	return domain.Scope{
		ID:         c.Param("projectId"),
		BusinessID: middleware.IdentityFrom(c).ID,
	}
}

// ======================================================
// CREATE
// ======================================================

func (h *ProjectHandler) Create(c *gin.Context) {
	id := middleware.IdentityFrom(c)

	var req dto.ProjectData
	if !bindJSON(c, &req) {
		return
	}

	h.respondCreate(c, id.ID, id.Email, req)
}

// CreateForBusiness is the programmatic create. The session must belong
// to the business named in the body.
func (h *ProjectHandler) CreateForBusiness(c *gin.Context) {
	id := middleware.IdentityFrom(c)

	var req dto.CreateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.BusinessID != id.ID {
		httperr.Forbidden(c, "forbidden", "you can only create projects for your own business")
		return
	}

	h.respondCreate(c, req.BusinessID, req.BusinessEmail, req.Data)
}

func (h *ProjectHandler) respondCreate(c *gin.Context, businessID, email string, data dto.ProjectData) {
	var tpl formschema.Template
	if data.CustomFields != nil {
		tpl = *data.CustomFields
	}

	p, err := h.create.Execute(c.Request.Context(), ucProject.CreateProjectInput{
		BusinessID:    businessID,
		BusinessEmail: email,
		Name:          data.Name,
		Username:      data.Username,
		Description:   data.Description,
		Status:        data.Status,
		CustomFields:  tpl,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Success(c, http.StatusCreated, gin.H{"project": dto.NewProjectWithUsers(p)})
}

// ======================================================
// READ
// ======================================================

func (h *ProjectHandler) List(c *gin.Context) {
	list, err := h.list.Execute(
		c.Request.Context(),
		middleware.IdentityFrom(c).ID,
		c.Query("status"),
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Success(c, http.StatusOK, gin.H{"projects": dto.NewProjects(list)})
}

func (h *ProjectHandler) Get(c *gin.Context) {
	p, err := h.get.Execute(c.Request.Context(), ownerScope(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Success(c, http.StatusOK, gin.H{"project": dto.NewProjectWithUsers(p)})
}

func (h *ProjectHandler) GetByUsername(c *gin.Context) {
	p, err := h.getByName.Execute(
		c.Request.Context(),
		c.Param("username"),
		middleware.IdentityFrom(c).ID,
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Success(c, http.StatusOK, gin.H{"project": dto.NewProjectWithUsers(p)})
}

// ======================================================
// UPDATE
// ======================================================

// toPatch converts a partial request body. A null customFields reads as
// absent; send {} to clear the template.
func toPatch(req dto.UpdateProjectRequest) (domain.Patch, error) {
	patch := domain.Patch{
		Name:         req.Name,
		Description:  req.Description,
		CustomFields: req.CustomFields,
	}
	if req.Status != nil {
		s, err := domain.ParseStatus(*req.Status)
		if err != nil {
			return patch, err
		}
		patch.Status = &s
	}
	return patch, nil
}

func (h *ProjectHandler) Update(c *gin.Context) {
	var req dto.UpdateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	patch, err := toPatch(req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	respondProject(c)(h.update.Execute(c.Request.Context(), ownerScope(c), patch))
}

func (h *ProjectHandler) UpdateDetails(c *gin.Context) {
	var req dto.UpdateDetailsRequest
	if !bindJSON(c, &req) {
		return
	}

	respondProject(c)(h.update.Details(c.Request.Context(), ownerScope(c), req.Name, req.Description))
}

func (h *ProjectHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	respondProject(c)(h.update.Status(c.Request.Context(), ownerScope(c), req.Status))
}

func (h *ProjectHandler) UpdateCustomFields(c *gin.Context) {
	var req dto.UpdateCustomFieldsRequest
	if !bindJSON(c, &req) {
		return
	}

	respondProject(c)(h.update.CustomFields(c.Request.Context(), ownerScope(c), req.CustomFields))
}

func (h *ProjectHandler) AddField(c *gin.Context) {
	var req dto.AddFieldRequest
	if !bindJSON(c, &req) {
		return
	}

	field := formschema.Field{
		Type:         formschema.FieldType(req.Type),
		DefaultValue: req.DefaultValue,
	}
	respondProject(c)(h.customFields.AddField(c.Request.Context(), ownerScope(c), req.Name, field))
}

func (h *ProjectHandler) RemoveField(c *gin.Context) {
	respondProject(c)(h.customFields.RemoveField(c.Request.Context(), ownerScope(c), c.Param("field")))
}

func (h *ProjectHandler) RegenerateAPIKey(c *gin.Context) {
	respondProject(c)(h.regenerate.Execute(c.Request.Context(), ownerScope(c)))
}

// ======================================================
// DELETE
// ======================================================

func (h *ProjectHandler) Delete(c *gin.Context) {
	p, err := h.delete.Execute(c.Request.Context(), ownerScope(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Success(c, http.StatusOK, gin.H{"project": dto.NewProjectWithUsers(p)})
}
