package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/virtual-queue/internal/dto"
	"github.com/BruksfildServices01/virtual-queue/internal/httperr"
	"github.com/BruksfildServices01/virtual-queue/internal/httpresp"
	ucEntrant "github.com/BruksfildServices01/virtual-queue/internal/usecase/entrant"
	ucProject "github.com/BruksfildServices01/virtual-queue/internal/usecase/project"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serves anonymous visitors: the project directory, the
// join form and its submission.
type PublicHandler struct {
	listPublic *ucProject.ListPublicProjects
	getByName  *ucProject.GetProjectByUsername
	join       *ucEntrant.JoinQueue
}

func NewPublicHandler(
	listPublic *ucProject.ListPublicProjects,
	getByName *ucProject.GetProjectByUsername,
	join *ucEntrant.JoinQueue,
) *PublicHandler {
	return &PublicHandler{
		listPublic: listPublic,
		getByName:  getByName,
		join:       join,
	}
}

////////////////////////////////////////////////////////
// PROJECTS
////////////////////////////////////////////////////////

func (h *PublicHandler) ListProjects(c *gin.Context) {
	list, err := h.listPublic.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Success(c, http.StatusOK, gin.H{"projects": dto.NewPublicProjects(list)})
}

func (h *PublicHandler) GetProject(c *gin.Context) {
	p, err := h.getByName.ExecutePublic(c.Request.Context(), c.Param("username"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Success(c, http.StatusOK, gin.H{"project": p})
}

////////////////////////////////////////////////////////
// JOIN
////////////////////////////////////////////////////////

// Join never lets an internal error reach the visitor; every failure body
// carries the same generic message.
func (h *PublicHandler) Join(c *gin.Context) {
	var data map[string]string
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, ucEntrant.JoinResult{
			Error: ucEntrant.MsgSubmitFailed,
			Code:  ucEntrant.CodeInvalidForm,
		})
		return
	}

	res := h.join.Execute(c.Request.Context(), ucEntrant.JoinInput{
		Username: c.Param("username"),
		Data:     data,
	})

	c.JSON(joinStatus(res), res)
}

func joinStatus(res ucEntrant.JoinResult) int {
	if res.Success {
		return http.StatusCreated
	}

	switch res.Code {
	case ucEntrant.CodeInvalidForm:
		return http.StatusBadRequest
	case ucEntrant.CodeProjectNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
