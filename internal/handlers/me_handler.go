package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/virtual-queue/internal/dto"
	"github.com/BruksfildServices01/virtual-queue/internal/httperr"
	"github.com/BruksfildServices01/virtual-queue/internal/httpresp"
	"github.com/BruksfildServices01/virtual-queue/internal/middleware"
	ucProject "github.com/BruksfildServices01/virtual-queue/internal/usecase/project"
)

type MeHandler struct {
	register *ucProject.RegisterBusiness
}

func NewMeHandler(register *ucProject.RegisterBusiness) *MeHandler {
	return &MeHandler{register: register}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	id := middleware.IdentityFrom(c)

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":            id.ID,
			"email":         id.Email,
			"role":          id.Role,
			"emailVerified": id.EmailVerified,
		},
	})
}

// SyncBusiness records the signed-in business. The body email, when
// given, overrides the session email.
func (h *MeHandler) SyncBusiness(c *gin.Context) {
	id := middleware.IdentityFrom(c)

	var req dto.SyncBusinessRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	email := id.Email
	if req.Email != "" {
		email = req.Email
	}

	b, err := h.register.Execute(c.Request.Context(), id.ID, email)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Success(c, http.StatusOK, gin.H{"business": b})
}
