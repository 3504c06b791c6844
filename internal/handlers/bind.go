package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/virtual-queue/internal/dto"
	"github.com/BruksfildServices01/virtual-queue/internal/httperr"
	"github.com/BruksfildServices01/virtual-queue/internal/httpresp"
	"github.com/BruksfildServices01/virtual-queue/internal/models"
	"github.com/BruksfildServices01/virtual-queue/internal/validation"
)

// bindJSON decodes the body into dst and runs its validate tags. On
// failure it writes the 400 and returns false.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid request body")
		return false
	}

	if err := validation.Struct(dst); err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":      verrs.Error(),
				"error_code": "invalid_request",
				"fields":     verrs.ByField(),
			})
			return false
		}
		httperr.Respond(c, err)
		return false
	}
	return true
}

// respondProject writes the owner view of a project, or the error.
func respondProject(c *gin.Context) func(*models.Project, error) {
	return func(p *models.Project, err error) {
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		httpresp.Success(c, http.StatusOK, gin.H{"project": dto.NewProject(p)})
	}
}
