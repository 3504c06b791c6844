package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/virtual-queue/internal/logging"
)

type HTTPError struct {
	Message string `json:"error"`
	Code    string `json:"error_code"`
}

var knownMessages = map[string]string{
	"username_taken":        "this username is already taken",
	"api_key_conflict":      "could not issue a unique api key, please retry",
	"invalid_username":      "username may only contain lowercase letters, digits, '-' and '_'",
	"invalid_status":        "status must be one of PUBLIC, PRIVATE, UNLISTED",
	"invalid_custom_fields": "custom fields must have non-empty names and a type of text or textarea",
	"invalid_request":       "invalid request",
	"invalid_form":          "the submitted form is invalid",
	"project_not_found":     "project not found",
	"entrant_not_found":     "entrant not found",
	"business_not_found":    "business not found",
	"field_not_found":       "custom field not found",
	"rate_limited":          "too many requests, please slow down",
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// Respond maps err to a status code and a caller-safe body.
// Internal failures are logged and answered with a generic message.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if !errors.As(err, &be) {
		logging.Ctx(c.Request.Context()).Error().Err(err).Msg("unexpected failure")
		Internal(c, "internal_error", "something went wrong, please try again")
		return
	}

	message := be.Message
	if message == "" {
		message = messageFor(be.Code)
	}

	switch be.Kind {
	case KindValidation:
		BadRequest(c, be.Code, message)
	case KindNotFound:
		NotFound(c, be.Code, message)
	case KindUnauthorized:
		Unauthorized(c, be.Code, "unauthorized")
	default:
		logging.Ctx(c.Request.Context()).Error().Err(err).Msg("internal failure")
		Internal(c, be.Code, "something went wrong, please try again")
	}
}

func messageFor(code string) string {
	if m, ok := knownMessages[code]; ok {
		return m
	}
	return code
}
