package dto

import "github.com/BruksfildServices01/virtual-queue/internal/formschema"

type ProjectData struct {
	Name         string               `json:"name" validate:"required,max=100"`
	Username     string               `json:"username" validate:"required,username,max=64"`
	Description  string               `json:"description"`
	Status       string               `json:"status" validate:"required,oneof=PUBLIC PRIVATE UNLISTED"`
	CustomFields *formschema.Template `json:"customFields"`
}

// CreateProjectRequest is the programmatic create body.
type CreateProjectRequest struct {
	BusinessID    string      `json:"businessId" validate:"required"`
	BusinessEmail string      `json:"businessEmail" validate:"required,email"`
	Data          ProjectData `json:"data"`
}

// UpdateProjectRequest is a partial patch; absent fields are left as is.
type UpdateProjectRequest struct {
	Name         *string              `json:"name"`
	Description  *string              `json:"description"`
	Status       *string              `json:"status"`
	CustomFields *formschema.Template `json:"customFields"`
}

type UpdateDetailsRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PUBLIC PRIVATE UNLISTED"`
}

type UpdateCustomFieldsRequest struct {
	CustomFields formschema.Template `json:"customFields"`
}

type AddFieldRequest struct {
	Name         string `json:"name" validate:"required"`
	Type         string `json:"type" validate:"required,oneof=text textarea"`
	DefaultValue string `json:"defaultValue"`
}

type SyncBusinessRequest struct {
	Email string `json:"email" validate:"omitempty,email"`
}
