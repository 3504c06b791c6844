package dto

import (
	"time"

	"github.com/BruksfildServices01/virtual-queue/internal/formschema"
	"github.com/BruksfildServices01/virtual-queue/internal/models"
)

// ProjectDTO is the owner and api key view of a project.
type ProjectDTO struct {
	ID           string              `json:"id"`
	BusinessID   string              `json:"businessId"`
	Name         string              `json:"name"`
	Username     string              `json:"username"`
	Description  string              `json:"description"`
	Status       string              `json:"status"`
	APIKey       string              `json:"apiKey"`
	CustomFields formschema.Template `json:"customFields"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

// ProjectWithUsersDTO always carries the users array, empty included.
type ProjectWithUsersDTO struct {
	ProjectDTO
	Users []models.Entrant `json:"users"`
}

// PublicProjectDTO never exposes the api key or the owner.
type PublicProjectDTO struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Username     string                 `json:"username"`
	Description  string                 `json:"description"`
	Status       string                 `json:"status"`
	CustomFields formschema.Template    `json:"customFields"`
	Form         []formschema.FormField `json:"form"`
}

func NewProject(p *models.Project) ProjectDTO {
	tpl := p.Template()
	if tpl == nil {
		tpl = formschema.Template{}
	}
	return ProjectDTO{
		ID:           p.ID,
		BusinessID:   p.BusinessID,
		Name:         p.Name,
		Username:     p.Username,
		Description:  p.Description,
		Status:       p.Status,
		APIKey:       p.APIKey,
		CustomFields: tpl,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func NewProjects(list []models.Project) []ProjectDTO {
	out := make([]ProjectDTO, len(list))
	for i := range list {
		out[i] = NewProject(&list[i])
	}
	return out
}

func NewProjectWithUsers(p *models.Project) ProjectWithUsersDTO {
	users := p.Entrants
	if users == nil {
		users = []models.Entrant{}
	}
	return ProjectWithUsersDTO{ProjectDTO: NewProject(p), Users: users}
}

func NewPublicProject(p *models.Project) PublicProjectDTO {
	tpl := p.Template()
	if tpl == nil {
		tpl = formschema.Template{}
	}
	return PublicProjectDTO{
		ID:           p.ID,
		Name:         p.Name,
		Username:     p.Username,
		Description:  p.Description,
		Status:       p.Status,
		CustomFields: tpl,
		Form:         formschema.FormFields(tpl),
	}
}

func NewPublicProjects(list []models.Project) []PublicProjectDTO {
	out := make([]PublicProjectDTO, len(list))
	for i := range list {
		out[i] = NewPublicProject(&list[i])
	}
	return out
}
