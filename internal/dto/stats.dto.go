package dto

import (
	"time"

	"github.com/BruksfildServices01/virtual-queue/internal/models"
)

type AuditLogPage struct {
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Total int64             `json:"total"`
	Logs  []models.AuditLog `json:"logs"`
}

// AdminProjectDTO is a project row in the admin listing. Api keys stay
// with their owners.
type AdminProjectDTO struct {
	ID            string    `json:"id"`
	BusinessID    string    `json:"businessId"`
	BusinessEmail string    `json:"businessEmail,omitempty"`
	Name          string    `json:"name"`
	Username      string    `json:"username"`
	Description   string    `json:"description"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type AdminBusinessDTO struct {
	ID        string            `json:"id"`
	Email     string            `json:"email"`
	CreatedAt time.Time         `json:"createdAt"`
	Projects  []AdminProjectDTO `json:"projects"`
}

func NewAdminProject(p *models.Project) AdminProjectDTO {
	out := AdminProjectDTO{
		ID:          p.ID,
		BusinessID:  p.BusinessID,
		Name:        p.Name,
		Username:    p.Username,
		Description: p.Description,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Business != nil {
		out.BusinessEmail = p.Business.Email
	}
	return out
}

func NewAdminProjects(list []models.Project) []AdminProjectDTO {
	out := make([]AdminProjectDTO, len(list))
	for i := range list {
		out[i] = NewAdminProject(&list[i])
	}
	return out
}

func NewAdminBusinesses(list []models.Business) []AdminBusinessDTO {
	out := make([]AdminBusinessDTO, len(list))
	for i, b := range list {
		projects := NewAdminProjects(b.Projects)
		out[i] = AdminBusinessDTO{
			ID:        b.ID,
			Email:     b.Email,
			CreatedAt: b.CreatedAt,
			Projects:  projects,
		}
	}
	return out
}
