package project

import (
	"context"

	"github.com/BruksfildServices01/virtual-queue/internal/formschema"
	"github.com/BruksfildServices01/virtual-queue/internal/models"
)

// Scope selects a single project. Every non-empty field must match, so
// (ID, BusinessID) enforces ownership and APIKey alone resolves the
// programmatic caller's project.
type Scope struct {
	ID         string
	BusinessID string
	APIKey     string
	Username   string
}

func (s Scope) IsEmpty() bool {
	return s.ID == "" && s.BusinessID == "" && s.APIKey == "" && s.Username == ""
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Name         *string
	Description  *string
	Status       *Status
	CustomFields *formschema.Template
	APIKey       *string
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Status == nil &&
		p.CustomFields == nil && p.APIKey == nil
}

type Repository interface {
	// -------- Business --------

	// UpsertBusiness creates the business or updates its email. An empty
	// email never overwrites a stored one.
	UpsertBusiness(
		ctx context.Context,
		id string,
		email string,
	) (*models.Business, error)

	GetBusiness(
		ctx context.Context,
		id string,
	) (*models.Business, error)

	// -------- Project (read) --------
	Find(
		ctx context.Context,
		scope Scope,
		withEntrants bool,
	) (*models.Project, error)

	ListByBusiness(
		ctx context.Context,
		businessID string,
		status *Status,
	) ([]models.Project, error)

	ListByStatus(
		ctx context.Context,
		status Status,
	) ([]models.Project, error)

	// -------- Project (write) --------
	Create(
		ctx context.Context,
		p *models.Project,
	) error

	Update(
		ctx context.Context,
		scope Scope,
		patch Patch,
	) (*models.Project, error)

	Delete(
		ctx context.Context,
		scope Scope,
	) (*models.Project, error)

	// -------- Admin --------
	ListBusinesses(ctx context.Context) ([]models.Business, error)
	ListAll(ctx context.Context) ([]models.Project, error)
}
