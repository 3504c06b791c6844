package project

import (
	"context"

	domain "github.com/BruksfildServices01/virtual-queue/internal/domain/project"
	"github.com/BruksfildServices01/virtual-queue/internal/formschema"
	"github.com/BruksfildServices01/virtual-queue/internal/httperr"
	"github.com/BruksfildServices01/virtual-queue/internal/models"
)

// ManageCustomFields edits one template entry at a time. Each edit is a
// read, a template replace and an update; stored entrant data is never
// touched.
type ManageCustomFields struct {
	repo   domain.Repository
	update *UpdateProject
}

func NewManageCustomFields(
	repo domain.Repository,
	update *UpdateProject,
) *ManageCustomFields {
	return &ManageCustomFields{repo: repo, update: update}
}

// AddField adds a field at the end of the template, or replaces the
// definition of an existing field in place.
func (uc *ManageCustomFields) AddField(
	ctx context.Context,
	scope domain.Scope,
	name string,
	field formschema.Field,
) (*models.Project, error) {

	p, err := uc.repo.Find(ctx, scope, false)
	if err != nil {
		return nil, err
	}

	return uc.update.CustomFields(ctx, scope, p.Template().With(name, field))
}

func (uc *ManageCustomFields) RemoveField(
	ctx context.Context,
	scope domain.Scope,
	name string,
) (*models.Project, error) {

	p, err := uc.repo.Find(ctx, scope, false)
	if err != nil {
		return nil, err
	}

	tpl := p.Template()
	if _, ok := tpl.Get(name); !ok {
		return nil, httperr.ErrNotFound("field_not_found")
	}

	return uc.update.CustomFields(ctx, scope, tpl.Without(name))
}
