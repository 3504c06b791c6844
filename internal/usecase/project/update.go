package project

import (
	"context"

	"github.com/BruksfildServices01/virtual-queue/internal/audit"
	domain "github.com/BruksfildServices01/virtual-queue/internal/domain/project"
	"github.com/BruksfildServices01/virtual-queue/internal/formschema"
	"github.com/BruksfildServices01/virtual-queue/internal/httperr"
	"github.com/BruksfildServices01/virtual-queue/internal/infra/cache"
	"github.com/BruksfildServices01/virtual-queue/internal/logging"
	"github.com/BruksfildServices01/virtual-queue/internal/models"
)

type UpdateProject struct {
	repo  domain.Repository
	cache cache.PublicProjects
	audit *audit.Dispatcher
}

func NewUpdateProject(
	repo domain.Repository,
	c cache.PublicProjects,
	audit *audit.Dispatcher,
) *UpdateProject {
	if c == nil {
		c = cache.Noop{}
	}
	return &UpdateProject{
		repo:  repo,
		cache: c,
		audit: audit,
	}
}

// Execute applies a partial patch. The api key is not patchable here;
// RegenerateAPIKey owns it.
func (uc *UpdateProject) Execute(
	ctx context.Context,
	scope domain.Scope,
	patch domain.Patch,
) (*models.Project, error) {

	if scope.IsEmpty() {
		return nil, httperr.ErrNotFound("project_not_found")
	}
	patch.APIKey = nil

	if err := domain.ValidatePatch(patch); err != nil {
		return nil, err
	}

	p, err := uc.repo.Update(ctx, scope, patch)
	if err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, p.Username)
	uc.audit.Dispatch(projectEvent(ctx, audit.ActionProjectUpdated, p, map[string]any{
		"fields": changedFields(patch),
	}))

	logging.Ctx(ctx).Info().
		Str("project_id", p.ID).
		Strs("fields", changedFields(patch)).
		Msg("project updated")

	return p, nil
}

// -------- Named updates --------

func (uc *UpdateProject) Details(
	ctx context.Context,
	scope domain.Scope,
	name string,
	description string,
) (*models.Project, error) {
	return uc.Execute(ctx, scope, domain.Patch{Name: &name, Description: &description})
}

func (uc *UpdateProject) Status(
	ctx context.Context,
	scope domain.Scope,
	raw string,
) (*models.Project, error) {

	status, err := domain.ParseStatus(raw)
	if err != nil {
		return nil, err
	}
	return uc.Execute(ctx, scope, domain.Patch{Status: &status})
}

func (uc *UpdateProject) CustomFields(
	ctx context.Context,
	scope domain.Scope,
	tpl formschema.Template,
) (*models.Project, error) {

	tpl = domain.NormalizeTemplate(tpl)
	return uc.Execute(ctx, scope, domain.Patch{CustomFields: &tpl})
}

func changedFields(p domain.Patch) []string {
	var out []string
	if p.Name != nil {
		out = append(out, "name")
	}
	if p.Description != nil {
		out = append(out, "description")
	}
	if p.Status != nil {
		out = append(out, "status")
	}
	if p.CustomFields != nil {
		out = append(out, "customFields")
	}
	return out
}

// ExecuteByAPIKey patches the project bound to apiKey.
func (uc *UpdateProject) ExecuteByAPIKey(
	ctx context.Context,
	apiKey string,
	patch domain.Patch,
) (*models.Project, error) {

	if apiKey == "" {
		return nil, httperr.ErrUnauthorized("invalid_api_key")
	}

	p, err := uc.Execute(ctx, domain.Scope{APIKey: apiKey}, patch)
	if httperr.IsNotFound(err) {
		return nil, httperr.ErrUnauthorized("invalid_api_key")
	}
	return p, err
}
