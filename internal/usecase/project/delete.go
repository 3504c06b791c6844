package project

import (
	"context"

	"github.com/BruksfildServices01/virtual-queue/internal/audit"
	domain "github.com/BruksfildServices01/virtual-queue/internal/domain/project"
	"github.com/BruksfildServices01/virtual-queue/internal/httperr"
	"github.com/BruksfildServices01/virtual-queue/internal/infra/cache"
	"github.com/BruksfildServices01/virtual-queue/internal/logging"
	"github.com/BruksfildServices01/virtual-queue/internal/metrics"
	"github.com/BruksfildServices01/virtual-queue/internal/models"
)

type DeleteProject struct {
	repo    domain.Repository
	cache   cache.PublicProjects
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
}

func NewDeleteProject(
	repo domain.Repository,
	c cache.PublicProjects,
	audit *audit.Dispatcher,
	metrics *metrics.Metrics,
) *DeleteProject {
	if c == nil {
		c = cache.Noop{}
	}
	return &DeleteProject{
		repo:    repo,
		cache:   c,
		audit:   audit,
		metrics: metrics,
	}
}

// Execute deletes the project in scope with its entrants and returns the
// deleted snapshot.
func (uc *DeleteProject) Execute(
	ctx context.Context,
	scope domain.Scope,
) (*models.Project, error) {

	if scope.IsEmpty() {
		return nil, httperr.ErrNotFound("project_not_found")
	}

	p, err := uc.repo.Delete(ctx, scope)
	if err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, p.Username)
	uc.audit.Dispatch(projectEvent(ctx, audit.ActionProjectDeleted, p, map[string]any{
		"entrants": len(p.Entrants),
	}))
	uc.metrics.RecordProjectDeleted()

	logging.Ctx(ctx).Info().
		Str("project_id", p.ID).
		Int("entrants", len(p.Entrants)).
		Msg("project deleted")

	return p, nil
}

// ExecuteByAPIKey deletes the project bound to apiKey.
func (uc *DeleteProject) ExecuteByAPIKey(
	ctx context.Context,
	apiKey string,
) (*models.Project, error) {

	if apiKey == "" {
		return nil, httperr.ErrUnauthorized("invalid_api_key")
	}

	p, err := uc.Execute(ctx, domain.Scope{APIKey: apiKey})
	if httperr.IsNotFound(err) {
		return nil, httperr.ErrUnauthorized("invalid_api_key")
	}
	return p, err
}
