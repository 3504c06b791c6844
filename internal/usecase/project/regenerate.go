package project

import (
	"context"

	"github.com/BruksfildServices01/virtual-queue/internal/audit"
	domain "github.com/BruksfildServices01/virtual-queue/internal/domain/project"
	"github.com/BruksfildServices01/virtual-queue/internal/httperr"
	"github.com/BruksfildServices01/virtual-queue/internal/logging"
	"github.com/BruksfildServices01/virtual-queue/internal/metrics"
	"github.com/BruksfildServices01/virtual-queue/internal/models"
)

type RegenerateAPIKey struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
}

func NewRegenerateAPIKey(
	repo domain.Repository,
	audit *audit.Dispatcher,
	metrics *metrics.Metrics,
) *RegenerateAPIKey {
	return &RegenerateAPIKey{
		repo:    repo,
		audit:   audit,
		metrics: metrics,
	}
}

// Execute replaces the api key of the project in scope. The previous key
// stops resolving as soon as the update commits.
func (uc *RegenerateAPIKey) Execute(
	ctx context.Context,
	scope domain.Scope,
) (*models.Project, error) {

	if scope.IsEmpty() {
		return nil, httperr.ErrNotFound("project_not_found")
	}

	var (
		p   *models.Project
		err error
	)
	for attempt := 1; ; attempt++ {
		key := domain.NewAPIKey()
		p, err = uc.repo.Update(ctx, scope, domain.Patch{APIKey: &key})
		if err == nil {
			break
		}
		if !httperr.IsBusiness(err, "api_key_conflict") || attempt == keyAttempts {
			return nil, err
		}
	}

	uc.audit.Dispatch(projectEvent(ctx, audit.ActionAPIKeyRegenerated, p, nil))
	uc.metrics.RecordAPIKeyRegenerated()

	logging.Ctx(ctx).Info().
		Str("project_id", p.ID).
		Msg("api key regenerated")

	return p, nil
}

// ExecuteByAPIKey regenerates the key of the project bound to apiKey.
func (uc *RegenerateAPIKey) ExecuteByAPIKey(
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
