package entrant

import (
	"context"

	"github.com/BruksfildServices01/virtual-queue/internal/audit"
	domain "github.com/BruksfildServices01/virtual-queue/internal/domain/entrant"
	"github.com/BruksfildServices01/virtual-queue/internal/httperr"
	"github.com/BruksfildServices01/virtual-queue/internal/logging"
	"github.com/BruksfildServices01/virtual-queue/internal/models"
	"github.com/BruksfildServices01/virtual-queue/internal/timezone"
)

// ======================================================
// DEACTIVATE
// ======================================================

type DeactivateEntrant struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   timezone.Clock
}

func NewDeactivateEntrant(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *DeactivateEntrant {
	return &DeactivateEntrant{
		repo:  repo,
		audit: audit,
		now:   timezone.OrSystem(clock),
	}
}

// Execute moves the entrant to INACTIVE. Repeating it is harmless.
func (uc *DeactivateEntrant) Execute(
	ctx context.Context,
	businessID string,
	entrantID string,
) (*models.Entrant, error) {

	if businessID == "" || entrantID == "" {
		return nil, httperr.ErrNotFound("entrant_not_found")
	}

	e, err := uc.repo.Deactivate(ctx, domain.Scope{ID: entrantID, BusinessID: businessID}, uc.now())
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(entrantEvent(ctx, audit.ActionEntrantDeactivated, businessID, e))

	logging.Ctx(ctx).Info().
		Str("entrant_id", e.ID).
		Str("project_id", e.ProjectID).
		Msg("entrant deactivated")

	return e, nil
}

// ======================================================
// DELETE
// ======================================================

type DeleteEntrant struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteEntrant(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteEntrant {
	return &DeleteEntrant{repo: repo, audit: audit}
}

func (uc *DeleteEntrant) Execute(
	ctx context.Context,
	businessID string,
	entrantID string,
) (*models.Entrant, error) {

	if businessID == "" || entrantID == "" {
		return nil, httperr.ErrNotFound("entrant_not_found")
	}

	e, err := uc.repo.Delete(ctx, domain.Scope{ID: entrantID, BusinessID: businessID})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(entrantEvent(ctx, audit.ActionEntrantDeleted, businessID, e))

	logging.Ctx(ctx).Info().
		Str("entrant_id", e.ID).
		Msg("entrant deleted")

	return e, nil
}
