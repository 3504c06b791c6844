package entrant

import (
	"context"

	domain "github.com/BruksfildServices01/virtual-queue/internal/domain/entrant"
	projectdomain "github.com/BruksfildServices01/virtual-queue/internal/domain/project"
	"github.com/BruksfildServices01/virtual-queue/internal/metrics"
	"github.com/BruksfildServices01/virtual-queue/internal/models"
)

// ======================================================
// FIRST ACTIVE
// ======================================================

type FirstActive struct {
	projects projectdomain.Repository
	entrants domain.Repository
}

func NewFirstActive(
	projects projectdomain.Repository,
	entrants domain.Repository,
) *FirstActive {
	return &FirstActive{projects: projects, entrants: entrants}
}

// Execute returns the next entrant in line, or nil when nobody is waiting.
// An empty businessID skips the ownership check.
func (uc *FirstActive) Execute(
	ctx context.Context,
	businessID string,
	projectID string,
) (*models.Entrant, error) {

	if businessID != "" {
		if _, err := ownedProject(ctx, uc.projects, businessID, projectID); err != nil {
			return nil, err
		}
	}
	return uc.entrants.FirstActive(ctx, projectID)
}

// ======================================================
// SERVE NEXT
// ======================================================

// ServeNext takes the next entrant off the queue by deactivating it.
type ServeNext struct {
	first      *FirstActive
	deactivate *DeactivateEntrant
	metrics    *metrics.Metrics
}

func NewServeNext(
	first *FirstActive,
	deactivate *DeactivateEntrant,
	metrics *metrics.Metrics,
) *ServeNext {
	return &ServeNext{
		first:      first,
		deactivate: deactivate,
		metrics:    metrics,
	}
}

// Execute returns the served entrant, or nil when the queue is empty.
// Two owners serving at once may both read the same head; the second
// deactivate is a no-op on an already INACTIVE row.
func (uc *ServeNext) Execute(
	ctx context.Context,
	businessID string,
	projectID string,
) (*models.Entrant, error) {

	next, err := uc.first.Execute(ctx, businessID, projectID)
	if err != nil || next == nil {
		return nil, err
	}

	served, err := uc.deactivate.Execute(ctx, businessID, next.ID)
	if err != nil {
		return nil, err
	}

	uc.metrics.RecordServed()
	return served, nil
}
