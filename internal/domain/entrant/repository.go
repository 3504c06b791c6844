package entrant

import (
	"context"
	"time"

	"github.com/BruksfildServices01/virtual-queue/internal/models"
)

// Scope selects a single entrant. BusinessID restricts the match to
// entrants of projects owned by that business.
type Scope struct {
	ID         string
	ProjectID  string
	BusinessID string
}

type Repository interface {
	Create(
		ctx context.Context,
		e *models.Entrant,
	) error

	Find(
		ctx context.Context,
		scope Scope,
	) (*models.Entrant, error)

	// Deactivate sets INACTIVE and returns the updated row.
	Deactivate(
		ctx context.Context,
		scope Scope,
		now time.Time,
	) (*models.Entrant, error)

	Delete(
		ctx context.Context,
		scope Scope,
	) (*models.Entrant, error)

	// FirstActive returns the earliest ACTIVE entrant, or nil when the
	// queue is empty.
	FirstActive(
		ctx context.Context,
		projectID string,
	) (*models.Entrant, error)

	List(
		ctx context.Context,
		projectID string,
		status *Status,
	) ([]models.Entrant, error)
}
