package stats

import (
	"context"
	"time"
)

type Entity string

const (
	EntityBusiness Entity = "business"
	EntityProject  Entity = "project"
	EntityEntrant  Entity = "entrant"
)

// Filter narrows a count. Empty fields do not filter; BusinessID on
// entrants matches through the owning project.
type Filter struct {
	BusinessID string
	Status     string
}

type Repository interface {
	CountBusinesses(ctx context.Context) (int64, error)
	CountProjects(ctx context.Context, f Filter) (int64, error)
	CountEntrants(ctx context.Context, f Filter) (int64, error)

	// EntrantsPerProject lists every project of the business, including
	// those without entrants, ordered by creation.
	EntrantsPerProject(ctx context.Context, businessID string) ([]ProjectUserCount, error)

	// CreationCounts groups rows created at or after since by created_at.
	// An empty businessID means system-wide.
	CreationCounts(
		ctx context.Context,
		entity Entity,
		businessID string,
		since time.Time,
	) ([]CreationCount, error)
}
