package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	domain "github.com/BruksfildServices01/virtual-queue/internal/domain/stats"
	"github.com/BruksfildServices01/virtual-queue/internal/models"
)

type StatsRepository struct {
	s *Store
}

func (r *StatsRepository) CountBusinesses(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return int64(len(r.s.businesses)), nil
}

func (r *StatsRepository) CountProjects(_ context.Context, f domain.Filter) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, p := range r.s.projects {
		if f.BusinessID != "" && p.BusinessID != f.BusinessID {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		n++
	}
	return n, nil
}

func (r *StatsRepository) CountEntrants(_ context.Context, f domain.Filter) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, e := range r.s.entrants {
		if f.BusinessID != "" && !r.ownedBy(e, f.BusinessID) {
			continue
		}
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		n++
	}
	return n, nil
}

func (r *StatsRepository) ownedBy(e *models.Entrant, businessID string) bool {
	p, ok := r.s.projects[e.ProjectID]
	return ok && p.BusinessID == businessID
}

func (r *StatsRepository) EntrantsPerProject(
	_ context.Context,
	businessID string,
) ([]domain.ProjectUserCount, error) {

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var projects []*models.Project
	for _, p := range r.s.projects {
		if p.BusinessID == businessID {
			projects = append(projects, p)
		}
	}
	sort.Slice(projects, func(i, j int) bool {
		return r.s.before(projects[i].ID, projects[i].CreatedAt, projects[j].ID, projects[j].CreatedAt)
	})

	counts := map[string]int64{}
	for _, e := range r.s.entrants {
		counts[e.ProjectID]++
	}

	out := make([]domain.ProjectUserCount, 0, len(projects))
	for _, p := range projects {
		out = append(out, domain.ProjectUserCount{
			ProjectID:   p.ID,
			ProjectName: p.Name,
			UserCount:   counts[p.ID],
		})
	}
	return out, nil
}

func (r *StatsRepository) CreationCounts(
	_ context.Context,
	entity domain.Entity,
	businessID string,
	since time.Time,
) ([]domain.CreationCount, error) {

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var stamps []time.Time
	switch entity {
	case domain.EntityBusiness:
		for _, b := range r.s.businesses {
			if businessID == "" || b.ID == businessID {
				stamps = append(stamps, b.CreatedAt)
			}
		}
	case domain.EntityProject:
		for _, p := range r.s.projects {
			if businessID == "" || p.BusinessID == businessID {
				stamps = append(stamps, p.CreatedAt)
			}
		}
	case domain.EntityEntrant:
		for _, e := range r.s.entrants {
			if businessID == "" || r.ownedBy(e, businessID) {
				stamps = append(stamps, e.CreatedAt)
			}
		}
	default:
		return nil, fmt.Errorf("unknown stats entity %q", entity)
	}

	grouped := map[time.Time]int64{}
	for _, at := range stamps {
		if at.Before(since) {
			continue
		}
		grouped[at.UTC()]++
	}

	out := make([]domain.CreationCount, 0, len(grouped))
	for at, n := range grouped {
		out = append(out, domain.CreationCount{CreatedAt: at, Count: n})
	}
	return out, nil
}

// Compile-time check
var _ domain.Repository = (*StatsRepository)(nil)
