package stats

import (
	"context"

	"golang.org/x/sync/errgroup"

	domain "github.com/BruksfildServices01/virtual-queue/internal/domain/stats"
	"github.com/BruksfildServices01/virtual-queue/internal/timezone"
)

// SystemStats is the admin aggregator across all businesses.
type SystemStats struct {
	repo domain.Repository
	now  timezone.Clock
}

func NewSystemStats(repo domain.Repository, clock timezone.Clock) *SystemStats {
	return &SystemStats{repo: repo, now: timezone.OrSystem(clock)}
}

type totals struct {
	businesses int64
	projects   int64
	entrants   int64
}

func (uc *SystemStats) totals(ctx context.Context) (totals, error) {
	var t totals

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		t.businesses, err = uc.repo.CountBusinesses(gctx)
		return err
	})
	g.Go(func() (err error) {
		t.projects, err = uc.repo.CountProjects(gctx, domain.Filter{})
		return err
	})
	g.Go(func() (err error) {
		t.entrants, err = uc.repo.CountEntrants(gctx, domain.Filter{})
		return err
	})

	return t, g.Wait()
}

func (uc *SystemStats) Overview(ctx context.Context) (*domain.SystemStats, error) {
	t, err := uc.totals(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.SystemStats{
		TotalBusinesses:        t.businesses,
		TotalProjects:          t.projects,
		TotalUsers:             t.entrants,
		AvgProjectsPerBusiness: domain.Average(t.projects, t.businesses),
		AvgUsersPerBusiness:    domain.Average(t.entrants, t.businesses),
	}, nil
}

func (uc *SystemStats) BusinessSummary(ctx context.Context) (*domain.BusinessSummary, error) {
	t, err := uc.totals(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.BusinessSummary{
		TotalBusinesses:            t.businesses,
		AverageProjectsPerBusiness: domain.Average(t.projects, t.businesses),
	}, nil
}

func (uc *SystemStats) ProjectSummary(ctx context.Context) (*domain.ProjectSummary, error) {
	t, err := uc.totals(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.ProjectSummary{
		TotalProjects:          t.projects,
		AverageUsersPerProject: domain.Average(t.entrants, t.projects),
	}, nil
}

func (uc *SystemStats) BusinessGrowth(ctx context.Context) ([]domain.TimeSeriesPoint, error) {
	return series(ctx, uc.repo, domain.EntityBusiness, "", uc.now())
}

func (uc *SystemStats) ProjectGrowth(ctx context.Context) ([]domain.TimeSeriesPoint, error) {
	return series(ctx, uc.repo, domain.EntityProject, "", uc.now())
}

func (uc *SystemStats) UserGrowth(ctx context.Context) ([]domain.TimeSeriesPoint, error) {
	return series(ctx, uc.repo, domain.EntityEntrant, "", uc.now())
}
