package stats

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	projectdomain "github.com/BruksfildServices01/virtual-queue/internal/domain/project"
	domain "github.com/BruksfildServices01/virtual-queue/internal/domain/stats"
	"github.com/BruksfildServices01/virtual-queue/internal/timezone"
)

// BusinessStats is the owner dashboard aggregator. Every figure is
// scoped to one business.
type BusinessStats struct {
	repo domain.Repository
	now  timezone.Clock
}

func NewBusinessStats(repo domain.Repository, clock timezone.Clock) *BusinessStats {
	return &BusinessStats{repo: repo, now: timezone.OrSystem(clock)}
}

func (uc *BusinessStats) ProjectStats(
	ctx context.Context,
	businessID string,
) (*domain.ProjectStats, error) {

	var (
		out      domain.ProjectStats
		entrants int64
	)

	g, gctx := errgroup.WithContext(ctx)
	count := func(dst *int64, status projectdomain.Status) {
		g.Go(func() error {
			n, err := uc.repo.CountProjects(gctx, domain.Filter{BusinessID: businessID, Status: string(status)})
			*dst = n
			return err
		})
	}

	count(&out.TotalProjects, "")
	count(&out.PublicProjects, projectdomain.StatusPublic)
	count(&out.PrivateProjects, projectdomain.StatusPrivate)
	count(&out.UnlistedProjects, projectdomain.StatusUnlisted)
	g.Go(func() error {
		n, err := uc.repo.CountEntrants(gctx, domain.Filter{BusinessID: businessID})
		entrants = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.AvgUsersPerProject = domain.Average(entrants, out.TotalProjects)
	return &out, nil
}

func (uc *BusinessStats) UserStats(
	ctx context.Context,
	businessID string,
) (*domain.UserStats, error) {

	var out domain.UserStats

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := uc.repo.CountEntrants(gctx, domain.Filter{BusinessID: businessID})
		out.TotalUsers = n
		return err
	})
	g.Go(func() error {
		n, err := uc.repo.CountEntrants(gctx, domain.Filter{BusinessID: businessID, Status: "ACTIVE"})
		out.ActiveUsers = n
		return err
	})
	g.Go(func() error {
		per, err := uc.repo.EntrantsPerProject(gctx, businessID)
		out.UsersByProject = per
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if out.UsersByProject == nil {
		out.UsersByProject = []domain.ProjectUserCount{}
	}
	return &out, nil
}

// UserGrowth is entrants joined per day over the last 30 days.
func (uc *BusinessStats) UserGrowth(
	ctx context.Context,
	businessID string,
) ([]domain.TimeSeriesPoint, error) {
	return series(ctx, uc.repo, domain.EntityEntrant, businessID, uc.now())
}

// ProjectActivity is projects created per day over the last 30 days.
func (uc *BusinessStats) ProjectActivity(
	ctx context.Context,
	businessID string,
) ([]domain.TimeSeriesPoint, error) {
	return series(ctx, uc.repo, domain.EntityProject, businessID, uc.now())
}

func series(
	ctx context.Context,
	repo domain.Repository,
	entity domain.Entity,
	businessID string,
	now time.Time,
) ([]domain.TimeSeriesPoint, error) {

	rows, err := repo.CreationCounts(ctx, entity, businessID, domain.WindowStart(now))
	if err != nil {
		return nil, err
	}
	return domain.DailySeries(rows, now), nil
}
