package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/virtual-queue/internal/domain/stats"
	"github.com/BruksfildServices01/virtual-queue/internal/models"
)

type StatsGormRepository struct {
	db *gorm.DB
}

func NewStatsGormRepository(db *gorm.DB) *StatsGormRepository {
	return &StatsGormRepository{db: db}
}

// --------------------------------------------------
// Counts
// --------------------------------------------------

func (r *StatsGormRepository) CountBusinesses(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Business{}).Count(&n).Error
	return n, err
}

func (r *StatsGormRepository) CountProjects(ctx context.Context, f domain.Filter) (int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Project{})
	if f.BusinessID != "" {
		q = q.Where("business_id = ?", f.BusinessID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var n int64
	err := q.Count(&n).Error
	return n, err
}

func (r *StatsGormRepository) CountEntrants(ctx context.Context, f domain.Filter) (int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Entrant{})
	if f.BusinessID != "" {
		q = q.Joins("JOIN projects ON projects.id = entrants.project_id").
			Where("projects.business_id = ?", f.BusinessID)
	}
	if f.Status != "" {
		q = q.Where("entrants.status = ?", f.Status)
	}

	var n int64
	err := q.Count(&n).Error
	return n, err
}

func (r *StatsGormRepository) EntrantsPerProject(
	ctx context.Context,
	businessID string,
) ([]domain.ProjectUserCount, error) {

	var rows []domain.ProjectUserCount
	err := r.db.WithContext(ctx).
		Table("projects").
		Select("projects.id AS project_id, projects.name AS project_name, COUNT(entrants.id) AS user_count").
		Joins("LEFT JOIN entrants ON entrants.project_id = projects.id").
		Where("projects.business_id = ?", businessID).
		Group("projects.id, projects.name, projects.created_at").
		Order("projects.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// --------------------------------------------------
// Growth
// --------------------------------------------------

func (r *StatsGormRepository) CreationCounts(
	ctx context.Context,
	entity domain.Entity,
	businessID string,
	since time.Time,
) ([]domain.CreationCount, error) {

	var q *gorm.DB
	switch entity {
	case domain.EntityBusiness:
		q = r.db.WithContext(ctx).Table("businesses").
			Select("businesses.created_at AS created_at, COUNT(*) AS count").
			Where("businesses.created_at >= ?", since)
		if businessID != "" {
			q = q.Where("businesses.id = ?", businessID)
		}
		q = q.Group("businesses.created_at")

	case domain.EntityProject:
		q = r.db.WithContext(ctx).Table("projects").
			Select("projects.created_at AS created_at, COUNT(*) AS count").
			Where("projects.created_at >= ?", since)
		if businessID != "" {
			q = q.Where("projects.business_id = ?", businessID)
		}
		q = q.Group("projects.created_at")

	case domain.EntityEntrant:
		q = r.db.WithContext(ctx).Table("entrants").
			Select("entrants.created_at AS created_at, COUNT(*) AS count").
			Where("entrants.created_at >= ?", since)
		if businessID != "" {
			q = q.Joins("JOIN projects ON projects.id = entrants.project_id").
				Where("projects.business_id = ?", businessID)
		}
		q = q.Group("entrants.created_at")

	default:
		return nil, fmt.Errorf("unknown stats entity %q", entity)
	}

	var rows []domain.CreationCount
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Compile-time check
var _ domain.Repository = (*StatsGormRepository)(nil)
