package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/virtual-queue/internal/domain/entrant"
	"github.com/BruksfildServices01/virtual-queue/internal/httperr"
	"github.com/BruksfildServices01/virtual-queue/internal/models"
)

type EntrantGormRepository struct {
	db *gorm.DB
}

func NewEntrantGormRepository(db *gorm.DB) *EntrantGormRepository {
	return &EntrantGormRepository{db: db}
}

// scoped filters on entrants; BusinessID goes through the owning project.
func (r *EntrantGormRepository) scoped(ctx context.Context, scope domain.Scope) (*gorm.DB, error) {
	if scope.ID == "" {
		return nil, errors.New("entrant scope requires an id")
	}

	q := r.db.WithContext(ctx).Where("entrants.id = ?", scope.ID)
	if scope.ProjectID != "" {
		q = q.Where("entrants.project_id = ?", scope.ProjectID)
	}
	if scope.BusinessID != "" {
		q = q.Where(
			"entrants.project_id IN (?)",
			r.db.Model(&models.Project{}).Select("id").Where("business_id = ?", scope.BusinessID),
		)
	}
	return q, nil
}

func (r *EntrantGormRepository) Create(
	ctx context.Context,
	e *models.Entrant,
) error {
	return translateWriteError(r.db.WithContext(ctx).Create(e).Error)
}

func (r *EntrantGormRepository) Find(
	ctx context.Context,
	scope domain.Scope,
) (*models.Entrant, error) {

	q, err := r.scoped(ctx, scope)
	if err != nil {
		return nil, err
	}

	var e models.Entrant
	if err := q.First(&e).Error; err != nil {
		return nil, notFoundOr(err, "entrant_not_found")
	}
	return &e, nil
}

func (r *EntrantGormRepository) Deactivate(
	ctx context.Context,
	scope domain.Scope,
	now time.Time,
) (*models.Entrant, error) {

	q, err := r.scoped(ctx, scope)
	if err != nil {
		return nil, err
	}

	res := q.Model(&models.Entrant{}).Updates(map[string]any{
		"status":     string(domain.StatusInactive),
		"updated_at": now,
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, httperr.ErrNotFound("entrant_not_found")
	}

	return r.Find(ctx, scope)
}

func (r *EntrantGormRepository) Delete(
	ctx context.Context,
	scope domain.Scope,
) (*models.Entrant, error) {

	e, err := r.Find(ctx, scope)
	if err != nil {
		return nil, err
	}

	res := r.db.WithContext(ctx).
		Where("id = ?", e.ID).
		Delete(&models.Entrant{})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, httperr.ErrNotFound("entrant_not_found")
	}
	return e, nil
}

func (r *EntrantGormRepository) FirstActive(
	ctx context.Context,
	projectID string,
) (*models.Entrant, error) {

	var e models.Entrant
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND status = ?", projectID, string(domain.StatusActive)).
		Order("created_at ASC").
		Order("seq ASC").
		Take(&e).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EntrantGormRepository) List(
	ctx context.Context,
	projectID string,
	status *domain.Status,
) ([]models.Entrant, error) {

	q := r.db.WithContext(ctx).Where("project_id = ?", projectID)
	if status != nil {
		q = q.Where("status = ?", string(*status))
	}

	var entrants []models.Entrant
	if err := q.Order("created_at ASC").Order("seq ASC").Find(&entrants).Error; err != nil {
		return nil, err
	}
	return entrants, nil
}

// Compile-time check
var _ domain.Repository = (*EntrantGormRepository)(nil)
