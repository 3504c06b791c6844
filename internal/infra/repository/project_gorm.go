package repository

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/virtual-queue/internal/domain/project"
	"github.com/BruksfildServices01/virtual-queue/internal/httperr"
	"github.com/BruksfildServices01/virtual-queue/internal/models"
	"github.com/BruksfildServices01/virtual-queue/internal/timezone"
)

var errEmptyScope = errors.New("project scope must select at least one column")

type ProjectGormRepository struct {
	db  *gorm.DB
	now timezone.Clock
}

func NewProjectGormRepository(db *gorm.DB, clock timezone.Clock) *ProjectGormRepository {
	return &ProjectGormRepository{db: db, now: timezone.OrSystem(clock)}
}

func (r *ProjectGormRepository) scoped(ctx context.Context, scope domain.Scope) *gorm.DB {
	q := r.db.WithContext(ctx)
	if scope.ID != "" {
		q = q.Where("id = ?", scope.ID)
	}
	if scope.BusinessID != "" {
		q = q.Where("business_id = ?", scope.BusinessID)
	}
	if scope.APIKey != "" {
		q = q.Where("api_key = ?", scope.APIKey)
	}
	if scope.Username != "" {
		q = q.Where("username = ?", scope.Username)
	}
	return q
}

// --------------------------------------------------
// Business
// --------------------------------------------------

func (r *ProjectGormRepository) UpsertBusiness(
	ctx context.Context,
	id string,
	email string,
) (*models.Business, error) {

	updates := []string{"updated_at"}
	if email != "" {
		updates = append(updates, "email")
	}

	b := models.Business{ID: id, Email: email}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(updates),
		}).
		Create(&b).Error; err != nil {
		return nil, err
	}

	return r.GetBusiness(ctx, id)
}

func (r *ProjectGormRepository) GetBusiness(
	ctx context.Context,
	id string,
) (*models.Business, error) {

	var b models.Business
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&b).Error; err != nil {
		return nil, notFoundOr(err, "business_not_found")
	}
	return &b, nil
}

// --------------------------------------------------
// Project (read)
// --------------------------------------------------

func (r *ProjectGormRepository) Find(
	ctx context.Context,
	scope domain.Scope,
	withEntrants bool,
) (*models.Project, error) {

	if scope.IsEmpty() {
		return nil, errEmptyScope
	}

	q := r.scoped(ctx, scope)
	if withEntrants {
		q = q.Preload("Entrants", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC").Order("seq ASC")
		})
	}

	var p models.Project
	if err := q.First(&p).Error; err != nil {
		return nil, notFoundOr(err, "project_not_found")
	}
	return &p, nil
}

func (r *ProjectGormRepository) ListByBusiness(
	ctx context.Context,
	businessID string,
	status *domain.Status,
) ([]models.Project, error) {

	q := r.db.WithContext(ctx).Where("business_id = ?", businessID)
	if status != nil {
		q = q.Where("status = ?", string(*status))
	}

	var projects []models.Project
	if err := q.Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *ProjectGormRepository) ListByStatus(
	ctx context.Context,
	status domain.Status,
) ([]models.Project, error) {

	var projects []models.Project
	if err := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// --------------------------------------------------
// Project (write)
// --------------------------------------------------

func (r *ProjectGormRepository) Create(
	ctx context.Context,
	p *models.Project,
) error {
	return translateWriteError(r.db.WithContext(ctx).Create(p).Error)
}

// Update applies the patch with a single UPDATE ... WHERE scope and
// reloads the row. A scope that matches nothing is NotFound.
func (r *ProjectGormRepository) Update(
	ctx context.Context,
	scope domain.Scope,
	patch domain.Patch,
) (*models.Project, error) {

	if scope.IsEmpty() {
		return nil, errEmptyScope
	}

	updates := map[string]any{"updated_at": r.now()}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Status != nil {
		updates["status"] = string(*patch.Status)
	}
	if patch.CustomFields != nil {
		updates["custom_fields"] = datatypes.NewJSONType(domain.NormalizeTemplate(*patch.CustomFields))
	}
	if patch.APIKey != nil {
		updates["api_key"] = *patch.APIKey
	}

	res := r.scoped(ctx, scope).
		Model(&models.Project{}).
		Updates(updates)
	if res.Error != nil {
		return nil, translateWriteError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, httperr.ErrNotFound("project_not_found")
	}

	reload := scope
	if patch.APIKey != nil && reload.APIKey != "" {
		reload.APIKey = *patch.APIKey
	}
	return r.Find(ctx, reload, false)
}

// Delete removes the project; entrants go with it through the foreign key.
func (r *ProjectGormRepository) Delete(
	ctx context.Context,
	scope domain.Scope,
) (*models.Project, error) {

	p, err := r.Find(ctx, scope, true)
	if err != nil {
		return nil, err
	}

	res := r.db.WithContext(ctx).
		Where("id = ?", p.ID).
		Delete(&models.Project{})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, httperr.ErrNotFound("project_not_found")
	}

	return p, nil
}

// --------------------------------------------------
// Admin
// --------------------------------------------------

func (r *ProjectGormRepository) ListBusinesses(ctx context.Context) ([]models.Business, error) {
	var businesses []models.Business
	if err := r.db.WithContext(ctx).
		Preload("Projects", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Order("created_at DESC").
		Find(&businesses).Error; err != nil {
		return nil, err
	}
	return businesses, nil
}

func (r *ProjectGormRepository) ListAll(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.WithContext(ctx).
		Preload("Business").
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Compile-time check
var _ domain.Repository = (*ProjectGormRepository)(nil)
