package memory

import (
	"context"
	"errors"
	"time"

	domain "github.com/BruksfildServices01/virtual-queue/internal/domain/entrant"
	"github.com/BruksfildServices01/virtual-queue/internal/httperr"
	"github.com/BruksfildServices01/virtual-queue/internal/models"
)

type EntrantRepository struct {
	s *Store
}

func (r *EntrantRepository) lookup(scope domain.Scope) (*models.Entrant, error) {
	if scope.ID == "" {
		return nil, errors.New("entrant scope requires an id")
	}

	e, ok := r.s.entrants[scope.ID]
	if !ok || (scope.ProjectID != "" && e.ProjectID != scope.ProjectID) {
		return nil, httperr.ErrNotFound("entrant_not_found")
	}
	if scope.BusinessID != "" {
		p, ok := r.s.projects[e.ProjectID]
		if !ok || p.BusinessID != scope.BusinessID {
			return nil, httperr.ErrNotFound("entrant_not_found")
		}
	}
	return e, nil
}

func (r *EntrantRepository) Create(
	_ context.Context,
	e *models.Entrant,
) error {

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.projects[e.ProjectID]; !ok {
		return errors.New("entrant references unknown project " + e.ProjectID)
	}
	if _, ok := r.s.entrants[e.ID]; ok {
		return httperr.ErrBusiness("already_exists")
	}

	now := r.s.now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = now
	}

	stored := copyEntrant(e)
	r.s.entrants[e.ID] = &stored
	r.s.stamp(e.ID)
	return nil
}

func (r *EntrantRepository) Find(
	_ context.Context,
	scope domain.Scope,
) (*models.Entrant, error) {

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, err := r.lookup(scope)
	if err != nil {
		return nil, err
	}
	out := copyEntrant(e)
	return &out, nil
}

func (r *EntrantRepository) Deactivate(
	_ context.Context,
	scope domain.Scope,
	now time.Time,
) (*models.Entrant, error) {

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, err := r.lookup(scope)
	if err != nil {
		return nil, err
	}

	domain.Deactivate(e, now)
	out := copyEntrant(e)
	return &out, nil
}

func (r *EntrantRepository) Delete(
	_ context.Context,
	scope domain.Scope,
) (*models.Entrant, error) {

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, err := r.lookup(scope)
	if err != nil {
		return nil, err
	}

	out := copyEntrant(e)
	delete(r.s.entrants, e.ID)
	delete(r.s.seq, e.ID)
	return &out, nil
}

func (r *EntrantRepository) FirstActive(
	_ context.Context,
	projectID string,
) (*models.Entrant, error) {

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, e := range r.s.sortedEntrants(projectID) {
		if e.Status == string(domain.StatusActive) {
			out := copyEntrant(e)
			return &out, nil
		}
	}
	return nil, nil
}

func (r *EntrantRepository) List(
	_ context.Context,
	projectID string,
	status *domain.Status,
) ([]models.Entrant, error) {

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []models.Entrant{}
	for _, e := range r.s.sortedEntrants(projectID) {
		if status != nil && e.Status != string(*status) {
			continue
		}
		out = append(out, copyEntrant(e))
	}
	return out, nil
}

// Compile-time check
var _ domain.Repository = (*EntrantRepository)(nil)
