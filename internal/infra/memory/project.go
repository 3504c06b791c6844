package memory

import (
	"context"
	"errors"
	"sort"

	"gorm.io/datatypes"

	domain "github.com/BruksfildServices01/virtual-queue/internal/domain/project"
	"github.com/BruksfildServices01/virtual-queue/internal/httperr"
	"github.com/BruksfildServices01/virtual-queue/internal/models"
)

var errEmptyScope = errors.New("project scope must select at least one column")

type ProjectRepository struct {
	s *Store
}

func matchesProject(p *models.Project, scope domain.Scope) bool {
	return (scope.ID == "" || p.ID == scope.ID) &&
		(scope.BusinessID == "" || p.BusinessID == scope.BusinessID) &&
		(scope.APIKey == "" || p.APIKey == scope.APIKey) &&
		(scope.Username == "" || p.Username == scope.Username)
}

// lookup returns the stored pointer. Callers hold the lock.
func (r *ProjectRepository) lookup(scope domain.Scope) (*models.Project, error) {
	if scope.IsEmpty() {
		return nil, errEmptyScope
	}
	for _, p := range r.s.projects {
		if matchesProject(p, scope) {
			return p, nil
		}
	}
	return nil, httperr.ErrNotFound("project_not_found")
}

func (r *ProjectRepository) withEntrants(p *models.Project) models.Project {
	out := copyProject(p)
	out.Entrants = []models.Entrant{}
	for _, e := range r.s.sortedEntrants(p.ID) {
		out.Entrants = append(out.Entrants, copyEntrant(e))
	}
	return out
}

func (r *ProjectRepository) sortDesc(list []models.Project) {
	sort.Slice(list, func(i, j int) bool {
		return r.s.before(list[j].ID, list[j].CreatedAt, list[i].ID, list[i].CreatedAt)
	})
}

// --------------------------------------------------
// Business
// --------------------------------------------------

func (r *ProjectRepository) UpsertBusiness(
	_ context.Context,
	id string,
	email string,
) (*models.Business, error) {

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	b, ok := r.s.businesses[id]
	if !ok {
		b = &models.Business{ID: id, CreatedAt: now}
		r.s.businesses[id] = b
		r.s.stamp(id)
	}
	if email != "" {
		b.Email = email
	}
	b.UpdatedAt = now

	out := copyBusiness(b)
	return &out, nil
}

func (r *ProjectRepository) GetBusiness(
	_ context.Context,
	id string,
) (*models.Business, error) {

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.businesses[id]
	if !ok {
		return nil, httperr.ErrNotFound("business_not_found")
	}
	out := copyBusiness(b)
	return &out, nil
}

// --------------------------------------------------
// Project (read)
// --------------------------------------------------

func (r *ProjectRepository) Find(
	_ context.Context,
	scope domain.Scope,
	withEntrants bool,
) (*models.Project, error) {

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, err := r.lookup(scope)
	if err != nil {
		return nil, err
	}

	var out models.Project
	if withEntrants {
		out = r.withEntrants(p)
	} else {
		out = copyProject(p)
	}
	return &out, nil
}

func (r *ProjectRepository) ListByBusiness(
	_ context.Context,
	businessID string,
	status *domain.Status,
) ([]models.Project, error) {

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []models.Project{}
	for _, p := range r.s.projects {
		if p.BusinessID != businessID {
			continue
		}
		if status != nil && p.Status != string(*status) {
			continue
		}
		out = append(out, copyProject(p))
	}
	r.sortDesc(out)
	return out, nil
}

func (r *ProjectRepository) ListByStatus(
	_ context.Context,
	status domain.Status,
) ([]models.Project, error) {

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []models.Project{}
	for _, p := range r.s.projects {
		if p.Status == string(status) {
			out = append(out, copyProject(p))
		}
	}
	r.sortDesc(out)
	return out, nil
}

// --------------------------------------------------
// Project (write)
// --------------------------------------------------

func (r *ProjectRepository) conflict(id, username, apiKey string) error {
	for _, other := range r.s.projects {
		if other.ID == id {
			continue
		}
		if username != "" && other.Username == username {
			return httperr.ErrBusiness("username_taken")
		}
		if apiKey != "" && other.APIKey == apiKey {
			return httperr.ErrBusiness("api_key_conflict")
		}
	}
	return nil
}

func (r *ProjectRepository) Create(
	_ context.Context,
	p *models.Project,
) error {

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.businesses[p.BusinessID]; !ok {
		return errors.New("project references unknown business " + p.BusinessID)
	}
	if _, ok := r.s.projects[p.ID]; ok {
		return httperr.ErrBusiness("already_exists")
	}
	if err := r.conflict(p.ID, p.Username, p.APIKey); err != nil {
		return err
	}

	now := r.s.now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}

	stored := copyProject(p)
	r.s.projects[p.ID] = &stored
	r.s.stamp(p.ID)
	return nil
}

func (r *ProjectRepository) Update(
	_ context.Context,
	scope domain.Scope,
	patch domain.Patch,
) (*models.Project, error) {

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, err := r.lookup(scope)
	if err != nil {
		return nil, err
	}

	if patch.APIKey != nil {
		if err := r.conflict(p.ID, "", *patch.APIKey); err != nil {
			return nil, err
		}
		p.APIKey = *patch.APIKey
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Status != nil {
		p.Status = string(*patch.Status)
	}
	if patch.CustomFields != nil {
		p.CustomFields = datatypes.NewJSONType(domain.NormalizeTemplate(*patch.CustomFields))
	}
	p.UpdatedAt = r.s.now()

	out := copyProject(p)
	return &out, nil
}

func (r *ProjectRepository) Delete(
	_ context.Context,
	scope domain.Scope,
) (*models.Project, error) {

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, err := r.lookup(scope)
	if err != nil {
		return nil, err
	}

	out := r.withEntrants(p)
	for _, e := range out.Entrants {
		delete(r.s.entrants, e.ID)
		delete(r.s.seq, e.ID)
	}
	delete(r.s.projects, p.ID)
	delete(r.s.seq, p.ID)

	return &out, nil
}

// --------------------------------------------------
// Admin
// --------------------------------------------------

func (r *ProjectRepository) ListBusinesses(_ context.Context) ([]models.Business, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.Business, 0, len(r.s.businesses))
	for _, b := range r.s.businesses {
		cp := copyBusiness(b)
		cp.Projects = []models.Project{}
		for _, p := range r.s.projects {
			if p.BusinessID == b.ID {
				cp.Projects = append(cp.Projects, copyProject(p))
			}
		}
		r.sortDesc(cp.Projects)
		out = append(out, cp)
	}

	sort.Slice(out, func(i, j int) bool {
		return r.s.before(out[j].ID, out[j].CreatedAt, out[i].ID, out[i].CreatedAt)
	})
	return out, nil
}

func (r *ProjectRepository) ListAll(_ context.Context) ([]models.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.Project, 0, len(r.s.projects))
	for _, p := range r.s.projects {
		cp := copyProject(p)
		if b, ok := r.s.businesses[p.BusinessID]; ok {
			owner := copyBusiness(b)
			cp.Business = &owner
		}
		out = append(out, cp)
	}
	r.sortDesc(out)
	return out, nil
}

// Compile-time check
var _ domain.Repository = (*ProjectRepository)(nil)
