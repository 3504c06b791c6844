package project

import (
	"context"
	"crypto/subtle"

	domain "github.com/BruksfildServices01/virtual-queue/internal/domain/project"
	"github.com/BruksfildServices01/virtual-queue/internal/dto"
	"github.com/BruksfildServices01/virtual-queue/internal/httperr"
	"github.com/BruksfildServices01/virtual-queue/internal/infra/cache"
	"github.com/BruksfildServices01/virtual-queue/internal/models"
)

// ======================================================
// GET (owner or api key)
// ======================================================

type GetProject struct {
	repo domain.Repository
}

func NewGetProject(repo domain.Repository) *GetProject {
	return &GetProject{repo: repo}
}

// Execute resolves a project by an owner scope, entrants included.
func (uc *GetProject) Execute(
	ctx context.Context,
	scope domain.Scope,
) (*models.Project, error) {
	return uc.repo.Find(ctx, scope, true)
}

// ExecuteByAPIKey resolves the project bound to apiKey. A key that
// matches nothing is unauthorized rather than missing.
func (uc *GetProject) ExecuteByAPIKey(
	ctx context.Context,
	apiKey string,
) (*models.Project, error) {

	p, err := uc.repo.Find(ctx, domain.Scope{APIKey: apiKey}, true)
	if httperr.IsNotFound(err) {
		return nil, httperr.ErrUnauthorized("invalid_api_key")
	}
	return p, err
}

// ExecuteWithKey resolves a project by id (or username) within a
// business, then checks the presented key against it. A missing project
// is 404; a wrong key on an existing one is 401.
func (uc *GetProject) ExecuteWithKey(
	ctx context.Context,
	ref string,
	byUsername bool,
	businessID string,
	apiKey string,
) (*models.Project, error) {

	if businessID == "" {
		return nil, httperr.ErrValidation("invalid_request", "businessId is required")
	}

	scope := domain.Scope{ID: ref, BusinessID: businessID}
	if byUsername {
		scope = domain.Scope{Username: ref, BusinessID: businessID}
	}

	p, err := uc.repo.Find(ctx, scope, true)
	if err != nil {
		return nil, err
	}
	if !KeyMatches(p.APIKey, apiKey) {
		return nil, httperr.ErrUnauthorized("invalid_api_key")
	}
	return p, nil
}

// KeyMatches compares api keys in constant time.
func KeyMatches(stored, presented string) bool {
	if presented == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1
}

// ======================================================
// GET BY USERNAME
// ======================================================

type GetProjectByUsername struct {
	repo  domain.Repository
	cache cache.PublicProjects
}

func NewGetProjectByUsername(
	repo domain.Repository,
	c cache.PublicProjects,
) *GetProjectByUsername {
	if c == nil {
		c = cache.Noop{}
	}
	return &GetProjectByUsername{repo: repo, cache: c}
}

// Execute resolves a project by slug. With a businessID the project must
// belong to it and any status is returned. Without one only PUBLIC
// projects resolve; the others look missing.
func (uc *GetProjectByUsername) Execute(
	ctx context.Context,
	username string,
	businessID string,
) (*models.Project, error) {

	if username == "" {
		return nil, httperr.ErrNotFound("project_not_found")
	}

	if businessID != "" {
		return uc.repo.Find(ctx, domain.Scope{Username: username, BusinessID: businessID}, true)
	}

	p, err := uc.repo.Find(ctx, domain.Scope{Username: username}, false)
	if err != nil {
		return nil, err
	}
	if !domain.IsPubliclyResolvable(domain.Status(p.Status)) {
		return nil, httperr.ErrNotFound("project_not_found")
	}
	return p, nil
}

// ExecutePublic is the anonymous, cached variant of Execute.
func (uc *GetProjectByUsername) ExecutePublic(
	ctx context.Context,
	username string,
) (*dto.PublicProjectDTO, error) {

	if hit, ok := uc.cache.Get(ctx, username); ok {
		return hit, nil
	}

	p, err := uc.Execute(ctx, username, "")
	if err != nil {
		return nil, err
	}

	out := dto.NewPublicProject(p)
	uc.cache.Set(ctx, username, out)
	return &out, nil
}
