package project

import (
	"context"

	domain "github.com/BruksfildServices01/virtual-queue/internal/domain/project"
	"github.com/BruksfildServices01/virtual-queue/internal/httperr"
	"github.com/BruksfildServices01/virtual-queue/internal/models"
)

type ListProjects struct {
	repo domain.Repository
}

func NewListProjects(repo domain.Repository) *ListProjects {
	return &ListProjects{repo: repo}
}

// Execute lists the business's projects, optionally for one status.
func (uc *ListProjects) Execute(
	ctx context.Context,
	businessID string,
	status string,
) ([]models.Project, error) {

	filter, err := domain.ParseStatusFilter(status)
	if err != nil {
		return nil, err
	}
	return uc.repo.ListByBusiness(ctx, businessID, filter)
}

// ExecuteWithKey lists a business's projects for an api key holder. The
// key must belong to one of that business's projects.
func (uc *ListProjects) ExecuteWithKey(
	ctx context.Context,
	businessID string,
	apiKey string,
) ([]models.Project, error) {

	if businessID == "" {
		return nil, httperr.ErrValidation("invalid_request", "businessId is required")
	}

	if _, err := uc.repo.Find(ctx, domain.Scope{APIKey: apiKey, BusinessID: businessID}, false); err != nil {
		if httperr.IsNotFound(err) {
			return nil, httperr.ErrUnauthorized("invalid_api_key")
		}
		return nil, err
	}

	return uc.repo.ListByBusiness(ctx, businessID, nil)
}

// ListPublicProjects is the anonymous directory of PUBLIC projects.
type ListPublicProjects struct {
	repo domain.Repository
}

func NewListPublicProjects(repo domain.Repository) *ListPublicProjects {
	return &ListPublicProjects{repo: repo}
}

func (uc *ListPublicProjects) Execute(ctx context.Context) ([]models.Project, error) {
	return uc.repo.ListByStatus(ctx, domain.StatusPublic)
}
