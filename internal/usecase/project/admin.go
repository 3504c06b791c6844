package project

import (
	"context"

	domain "github.com/BruksfildServices01/virtual-queue/internal/domain/project"
	"github.com/BruksfildServices01/virtual-queue/internal/models"
)

// AdminListings backs the admin dashboard tables.
type AdminListings struct {
	repo domain.Repository
}

func NewAdminListings(repo domain.Repository) *AdminListings {
	return &AdminListings{repo: repo}
}

// Businesses returns every business with its projects.
func (uc *AdminListings) Businesses(ctx context.Context) ([]models.Business, error) {
	return uc.repo.ListBusinesses(ctx)
}

// Projects returns every project with its business.
func (uc *AdminListings) Projects(ctx context.Context) ([]models.Project, error) {
	return uc.repo.ListAll(ctx)
}
