package project

import (
	"context"

	domain "github.com/BruksfildServices01/virtual-queue/internal/domain/project"
	"github.com/BruksfildServices01/virtual-queue/internal/httperr"
	"github.com/BruksfildServices01/virtual-queue/internal/models"
)

// RegisterBusiness mirrors an identity provider sign-up into the
// businesses table. Calling it again refreshes the email.
type RegisterBusiness struct {
	repo domain.Repository
}

func NewRegisterBusiness(repo domain.Repository) *RegisterBusiness {
	return &RegisterBusiness{repo: repo}
}

func (uc *RegisterBusiness) Execute(
	ctx context.Context,
	businessID string,
	email string,
) (*models.Business, error) {

	if businessID == "" || email == "" {
		return nil, httperr.ErrValidation("invalid_request", "business id and email are required")
	}
	return uc.repo.UpsertBusiness(ctx, businessID, email)
}
