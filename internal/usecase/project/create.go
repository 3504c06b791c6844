package project

import (
	"context"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/virtual-queue/internal/audit"
	domain "github.com/BruksfildServices01/virtual-queue/internal/domain/project"
	"github.com/BruksfildServices01/virtual-queue/internal/formschema"
	"github.com/BruksfildServices01/virtual-queue/internal/httperr"
	"github.com/BruksfildServices01/virtual-queue/internal/logging"
	"github.com/BruksfildServices01/virtual-queue/internal/metrics"
	"github.com/BruksfildServices01/virtual-queue/internal/models"
)

// keyAttempts bounds retries when a generated api key collides.
const keyAttempts = 3

// ======================================================
// INPUT
// ======================================================

type CreateProjectInput struct {
	BusinessID    string
	BusinessEmail string

	Name         string
	Username     string
	Description  string
	Status       string
	CustomFields formschema.Template
}

// ======================================================
// USE CASE
// ======================================================

type CreateProject struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
}

func NewCreateProject(
	repo domain.Repository,
	audit *audit.Dispatcher,
	metrics *metrics.Metrics,
) *CreateProject {
	return &CreateProject{
		repo:    repo,
		audit:   audit,
		metrics: metrics,
	}
}

// Execute upserts the business, then inserts the project. The two writes
// are not one transaction; a failed insert leaves the business row.
func (uc *CreateProject) Execute(
	ctx context.Context,
	in CreateProjectInput,
) (*models.Project, error) {

	// --------------------------------------------------
	// Validation
	// --------------------------------------------------
	if in.BusinessID == "" {
		return nil, httperr.ErrValidation("invalid_request", "businessId is required")
	}
	if err := domain.ValidateName(in.Name); err != nil {
		return nil, err
	}
	if err := domain.ValidateUsername(in.Username); err != nil {
		return nil, err
	}
	status, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}
	tpl := domain.NormalizeTemplate(in.CustomFields)
	if err := tpl.Validate(); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Business upsert
	// --------------------------------------------------
	if _, err := uc.repo.UpsertBusiness(ctx, in.BusinessID, in.BusinessEmail); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Insert
	// --------------------------------------------------
	p := &models.Project{
		ID:           domain.NewID(),
		BusinessID:   in.BusinessID,
		Name:         in.Name,
		Username:     in.Username,
		Description:  in.Description,
		Status:       string(status),
		CustomFields: datatypes.NewJSONType(tpl),
	}

	for attempt := 1; ; attempt++ {
		p.APIKey = domain.NewAPIKey()
		err = uc.repo.Create(ctx, p)
		if err == nil {
			break
		}
		if !httperr.IsBusiness(err, "api_key_conflict") || attempt == keyAttempts {
			return nil, err
		}
	}
	p.Entrants = []models.Entrant{}

	// --------------------------------------------------
	// Audit
	// --------------------------------------------------
	uc.audit.Dispatch(projectEvent(ctx, audit.ActionProjectCreated, p, map[string]any{
		"status": p.Status,
	}))
	uc.metrics.RecordProjectCreated()

	logging.Ctx(ctx).Info().
		Str("project_id", p.ID).
		Str("business_id", p.BusinessID).
		Str("username", p.Username).
		Msg("project created")

	return p, nil
}
