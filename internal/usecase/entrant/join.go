package entrant

import (
	"context"
	"errors"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/virtual-queue/internal/audit"
	domain "github.com/BruksfildServices01/virtual-queue/internal/domain/entrant"
	projectdomain "github.com/BruksfildServices01/virtual-queue/internal/domain/project"
	"github.com/BruksfildServices01/virtual-queue/internal/formschema"
	"github.com/BruksfildServices01/virtual-queue/internal/httperr"
	"github.com/BruksfildServices01/virtual-queue/internal/logging"
	"github.com/BruksfildServices01/virtual-queue/internal/metrics"
	"github.com/BruksfildServices01/virtual-queue/internal/models"
	"github.com/BruksfildServices01/virtual-queue/internal/timezone"
	"github.com/BruksfildServices01/virtual-queue/internal/validation"
)

// MsgSubmitFailed is the only error text the join form ever shows.
const MsgSubmitFailed = "failed to submit"

// Failure codes of a JoinResult.
const (
	CodeProjectNotFound = "project_not_found"
	CodeInvalidForm     = "invalid_form"
	CodeInternal        = "internal_error"
)

// ======================================================
// INPUT / RESULT
// ======================================================

// JoinInput addresses the project by username (public form) or by id.
type JoinInput struct {
	Username  string
	ProjectID string
	Data      map[string]string
}

// JoinResult is returned instead of an error. Error is always safe to
// show; Fields carries per-field messages for validation failures.
type JoinResult struct {
	Success bool              `json:"success"`
	Entrant *models.Entrant   `json:"user,omitempty"`
	Error   string            `json:"error,omitempty"`
	Code    string            `json:"error_code,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func failed(code string) JoinResult {
	return JoinResult{Success: false, Error: MsgSubmitFailed, Code: code}
}

// ======================================================
// USE CASE
// ======================================================

type JoinQueue struct {
	projects projectdomain.Repository
	entrants domain.Repository
	audit    *audit.Dispatcher
	metrics  *metrics.Metrics
	now      timezone.Clock
}

func NewJoinQueue(
	projects projectdomain.Repository,
	entrants domain.Repository,
	audit *audit.Dispatcher,
	metrics *metrics.Metrics,
	clock timezone.Clock,
) *JoinQueue {
	return &JoinQueue{
		projects: projects,
		entrants: entrants,
		audit:    audit,
		metrics:  metrics,
		now:      timezone.OrSystem(clock),
	}
}

// Execute validates the submission against the project's form and adds
// the entrant to the back of the queue. Only PUBLIC projects accept
// entries.
func (uc *JoinQueue) Execute(
	ctx context.Context,
	in JoinInput,
) JoinResult {

	log := logging.Ctx(ctx)

	// --------------------------------------------------
	// Resolve project
	// --------------------------------------------------
	scope := projectdomain.Scope{ID: in.ProjectID, Username: in.Username}
	if scope.IsEmpty() {
		uc.metrics.RecordJoin(metrics.JoinInvalid)
		return failed(CodeProjectNotFound)
	}

	p, err := uc.projects.Find(ctx, scope, false)
	if err != nil || !projectdomain.IsPubliclyResolvable(projectdomain.Status(p.Status)) {
		if err != nil && !httperr.IsNotFound(err) {
			log.Error().Err(err).Msg("join: project lookup failed")
			uc.metrics.RecordJoin(metrics.JoinFailed)
			return failed(CodeInternal)
		}
		uc.metrics.RecordJoin(metrics.JoinInvalid)
		return failed(CodeProjectNotFound)
	}

	// --------------------------------------------------
	// Validate against fixed + custom fields
	// --------------------------------------------------
	clean, err := formschema.BuildValidationSchema(p.Template()).Validate(in.Data)
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			uc.metrics.RecordJoin(metrics.JoinInvalid)
			res := failed(CodeInvalidForm)
			res.Fields = verrs.ByField()
			return res
		}
		log.Error().Err(err).Msg("join: validation failed unexpectedly")
		uc.metrics.RecordJoin(metrics.JoinFailed)
		return failed(CodeInternal)
	}

	// --------------------------------------------------
	// Insert
	// --------------------------------------------------
	now := uc.now()
	e := &models.Entrant{
		ID:        projectdomain.NewID(),
		ProjectID: p.ID,
		Status:    string(domain.InitialStatus()),
		Data:      datatypes.NewJSONType(clean),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.entrants.Create(ctx, e); err != nil {
		log.Error().Err(err).Str("project_id", p.ID).Msg("join: insert failed")
		uc.metrics.RecordJoin(metrics.JoinFailed)
		return failed(CodeInternal)
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: p.BusinessID,
		Action:     audit.ActionEntrantJoined,
		Entity:     "entrant",
		EntityID:   audit.Ptr(e.ID),
		Metadata:   map[string]any{"project_id": p.ID},
	})
	uc.metrics.RecordJoin(metrics.JoinAccepted)

	log.Info().
		Str("project_id", p.ID).
		Str("entrant_id", e.ID).
		Msg("entrant joined")

	return JoinResult{Success: true, Entrant: e}
}
