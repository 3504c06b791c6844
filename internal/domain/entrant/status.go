package entrant

import (
	"time"

	"github.com/BruksfildServices01/virtual-queue/internal/httperr"
	"github.com/BruksfildServices01/virtual-queue/internal/models"
)

// ===============================
// Entrant Status
// ===============================

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

func InitialStatus() Status {
	return StatusActive
}

func ParseStatusFilter(raw string) (*Status, error) {
	if raw == "" {
		return nil, nil
	}
	s := Status(raw)
	if !s.Valid() {
		return nil, httperr.ErrValidation("invalid_status", "status must be one of ACTIVE, INACTIVE")
	}
	return &s, nil
}

// ===============================
// Domain Actions
// ===============================

// Deactivate is the only transition. Applying it to an inactive entrant
// leaves the status as is and still bumps UpdatedAt.
func Deactivate(e *models.Entrant, now time.Time) {
	e.Status = string(StatusInactive)
	e.UpdatedAt = now
}
