package project

import (
	"github.com/google/uuid"

	"github.com/BruksfildServices01/virtual-queue/internal/formschema"
	"github.com/BruksfildServices01/virtual-queue/internal/httperr"
	"github.com/BruksfildServices01/virtual-queue/internal/validation"
)

const (
	maxNameLength     = 100
	maxUsernameLength = 64
)

// NewAPIKey returns a fresh opaque token. Uniqueness is enforced by the
// store, not here.
func NewAPIKey() string {
	return uuid.NewString()
}

func NewID() string {
	return uuid.NewString()
}

func ValidateUsername(username string) error {
	if username == "" || len(username) > maxUsernameLength || !validation.IsUsername(username) {
		return httperr.ErrBusiness("invalid_username")
	}
	return nil
}

func ValidateName(name string) error {
	if name == "" {
		return httperr.ErrValidation("invalid_request", "name is required")
	}
	if len(name) > maxNameLength {
		return httperr.ErrValidation("invalid_request", "name must be at most 100 characters")
	}
	return nil
}

// ValidatePatch checks every field the patch sets.
func ValidatePatch(p Patch) error {
	if p.Name != nil {
		if err := ValidateName(*p.Name); err != nil {
			return err
		}
	}
	if p.Status != nil && !p.Status.Valid() {
		return httperr.ErrBusiness("invalid_status")
	}
	if p.CustomFields != nil {
		if err := p.CustomFields.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// NormalizeTemplate maps a missing template to an empty one.
func NormalizeTemplate(t formschema.Template) formschema.Template {
	if t == nil {
		return formschema.Template{}
	}
	return t
}
