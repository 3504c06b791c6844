package entrant

import (
	"context"

	domain "github.com/BruksfildServices01/virtual-queue/internal/domain/entrant"
	projectdomain "github.com/BruksfildServices01/virtual-queue/internal/domain/project"
	"github.com/BruksfildServices01/virtual-queue/internal/formschema"
	"github.com/BruksfildServices01/virtual-queue/internal/models"
)

type ListInput struct {
	BusinessID string
	ProjectID  string
	Status     string
	// Filters maps a column id (data.name, status, ...) to its query.
	Filters map[string]string
}

// Table is an entrant listing with the columns that render it.
type Table struct {
	Columns  []formschema.Column `json:"columns"`
	Entrants []models.Entrant    `json:"users"`
}

type ListEntrants struct {
	projects projectdomain.Repository
	entrants domain.Repository
}

func NewListEntrants(
	projects projectdomain.Repository,
	entrants domain.Repository,
) *ListEntrants {
	return &ListEntrants{projects: projects, entrants: entrants}
}

// Execute lists a project's entrants in queue order and applies the
// column filters of the project's table.
func (uc *ListEntrants) Execute(
	ctx context.Context,
	in ListInput,
) (*Table, error) {

	p, err := ownedProject(ctx, uc.projects, in.BusinessID, in.ProjectID)
	if err != nil {
		return nil, err
	}

	status, err := domain.ParseStatusFilter(in.Status)
	if err != nil {
		return nil, err
	}

	list, err := uc.entrants.List(ctx, p.ID, status)
	if err != nil {
		return nil, err
	}

	cols := formschema.BuildColumns(p.Template())
	return &Table{
		Columns:  cols,
		Entrants: applyFilters(list, cols, in.Filters),
	}, nil
}

// Columns returns only the table layout.
func (uc *ListEntrants) Columns(
	ctx context.Context,
	businessID string,
	projectID string,
) ([]formschema.Column, error) {

	p, err := ownedProject(ctx, uc.projects, businessID, projectID)
	if err != nil {
		return nil, err
	}
	return formschema.BuildColumns(p.Template()), nil
}

func applyFilters(
	list []models.Entrant,
	cols []formschema.Column,
	filters map[string]string,
) []models.Entrant {

	if len(filters) == 0 {
		return list
	}

	out := make([]models.Entrant, 0, len(list))
	for i := range list {
		if rowMatches(&list[i], cols, filters) {
			out = append(out, list[i])
		}
	}
	return out
}

func rowMatches(e *models.Entrant, cols []formschema.Column, filters map[string]string) bool {
	for _, c := range cols {
		query, ok := filters[c.ID]
		if !ok || c.Filter == formschema.FilterNone {
			continue
		}

		var cell string
		if key, isData := c.DataKey(); isData {
			cell = e.Value(key)
		} else if c.ID == "status" {
			cell = e.Status
		}

		if !c.Matches(cell, query) {
			return false
		}
	}
	return true
}
