package entrant

import (
	"context"

	"github.com/BruksfildServices01/virtual-queue/internal/audit"
	"github.com/BruksfildServices01/virtual-queue/internal/auth"
	projectdomain "github.com/BruksfildServices01/virtual-queue/internal/domain/project"
	"github.com/BruksfildServices01/virtual-queue/internal/models"
)

// ownedProject loads a project only when businessID owns it.
func ownedProject(
	ctx context.Context,
	repo projectdomain.Repository,
	businessID string,
	projectID string,
) (*models.Project, error) {
	return repo.Find(ctx, projectdomain.Scope{ID: projectID, BusinessID: businessID}, false)
}

func entrantEvent(ctx context.Context, action, businessID string, e *models.Entrant) audit.Event {
	var actor *string
	if id, ok := auth.FromContext(ctx); ok {
		actor = audit.Ptr(id.ID)
	}
	return audit.Event{
		BusinessID: businessID,
		ActorID:    actor,
		Action:     action,
		Entity:     "entrant",
		EntityID:   audit.Ptr(e.ID),
		Metadata:   map[string]any{"project_id": e.ProjectID},
	}
}
