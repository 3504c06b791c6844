package project

import (
	"context"

	"github.com/BruksfildServices01/virtual-queue/internal/audit"
	"github.com/BruksfildServices01/virtual-queue/internal/auth"
	"github.com/BruksfildServices01/virtual-queue/internal/models"
)

// projectEvent builds the audit event for a project mutation. Callers
// without a session act through the project's api key.
func projectEvent(ctx context.Context, action string, p *models.Project, meta map[string]any) audit.Event {
	if meta == nil {
		meta = map[string]any{}
	}

	var actor *string
	if id, ok := auth.FromContext(ctx); ok {
		actor = audit.Ptr(id.ID)
	} else {
		meta["via"] = "api_key"
	}
	meta["username"] = p.Username

	return audit.Event{
		BusinessID: p.BusinessID,
		ActorID:    actor,
		Action:     action,
		Entity:     "project",
		EntityID:   audit.Ptr(p.ID),
		Metadata:   meta,
	}
}
