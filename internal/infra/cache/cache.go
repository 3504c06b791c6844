// Package cache holds the public project lookup cache.
package cache

import (
	"context"

	"github.com/BruksfildServices01/virtual-queue/internal/dto"
)

// PublicProjects caches the anonymous view of PUBLIC projects by username.
// Implementations treat every failure as a miss on read.
type PublicProjects interface {
	Get(ctx context.Context, username string) (*dto.PublicProjectDTO, bool)
	Set(ctx context.Context, username string, p dto.PublicProjectDTO)
	Invalidate(ctx context.Context, usernames ...string)
}

// Noop is used when no redis is configured.
type Noop struct{}

func (Noop) Get(context.Context, string) (*dto.PublicProjectDTO, bool) { return nil, false }
func (Noop) Set(context.Context, string, dto.PublicProjectDTO)         {}
func (Noop) Invalidate(context.Context, ...string)                     {}

var _ PublicProjects = Noop{}
