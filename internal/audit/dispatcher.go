package audit

import (
	"context"
	"sync"
	"time"

	"github.com/BruksfildServices01/virtual-queue/internal/logging"
	"github.com/BruksfildServices01/virtual-queue/internal/models"
)

const defaultQueueSize = 100

// Actions recorded by the use cases.
const (
	ActionProjectCreated     = "project_created"
	ActionProjectUpdated     = "project_updated"
	ActionProjectDeleted     = "project_deleted"
	ActionAPIKeyRegenerated  = "api_key_regenerated"
	ActionEntrantJoined      = "entrant_joined"
	ActionEntrantDeactivated = "entrant_deactivated"
	ActionEntrantDeleted     = "entrant_deleted"
)

type Event struct {
	BusinessID string
	ActorID    *string
	Action     string
	Entity     string
	EntityID   *string
	Metadata   map[string]any
}

// Dispatcher writes events off the request path. A full queue drops the
// event; audit never fails a request.
type Dispatcher struct {
	store Store
	queue chan Event

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(store Store, size int) *Dispatcher {
	if size <= 0 {
		size = defaultQueueSize
	}

	d := &Dispatcher{
		store: store,
		queue: make(chan Event, size),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := d.store.Write(ctx, &models.AuditLog{
			BusinessID: ev.BusinessID,
			ActorID:    ev.ActorID,
			Action:     ev.Action,
			Entity:     ev.Entity,
			EntityID:   ev.EntityID,
			Metadata:   ev.Metadata,
		})
		cancel()

		if err != nil {
			logging.Error().Err(err).
				Str("action", ev.Action).
				Str("business_id", ev.BusinessID).
				Msg("audit write failed")
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		logging.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}

// Close stops accepting events and waits for queued ones to be written.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
}

// Ptr is a helper for optional event ids.
func Ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
