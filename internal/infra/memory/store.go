// Package memory keeps every repository in process memory. It backs
// STORAGE_DRIVER=memory and the handler and use case tests.
package memory

import (
	"sort"
	"sync"
	"time"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/virtual-queue/internal/formschema"
	"github.com/BruksfildServices01/virtual-queue/internal/models"
	"github.com/BruksfildServices01/virtual-queue/internal/timezone"
)

type Store struct {
	mu  sync.RWMutex
	now timezone.Clock

	businesses map[string]*models.Business
	projects   map[string]*models.Project
	entrants   map[string]*models.Entrant
	auditLogs  []models.AuditLog

	// seq breaks creation-time ties in insertion order.
	seq     map[string]int64
	nextSeq int64
	auditID uint
}

func New(clock timezone.Clock) *Store {
	return &Store{
		now:        timezone.OrSystem(clock),
		businesses: map[string]*models.Business{},
		projects:   map[string]*models.Project{},
		entrants:   map[string]*models.Entrant{},
		seq:        map[string]int64{},
	}
}

func (s *Store) Projects() *ProjectRepository {
	return &ProjectRepository{s: s}
}

func (s *Store) Entrants() *EntrantRepository {
	return &EntrantRepository{s: s}
}

func (s *Store) Stats() *StatsRepository {
	return &StatsRepository{s: s}
}

func (s *Store) Audit() *AuditStore {
	return &AuditStore{s: s}
}

// stamp records insertion order for id. Callers hold the write lock.
func (s *Store) stamp(id string) {
	s.nextSeq++
	s.seq[id] = s.nextSeq
}

// before orders by creation time, then insertion.
func (s *Store) before(aID string, aAt time.Time, bID string, bAt time.Time) bool {
	if !aAt.Equal(bAt) {
		return aAt.Before(bAt)
	}
	return s.seq[aID] < s.seq[bID]
}

func (s *Store) sortedEntrants(projectID string) []*models.Entrant {
	var out []*models.Entrant
	for _, e := range s.entrants {
		if e.ProjectID == projectID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return s.before(out[i].ID, out[i].CreatedAt, out[j].ID, out[j].CreatedAt)
	})
	return out
}

func copyEntrant(e *models.Entrant) models.Entrant {
	out := *e
	data := make(map[string]string, len(e.Data.Data()))
	for k, v := range e.Data.Data() {
		data[k] = v
	}
	out.Data = datatypes.NewJSONType(data)
	return out
}

func copyProject(p *models.Project) models.Project {
	out := *p
	out.Entrants = nil
	out.Business = nil
	tpl := p.CustomFields.Data()
	clone := make(formschema.Template, len(tpl))
	copy(clone, tpl)
	out.CustomFields = datatypes.NewJSONType(clone)
	return out
}

func copyBusiness(b *models.Business) models.Business {
	out := *b
	out.Projects = nil
	return out
}
