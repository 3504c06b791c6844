package memory

import (
	"context"
	"sort"

	"github.com/BruksfildServices01/virtual-queue/internal/audit"
	"github.com/BruksfildServices01/virtual-queue/internal/models"
)

type AuditStore struct {
	s *Store
}

func (a *AuditStore) Write(_ context.Context, log *models.AuditLog) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	a.s.auditID++
	log.ID = a.s.auditID
	if log.CreatedAt.IsZero() {
		log.CreatedAt = a.s.now()
	}
	a.s.auditLogs = append(a.s.auditLogs, *log)
	return nil
}

func (a *AuditStore) List(_ context.Context, q audit.Query) ([]models.AuditLog, int64, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()

	var matched []models.AuditLog
	for _, l := range a.s.auditLogs {
		if l.BusinessID != q.BusinessID {
			continue
		}
		if q.Action != "" && l.Action != q.Action {
			continue
		}
		if q.Entity != "" && l.Entity != q.Entity {
			continue
		}
		if q.From != nil && l.CreatedAt.Before(*q.From) {
			continue
		}
		if q.To != nil && !l.CreatedAt.Before(*q.To) {
			continue
		}
		matched = append(matched, l)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	start := min(q.Offset, len(matched))
	end := len(matched)
	if q.Limit > 0 {
		end = min(start+q.Limit, len(matched))
	}

	out := make([]models.AuditLog, end-start)
	copy(out, matched[start:end])
	return out, total, nil
}

var _ audit.Store = (*AuditStore)(nil)
