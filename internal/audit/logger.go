package audit

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/virtual-queue/internal/models"
)

// Query pages through one business's audit trail, newest first.
type Query struct {
	BusinessID string
	Action     string
	Entity     string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

type Store interface {
	Write(ctx context.Context, log *models.AuditLog) error
	List(ctx context.Context, q Query) ([]models.AuditLog, int64, error)
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Write(ctx context.Context, log *models.AuditLog) error {
	return s.db.WithContext(ctx).Create(log).Error
}

func (s *GormStore) List(ctx context.Context, q Query) ([]models.AuditLog, int64, error) {
	base := s.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("business_id = ?", q.BusinessID)

	if q.Action != "" {
		base = base.Where("action = ?", q.Action)
	}
	if q.Entity != "" {
		base = base.Where("entity = ?", q.Entity)
	}
	if q.From != nil {
		base = base.Where("created_at >= ?", *q.From)
	}
	if q.To != nil {
		base = base.Where("created_at < ?", *q.To)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := base.
		Order("created_at DESC").
		Order("id DESC").
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

var _ Store = (*GormStore)(nil)
