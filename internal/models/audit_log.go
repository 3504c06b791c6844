package models

import (
	"time"

	"gorm.io/datatypes"
)

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BusinessID string  `gorm:"size:64;index;not null" json:"businessId"`
	ActorID    *string `gorm:"size:64" json:"actorId"`
	Action     string  `gorm:"size:50;not null" json:"action"`

	Entity   string            `gorm:"size:50" json:"entity"`
	EntityID *string           `gorm:"size:64" json:"entityId"`
	Metadata datatypes.JSONMap `gorm:"type:jsonb" json:"metadata"`

	CreatedAt time.Time `json:"createdAt"`
}
