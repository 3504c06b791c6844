package models

import (
	"time"

	"gorm.io/datatypes"
)

// Entrant is one person in a project's queue. Data holds the form
// submission as it was accepted at join time.
type Entrant struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	ProjectID string `gorm:"size:36;not null;index" json:"projectId"`

	// Seq is assigned by the database on insert and orders arrivals that
	// share a created_at.
	Seq int64 `gorm:"->;autoIncrement" json:"-"`

	Status string                                `gorm:"size:16;not null;default:'ACTIVE'" json:"status"`
	Data   datatypes.JSONType[map[string]string] `gorm:"type:jsonb;not null" json:"data"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Value returns one data field, empty when absent.
func (e *Entrant) Value(key string) string {
	return e.Data.Data()[key]
}
