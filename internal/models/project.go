package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/virtual-queue/internal/formschema"
)

type Project struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	BusinessID string    `gorm:"size:64;not null;index" json:"businessId"`
	Business   *Business `gorm:"constraint:OnDelete:CASCADE;" json:"business,omitempty"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Username    string `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Description string `gorm:"type:text" json:"description"`
	Status      string `gorm:"size:16;not null;default:'PUBLIC'" json:"status"`
	APIKey      string `gorm:"size:64;uniqueIndex;not null" json:"apiKey"`

	// json rather than jsonb keeps the template's key order.
	CustomFields datatypes.JSONType[formschema.Template] `gorm:"type:json;not null" json:"customFields"`

	Entrants []Entrant `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE;" json:"users,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Project) Template() formschema.Template {
	return p.CustomFields.Data()
}
