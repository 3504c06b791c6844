package models

import "time"

// Business is the tenant root. Its ID is issued by the identity provider.
type Business struct {
	ID    string `gorm:"primaryKey;size:64" json:"id"`
	Email string `gorm:"size:255;not null" json:"email"`

	Projects []Project `gorm:"foreignKey:BusinessID" json:"projects,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
