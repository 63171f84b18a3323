package model

import "time"

// Project scopes uploaded images. OwnerID is immutable after creation and
// is the sole basis for authorizing image operations.
type Project struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
	Name        string    `gorm:"column:name;size:128;not null" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description,omitempty"`
	OwnerID     uint      `gorm:"column:owner_id;index:idx_project_owner;not null" json:"owner_id"`
}

// TableName overrides gorm to use the project table.
func (Project) TableName() string {
	return "project"
}
