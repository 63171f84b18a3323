package model

import "time"

// Image stores metadata for an uploaded file. Every live record has a
// corresponding file at {storage root}/{project_id}/{filename}; filename is
// unique within a project.
type Image struct {
	ID          uint      `gorm:"primaryKey" json:"id,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
	ImageID     string    `gorm:"column:image_id;uniqueIndex:idx_image_id;size:36;not null" json:"image_id"`
	ProjectID   uint      `gorm:"column:project_id;uniqueIndex:idx_project_filename,priority:1;not null" json:"project_id"`
	Filename    string    `gorm:"column:filename;uniqueIndex:idx_project_filename,priority:2;size:255;not null" json:"filename"`
	ContentType string    `gorm:"column:content_type;size:128" json:"content_type,omitempty"`
	FileSize    int64     `gorm:"column:file_size" json:"file_size,omitempty"`
}

// TableName overrides gorm to use the image table.
func (Image) TableName() string {
	return "image"
}
