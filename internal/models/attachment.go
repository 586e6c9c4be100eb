package models

import "time"

// AttachmentType classifies an attachment by its MIME type at upload time
type AttachmentType string

const (
	AttachmentImage AttachmentType = "IMAGE"
	AttachmentFile  AttachmentType = "FILE"
)

// Attachment is a file stored under a task's folder. Filename keeps the
// original upload name for display; URL points at the uniquely named copy
// on disk.
type Attachment struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	URL       string         `json:"url" gorm:"not null"`
	Type      AttachmentType `json:"type" gorm:"not null;default:'FILE'"`
	Filename  string         `json:"filename"`
	TaskID    uint           `json:"taskId" gorm:"column:task_id;index;not null"`
	CreatedAt time.Time      `json:"createdAt"`
}

// TableName specifies the table name for Attachment Model
func (Attachment) TableName() string {
	return "attachments"
}
