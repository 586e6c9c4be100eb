package models

import "time"

// DefaultProjectBucket is the storage bucket used for attachments of tasks
// that have no owning project. It exists only in the path key space; no
// Project record with this name is implied.
const DefaultProjectBucket = "General"

// Project groups tasks and names the storage folder their attachments live in
type Project struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	UserID      uint      `json:"userId" gorm:"column:user_id;index;not null"`
	Tasks       []Task    `json:"tasks,omitempty" gorm:"foreignKey:ProjectID"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName specifies the table name for Project Model
func (Project) TableName() string {
	return "projects"
}
