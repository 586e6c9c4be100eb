package models

import "time"

// TaskStatus represents the status lane of a task
type TaskStatus string

const (
	StatusTodo       TaskStatus = "TODO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
)

// Valid reports whether s is one of the three known lanes.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Task represents a card on the board. Order is its position within the
// (user, status, project) lane; the column is named "position" because
// "order" is an SQL keyword. Order values are not guaranteed unique within
// a lane; list queries break ties by id ascending.
type Task struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	Title       string       `json:"title" gorm:"not null"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status" gorm:"not null;default:'TODO'"`
	Order       int          `json:"order" gorm:"column:position;not null;default:0"`
	UserID      uint         `json:"userId" gorm:"column:user_id;index;not null"`
	ProjectID   *uint        `json:"projectId" gorm:"column:project_id;index"`
	Attachments []Attachment `json:"attachments,omitempty" gorm:"foreignKey:TaskID"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// TableName specifies the table name for Task Model
func (Task) TableName() string {
	return "tasks"
}
