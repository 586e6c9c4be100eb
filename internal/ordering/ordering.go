package ordering

import (
	"errors"
	"fmt"

	"github.com/ZiroWagner/TaskManager/internal/models"

	"gorm.io/gorm"
)

// Scope identifies the lane a task's order is meaningful in: one user's
// tasks with one status, within one project or outside any project.
type Scope struct {
	UserID    uint
	Status    models.TaskStatus
	ProjectID *uint
}

func laneQuery(db *gorm.DB, scope Scope) *gorm.DB {
	q := db.Model(&models.Task{}).
		Where("user_id = ? AND status = ?", scope.UserID, scope.Status)
	if scope.ProjectID != nil {
		return q.Where("project_id = ?", *scope.ProjectID)
	}
	return q.Where("project_id IS NULL")
}

// NextOrder returns the append position for a new task in the scope: one
// past the highest existing order, or 0 when the lane is empty.
//
// The read here and the caller's subsequent insert are not atomic; two
// concurrent creations in the same lane can compute the same value. That is
// tolerated for this tool's low-contention usage; ties sort by id.
func NextOrder(db *gorm.DB, scope Scope) (int, error) {
	var last models.Task
	err := laneQuery(db, scope).Order("position desc").First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("find last task in lane: %w", err)
	}
	return last.Order + 1, nil
}

// Move sets the task's status and order to exactly the given values. It
// does not renumber or shift any other task in the source or destination
// lane, so two tasks can end up sharing an order value; consumers sort by
// (order, id) to keep display order stable.
func Move(db *gorm.DB, task *models.Task, status models.TaskStatus, order int) error {
	task.Status = status
	task.Order = order
	err := db.Model(task).Updates(map[string]any{
		"status":   status,
		"position": order,
	}).Error
	if err != nil {
		return fmt.Errorf("move task: %w", err)
	}
	return nil
}
