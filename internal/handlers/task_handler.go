package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ZiroWagner/TaskManager/internal/database"
	"github.com/ZiroWagner/TaskManager/internal/models"
	"github.com/ZiroWagner/TaskManager/internal/ordering"
	"github.com/ZiroWagner/TaskManager/internal/realtime"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateTaskRequest represents the request payload for creating a task
type CreateTaskRequest struct {
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
	ProjectID   *uint             `json:"projectId"`
}

// UpdateTaskRequest represents the request payload for updating a task
type UpdateTaskRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Status      *models.TaskStatus `json:"status"`
	ProjectID   *uint              `json:"projectId"`
	Order       *int               `json:"order"`
}

// MoveTaskRequest represents the payload to move a task between lanes
type MoveTaskRequest struct {
	Status models.TaskStatus `json:"status" binding:"required"`
	Order  *int              `json:"order" binding:"required"`
}

// findTask resolves a task by id for the requesting user. Writes the error
// response and returns nil when resolution fails.
func findTask(c *gin.Context, userID uint, taskID string) *models.Task {
	var task models.Task
	err := database.GetDB().Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		}
		return nil
	}
	return &task
}

/*
*
GetTasks handles GET /api/tasks
Returns the user's tasks sorted by lane position (ties broken by id).
Optional query param: projectId to restrict to one project.
*/
func GetTasks(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	query := database.GetDB().Where("user_id = ?", userID)
	if projectIDStr := c.Query("projectId"); projectIDStr != "" {
		projectID, err := strconv.ParseUint(projectIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid projectId"})
			return
		}
		query = query.Where("project_id = ?", projectID)
	}

	var tasks []models.Task
	err := query.Preload("Attachments").Order("position asc, id asc").Find(&tasks).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
		"count": len(tasks),
	})
}

/*
*
CreateTask handles POST /api/tasks
Creates a new task for the authenticated user, appended at the tail of its
(status, project) lane via the ordering engine.
*/
func CreateTask(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Set default values if not provided
	status := req.Status
	if status == "" {
		status = models.StatusTodo
	}
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	// A linked project must exist and belong to the same user
	if req.ProjectID != nil {
		var project models.Project
		err := database.GetDB().Where("id = ? AND user_id = ?", *req.ProjectID, userID).First(&project).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid projectId: project not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate projectId"})
			}
			return
		}
	}

	order, err := ordering.NextOrder(database.GetDB(), ordering.Scope{
		UserID:    userID,
		Status:    status,
		ProjectID: req.ProjectID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute task order"})
		return
	}

	task := models.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Order:       order,
		UserID:      userID,
		ProjectID:   req.ProjectID,
	}
	if err := database.GetDB().Create(&task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	invalidateStats(userID)
	realtime.GetHub().Publish(userID, realtime.Event{
		Type:   realtime.EventTaskCreated,
		TaskID: task.ID,
	})

	c.JSON(http.StatusCreated, task)
}

// GetTaskByID handles GET /api/tasks/:id
func GetTaskByID(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	var task models.Task
	err := database.GetDB().
		Preload("Attachments").
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		}
		return
	}

	c.JSON(http.StatusOK, task)
}

// UpdateTask handles PATCH /api/tasks/:id
// Updates the provided fields of a task owned by the authenticated user.
func UpdateTask(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	task := findTask(c, userID, c.Param("id"))
	if task == nil {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		task.Status = *req.Status
	}
	if req.ProjectID != nil {
		var project models.Project
		err := database.GetDB().Where("id = ? AND user_id = ?", *req.ProjectID, userID).First(&project).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid projectId: project not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate projectId"})
			}
			return
		}
		task.ProjectID = req.ProjectID
	}
	if req.Order != nil {
		if *req.Order < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order must be non-negative"})
			return
		}
		task.Order = *req.Order
	}

	if err := database.GetDB().Save(task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	invalidateStats(userID)
	realtime.GetHub().Publish(userID, realtime.Event{
		Type:   realtime.EventTaskUpdated,
		TaskID: task.ID,
	})

	c.JSON(http.StatusOK, task)
}

// MoveTask handles PATCH /api/tasks/:id/move
// Sets the task's status and lane position to exactly the supplied values.
// No other task is renumbered, so two tasks in one lane may share a
// position afterwards; list order then falls back to id ascending.
func MoveTask(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	task := findTask(c, userID, c.Param("id"))
	if task == nil {
		return
	}

	var req MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}
	if *req.Order < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order must be non-negative"})
		return
	}

	if err := ordering.Move(database.GetDB(), task, req.Status, *req.Order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to move task"})
		return
	}

	invalidateStats(userID)
	realtime.GetHub().Publish(userID, realtime.Event{
		Type:   realtime.EventTaskMoved,
		TaskID: task.ID,
	})

	c.JSON(http.StatusOK, task)
}

// DeleteTask handles DELETE /api/tasks/:id
// Best-effort removal of the task's attachment folder runs before the record
// delete, so a mid-failure leaves at worst an orphaned file rather than an
// orphaned record. Sibling task folders are untouched.
func DeleteTask(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	task := findTask(c, userID, c.Param("id"))
	if task == nil {
		return
	}

	if task.ProjectID != nil {
		var project models.Project
		err := database.GetDB().Where("id = ? AND user_id = ?", *task.ProjectID, userID).First(&project).Error
		if err == nil {
			uploads.DeleteFolder([]string{
				strconv.FormatUint(uint64(userID), 10),
				project.Name,
				task.Title,
			})
		}
	} else {
		uploads.DeleteFolder([]string{
			strconv.FormatUint(uint64(userID), 10),
			models.DefaultProjectBucket,
			task.Title,
		})
	}

	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", task.ID).Delete(&models.Attachment{}).Error; err != nil {
			return err
		}
		return tx.Delete(task).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	invalidateStats(userID)
	realtime.GetHub().Publish(userID, realtime.Event{
		Type:   realtime.EventTaskDeleted,
		TaskID: task.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
		"id":      task.ID,
	})
}
