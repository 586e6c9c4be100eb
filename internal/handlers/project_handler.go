package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ZiroWagner/TaskManager/internal/database"
	"github.com/ZiroWagner/TaskManager/internal/models"
	"github.com/ZiroWagner/TaskManager/internal/realtime"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateProjectRequest represents the request payload for creating a project
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateProjectRequest represents the request payload for updating a project
type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// findProject resolves a project by id for the requesting user. Writes the
// error response and returns nil when resolution fails.
func findProject(c *gin.Context, userID uint, projectID string) *models.Project {
	var project models.Project
	err := database.GetDB().Where("id = ? AND user_id = ?", projectID, userID).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch project"})
		}
		return nil
	}
	return &project
}

// CreateProject handles POST /api/projects
func CreateProject(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project := models.Project{
		Name:        req.Name,
		Description: req.Description,
		UserID:      userID,
	}
	if err := database.GetDB().Create(&project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	c.JSON(http.StatusCreated, project)
}

// GetProjects handles GET /api/projects
// Returns the user's projects, newest first.
func GetProjects(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	var projects []models.Project
	err := database.GetDB().
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&projects).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch projects"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"count":    len(projects),
	})
}

// GetProjectByID handles GET /api/projects/:id
func GetProjectByID(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	project := findProject(c, userID, c.Param("id"))
	if project == nil {
		return
	}

	c.JSON(http.StatusOK, project)
}

// UpdateProject handles PATCH /api/projects/:id
// Renaming a project does not migrate attachment folders already written
// under the old name; the sweeper eventually collects the orphans.
func UpdateProject(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	project := findProject(c, userID, c.Param("id"))
	if project == nil {
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}

	if err := database.GetDB().Save(project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	c.JSON(http.StatusOK, project)
}

// DeleteProject handles DELETE /api/projects/:id
// Removes the project's whole attachment folder (every task subfolder at
// once), then the project with its task and attachment records. Folder
// cleanup is best-effort and runs first; a mid-failure leaves at worst
// orphaned files, never orphaned records.
func DeleteProject(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	project := findProject(c, userID, c.Param("id"))
	if project == nil {
		return
	}

	uploads.DeleteFolder([]string{strconv.FormatUint(uint64(userID), 10), project.Name})

	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		taskIDs := tx.Model(&models.Task{}).Select("id").Where("project_id = ?", project.ID)
		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&models.Attachment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		return tx.Delete(project).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	invalidateStats(userID)
	realtime.GetHub().Publish(userID, realtime.Event{
		Type:      realtime.EventProjectDeleted,
		ProjectID: project.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
		"id":      project.ID,
	})
}
