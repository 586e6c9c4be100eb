package handlers

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/ZiroWagner/TaskManager/internal/database"
	"github.com/ZiroWagner/TaskManager/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UploadAttachment handles POST /api/tasks/:id/attachments
// Stores the raw file bytes under attachments/{user}/{project}/{task}/ and
// persists the Attachment record. A write failure aborts the whole request;
// no record is created without a file behind it.
func UploadAttachment(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	task := findTask(c, userID, c.Param("id"))
	if task == nil {
		return
	}

	// Tasks without a project share the default bucket
	projectName := models.DefaultProjectBucket
	if task.ProjectID != nil {
		var project models.Project
		err := database.GetDB().Where("id = ? AND user_id = ?", *task.ProjectID, userID).First(&project).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve project"})
			return
		}
		projectName = project.Name
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Attachment file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read attachment file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read attachment file"})
		return
	}

	saved, err := uploads.SaveAttachment(
		data,
		fileHeader.Header.Get("Content-Type"),
		filepath.Base(fileHeader.Filename),
		[]string{strconv.FormatUint(uint64(userID), 10), projectName, task.Title},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save attachment"})
		return
	}

	attachment := models.Attachment{
		URL:      saved.URL,
		Type:     saved.Type,
		Filename: saved.Filename,
		TaskID:   task.ID,
	}
	if err := database.GetDB().Create(&attachment).Error; err != nil {
		// The written file becomes sweeper fodder; the record is the source
		// of truth and must not exist without a successful insert.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save attachment record"})
		return
	}

	c.JSON(http.StatusCreated, attachment)
}

// RemoveAttachment handles DELETE /api/tasks/:id/attachments/:attachmentId
// File removal is best-effort; the record delete proceeds regardless.
func RemoveAttachment(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	task := findTask(c, userID, c.Param("id"))
	if task == nil {
		return
	}

	var attachment models.Attachment
	err := database.GetDB().
		Where("id = ? AND task_id = ?", c.Param("attachmentId"), task.ID).
		First(&attachment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Attachment not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attachment"})
		}
		return
	}

	uploads.DeleteFile(attachment.URL)

	if err := database.GetDB().Delete(&attachment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete attachment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Attachment deleted successfully",
		"id":      attachment.ID,
	})
}
