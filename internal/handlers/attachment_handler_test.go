package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZiroWagner/TaskManager/internal/models"

	"github.com/stretchr/testify/require"
)

func TestUploadAttachment_ProjectTask(t *testing.T) {
	db, store := setupTest(t)
	user := seedUser(t, db, 7, "seven@example.com")
	r := taskRouter()

	project := models.Project{Name: "Q1 Launch", UserID: user.ID}
	require.NoError(t, db.Create(&project).Error)
	task := models.Task{Title: "Draft copy", Status: models.StatusTodo, UserID: user.ID, ProjectID: &project.ID}
	require.NoError(t, db.Create(&task).Error)

	body, contentType := multipartFile(t, "brief.pdf", "application/pdf", []byte("%PDF-1.4"))
	req := authedRequest(t, http.MethodPost, fmt.Sprintf("/api/tasks/%d/attachments", task.ID), body, user)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var att models.Attachment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &att))
	require.Equal(t, models.AttachmentFile, att.Type)
	require.Equal(t, "brief.pdf", att.Filename)
	require.Equal(t, task.ID, att.TaskID)
	require.True(t, strings.HasPrefix(att.URL, "/uploads/attachments/7/q1_launch/draft_copy/"))
	require.True(t, strings.HasSuffix(att.URL, "-brief.pdf"))

	// File really landed at the derived path
	rel := strings.TrimPrefix(att.URL, "/uploads/")
	_, err := os.Stat(filepath.Join(store.Root(), filepath.FromSlash(rel)))
	require.NoError(t, err)
}

func TestUploadAttachment_NoProjectUsesGeneralBucket(t *testing.T) {
	db, store := setupTest(t)
	user := seedUser(t, db, 7, "seven@example.com")
	r := taskRouter()

	task := models.Task{Title: "Loose end", Status: models.StatusTodo, UserID: user.ID}
	require.NoError(t, db.Create(&task).Error)

	body, contentType := multipartFile(t, "photo.png", "image/png", []byte{0x89, 0x50, 0x4e, 0x47})
	req := authedRequest(t, http.MethodPost, fmt.Sprintf("/api/tasks/%d/attachments", task.ID), body, user)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var att models.Attachment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &att))
	require.Equal(t, models.AttachmentImage, att.Type)
	require.True(t, strings.HasPrefix(att.URL, "/uploads/attachments/7/general/loose_end/"))

	_, err := os.Stat(filepath.Join(store.Root(), "attachments", "7", "general", "loose_end"))
	require.NoError(t, err)
}

func TestUploadAttachment_TaskNotFound(t *testing.T) {
	db, _ := setupTest(t)
	user := seedUser(t, db, 1, "alice@example.com")
	r := taskRouter()

	body, contentType := multipartFile(t, "x.txt", "text/plain", []byte("x"))
	req := authedRequest(t, http.MethodPost, "/api/tasks/999/attachments", body, user)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRemoveAttachment(t *testing.T) {
	db, store := setupTest(t)
	user := seedUser(t, db, 1, "alice@example.com")
	r := taskRouter()

	task := models.Task{Title: "Task", Status: models.StatusTodo, UserID: user.ID}
	require.NoError(t, db.Create(&task).Error)

	body, contentType := multipartFile(t, "doc.txt", "text/plain", []byte("hello"))
	req := authedRequest(t, http.MethodPost, fmt.Sprintf("/api/tasks/%d/attachments", task.ID), body, user)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var att models.Attachment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &att))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, http.MethodDelete,
		fmt.Sprintf("/api/tasks/%d/attachments/%d", task.ID, att.ID), nil, user))
	require.Equal(t, http.StatusOK, w.Code)

	// Record and file are both gone
	var count int64
	require.NoError(t, db.Model(&models.Attachment{}).Where("id = ?", att.ID).Count(&count).Error)
	require.Zero(t, count)
	rel := strings.TrimPrefix(att.URL, "/uploads/")
	_, err := os.Stat(filepath.Join(store.Root(), filepath.FromSlash(rel)))
	require.True(t, os.IsNotExist(err))
}

func TestRemoveAttachment_WrongTask(t *testing.T) {
	db, _ := setupTest(t)
	user := seedUser(t, db, 1, "alice@example.com")
	r := taskRouter()

	taskA := models.Task{Title: "A", Status: models.StatusTodo, UserID: user.ID}
	taskB := models.Task{Title: "B", Status: models.StatusTodo, UserID: user.ID}
	require.NoError(t, db.Create(&taskA).Error)
	require.NoError(t, db.Create(&taskB).Error)
	att := models.Attachment{URL: "/uploads/attachments/1/general/a/x-doc.txt", Type: models.AttachmentFile, Filename: "doc.txt", TaskID: taskA.ID}
	require.NoError(t, db.Create(&att).Error)

	// The attachment belongs to task A, not B
	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, http.MethodDelete,
		fmt.Sprintf("/api/tasks/%d/attachments/%d", taskB.ID, att.ID), nil, user))
	require.Equal(t, http.StatusNotFound, w.Code)
}
