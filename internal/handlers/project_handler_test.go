package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZiroWagner/TaskManager/internal/middleware"
	"github.com/ZiroWagner/TaskManager/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func projectRouter() *gin.Engine {
	r := gin.New()
	api := r.Group("/api", middleware.JWTAuthMiddleware())
	api.GET("/projects", GetProjects)
	api.GET("/projects/:id", GetProjectByID)
	api.POST("/projects", CreateProject)
	api.PATCH("/projects/:id", UpdateProject)
	api.DELETE("/projects/:id", DeleteProject)
	return r
}

func TestCreateAndGetProjects(t *testing.T) {
	db, _ := setupTest(t)
	user := seedUser(t, db, 1, "alice@example.com")
	r := projectRouter()

	body, _ := json.Marshal(map[string]string{"name": "Q1 Launch", "description": "Launch prep"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, http.MethodPost, "/api/projects", bytes.NewReader(body), user))
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, "Q1 Launch", created.Name)
	require.Equal(t, user.ID, created.UserID)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, http.MethodGet, "/api/projects", nil, user))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Projects []models.Project `json:"projects"`
		Count    int              `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
}

func TestGetProject_OwnershipEnforced(t *testing.T) {
	db, _ := setupTest(t)
	owner := seedUser(t, db, 1, "owner@example.com")
	intruder := seedUser(t, db, 2, "intruder@example.com")
	r := projectRouter()

	project := models.Project{Name: "Private", UserID: owner.ID}
	require.NoError(t, db.Create(&project).Error)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, http.MethodGet, fmt.Sprintf("/api/projects/%d", project.ID), nil, intruder))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateProject_RenameDoesNotMoveFolders(t *testing.T) {
	db, store := setupTest(t)
	user := seedUser(t, db, 7, "seven@example.com")
	r := projectRouter()

	project := models.Project{Name: "Old Name", UserID: user.ID}
	require.NoError(t, db.Create(&project).Error)

	// A file already written under the old name
	_, err := store.SaveAttachment([]byte("x"), "text/plain", "a.txt", []string{"7", "Old Name", "Task"})
	require.NoError(t, err)

	body, _ := json.Marshal(map[string]string{"name": "New Name"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, http.MethodPatch, fmt.Sprintf("/api/projects/%d", project.ID), bytes.NewReader(body), user))
	require.Equal(t, http.StatusOK, w.Code)

	// Known limitation: the folder stays under the old sanitized name
	_, err = os.Stat(filepath.Join(store.Root(), "attachments", "7", "old_name"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(store.Root(), "attachments", "7", "new_name"))
	require.True(t, os.IsNotExist(err))
}

func TestDeleteProject_CascadesEverything(t *testing.T) {
	db, store := setupTest(t)
	user := seedUser(t, db, 7, "seven@example.com")
	r := projectRouter()
	tasks := taskRouter()

	project := models.Project{Name: "Q1 Launch", UserID: user.ID}
	require.NoError(t, db.Create(&project).Error)
	keep := models.Project{Name: "Keep Me", UserID: user.ID}
	require.NoError(t, db.Create(&keep).Error)

	taskA := models.Task{Title: "Draft copy", Status: models.StatusTodo, UserID: user.ID, ProjectID: &project.ID}
	taskB := models.Task{Title: "Review", Status: models.StatusDone, UserID: user.ID, ProjectID: &project.ID}
	other := models.Task{Title: "Elsewhere", Status: models.StatusTodo, UserID: user.ID, ProjectID: &keep.ID}
	require.NoError(t, db.Create(&taskA).Error)
	require.NoError(t, db.Create(&taskB).Error)
	require.NoError(t, db.Create(&other).Error)

	for _, id := range []uint{taskA.ID, taskB.ID, other.ID} {
		body, contentType := multipartFile(t, "f.txt", "text/plain", []byte("f"))
		req := authedRequest(t, http.MethodPost, fmt.Sprintf("/api/tasks/%d/attachments", id), body, user)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		tasks.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, http.MethodDelete, fmt.Sprintf("/api/projects/%d", project.ID), nil, user))
	require.Equal(t, http.StatusOK, w.Code)

	// Every file under the project folder is gone, in one sweep
	_, err := os.Stat(filepath.Join(store.Root(), "attachments", "7", "q1_launch"))
	require.True(t, os.IsNotExist(err))
	// The other project's folder is untouched
	_, err = os.Stat(filepath.Join(store.Root(), "attachments", "7", "keep_me"))
	require.NoError(t, err)

	// Child task and attachment records are gone with the project
	var count int64
	require.NoError(t, db.Model(&models.Project{}).Where("id = ?", project.ID).Count(&count).Error)
	require.Zero(t, count)
	require.NoError(t, db.Model(&models.Task{}).Where("project_id = ?", project.ID).Count(&count).Error)
	require.Zero(t, count)
	require.NoError(t, db.Model(&models.Attachment{}).
		Where("task_id IN ?", []uint{taskA.ID, taskB.ID}).Count(&count).Error)
	require.Zero(t, count)

	// Unrelated records survive
	require.NoError(t, db.Model(&models.Task{}).Where("id = ?", other.ID).Count(&count).Error)
	require.Equal(t, int64(1), count)
	require.NoError(t, db.Model(&models.Attachment{}).Where("task_id = ?", other.ID).Count(&count).Error)
	require.Equal(t, int64(1), count)
}
