package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ZiroWagner/TaskManager/internal/middleware"
	"github.com/ZiroWagner/TaskManager/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func statsRouter() *gin.Engine {
	r := gin.New()
	api := r.Group("/api", middleware.JWTAuthMiddleware())
	api.GET("/stats", GetStats)
	return r
}

func TestGetStats(t *testing.T) {
	db, _ := setupTest(t)
	user := seedUser(t, db, 1, "alice@example.com")
	other := seedUser(t, db, 2, "bob@example.com")
	r := statsRouter()

	for _, task := range []models.Task{
		{Title: "a", Status: models.StatusTodo, UserID: user.ID},
		{Title: "b", Status: models.StatusTodo, UserID: user.ID},
		{Title: "c", Status: models.StatusInProgress, UserID: user.ID},
		{Title: "d", Status: models.StatusDone, UserID: user.ID},
		{Title: "not mine", Status: models.StatusDone, UserID: other.ID},
	} {
		require.NoError(t, db.Create(&task).Error)
	}
	invalidateStats(user.ID)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, http.MethodGet, "/api/stats", nil, user))
	require.Equal(t, http.StatusOK, w.Code)

	var stats StatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	require.Equal(t, int64(2), stats.Todo)
	require.Equal(t, int64(1), stats.InProgress)
	require.Equal(t, int64(1), stats.Done)
	require.Equal(t, int64(4), stats.Total)
}

func TestGetStats_CacheInvalidatedOnMutation(t *testing.T) {
	db, _ := setupTest(t)
	user := seedUser(t, db, 1, "alice@example.com")
	invalidateStats(user.ID)
	stats := statsRouter()
	tasks := taskRouter()

	// Prime the cache on an empty board
	w := httptest.NewRecorder()
	stats.ServeHTTP(w, authedRequest(t, http.MethodGet, "/api/stats", nil, user))
	require.Equal(t, http.StatusOK, w.Code)

	// Creating a task must evict the cached zero counts
	body := []byte(`{"title": "fresh"}`)
	w = httptest.NewRecorder()
	tasks.ServeHTTP(w, authedRequest(t, http.MethodPost, "/api/tasks", bytes.NewReader(body), user))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	stats.ServeHTTP(w, authedRequest(t, http.MethodGet, "/api/stats", nil, user))
	require.Equal(t, http.StatusOK, w.Code)

	var resp StatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, int64(1), resp.Todo)
	require.Equal(t, int64(1), resp.Total)
}
