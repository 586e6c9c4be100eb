package handlers

import (
	"net/http"
	"time"

	"github.com/ZiroWagner/TaskManager/internal/cache"
	"github.com/ZiroWagner/TaskManager/internal/database"
	"github.com/ZiroWagner/TaskManager/internal/models"

	"github.com/gin-gonic/gin"
)

// StatsResponse holds per-lane task counts for one user
type StatsResponse struct {
	Todo       int64 `json:"todo"`
	InProgress int64 `json:"inProgress"`
	Done       int64 `json:"done"`
	Total      int64 `json:"total"`
}

// statsCache avoids re-running the group-by on every board poll; task
// mutations invalidate the owner's entry.
var statsCache = cache.New[uint, StatsResponse](30 * time.Second)

func invalidateStats(userID uint) {
	statsCache.Delete(userID)
}

// GetStats handles GET /api/stats
// Returns counts of the user's tasks by status lane.
func GetStats(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	if stats, ok := statsCache.Get(userID); ok {
		c.JSON(http.StatusOK, stats)
		return
	}

	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := database.GetDB().Model(&models.Task{}).
		Select("status, COUNT(*) as count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	var stats StatsResponse
	for _, r := range rows {
		switch models.TaskStatus(r.Status) {
		case models.StatusTodo:
			stats.Todo = r.Count
		case models.StatusInProgress:
			stats.InProgress = r.Count
		case models.StatusDone:
			stats.Done = r.Count
		}
		stats.Total += r.Count
	}

	statsCache.Set(userID, stats)
	c.JSON(http.StatusOK, stats)
}
