package handlers

import (
	"net/http"
	"strconv"

	"ai-scm-toolkit/internal/database"

	"github.com/gin-gonic/gin"
)

// ListAssessments returns recent assessment records. Without a configured
// database there is no history to serve.
func ListAssessments(c *gin.Context) {
	if database.DB == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "assessment history is not configured"})
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	records, err := database.RecentAssessments(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load assessments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"assessments": records})
}
