package handlers

import (
	"net/http"

	"ai-scm-toolkit/internal/assessment"
	"ai-scm-toolkit/internal/database"
	"ai-scm-toolkit/internal/models"

	"github.com/gin-gonic/gin"
)

// Assess runs a full risk assessment for the posted system description.
// A malformed payload is the caller's contract violation and gets a 400;
// everything past binding always yields a complete assessment.
func Assess(eng *assessment.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var desc models.SystemDescription
		if err := c.ShouldBindJSON(&desc); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid system description: " + err.Error()})
			return
		}

		result := eng.Assess(c.Request.Context(), desc)

		database.SaveAssessment(result, desc.ModelType)

		c.JSON(http.StatusOK, result)
	}
}
