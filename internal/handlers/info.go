package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Index describes the service and its endpoints.
func Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "AI supply chain risk assessment",
		"endpoints": gin.H{
			"assess":      "POST /assess - AI system risk assessment",
			"csf_mapping": "GET /csf-mapping/:risk_type - CSF category mapping",
			"risk_types":  "GET /risk-types - known AI risk types",
			"report":      "POST /report - compliance report",
			"history":     "GET /assessments - recent assessments",
		},
	})
}
