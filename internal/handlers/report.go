package handlers

import (
	"net/http"

	"ai-scm-toolkit/internal/assessment"
	"ai-scm-toolkit/internal/models"
	"ai-scm-toolkit/internal/report"

	"github.com/gin-gonic/gin"
)

// ReportRequest is the compliance report request payload.
type ReportRequest struct {
	OrganizationName string                   `json:"organization_name" binding:"required"`
	ReportFormat     string                   `json:"report_format"`
	System           models.SystemDescription `json:"system" binding:"required"`
}

// GenerateReport runs a fresh assessment and renders the compliance report
// as JSON or as the HTML report view.
func GenerateReport(eng *assessment.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ReportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report request: " + err.Error()})
			return
		}

		format := req.ReportFormat
		if format == "" {
			format = "json"
		}
		switch format {
		case "json", "html", "pdf":
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "report format must be 'json', 'html' or 'pdf'"})
			return
		}

		a, plan := eng.AssessDetailed(c.Request.Context(), req.System)
		rep := report.Build(req.OrganizationName, a, plan)

		if format == "html" {
			render(c, http.StatusOK, "report.html", gin.H{
				"Report": rep,
			})
			return
		}

		// pdf is answered with the same structured payload; document
		// rendering happens downstream.
		c.JSON(http.StatusOK, rep)
	}
}
