package server

import (
	"net/http"

	"ai-scm-toolkit/internal/assessment"
	"ai-scm-toolkit/internal/config"
	"ai-scm-toolkit/internal/handlers"
	"ai-scm-toolkit/internal/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(cfg *config.Config, eng *assessment.Engine) *gin.Engine {
	r := gin.Default()

	r.LoadHTMLGlob("web/templates/*.html")

	r.GET("/", handlers.Index)

	api := r.Group("/")
	api.Use(middleware.RequireAPIKey(cfg.APIKeyHash))

	api.POST("/assess", handlers.Assess(eng))
	api.GET("/csf-mapping/:risk_type", handlers.CSFMapping(eng))
	api.GET("/risk-types", handlers.RiskTypes(eng))
	api.POST("/report", handlers.GenerateReport(eng))
	api.GET("/assessments", handlers.ListAssessments)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
