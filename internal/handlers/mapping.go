package handlers

import (
	"net/http"

	"ai-scm-toolkit/internal/assessment"

	"github.com/gin-gonic/gin"
)

// CSFMapping answers the ad hoc "what categories does this risk type map
// to" query. Unknown keys are a 404, not a server error.
func CSFMapping(eng *assessment.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		riskType := c.Param("risk_type")

		mapping, ok := eng.MapRisk(riskType)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{
				"error":       "risk type '" + riskType + "' not found",
				"known_types": eng.RiskTypes(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"risk_type":           riskType,
			"mapped_categories":   mapping.Categories,
			"description":         mapping.Description,
			"supply_chain_impact": mapping.SupplyChainImpact,
		})
	}
}

// RiskTypes lists the risk type keys the catalog knows about.
func RiskTypes(eng *assessment.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"risk_types": eng.RiskTypes()})
	}
}
