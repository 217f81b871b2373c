package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
)

// render wraps c.HTML and stamps every template with the render time.
func render(c *gin.Context, status int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["RenderedAt"] = time.Now().UTC().Format(time.RFC3339)

	c.HTML(status, tmpl, data)
}
