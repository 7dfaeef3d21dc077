package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the research endpoints onto the engine.
func RegisterRoutes(engine *gin.Engine, h *Handler) {
	r := engine.Group("/research")
	{
		r.POST("", h.CreateResearch)
		r.GET("/:project_id", h.ListResearch)
		r.GET("/item/:research_id", h.GetResearch)
		r.PATCH("/:research_id", h.UpdateResearch)
		r.DELETE("/:research_id", h.DeleteResearch)
	}
}

// CORS allows browser clients to call the API from any origin.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
