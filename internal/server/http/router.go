package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mediadesk/internal/catalog"
)

// setupRoutes registers one route set per resource namespace plus the
// search, generation, health and metrics endpoints. Namespaces are spelled
// out as literal paths rather than a :resource parameter so unknown
// resources 404 at the router.
func (s *Server) setupRoutes() {
	api := s.engine.Group("/api")

	for _, ns := range catalog.Resources() {
		ns := ns
		group := api.Group("/" + ns)
		{
			group.GET("", s.handleList(ns))
			group.POST("", s.handleCreate(ns))
			group.POST("/bulk", s.handleBulk(ns))
			group.GET("/:id", s.handleGet(ns))
			group.PATCH("/:id", s.handleUpdate(ns))
			group.PATCH("/:id/status", s.handleUpdateStatus(ns))
			group.DELETE("/:id", s.handleDelete(ns))
		}
	}

	api.GET("/search/suggest", s.handleSuggest)
	api.POST("/generate", s.handleGenerateSSE)
	api.GET("/generate/ws", s.handleGenerateWS)

	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.GET("/metrics", gin.WrapH(s.metrics.Handler()))
}
