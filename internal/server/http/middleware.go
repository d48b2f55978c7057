package http

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// requestMetrics records duration per method/route/status. The route
// template is used rather than the raw path so IDs do not explode the label
// set.
func (s *Server) requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		s.metrics.ObserveRequest(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}
