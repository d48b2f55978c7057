package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"mediadesk/internal/catalog"
	mderrors "mediadesk/internal/errors"
	"mediadesk/internal/resource"
)

const defaultPageSize = 20

// writeError maps the error taxonomy onto HTTP statuses and the
// {"error":{"message":...}} envelope the client decodes.
func (s *Server) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case mderrors.IsNotFound(err):
		status = http.StatusNotFound
	case mderrors.IsValidation(err):
		status = http.StatusUnprocessableEntity
	}
	if status >= 500 {
		s.logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": gin.H{"message": err.Error()}})
}

// parseListQuery decodes page/limit/search/filter[k]/sort/order/locale.
func parseListQuery(c *gin.Context) catalog.ListQuery {
	q := catalog.ListQuery{
		Page:   1,
		Limit:  defaultPageSize,
		Search: c.Query("search"),
		SortBy: c.Query("sort"),
		Order:  c.Query("order"),
		Locale: c.Query("locale"),
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		q.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		q.Limit = limit
	}
	for key, values := range c.Request.URL.Query() {
		if len(values) == 0 {
			continue
		}
		if strings.HasPrefix(key, "filter[") && strings.HasSuffix(key, "]") {
			field := key[len("filter[") : len(key)-1]
			if field == "" {
				continue
			}
			if q.Filters == nil {
				q.Filters = map[string]string{}
			}
			q.Filters[field] = values[0]
		}
	}
	return q
}

func (s *Server) handleList(ns string) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := s.store.List(ns, parseListQuery(c))
		if err != nil {
			s.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"data":       result.Items,
			"pagination": result.Pagination,
		})
	}
}

func (s *Server) handleGet(ns string) gin.HandlerFunc {
	return func(c *gin.Context) {
		row, err := s.store.Get(ns, c.Param("id"))
		if err != nil {
			s.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, row)
	}
}

func (s *Server) handleCreate(ns string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload map[string]any
		if err := c.ShouldBindJSON(&payload); err != nil {
			s.writeError(c, &mderrors.ValidationError{Message: "invalid JSON body: " + err.Error()})
			return
		}
		row, err := s.store.Create(ns, payload)
		if err != nil {
			s.writeError(c, err)
			return
		}
		s.metrics.Mutation("create", "success")
		c.JSON(http.StatusCreated, row)
	}
}

func (s *Server) handleUpdate(ns string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload map[string]any
		if err := c.ShouldBindJSON(&payload); err != nil {
			s.writeError(c, &mderrors.ValidationError{Message: "invalid JSON body: " + err.Error()})
			return
		}
		row, err := s.store.Update(ns, c.Param("id"), payload)
		if err != nil {
			s.writeError(c, err)
			return
		}
		s.metrics.Mutation("update", "success")
		c.JSON(http.StatusOK, row)
	}
}

func (s *Server) handleUpdateStatus(ns string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload struct {
			Status string `json:"status"`
		}
		if err := c.ShouldBindJSON(&payload); err != nil {
			s.writeError(c, &mderrors.ValidationError{Message: "invalid JSON body: " + err.Error()})
			return
		}
		status, err := catalog.ParseStatus(payload.Status)
		if err != nil {
			s.writeError(c, &mderrors.ValidationError{Message: err.Error()})
			return
		}
		row, err := s.store.UpdateStatus(ns, c.Param("id"), status)
		if err != nil {
			s.writeError(c, err)
			return
		}
		s.metrics.Mutation("statusUpdate", "success")
		c.JSON(http.StatusOK, row)
	}
}

func (s *Server) handleDelete(ns string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.store.Delete(ns, c.Param("id")); err != nil {
			s.writeError(c, err)
			return
		}
		s.metrics.Mutation("delete", "success")
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	}
}

func (s *Server) handleBulk(ns string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var op resource.BulkOp
		if err := c.ShouldBindJSON(&op); err != nil {
			s.writeError(c, &mderrors.ValidationError{Message: "invalid JSON body: " + err.Error()})
			return
		}
		deleted, updated, err := s.store.Bulk(ns, op)
		if err != nil {
			s.writeError(c, err)
			return
		}
		s.metrics.Mutation("bulkOp", "success")
		response := gin.H{}
		if len(deleted) > 0 {
			response["deleted"] = deleted
		}
		if len(updated) > 0 {
			response["updated"] = updated
		}
		c.JSON(http.StatusOK, response)
	}
}
