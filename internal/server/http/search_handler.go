package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mediadesk/internal/catalog"
	"mediadesk/internal/search"
)

const suggestScanLimit = 50

// handleSuggest serves the autocomplete endpoint: a substring match across
// every namespace (or one, with ?resource=), returning value/label pairs.
func (s *Server) handleSuggest(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusOK, gin.H{"suggestions": []search.Suggestion{}})
		return
	}

	namespaces := catalog.Resources()
	if ns := c.Query("resource"); ns != "" {
		if !catalog.KnownResource(ns) {
			c.JSON(http.StatusOK, gin.H{"suggestions": []search.Suggestion{}})
			return
		}
		namespaces = []string{ns}
	}

	var suggestions []search.Suggestion
	for _, ns := range namespaces {
		result, err := s.store.List(ns, catalog.ListQuery{Page: 1, Limit: suggestScanLimit, Search: query})
		if err != nil {
			continue
		}
		for _, row := range result.Items {
			suggestions = append(suggestions, search.Suggestion{
				Value:    catalog.NormalizeID(row["id"]),
				Label:    rowLabel(row),
				Resource: ns,
			})
		}
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// rowLabel picks the human-readable field for a suggestion.
func rowLabel(row map[string]any) string {
	for _, field := range []string{"title", "name", "key"} {
		if label, ok := row[field].(string); ok && label != "" {
			return label
		}
	}
	return ""
}
