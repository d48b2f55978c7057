package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediadesk/internal/catalog"
	mderrors "mediadesk/internal/errors"
	"mediadesk/internal/resource"
)

func newTestClient(backend *httptest.Server) *Client {
	return NewClient(backend.URL, 5*time.Second, nil)
}

func TestListDecodesEnvelope(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/articles", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "draft", r.URL.Query().Get("filter[status]"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"id": 1, "title": "one"},
				{"id": 2, "title": "two"},
			},
			"pagination": map[string]any{"total": 12, "currentPage": 2, "pageSize": 10, "totalPages": 2},
		})
	}))
	defer backend.Close()

	svc := ServiceFor[catalog.Article](newTestClient(backend), catalog.ResourceArticles)
	page, err := svc.List(context.Background(), catalog.ListQuery{
		Page: 2, Limit: 10, Filters: map[string]string{"status": "draft"},
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, catalog.ID("1"), page.Items[0].ID, "numeric wire IDs coerce to strings")
	assert.Equal(t, 12, page.Pagination.Total)
}

func TestErrorEnvelopeMapsToTaxonomy(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{"not found", http.StatusNotFound, mderrors.IsNotFound},
		{"validation 422", http.StatusUnprocessableEntity, mderrors.IsValidation},
		{"validation 400", http.StatusBadRequest, mderrors.IsValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{"message": "upstream says no"},
				})
			}))
			defer backend.Close()

			svc := ServiceFor[catalog.Article](newTestClient(backend), catalog.ResourceArticles)
			_, err := svc.Get(context.Background(), "7")
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error type: %v", err)
		})
	}
}

func TestServerErrorCarriesStatus(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer backend.Close()

	svc := ServiceFor[catalog.Article](newTestClient(backend), catalog.ResourceArticles)
	_, err := svc.Get(context.Background(), "7")
	require.Error(t, err)

	var serverErr *mderrors.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusInternalServerError, serverErr.StatusCode)
}

func TestTransportFailureIsNetworkError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", time.Second, nil)
	svc := ServiceFor[catalog.Article](client, catalog.ResourceArticles)
	_, err := svc.Get(context.Background(), "7")
	assert.True(t, mderrors.IsNetwork(err), "got %v", err)
}

func TestUpdateSendsPatchAndReturnsRawBody(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/articles/3", r.URL.Path)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, map[string]any{"title": "patched"}, payload)

		_ = json.NewEncoder(w).Encode(map[string]any{"id": 3, "title": "patched"})
	}))
	defer backend.Close()

	svc := ServiceFor[catalog.Article](newTestClient(backend), catalog.ResourceArticles)
	entity, raw, err := svc.Update(context.Background(), "3", map[string]any{"title": "patched"})
	require.NoError(t, err)
	assert.Equal(t, "patched", entity.Title)

	var echo map[string]any
	require.NoError(t, json.Unmarshal(raw, &echo))
	assert.Equal(t, "patched", echo["title"])
}

func TestUpdateStatusHitsStatusPath(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/articles/3/status", r.URL.Path)
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "published", payload["status"])
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 3, "status": "published"})
	}))
	defer backend.Close()

	svc := ServiceFor[catalog.Article](newTestClient(backend), catalog.ResourceArticles)
	entity, _, err := svc.UpdateStatus(context.Background(), "3", catalog.StatusPublished)
	require.NoError(t, err)
	assert.Equal(t, catalog.StatusPublished, entity.Status)
}

func TestBulkOperationDecodesResult(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/articles/bulk", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"deleted": []any{1, "2"},
			"updated": []map[string]any{{"id": 3, "title": "still here"}},
		})
	}))
	defer backend.Close()

	svc := ServiceFor[catalog.Article](newTestClient(backend), catalog.ResourceArticles)
	result, err := svc.BulkOperation(context.Background(), resource.BulkOp{
		Action: resource.BulkDelete,
		IDs:    []string{"1", "2"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, result.Deleted, "mixed-type wire IDs normalize")
	require.Len(t, result.Updated, 1)
	assert.Equal(t, "still here", result.Updated[0].Title)
}
