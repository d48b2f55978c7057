// Package resource implements the generic cache synchronizer behind the
// dashboard CRUD hooks: one Synchronizer per resource namespace wraps the
// remote service and keeps the shared query cache consistent after every
// mutation without a full refetch.
package resource

import (
	"context"
	"encoding/json"

	"mediadesk/internal/catalog"
)

// Identifiable is satisfied by every catalog entity.
type Identifiable interface {
	EntityID() string
}

// BulkAction names a bulk operation over a set of entity IDs.
type BulkAction string

const (
	BulkDelete  BulkAction = "delete"
	BulkPublish BulkAction = "publish"
	BulkArchive BulkAction = "archive"
)

// BulkOp is a bulk mutation request.
type BulkOp struct {
	Action  BulkAction     `json:"action"`
	IDs     []string       `json:"ids"`
	Payload map[string]any `json:"payload,omitempty"`
}

// BulkResult reports the outcome of a bulk operation: the IDs removed by a
// delete-shaped action, or the updated entities for status-shaped actions.
type BulkResult[E any] struct {
	Deleted []string
	Updated []E
}

// Service is the remote collaborator for one resource namespace.
//
// Update and UpdateStatus return the decoded entity together with the raw
// response body: reconciliation shallow-merges the raw fields over cached
// rows so fields the server did not return are retained.
type Service[E any] interface {
	List(ctx context.Context, q catalog.ListQuery) (*catalog.Page[E], error)
	Get(ctx context.Context, id string) (*E, error)
	Create(ctx context.Context, payload map[string]any) (*E, error)
	Update(ctx context.Context, id string, payload map[string]any) (*E, json.RawMessage, error)
	UpdateStatus(ctx context.Context, id string, status catalog.Status) (*E, json.RawMessage, error)
	Delete(ctx context.Context, id string) error
	BulkOperation(ctx context.Context, op BulkOp) (*BulkResult[E], error)
}
