package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"mediadesk/internal/catalog"
	"mediadesk/internal/resource"
)

// restService adapts the Client to the synchronizer's Service interface for
// one resource namespace.
type restService[E any] struct {
	client *Client
	ns     string
}

// ServiceFor builds the typed remote service for a namespace, e.g.
//
//	articles := remote.ServiceFor[catalog.Article](client, catalog.ResourceArticles)
func ServiceFor[E any](client *Client, ns string) resource.Service[E] {
	return &restService[E]{client: client, ns: ns}
}

func (s *restService[E]) path(parts ...string) string {
	p := "/api/" + s.ns
	for _, part := range parts {
		p += "/" + part
	}
	return p
}

func (s *restService[E]) List(ctx context.Context, q catalog.ListQuery) (*catalog.Page[E], error) {
	body, err := s.client.do(ctx, http.MethodGet, s.path(), listQueryValues(q), nil, s.ns, "")
	if err != nil {
		return nil, err
	}
	var envelope listEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode %s list: %w", s.ns, err)
	}
	var items []E
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &items); err != nil {
			return nil, fmt.Errorf("decode %s items: %w", s.ns, err)
		}
	}
	return &catalog.Page[E]{Items: items, Pagination: envelope.Pagination}, nil
}

func (s *restService[E]) Get(ctx context.Context, id string) (*E, error) {
	body, err := s.client.do(ctx, http.MethodGet, s.path(id), nil, nil, s.ns, id)
	if err != nil {
		return nil, err
	}
	return decodeEntity[E](s.ns, body)
}

func (s *restService[E]) Create(ctx context.Context, payload map[string]any) (*E, error) {
	body, err := s.client.do(ctx, http.MethodPost, s.path(), nil, payload, s.ns, "")
	if err != nil {
		return nil, err
	}
	return decodeEntity[E](s.ns, body)
}

func (s *restService[E]) Update(ctx context.Context, id string, payload map[string]any) (*E, json.RawMessage, error) {
	body, err := s.client.do(ctx, http.MethodPatch, s.path(id), nil, payload, s.ns, id)
	if err != nil {
		return nil, nil, err
	}
	entity, err := decodeEntity[E](s.ns, body)
	if err != nil {
		return nil, nil, err
	}
	return entity, body, nil
}

func (s *restService[E]) UpdateStatus(ctx context.Context, id string, status catalog.Status) (*E, json.RawMessage, error) {
	payload := map[string]any{"status": string(status)}
	body, err := s.client.do(ctx, http.MethodPatch, s.path(id, "status"), nil, payload, s.ns, id)
	if err != nil {
		return nil, nil, err
	}
	entity, err := decodeEntity[E](s.ns, body)
	if err != nil {
		return nil, nil, err
	}
	return entity, body, nil
}

func (s *restService[E]) Delete(ctx context.Context, id string) error {
	_, err := s.client.do(ctx, http.MethodDelete, s.path(id), nil, nil, s.ns, id)
	return err
}

func (s *restService[E]) BulkOperation(ctx context.Context, op resource.BulkOp) (*resource.BulkResult[E], error) {
	body, err := s.client.do(ctx, http.MethodPost, s.path("bulk"), nil, op, s.ns, "")
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Deleted []catalog.ID    `json:"deleted,omitempty"`
		Updated json.RawMessage `json:"updated,omitempty"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode %s bulk result: %w", s.ns, err)
	}
	result := &resource.BulkResult[E]{}
	for _, id := range envelope.Deleted {
		result.Deleted = append(result.Deleted, string(id))
	}
	if len(envelope.Updated) > 0 {
		if err := json.Unmarshal(envelope.Updated, &result.Updated); err != nil {
			return nil, fmt.Errorf("decode %s bulk entities: %w", s.ns, err)
		}
	}
	return result, nil
}

func decodeEntity[E any](ns string, body json.RawMessage) (*E, error) {
	var entity E
	if err := json.Unmarshal(body, &entity); err != nil {
		return nil, fmt.Errorf("decode %s entity: %w", ns, err)
	}
	return &entity, nil
}
