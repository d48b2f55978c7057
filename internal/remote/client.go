// Package remote implements the REST client for the resource service: one
// Client per base URL, plus a typed generic adapter that satisfies the
// synchronizer's Service interface for each resource namespace.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"mediadesk/internal/catalog"
	mderrors "mediadesk/internal/errors"
	"mediadesk/internal/httpclient"
	"mediadesk/internal/logging"
)

const maxResponseBytes = 8 << 20

// Client speaks the resource service's REST dialect. The underlying HTTP
// client carries a circuit breaker so a flapping backend stops being hammered.
type Client struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger
}

// NewClient builds a client for the service at baseURL.
func NewClient(baseURL string, timeout time.Duration, logger logging.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpclient.NewWithCircuitBreaker(timeout, "resource-service"),
		logger:  logging.OrNop(logger),
	}
}

// listEnvelope is the wire shape of a list response.
type listEnvelope struct {
	Data       json.RawMessage    `json:"data"`
	Pagination catalog.Pagination `json:"pagination"`
}

// errorEnvelope is the wire shape of an error response.
type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// do runs one request and returns the raw response body. Non-2xx responses
// and transport failures are mapped onto the error taxonomy.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, resource, id string) (json.RawMessage, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &mderrors.NetworkError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := httpclient.ReadAllWithLimit(resp.Body, maxResponseBytes)
	if err != nil {
		return nil, &mderrors.NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var envelope errorEnvelope
		_ = json.Unmarshal(data, &envelope)
		c.logger.Warn("%s %s -> %d: %s", method, path, resp.StatusCode, envelope.Error.Message)
		return nil, mderrors.FromStatus(resp.StatusCode, envelope.Error.Message, resource, id)
	}
	return data, nil
}

func listQueryValues(q catalog.ListQuery) url.Values {
	values := url.Values{}
	values.Set("page", strconv.Itoa(q.Page))
	values.Set("limit", strconv.Itoa(q.Limit))
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	for key, value := range q.Filters {
		values.Set("filter["+key+"]", value)
	}
	if q.SortBy != "" {
		values.Set("sort", q.SortBy)
		order := q.Order
		if order == "" {
			order = "asc"
		}
		values.Set("order", order)
	}
	if q.Locale != "" {
		values.Set("locale", q.Locale)
	}
	return values
}
