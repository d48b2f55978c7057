// Package httpclient builds the HTTP clients used to reach the remote
// resource service and the generation backends: timeout-configured
// transports with circuit breaker protection and response size limits.
package httpclient

import (
	"net/http"
	"time"
)

const defaultTimeout = 30 * time.Second

// New builds a plain HTTP client with a bounded timeout.
func New(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: http.DefaultTransport,
	}
}
