package stream

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"mediadesk/internal/async"
	"mediadesk/internal/httpclient"
	"mediadesk/internal/logging"
)

// SSEChannel streams generation output over Server-Sent Events: one POST
// with the prompt, one `data:` line per cumulative snapshot, terminated by
// an `event: done` frame.
type SSEChannel struct {
	endpoint string
	http     *http.Client
	logger   logging.Logger

	mu     sync.Mutex
	status Status
	cancel context.CancelFunc
}

// NewSSEChannel builds a channel against the generation endpoint. A zero
// timeout keeps the response open for the whole generation.
func NewSSEChannel(endpoint string, logger logging.Logger) *SSEChannel {
	client := httpclient.New(0)
	client.Timeout = 0 // streaming responses outlive any fixed deadline
	return &SSEChannel{
		endpoint: endpoint,
		http:     client,
		logger:   logging.OrNop(logger),
		status:   StatusReady,
	}
}

func (c *SSEChannel) Open(ctx context.Context, prompt string) (<-chan Message, error) {
	payload, err := json.Marshal(map[string]string{"prompt": prompt})
	if err != nil {
		return nil, fmt.Errorf("encode prompt: %w", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	req, err := http.NewRequestWithContext(runCtx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.http.Do(req)
	if err != nil {
		cancel()
		c.setStatus(StatusError)
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		cancel()
		c.setStatus(StatusError)
		return nil, fmt.Errorf("generate endpoint returned %d", resp.StatusCode)
	}

	c.mu.Lock()
	c.cancel = cancel
	c.status = StatusSubmitted
	c.mu.Unlock()

	out := make(chan Message)
	async.Go(c.logger, "sse-consume", func() {
		defer close(out)
		defer func() { _ = resp.Body.Close() }()
		defer cancel()

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		event := ""
		for scanner.Scan() {
			line := scanner.Text()
			switch {
			case strings.HasPrefix(line, "event:"):
				event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
			case strings.HasPrefix(line, "data:"):
				data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
				if event == "done" {
					c.setStatus(StatusReady)
					return
				}
				var msg Message
				if err := json.Unmarshal([]byte(data), &msg); err != nil {
					c.logger.Warn("skipping malformed SSE frame: %v", err)
					continue
				}
				select {
				case out <- msg:
					c.setStatus(StatusStreaming)
				case <-runCtx.Done():
					return
				}
			case line == "":
				// frame separator
			}
		}
		if err := scanner.Err(); err != nil && runCtx.Err() == nil {
			c.logger.Warn("SSE stream interrupted: %v", err)
			c.setStatus(StatusError)
			return
		}
		c.setStatus(StatusReady)
	})
	return out, nil
}

// Stop cancels the in-flight response; the consume goroutine closes the
// message channel on its way out.
func (c *SSEChannel) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
	c.status = StatusReady
}

func (c *SSEChannel) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *SSEChannel) setStatus(status Status) {
	c.mu.Lock()
	c.status = status
	c.mu.Unlock()
}

var _ Channel = (*SSEChannel)(nil)
