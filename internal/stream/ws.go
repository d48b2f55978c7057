package stream

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"mediadesk/internal/async"
	"mediadesk/internal/logging"
)

// WSChannel speaks the same message shape as SSEChannel over a WebSocket:
// the prompt goes out as the first text frame, each incoming text frame is
// one cumulative Message, and a normal close ends the stream.
type WSChannel struct {
	url    string
	dialer *websocket.Dialer
	logger logging.Logger

	mu     sync.Mutex
	status Status
	conn   *websocket.Conn
	cancel context.CancelFunc
}

// NewWSChannel builds a WebSocket generation channel for ws:// or wss:// url.
func NewWSChannel(url string, logger logging.Logger) *WSChannel {
	return &WSChannel{
		url:    url,
		dialer: websocket.DefaultDialer,
		logger: logging.OrNop(logger),
		status: StatusReady,
	}
}

func (c *WSChannel) Open(ctx context.Context, prompt string) (<-chan Message, error) {
	runCtx, cancel := context.WithCancel(ctx)
	conn, resp, err := c.dialer.DialContext(runCtx, c.url, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		cancel()
		c.setStatus(StatusError)
		return nil, err
	}

	if err := conn.WriteJSON(map[string]string{"prompt": prompt}); err != nil {
		_ = conn.Close()
		cancel()
		c.setStatus(StatusError)
		return nil, err
	}

	c.mu.Lock()
	c.conn = conn
	c.cancel = cancel
	c.status = StatusSubmitted
	c.mu.Unlock()

	out := make(chan Message)
	async.Go(c.logger, "ws-consume", func() {
		defer close(out)
		defer func() { _ = conn.Close() }()
		defer cancel()

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) || runCtx.Err() != nil {
					c.setStatus(StatusReady)
				} else {
					c.logger.Warn("websocket stream interrupted: %v", err)
					c.setStatus(StatusError)
				}
				return
			}
			var msg Message
			if err := json.Unmarshal(data, &msg); err != nil {
				c.logger.Warn("skipping malformed websocket frame: %v", err)
				continue
			}
			select {
			case out <- msg:
				c.setStatus(StatusStreaming)
			case <-runCtx.Done():
				return
			}
		}
	})
	return out, nil
}

// Stop closes the connection; in-flight reads fail and the message channel
// closes.
func (c *WSChannel) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
	if c.conn != nil {
		deadline := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "stop")
		_ = c.conn.WriteMessage(websocket.CloseMessage, deadline)
		_ = c.conn.Close()
	}
	c.status = StatusReady
}

func (c *WSChannel) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *WSChannel) setStatus(status Status) {
	c.mu.Lock()
	c.status = status
	c.mu.Unlock()
}

var _ Channel = (*WSChannel)(nil)
