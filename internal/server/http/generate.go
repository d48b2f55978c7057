package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	mderrors "mediadesk/internal/errors"
	"mediadesk/internal/stream"
)

// Generator produces the text for a streaming edit. Snapshots sent on the
// returned channel are cumulative: each one is the full replacement so far.
type Generator interface {
	Generate(ctx context.Context, prompt string) (<-chan string, error)
}

// RewriteGenerator is the built-in development generator. It extracts the
// embedded selection from the prompt, normalizes its whitespace, and streams
// it back one word at a time as growing snapshots.
type RewriteGenerator struct {
	delay time.Duration
}

// NewRewriteGenerator builds the development generator. A zero delay streams
// as fast as the consumer reads.
func NewRewriteGenerator(delay time.Duration) *RewriteGenerator {
	return &RewriteGenerator{delay: delay}
}

func (g *RewriteGenerator) Generate(ctx context.Context, prompt string) (<-chan string, error) {
	// The prompt carries the selection after the "Text:" marker; without one
	// the whole prompt is the material.
	material := prompt
	if _, after, found := strings.Cut(prompt, "\n\nText:\n"); found {
		material = after
	}
	words := strings.Fields(material)

	out := make(chan string)
	go func() {
		defer close(out)
		var b strings.Builder
		for i, word := range words {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString(word)
			select {
			case out <- b.String():
			case <-ctx.Done():
				return
			}
			if g.delay > 0 {
				select {
				case <-time.After(g.delay):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

// handleGenerateSSE streams generation output as Server-Sent Events: one
// `data:` frame per cumulative snapshot, then an `event: done` terminator.
func (s *Server) handleGenerateSSE(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, &mderrors.ValidationError{Message: "invalid JSON body: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		s.writeError(c, &mderrors.ValidationError{Message: "prompt is required"})
		return
	}

	snapshots, err := s.gen.Generate(c.Request.Context(), req.Prompt)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	for snapshot := range snapshots {
		frame, err := json.Marshal(snapshotMessage(snapshot))
		if err != nil {
			s.logger.Warn("encode snapshot: %v", err)
			continue
		}
		if _, err := c.Writer.WriteString("data: " + string(frame) + "\n\n"); err != nil {
			return // client went away
		}
		c.Writer.Flush()
		s.metrics.StreamChunk()
	}

	_, _ = c.Writer.WriteString("event: done\ndata: {}\n\n")
	c.Writer.Flush()
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// handleGenerateWS is the WebSocket flavor of the generation endpoint: the
// first client frame carries the prompt, each server frame is one cumulative
// snapshot, and a normal close ends the stream.
func (s *Server) handleGenerateWS(c *gin.Context) {
	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed: %v", err)
		return
	}
	defer func() { _ = conn.Close() }()

	var req generateRequest
	if err := conn.ReadJSON(&req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "prompt is required"))
		return
	}

	snapshots, err := s.gen.Generate(c.Request.Context(), req.Prompt)
	if err != nil {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, err.Error()))
		return
	}

	for snapshot := range snapshots {
		if err := conn.WriteJSON(snapshotMessage(snapshot)); err != nil {
			return
		}
		s.metrics.StreamChunk()
	}
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"))
}

func snapshotMessage(text string) stream.Message {
	return stream.Message{Parts: []stream.Part{{Text: text}}}
}
