package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sseBackend(t *testing.T, snapshots ...string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var req struct {
			Prompt string `json:"prompt"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req.Prompt)

		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for _, snapshot := range snapshots {
			frame, _ := json.Marshal(TextMessage(snapshot))
			fmt.Fprintf(w, "data: %s\n\n", frame)
			flusher.Flush()
		}
		fmt.Fprint(w, "event: done\ndata: {}\n\n")
		flusher.Flush()
	}))
}

func TestSSEChannelStreamsSnapshots(t *testing.T) {
	backend := sseBackend(t, "one", "one two", "one two three")
	defer backend.Close()

	c := NewSSEChannel(backend.URL, nil)
	messages, err := c.Open(context.Background(), "rewrite this")
	require.NoError(t, err)

	assert.Equal(t, []string{"one", "one two", "one two three"}, collect(t, messages))
	assert.Equal(t, StatusReady, c.Status())
}

func TestSSEChannelSkipsMalformedFrames(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: not json\n\n")
		frame, _ := json.Marshal(TextMessage("good"))
		fmt.Fprintf(w, "data: %s\n\n", frame)
		fmt.Fprint(w, "event: done\ndata: {}\n\n")
	}))
	defer backend.Close()

	c := NewSSEChannel(backend.URL, nil)
	messages, err := c.Open(context.Background(), "prompt")
	require.NoError(t, err)

	assert.Equal(t, []string{"good"}, collect(t, messages))
}

func TestSSEChannelNon200IsError(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer backend.Close()

	c := NewSSEChannel(backend.URL, nil)
	_, err := c.Open(context.Background(), "prompt")
	assert.Error(t, err)
	assert.Equal(t, StatusError, c.Status())
}

func TestSSEChannelStopCancelsStream(t *testing.T) {
	release := make(chan struct{})
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		frame, _ := json.Marshal(TextMessage("first"))
		fmt.Fprintf(w, "data: %s\n\n", frame)
		flusher.Flush()
		<-release // hold the stream open until the client walks away
	}))
	defer backend.Close()
	defer close(release)

	c := NewSSEChannel(backend.URL, nil)
	messages, err := c.Open(context.Background(), "prompt")
	require.NoError(t, err)

	msg := <-messages
	assert.Equal(t, "first", msg.Text())

	c.Stop()
	collect(t, messages) // drains until the channel closes
	assert.Equal(t, StatusReady, c.Status())
}
