package stream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wsBackend(t *testing.T, snapshots ...string) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		var req struct {
			Prompt string `json:"prompt"`
		}
		require.NoError(t, conn.ReadJSON(&req))
		assert.NotEmpty(t, req.Prompt)

		for _, snapshot := range snapshots {
			require.NoError(t, conn.WriteJSON(TextMessage(snapshot)))
		}
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"))
	}))
}

func wsURL(s *httptest.Server) string {
	return "ws" + strings.TrimPrefix(s.URL, "http")
}

func TestWSChannelStreamsSnapshots(t *testing.T) {
	backend := wsBackend(t, "one", "one two")
	defer backend.Close()

	c := NewWSChannel(wsURL(backend), nil)
	messages, err := c.Open(context.Background(), "rewrite this")
	require.NoError(t, err)

	assert.Equal(t, []string{"one", "one two"}, collect(t, messages))
	assert.Equal(t, StatusReady, c.Status())
}

func TestWSChannelDialFailure(t *testing.T) {
	c := NewWSChannel("ws://127.0.0.1:1/generate", nil)
	_, err := c.Open(context.Background(), "prompt")
	assert.Error(t, err)
	assert.Equal(t, StatusError, c.Status())
}

func TestWSChannelStopClosesStream(t *testing.T) {
	hold := make(chan struct{})
	upgrader := websocket.Upgrader{}
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		var req map[string]string
		_ = conn.ReadJSON(&req)
		_ = conn.WriteJSON(TextMessage("first"))
		<-hold
	}))
	defer backend.Close()
	defer close(hold)

	c := NewWSChannel(wsURL(backend), nil)
	messages, err := c.Open(context.Background(), "prompt")
	require.NoError(t, err)

	msg := <-messages
	assert.Equal(t, "first", msg.Text())

	c.Stop()
	collect(t, messages)
	assert.Equal(t, StatusReady, c.Status())
}
