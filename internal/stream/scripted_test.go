package stream

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, messages <-chan Message) []string {
	t.Helper()
	var texts []string
	timeout := time.After(2 * time.Second)
	for {
		select {
		case msg, ok := <-messages:
			if !ok {
				return texts
			}
			texts = append(texts, msg.Text())
		case <-timeout:
			t.Fatal("stream never closed")
		}
	}
}

func TestScriptedDeliversChunksInOrder(t *testing.T) {
	c := NewScripted("a", "ab", "abc")
	messages, err := c.Open(context.Background(), "prompt")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "ab", "abc"}, collect(t, messages))
	assert.Equal(t, StatusReady, c.Status())
}

func TestScriptedFailAfterInterrupts(t *testing.T) {
	c := NewScripted("a", "ab", "abc")
	c.FailAfter = 2
	messages, err := c.Open(context.Background(), "prompt")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "ab"}, collect(t, messages))
	assert.Equal(t, StatusError, c.Status())
}

func TestScriptedStopClosesStream(t *testing.T) {
	c := NewScripted("a", "ab", "abc")
	c.Delay = 50 * time.Millisecond
	messages, err := c.Open(context.Background(), "prompt")
	require.NoError(t, err)

	c.Stop()
	texts := collect(t, messages)
	assert.Less(t, len(texts), 3)
}

func TestMessageText(t *testing.T) {
	assert.Equal(t, "hello world", Message{Parts: []Part{{Text: "hello "}, {Text: "world"}}}.Text())
	assert.Equal(t, "solo", TextMessage("solo").Text())
	assert.Empty(t, Message{}.Text())
}
