package editor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediadesk/internal/stream"
)

func TestPreviewShowsPendingDiff(t *testing.T) {
	doc := NewTextDocument("the quick brown fox")
	channel := stream.NewScripted("the slow brown fox")
	s := NewSession(doc, channel)

	require.NoError(t, s.Submit(context.Background(), "slow it down", 0, 19))
	waitForDecision(t, s)

	preview := s.Preview(false)
	assert.Contains(t, preview, "- ")
	assert.Contains(t, preview, "+ ")
	assert.Contains(t, preview, "quick")
	assert.Contains(t, preview, "slow")
}

func TestPreviewEmptyWhenIdle(t *testing.T) {
	doc := NewTextDocument("nothing pending")
	s := NewSession(doc, stream.NewScripted())
	assert.Empty(t, s.Preview(false))
}

func TestPreviewEmptyAfterDecision(t *testing.T) {
	doc := NewTextDocument("some text")
	channel := stream.NewScripted("other text")
	s := NewSession(doc, channel)

	require.NoError(t, s.Submit(context.Background(), "rewrite", 0, 9))
	waitForDecision(t, s)
	require.NoError(t, s.Accept())

	assert.Empty(t, s.Preview(false))
}
