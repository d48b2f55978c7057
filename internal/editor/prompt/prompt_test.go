package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildCombinesInstructionAndSelection(t *testing.T) {
	p := Build("Make it shorter.", "A long passage of text.", Options{})
	assert.Equal(t, "Make it shorter.\n\nText:\nA long passage of text.", p)
}

func TestBuildStripsMarkup(t *testing.T) {
	p := Build("Rewrite.", "<p>Hello <strong>world</strong></p>", Options{StripMarkup: true})
	assert.Contains(t, p, "Hello world")
	assert.NotContains(t, p, "<strong>")
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "plain text stays", StripHTML("plain text stays"))
	assert.Equal(t, "Hello world", StripHTML("<p>Hello   <em>world</em></p>"))
}

func TestTruncateToTokensNoBudget(t *testing.T) {
	long := strings.Repeat("word ", 5000)
	assert.Equal(t, long, TruncateToTokens(long, 0))
}

func TestTruncateToTokensShortTextUnchanged(t *testing.T) {
	assert.Equal(t, "short", TruncateToTokens("short", 100))
}

func TestTruncateToTokensBoundsLongText(t *testing.T) {
	long := strings.Repeat("word ", 5000)
	truncated := TruncateToTokens(long, 100)
	assert.Less(t, len(truncated), len(long))
}

func TestTruncateRunesHeuristic(t *testing.T) {
	text := strings.Repeat("x", 100)
	assert.Len(t, truncateRunes(text, 10), 40)
	assert.Equal(t, "tiny", truncateRunes("tiny", 10))
}
