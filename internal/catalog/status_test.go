package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to Status
		ok       bool
	}{
		{StatusDraft, StatusPublished, true},
		{StatusDraft, StatusArchived, true},
		{StatusPublished, StatusArchived, true},
		{StatusPublished, StatusDraft, true},
		{StatusArchived, StatusDraft, true},
		{StatusArchived, StatusPublished, false},
		{StatusDraft, StatusDraft, false},
		{Status("bogus"), StatusPublished, false},
		{StatusDraft, Status("bogus"), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, tt.from.CanTransition(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("published")
	assert.NoError(t, err)
	assert.Equal(t, StatusPublished, s)

	_, err = ParseStatus("live")
	assert.Error(t, err)
}
