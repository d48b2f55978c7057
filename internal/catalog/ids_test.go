package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string", "42", "42"},
		{"typed id", ID("42"), "42"},
		{"int", 42, "42"},
		{"int64", int64(42), "42"},
		{"float64 integral", 42.0, "42"},
		{"float64 fractional", 4.5, "4.5"},
		{"json number", json.Number("42"), "42"},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeID(tt.in))
		})
	}
}

func TestSameIDAcrossRepresentations(t *testing.T) {
	assert.True(t, SameID("42", 42))
	assert.True(t, SameID(ID("42"), 42.0))
	assert.True(t, SameID(json.Number("42"), "42"))
	assert.False(t, SameID("42", 43))
	assert.False(t, SameID("", "0"))
}

func TestIDUnmarshalJSON(t *testing.T) {
	var payload struct {
		ID ID `json:"id"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"id": 42}`), &payload))
	assert.Equal(t, ID("42"), payload.ID)

	require.NoError(t, json.Unmarshal([]byte(`{"id": "abc-7"}`), &payload))
	assert.Equal(t, ID("abc-7"), payload.ID)

	require.NoError(t, json.Unmarshal([]byte(`{"id": null}`), &payload))
	assert.Equal(t, ID(""), payload.ID)

	assert.Error(t, json.Unmarshal([]byte(`{"id": [1]}`), &payload))
}
