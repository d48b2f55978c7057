package httpclient

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAllWithLimit(t *testing.T) {
	data, err := ReadAllWithLimit(strings.NewReader("under the limit"), 100)
	require.NoError(t, err)
	assert.Equal(t, "under the limit", string(data))

	data, err = ReadAllWithLimit(strings.NewReader("exact"), 5)
	require.NoError(t, err)
	assert.Equal(t, "exact", string(data))

	_, err = ReadAllWithLimit(strings.NewReader("one byte over"), 5)
	assert.True(t, IsResponseTooLarge(err))

	data, err = ReadAllWithLimit(strings.NewReader("no limit at all"), 0)
	require.NoError(t, err)
	assert.Equal(t, "no limit at all", string(data))
}
