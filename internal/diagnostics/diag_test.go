package diagnostics

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFailed(t *testing.T) {
	d := WriteFailed(7, errors.New("broken pipe"))
	assert.Equal(t, Err, d.Severity)
	assert.Equal(t, OutputWrite, d.Code)
	assert.Equal(t, "broken pipe", d.Detail)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"severity":"error"`)
	assert.Contains(t, string(b), `"frame":7`)
}
