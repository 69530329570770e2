package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "warn", true)
	require.NoError(t, err)

	log.Info().Msg("hidden")
	log.Warn().Str("seq", "chr1").Msg("skipped")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec))
	assert.Equal(t, "warn", rec["level"])
	assert.Equal(t, "chr1", rec["seq"])
	assert.Equal(t, "skipped", rec["message"])
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "", false)
	require.NoError(t, err)
	log.Debug().Msg("nope")
	log.Info().Str("motif", "m1").Msg("pass done")

	out := buf.String()
	assert.NotContains(t, out, "nope")
	assert.Contains(t, out, "pass done")
	assert.Contains(t, out, "motif=m1")
}

func TestBadLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud", false)
	assert.Error(t, err)
}
