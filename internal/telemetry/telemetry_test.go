package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/damonayoung/status-summarizer-bot/internal/config"
)

func TestEnabledGate(t *testing.T) {
	// Off before the config singleton exists, regardless of env.
	t.Setenv("SSB_OTEL_ENABLED", "true")
	assert.False(t, Enabled())

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ai:\n  model: m\n"), 0o600))
	require.NoError(t, config.Initialize(path))

	assert.True(t, Enabled())

	t.Setenv("SSB_OTEL_ENABLED", "")
	assert.False(t, Enabled())
}
