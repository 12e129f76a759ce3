package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/damonayoung/status-summarizer-bot/internal/config"
)

func TestNewRequiresAPIKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	_, err := New(config.AIConfig{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errAPIKeyRequired)
	assert.ErrorContains(t, err, "ANTHROPIC_API_KEY")
}

func TestNewDefaults(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "test-key")

	c, err := New(config.AIConfig{})
	require.NoError(t, err)

	assert.Equal(t, config.DefaultModel, c.Model())
	assert.Equal(t, int64(config.DefaultMaxTokens), c.maxTokens)
	assert.Equal(t, config.DefaultTemperature, c.temperature)
}

func TestNewConfigWins(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "test-key")

	c, err := New(config.AIConfig{Model: "claude-opus-4-1", MaxTokens: 4000, Temperature: 0.7})
	require.NoError(t, err)

	assert.Equal(t, "claude-opus-4-1", c.Model())
	assert.Equal(t, int64(4000), c.maxTokens)
	assert.Equal(t, 0.7, c.temperature)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"context canceled", context.Canceled, false},
		{"deadline exceeded", context.DeadlineExceeded, false},
		{"rate limited", &anthropic.Error{StatusCode: 429}, true},
		{"server error", &anthropic.Error{StatusCode: 500}, true},
		{"overloaded", &anthropic.Error{StatusCode: 529}, true},
		{"bad request", &anthropic.Error{StatusCode: 400}, false},
		{"unauthorized", &anthropic.Error{StatusCode: 401}, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryable(tt.err))
		})
	}
}
