package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderPlainWithoutColor(t *testing.T) {
	// NO_COLOR disables styling, so every renderer is a passthrough.
	t.Setenv("NO_COLOR", "1")

	assert.Equal(t, "done", RenderPass("done"))
	assert.Equal(t, "careful", RenderWarn("careful"))
	assert.Equal(t, "broken", RenderFail("broken"))
	assert.Equal(t, "aside", RenderMuted("aside"))
}
