// Package ui provides terminal styling for ssb CLI output.
// Uses the Ayu color theme with adaptive light/dark mode support.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Ayu theme color palette
// Dark: https://terminalcolors.com/themes/ayu/dark/
// Light: https://terminalcolors.com/themes/ayu/light/
var (
	ColorPass = lipgloss.AdaptiveColor{
		Light: "#86b300", // ayu light bright green
		Dark:  "#c2d94c", // ayu dark bright green
	}
	ColorWarn = lipgloss.AdaptiveColor{
		Light: "#f2ae49", // ayu light bright yellow
		Dark:  "#ffb454", // ayu dark bright yellow
	}
	ColorFail = lipgloss.AdaptiveColor{
		Light: "#f07171", // ayu light bright red
		Dark:  "#f07178", // ayu dark bright red
	}
	ColorMuted = lipgloss.AdaptiveColor{
		Light: "#828c99", // ayu light muted
		Dark:  "#6c7680", // ayu dark muted
	}
)

// Status styles - consistent across all commands
var (
	PassStyle  = lipgloss.NewStyle().Foreground(ColorPass)
	WarnStyle  = lipgloss.NewStyle().Foreground(ColorWarn)
	FailStyle  = lipgloss.NewStyle().Foreground(ColorFail)
	MutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)
)

// Status icons - consistent semantic indicators
const (
	IconPass = "✓"
	IconWarn = "⚠"
	IconFail = "✗"
)

// RenderPass renders text with pass (green) styling
func RenderPass(s string) string {
	if !ShouldUseColor() {
		return s
	}
	return PassStyle.Render(s)
}

// RenderWarn renders text with warning (yellow) styling
func RenderWarn(s string) string {
	if !ShouldUseColor() {
		return s
	}
	return WarnStyle.Render(s)
}

// RenderFail renders text with failure (red) styling
func RenderFail(s string) string {
	if !ShouldUseColor() {
		return s
	}
	return FailStyle.Render(s)
}

// RenderMuted renders text with muted (gray) styling
func RenderMuted(s string) string {
	if !ShouldUseColor() {
		return s
	}
	return MutedStyle.Render(s)
}
