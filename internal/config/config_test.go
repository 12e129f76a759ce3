package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
ai:
  model: claude-sonnet-4-5
  max_tokens: 1500
  temperature: 0.2
report:
  title: Weekly Program Status
  stakeholders: [Engineering, Product, Operations]
output:
  formats:
    markdown:
      enabled: true
      path: out
    html:
      enabled: true
      path: out
      template: templates/executive_report.html
data_sources:
  meeting_notes:
    enabled: true
    path: sample_data/meeting_notes.txt
  jira:
    enabled: true
    path: sample_data/jira.json
scenarios:
  sentient_cx_risk_radar:
    title: Sentient CX Risk Radar
    data_sources:
      risk_register:
        enabled: true
        path: sample_data/risk_register.csv
      risk_financials:
        enabled: true
        path: sample_data/risk_financials.csv
    analytics:
      cx_sentiment:
        baseline_index: 75
        warning_drop_pct: 5
        critical_drop_pct: 10
      financial:
        critical_exposure: 3000000
        high_exposure: 1000000
        medium_exposure: 250000
    ebitda:
      baseline_millions: 50
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "claude-sonnet-4-5", cfg.AI.Model)
	assert.Equal(t, int64(1500), cfg.AI.MaxTokens)
	assert.InDelta(t, 0.2, cfg.AI.Temperature, 1e-9)
	assert.Equal(t, []string{"Engineering", "Product", "Operations"}, cfg.Report.Stakeholders)

	require.Contains(t, cfg.DataSources, "jira")
	assert.True(t, cfg.DataSources["jira"].Enabled)

	sc, err := cfg.Scenario("sentient_cx_risk_radar")
	require.NoError(t, err)
	assert.Equal(t, "Sentient CX Risk Radar", sc.Title)
	assert.InDelta(t, 75, sc.Analytics.CXSentiment.BaselineIndex, 1e-9)
	assert.InDelta(t, 3000000, sc.Analytics.Financial.CriticalExposure, 1e-9)
	assert.InDelta(t, 50, sc.EBITDA.BaselineMillions, 1e-9)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "report:\n  title: ''\n"))
	require.NoError(t, err)

	assert.Equal(t, DefaultModel, cfg.AI.Model)
	assert.Equal(t, int64(DefaultMaxTokens), cfg.AI.MaxTokens)
	assert.InDelta(t, DefaultTemperature, cfg.AI.Temperature, 1e-9)
	assert.Equal(t, "Weekly Program Status", cfg.Report.Title)
}

func TestInitializeEnvOverride(t *testing.T) {
	path := writeConfig(t, sampleYAML)
	t.Setenv("SSB_MODEL", "claude-opus-4-1")

	require.NoError(t, Initialize(path))
	defer func() { v = nil }()

	// Env wins for the bare key, file values resolve by dotted key.
	assert.Equal(t, "claude-opus-4-1", Get("model"))
	assert.Equal(t, "claude-sonnet-4-5", Get("ai.model"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "claude-opus-4-1", cfg.AI.Model)
}

func TestGetBeforeInitialize(t *testing.T) {
	old := v
	v = nil
	defer func() { v = old }()

	assert.Empty(t, Get("model"))
}

func TestScenarioNotFound(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	_, err = cfg.Scenario("nope")
	assert.ErrorContains(t, err, `scenario "nope" not found`)
}

func TestFormatDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "ai:\n  model: m\n"))
	require.NoError(t, err)

	md := cfg.Format(nil, "markdown")
	assert.Equal(t, DefaultOutputDir, md.Path)
	assert.Equal(t, DefaultMarkdownPattern, md.FilenamePattern)
	assert.True(t, md.IsEnabled(true), "markdown defaults on")

	html := cfg.Format(nil, "html")
	assert.Equal(t, DefaultHTMLPattern, html.FilenamePattern)
	assert.False(t, html.IsEnabled(false), "html defaults off")
}

func TestScenarioFormatOverride(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	sc, err := cfg.Scenario("sentient_cx_risk_radar")
	require.NoError(t, err)

	// Scenario has no output block, so the top-level formats apply.
	md := cfg.Format(sc, "markdown")
	assert.Equal(t, "out", md.Path)
}
