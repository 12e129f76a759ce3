// Package config loads the ssb configuration file.
//
// The file is plain YAML (config.yaml by default). Typed access goes through
// Load; ad hoc key lookups go through the viper singleton initialized by
// Initialize. A .env file next to the config is loaded for API credentials.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Defaults applied when the config file leaves a field unset.
const (
	DefaultModel       = "claude-sonnet-4-5"
	DefaultMaxTokens   = 2000
	DefaultTemperature = 0.3
	DefaultOutputDir   = "output"

	DefaultMarkdownPattern = "weekly_summary_{date}.md"
	DefaultHTMLPattern     = "weekly_summary_{date}.html"

	// DefaultEBITDABaseline is the assumed annual EBITDA in millions when a
	// scenario does not configure one.
	DefaultEBITDABaseline = 50.0
)

// Config is the root of config.yaml.
type Config struct {
	AI          AIConfig                `yaml:"ai"`
	Report      ReportConfig            `yaml:"report"`
	Output      OutputConfig            `yaml:"output"`
	DataSources map[string]SourceConfig `yaml:"data_sources"`
	Scenarios   map[string]*Scenario    `yaml:"scenarios"`
}

// AIConfig controls the LLM call.
type AIConfig struct {
	Model       string  `yaml:"model"`
	MaxTokens   int64   `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
	AuditLog    string  `yaml:"audit_log"`
}

// ReportConfig shapes the default weekly status report.
type ReportConfig struct {
	Title        string   `yaml:"title"`
	Sections     []string `yaml:"sections"`
	Stakeholders []string `yaml:"stakeholders"`
}

// SourceConfig describes one data source file.
type SourceConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Scenario is a named report configuration with its own data sources and
// analytics thresholds.
type Scenario struct {
	Title       string                  `yaml:"title"`
	Sections    []string                `yaml:"sections"`
	PromptFocus []string                `yaml:"prompt_focus"`
	DataSources map[string]SourceConfig `yaml:"data_sources"`
	Analytics   Analytics               `yaml:"analytics"`
	EBITDA      EBITDAConfig            `yaml:"ebitda"`
	Output      OutputConfig            `yaml:"output"`
}

// Analytics holds scenario threshold settings surfaced in prompts.
type Analytics struct {
	CXSentiment SentimentThresholds `yaml:"cx_sentiment"`
	Financial   FinancialThresholds `yaml:"financial"`
}

// SentimentThresholds flag week-over-week sentiment drops.
type SentimentThresholds struct {
	BaselineIndex   float64 `yaml:"baseline_index"`
	WarningDropPct  float64 `yaml:"warning_drop_pct"`
	CriticalDropPct float64 `yaml:"critical_drop_pct"`
}

// FinancialThresholds classify risk exposure in dollars.
type FinancialThresholds struct {
	CriticalExposure float64 `yaml:"critical_exposure"`
	HighExposure     float64 `yaml:"high_exposure"`
	MediumExposure   float64 `yaml:"medium_exposure"`
}

// EBITDAConfig parameterizes the deterministic waterfall estimator.
type EBITDAConfig struct {
	BaselineMillions   float64  `yaml:"baseline_millions"`
	ComplianceRiskIDs  []string `yaml:"compliance_risk_ids"`
	OperationalRiskIDs []string `yaml:"operational_risk_ids"`
}

// OutputConfig lists the enabled output formats.
type OutputConfig struct {
	Formats map[string]FormatConfig `yaml:"formats"`
}

// FormatConfig describes one output format (markdown or html).
// Enabled is a pointer so "unset" can take a per-format default:
// markdown defaults on, html defaults off.
type FormatConfig struct {
	Enabled         *bool  `yaml:"enabled"`
	Path            string `yaml:"path"`
	FilenamePattern string `yaml:"filename_pattern"`
	Template        string `yaml:"template"`
}

// IsEnabled resolves the Enabled pointer against the given default.
func (f FormatConfig) IsEnabled(def bool) bool {
	if f.Enabled == nil {
		return def
	}
	return *f.Enabled
}

// Load reads and parses the YAML config file, applying defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path comes from the --config flag
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.AI.Model == "" {
		c.AI.Model = DefaultModel
	}
	// SSB_MODEL (or a top-level "model" key) resolves through viper, so
	// Initialize must run before Load for the override to apply.
	if model := Get("model"); model != "" {
		c.AI.Model = model
	}
	if c.AI.MaxTokens == 0 {
		c.AI.MaxTokens = DefaultMaxTokens
	}
	if c.AI.Temperature == 0 {
		c.AI.Temperature = DefaultTemperature
	}
	if c.Report.Title == "" {
		c.Report.Title = "Weekly Program Status"
	}
}

// Scenario returns the named scenario, or an error listing what exists.
func (c *Config) Scenario(name string) (*Scenario, error) {
	sc, ok := c.Scenarios[name]
	if !ok {
		names := make([]string, 0, len(c.Scenarios))
		for n := range c.Scenarios {
			names = append(names, n)
		}
		return nil, fmt.Errorf("scenario %q not found in config (have %v)", name, names)
	}
	return sc, nil
}

// Format returns the format config for the given scenario (or the default
// report when scenario is nil).
func (c *Config) Format(sc *Scenario, name string) FormatConfig {
	formats := c.Output.Formats
	if sc != nil && sc.Output.Formats != nil {
		formats = sc.Output.Formats
	}
	f := formats[name]
	if f.Path == "" {
		f.Path = DefaultOutputDir
	}
	if f.FilenamePattern == "" {
		if name == "html" {
			f.FilenamePattern = DefaultHTMLPattern
		} else {
			f.FilenamePattern = DefaultMarkdownPattern
		}
	}
	return f
}

// v is the viper singleton for ad hoc key lookups (Get), mirroring the
// typed Config returned by Load.
var v *viper.Viper

// Initialize sets up the viper singleton from the given config file and
// loads a sibling .env file (best effort) for API credentials.
func Initialize(path string) error {
	_ = godotenv.Load(filepath.Join(filepath.Dir(path), ".env"))

	v = viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("SSB")
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("initialize config: %w", err)
	}
	return nil
}

// Get returns a raw config value by key, or "" before Initialize. An
// SSB_-prefixed environment variable wins over the file value (SSB_MODEL
// for "model", SSB_OTEL_ENABLED for "otel_enabled", ...).
func Get(key string) string {
	if v == nil {
		return ""
	}
	return v.GetString(key)
}
