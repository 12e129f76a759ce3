// ssb - status summarizer bot. Ingests program data sources, runs the risk
// analytics passes, and renders executive reports via an LLM.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/damonayoung/status-summarizer-bot/internal/config"
	"github.com/damonayoung/status-summarizer-bot/internal/debug"
	"github.com/damonayoung/status-summarizer-bot/internal/telemetry"
)

var (
	// Version is the current version of ssb (overridden by ldflags at build time)
	Version = "2.0.0"
	// Build can be set via ldflags at compile time
	Build = "dev"
)

var (
	configPath  string
	jsonOutput  bool
	verboseFlag bool
	quietFlag   bool
	outDir      string

	cfg *config.Config

	// Signal-aware context for graceful cancellation
	rootCtx    context.Context
	rootCancel context.CancelFunc
)

// noConfigCommands run without a config file. The bare root command only
// shows help or the version.
var noConfigCommands = map[string]bool{
	"ssb":        true,
	"version":    true,
	"help":       true,
	"completion": true,
}

var rootCmd = &cobra.Command{
	Use:   "ssb",
	Short: "ssb - Executive status report generator",
	Long: `Status Summarizer Bot. Ingests tickets, chat threads, notes, and
spreadsheets, merges them with a risk register, and turns the result into an
executive-readable Markdown/HTML report with charts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("ssb version %s (%s)\n", Version, Build)
			return
		}
		_ = cmd.Help() // Help() always returns nil for cobra commands
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		debug.SetVerbose(verboseFlag)
		debug.SetQuiet(quietFlag)
		rootCtx, rootCancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

		if noConfigCommands[cmd.Name()] {
			return nil
		}

		// Initialize first: Load resolves SSB_* overrides through the
		// viper singleton.
		if err := config.Initialize(configPath); err != nil {
			return err
		}
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		applyOutDirOverride()

		if err := telemetry.Init(rootCtx, "ssb", Version); err != nil {
			debug.Logf("telemetry init: %v", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		telemetry.Shutdown(context.Background())
		if rootCancel != nil {
			rootCancel()
		}
	},
}

// applyOutDirOverride points every configured output format at --out.
func applyOutDirOverride() {
	if outDir == "" {
		return
	}
	override := func(out *config.OutputConfig) {
		for name, f := range out.Formats {
			f.Path = outDir
			out.Formats[name] = f
		}
	}
	if cfg.Output.Formats == nil {
		cfg.Output.Formats = map[string]config.FormatConfig{}
	}
	for _, name := range []string{"markdown", "html"} {
		if _, ok := cfg.Output.Formats[name]; !ok {
			cfg.Output.Formats[name] = config.FormatConfig{}
		}
	}
	override(&cfg.Output)
	for _, sc := range cfg.Scenarios {
		override(&sc.Output)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().StringVar(&outDir, "out", "", "Override the output directory for all formats")
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}
