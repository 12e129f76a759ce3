package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/damonayoung/status-summarizer-bot/internal/config"
	"github.com/damonayoung/status-summarizer-bot/internal/ingest"
)

var ingestScenario string

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Read all enabled data sources and print the combined prompt text",
	RunE: func(cmd *cobra.Command, args []string) error {
		sources, err := sourcesFor(ingestScenario)
		if err != nil {
			return err
		}
		combined, err := ingest.All(sources)
		if err != nil {
			return err
		}
		if jsonOutput {
			outputJSON(map[string]string{"combined_data": combined})
			return nil
		}
		fmt.Println(combined)
		return nil
	},
}

func init() {
	ingestCmd.Flags().StringVar(&ingestScenario, "scenario", "", "Use the named scenario's data sources")
	rootCmd.AddCommand(ingestCmd)
}

// sourcesFor resolves the data source set for a scenario name, or the
// top-level sources when name is empty.
func sourcesFor(name string) (map[string]config.SourceConfig, error) {
	if name == "" {
		return cfg.DataSources, nil
	}
	sc, err := cfg.Scenario(name)
	if err != nil {
		return nil, err
	}
	return sc.DataSources, nil
}
