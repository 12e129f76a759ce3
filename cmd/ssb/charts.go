package main

import (
	"github.com/spf13/cobra"

	"github.com/damonayoung/status-summarizer-bot/internal/charts"
	"github.com/damonayoung/status-summarizer-bot/internal/ebitda"
	"github.com/damonayoung/status-summarizer-bot/internal/radar"
)

var chartsScenario string

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "Render the risk visualization charts without generating a report",
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := cfg.Scenario(chartsScenario)
		if err != nil {
			return err
		}
		rctx, err := radar.BuildContext(cfg, chartsScenario)
		if err != nil {
			return err
		}
		wf := ebitda.Build(rctx, sc.EBITDA)

		paths, err := charts.Generate(rctx, wf, cfg.Format(sc, "markdown").Path)
		if err != nil {
			return err
		}

		if jsonOutput {
			outputJSON(paths)
			return nil
		}
		for key, rel := range paths {
			printSuccess("%s: %s", key, rel)
		}
		return nil
	},
}

func init() {
	chartsCmd.Flags().StringVar(&chartsScenario, "scenario", "", "Scenario to render charts for")
	_ = chartsCmd.MarkFlagRequired("scenario")
	rootCmd.AddCommand(chartsCmd)
}
