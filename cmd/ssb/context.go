package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/damonayoung/status-summarizer-bot/internal/ebitda"
	"github.com/damonayoung/status-summarizer-bot/internal/radar"
)

var contextScenario string

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Build the structured risk context and dump it as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := cfg.Scenario(contextScenario)
		if err != nil {
			return err
		}
		rctx, err := radar.BuildContext(cfg, contextScenario)
		if err != nil {
			return err
		}

		outputJSON(struct {
			Context   *radar.Context    `json:"context"`
			Dashboard *radar.Dashboard  `json:"dashboard"`
			EBITDA    *ebitda.Waterfall `json:"ebitda_waterfall"`
		}{
			Context:   rctx,
			Dashboard: rctx.BuildDashboard(time.Now()),
			EBITDA:    ebitda.Build(rctx, sc.EBITDA),
		})
		return nil
	},
}

func init() {
	contextCmd.Flags().StringVar(&contextScenario, "scenario", "", "Scenario to build the context for")
	_ = contextCmd.MarkFlagRequired("scenario")
	rootCmd.AddCommand(contextCmd)
}
