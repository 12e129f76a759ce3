package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/damonayoung/status-summarizer-bot/internal/debug"
)

var (
	watchScenario string
	watchAI       bool
)

// debounce interval for bursts of file events (editors write several times).
const watchSettle = 500 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-render the report whenever a scenario data file changes",
	Long: `Watches the scenario's data source files and re-runs the report pipeline
on change. The LLM is only called when --ai is set; otherwise each render
uses the deterministic placeholder summary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := cfg.Scenario(watchScenario)
		if err != nil {
			return err
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		defer watcher.Close()

		// Watch each source's directory; watching files directly breaks on
		// editors that replace the file on save.
		watched := map[string]bool{}
		tracked := map[string]bool{}
		for _, src := range sc.DataSources {
			if src.Path == "" {
				continue
			}
			tracked[filepath.Clean(src.Path)] = true
			dir := filepath.Dir(src.Path)
			if watched[dir] {
				continue
			}
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("watch %s: %w", dir, err)
			}
			watched[dir] = true
		}
		if len(watched) == 0 {
			return fmt.Errorf("scenario %q has no data source paths to watch", watchScenario)
		}

		render := func() {
			res, err := runReport(rootCtx, watchScenario, watchAI)
			if err != nil {
				printError(err)
				return
			}
			if res.HTML != "" {
				printSuccess("Re-rendered %s", res.HTML)
			} else if res.Markdown != "" {
				printSuccess("Re-rendered %s", res.Markdown)
			}
		}

		printStatus("Watching %d directories for %s (ctrl-c to stop)", len(watched), watchScenario)
		render()

		var settle *time.Timer
		pending := make(chan struct{}, 1)
		for {
			select {
			case <-rootCtx.Done():
				return nil
			case <-pending:
				render()
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if !tracked[filepath.Clean(event.Name)] {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				debug.Logf("change detected: %s (%s)", event.Name, event.Op)
				if settle != nil {
					settle.Stop()
				}
				settle = time.AfterFunc(watchSettle, func() {
					select {
					case pending <- struct{}{}:
					default:
					}
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				printWarn("watch error: %v", err)
			}
		}
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchScenario, "scenario", "", "Scenario whose data files to watch")
	watchCmd.Flags().BoolVar(&watchAI, "ai", false, "Call the LLM on every re-render (off by default)")
	_ = watchCmd.MarkFlagRequired("scenario")
	rootCmd.AddCommand(watchCmd)
}
