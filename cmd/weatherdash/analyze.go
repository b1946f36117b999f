package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/altocumulus/weatherdash/internal/dashboard"
	"github.com/altocumulus/weatherdash/internal/view"
	"github.com/altocumulus/weatherdash/pkg/file"
)

func newAnalyzeCmd(flags *rootFlags) *cobra.Command {
	var latest bool

	cmd := &cobra.Command{
		Use:   "analyze <file|dir>",
		Short: "Upload a weather data file and wait for the analysis result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// One-shot mode always watches the job to a terminal phase.
			app, err := newApp(flags, dashboard.WithPollMode(dashboard.PollModeUntilTerminal))
			if err != nil {
				return err
			}

			path := args[0]
			if latest {
				path, err = file.FindLatest(args[0])
				if err != nil {
					return err
				}
			}

			app.controller.SelectFile(path)
			if err := app.controller.Analyze(cmd.Context()); err != nil {
				return err
			}

			renderer := view.NewRenderer(os.Stdout, !flags.noColor)
			renderer.Render(app.controller.Snapshot(), app.notifier.Drain(), time.Now())
			return nil
		},
	}

	cmd.Flags().BoolVar(&latest, "latest", false,
		"treat the argument as a directory and upload its newest file")
	return cmd
}
