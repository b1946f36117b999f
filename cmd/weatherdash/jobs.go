package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/altocumulus/weatherdash/internal/format"
	"github.com/altocumulus/weatherdash/internal/jobs"
)

func newJobsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "jobs",
		Short: "List the backend's recent analysis jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(flags)
			if err != nil {
				return err
			}

			if err := app.store.Refresh(cmd.Context()); err != nil {
				return fmt.Errorf("could not fetch job list: %w", err)
			}

			list := app.store.List()
			if len(list) == 0 {
				fmt.Println("No recent jobs.")
				return nil
			}

			now := time.Now().Unix()
			for _, job := range list {
				cls := jobs.Classify(job.RawStatus)
				fmt.Printf("%-20s %-10s %s\n",
					job.JobID, cls.Phase, format.RelativeAge(job.Timestamp, now))
			}
			return nil
		},
	}
}

func newDeleteCmd(flags *rootFlags) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <job-id>",
		Short: "Delete a job and its stored result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(flags)
			if err != nil {
				return err
			}

			if !yes {
				return fmt.Errorf("refusing to delete %s without --yes", args[0])
			}

			app.controller.RequestDelete(args[0])
			if err := app.controller.ConfirmDelete(cmd.Context()); err != nil {
				return err
			}
			for _, note := range app.notifier.Drain() {
				fmt.Println(note.Message)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation prompt")
	return cmd
}
