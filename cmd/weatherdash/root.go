package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/altocumulus/weatherdash/internal/api"
	"github.com/altocumulus/weatherdash/internal/config"
	"github.com/altocumulus/weatherdash/internal/dashboard"
	"github.com/altocumulus/weatherdash/internal/jobs"
	"github.com/altocumulus/weatherdash/pkg/log"
)

type rootFlags struct {
	apiURL   string
	pollMode string
	noColor  bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "weatherdash",
		Short: "Dashboard client for the weather analysis service",
		Long: "weatherdash uploads weather data files to the analysis backend, " +
			"tracks the resulting jobs to completion and renders the statistics " +
			"as KPI cards and a temperature table.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.apiURL, "api-url", "",
		"backend base URL (overrides WEATHERDASH_API_URL)")
	cmd.PersistentFlags().StringVar(&flags.pollMode, "poll-mode", "",
		"single or until-terminal (overrides WEATHERDASH_POLL_MODE)")
	cmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false,
		"disable ANSI colors in output")

	cmd.AddCommand(newRunCmd(flags))
	cmd.AddCommand(newAnalyzeCmd(flags))
	cmd.AddCommand(newJobsCmd(flags))
	cmd.AddCommand(newDeleteCmd(flags))
	return cmd
}

// app wires the client, store, notifier and controller from configuration.
type app struct {
	cfg        *config.Config
	client     *api.Client
	store      *jobs.Store
	notifier   *dashboard.Notifier
	controller *dashboard.Controller
}

func newApp(flags *rootFlags, extra ...dashboard.Option) (*app, error) {
	cfg, err := config.NewFromEnv(
		config.WithBaseURL(flags.apiURL),
		config.WithPollMode(flags.pollMode),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	level := log.ParseLevel(cfg.Log.Level)
	if cfg.Log.File != "" {
		if err := log.InitFileLogger(cfg.Log.File, level); err != nil {
			return nil, err
		}
	} else {
		log.InitLogger(level)
	}

	client := api.NewClient(cfg.API.BaseURL, time.Duration(cfg.API.Timeout)*time.Second)
	store := jobs.NewStore(client)
	notifier := dashboard.NewNotifier()

	opts := []dashboard.Option{
		dashboard.WithMaxPollAttempts(cfg.Poll.MaxAttempts),
	}
	if cfg.Poll.Mode == "until-terminal" {
		opts = append(opts, dashboard.WithPollMode(dashboard.PollModeUntilTerminal))
	}
	opts = append(opts, extra...)

	return &app{
		cfg:        cfg,
		client:     client,
		store:      store,
		notifier:   notifier,
		controller: dashboard.NewController(client, store, notifier, opts...),
	}, nil
}
