package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/altocumulus/weatherdash/internal/dashboard"
	"github.com/altocumulus/weatherdash/internal/view"
)

func newRunCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the interactive dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(flags)
			if err != nil {
				return err
			}
			return runDashboard(app, flags)
		},
	}
}

func runDashboard(app *app, flags *rootFlags) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	poller, err := dashboard.NewPoller(app.cfg.Poll.Interval(), func() {
		app.controller.RefreshSilent(context.Background())
	})
	if err != nil {
		return err
	}
	poller.Start()
	defer poller.Stop()

	renderer := view.NewRenderer(os.Stdout, !flags.noColor)

	app.controller.RefreshNow(ctx)
	renderer.Render(app.controller.Snapshot(), app.notifier.Drain(), time.Now())
	fmt.Println()
	fmt.Println(`Commands: file <path> | analyze | select <n|job-id> | refresh | delete <job-id> | confirm | cancel | quit`)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		quit := dispatch(ctx, app, scanner.Text())
		if quit {
			return nil
		}
		renderer.Render(app.controller.Snapshot(), app.notifier.Drain(), time.Now())
	}
}

// dispatch executes one interactive command line. Returns true on quit.
func dispatch(ctx context.Context, app *app, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	command, args := fields[0], fields[1:]

	switch command {
	case "quit", "exit", "q":
		return true
	case "file":
		if len(args) != 1 {
			fmt.Println("usage: file <path>")
			return false
		}
		app.controller.SelectFile(args[0])
	case "analyze":
		if err := app.controller.Analyze(ctx); err != nil {
			fmt.Println(err)
		}
	case "select":
		if len(args) != 1 {
			fmt.Println("usage: select <n|job-id>")
			return false
		}
		jobID, rawStatus, ok := resolveJob(app, args[0])
		if !ok {
			fmt.Printf("unknown job %q\n", args[0])
			return false
		}
		app.controller.SelectJob(ctx, jobID, rawStatus)
	case "refresh":
		app.controller.RefreshNow(ctx)
	case "delete":
		if len(args) != 1 {
			fmt.Println("usage: delete <job-id>")
			return false
		}
		app.controller.RequestDelete(args[0])
		fmt.Printf("Delete %s? Type 'confirm' or 'cancel'.\n", args[0])
	case "confirm":
		if err := app.controller.ConfirmDelete(ctx); err != nil {
			fmt.Println(err)
		}
	case "cancel":
		app.controller.CancelDelete()
	default:
		fmt.Printf("unknown command %q\n", command)
	}
	return false
}

// resolveJob accepts either a 1-based index into the current list or a
// literal job id.
func resolveJob(app *app, arg string) (jobID, rawStatus string, ok bool) {
	list := app.store.List()
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(list) {
			return "", "", false
		}
		return list[n-1].JobID, list[n-1].RawStatus, true
	}
	for _, job := range list {
		if job.JobID == arg {
			return job.JobID, job.RawStatus, true
		}
	}
	return "", "", false
}
