// Package view renders a dashboard snapshot as terminal text. It is a thin
// presentation layer: all behavior lives in the controller and formatters.
package view

import (
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/altocumulus/weatherdash/internal/api"
	"github.com/altocumulus/weatherdash/internal/dashboard"
	"github.com/altocumulus/weatherdash/internal/format"
	"github.com/altocumulus/weatherdash/internal/jobs"
)

// historyLimit caps how many recent jobs are shown, mirroring the
// dashboard's "show first 3" slice of the raw list.
const historyLimit = 3

var ansiByColor = map[string]string{
	jobs.ColorGreen:  "\033[32m",
	jobs.ColorRed:    "\033[31m",
	jobs.ColorYellow: "\033[33m",
	jobs.ColorBlue:   "\033[34m",
	jobs.ColorGray:   "\033[90m",
}

const ansiReset = "\033[0m"

type Renderer struct {
	out     io.Writer
	printer *message.Printer
	color   bool
}

func NewRenderer(out io.Writer, color bool) *Renderer {
	return &Renderer{
		out:     out,
		printer: message.NewPrinter(language.English),
		color:   color,
	}
}

// Render writes the whole dashboard: notifications, focused job status,
// KPI cards, temperature table and the recent-job history.
func (r *Renderer) Render(snap dashboard.Snapshot, notes []dashboard.Notification, now time.Time) {
	for _, note := range notes {
		prefix := "--"
		if note.Level == dashboard.LevelError {
			prefix = "!!"
		}
		fmt.Fprintf(r.out, "%s %s\n", prefix, note.Message)
	}

	fmt.Fprintf(r.out, "Status: %s", r.colorize(string(snap.Phase), snap.ColorClass))
	if snap.JobID != "" {
		fmt.Fprintf(r.out, "  (job %s)", snap.JobID)
	}
	fmt.Fprintln(r.out)

	if snap.Message != "" {
		fmt.Fprintf(r.out, "  %s\n", snap.Message)
	}

	if snap.Result != nil {
		r.renderResult(snap.Result)
	}

	r.renderHistory(snap, now)
}

func (r *Renderer) renderResult(result *api.AnalysisResult) {
	fmt.Fprintln(r.out)
	for _, kpi := range format.KPITuples(result) {
		label := kpi.Label
		if kpi.Emphasis {
			label = strings.ToUpper(label)
		}
		fmt.Fprintf(r.out, "  %-28s %s\n", label, kpi.Value)
	}

	series := format.TemperatureSeries(result)
	if len(series) == 0 {
		return
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "  Daily average temperature")
	interval := format.XAxisLabelInterval(len(series))
	for i, point := range series {
		label := ""
		if interval == 0 || i%(interval+1) == 0 || i == len(series)-1 {
			label = point.Date
		}
		fmt.Fprintf(r.out, "  %-12s %6.2f\n", label, point.Temperature)
	}
}

func (r *Renderer) renderHistory(snap dashboard.Snapshot, now time.Time) {
	if len(snap.Jobs) == 0 {
		return
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.printer.Sprintf("Recent jobs (%d tracked)", len(snap.Jobs)))

	shown := snap.Jobs
	if len(shown) > historyLimit {
		shown = shown[:historyLimit]
	}
	for _, job := range shown {
		cls := jobs.Classify(job.RawStatus)
		marker := " "
		if job.JobID == snap.JobID {
			marker = ">"
		}
		suffix := ""
		if job.JobID == snap.PendingDeleteID {
			suffix = "  (delete pending)"
		}
		fmt.Fprintf(r.out, "  %s %-20s %-10s %s%s\n",
			marker,
			job.JobID,
			r.colorize(string(cls.Phase), cls.ColorClass),
			format.RelativeAge(job.Timestamp, now.Unix()),
			suffix)
	}
}

func (r *Renderer) colorize(text, colorClass string) string {
	if !r.color {
		return text
	}
	code, ok := ansiByColor[colorClass]
	if !ok {
		return text
	}
	return code + text + ansiReset
}
