package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/altocumulus/weatherdash/internal/api"
	"github.com/altocumulus/weatherdash/internal/jobs"
)

// PollMode selects how the controller follows up on a freshly created or
// selected job.
//
// PollModeSingle issues exactly one status fetch and otherwise relies on the
// background job-list refresh to reflect eventual completion. This matches
// the dashboard's historical behavior. PollModeUntilTerminal keeps fetching
// with exponential backoff until the job reaches a terminal phase or the
// attempt budget runs out.
type PollMode string

const (
	PollModeSingle        PollMode = "single"
	PollModeUntilTerminal PollMode = "until-terminal"
)

const maxBackoff = 10 * time.Second

var (
	ErrNoFile          = errors.New("no file selected")
	ErrAnalyzeInFlight = errors.New("an analysis upload is already in flight")
	ErrDeleteInFlight  = errors.New("a delete is already in flight")
	ErrNoPendingDelete = errors.New("no delete pending confirmation")
)

// FileOpener opens the selected file for upload. Replaceable in tests.
type FileOpener func(path string) (io.ReadCloser, error)

// Controller owns the focused job's state and drives the
// upload -> poll-until-terminal -> display flow as well as the
// select-existing-job -> fetch-result flow. All mutation happens under one
// mutex; async responses are applied only if the selection epoch still
// matches, so a late response for a previously focused job can never
// overwrite the current one.
type Controller struct {
	client   *api.Client
	store    *jobs.Store
	notifier *Notifier

	pollMode    PollMode
	maxAttempts int
	backoffBase time.Duration
	openFile    FileOpener

	mu              sync.Mutex
	epoch           uint64
	selectedFile    string
	currentJobID    string
	currentPhase    jobs.Phase
	currentResult   *api.AnalysisResult
	currentMessage  string
	pendingDeleteID string
	analyzing       bool
	deleting        bool
	refreshing      bool
}

type Option func(*Controller)

func WithPollMode(mode PollMode) Option {
	return func(c *Controller) {
		c.pollMode = mode
	}
}

func WithMaxPollAttempts(attempts int) Option {
	return func(c *Controller) {
		c.maxAttempts = attempts
	}
}

func WithBackoffBase(base time.Duration) Option {
	return func(c *Controller) {
		c.backoffBase = base
	}
}

func WithFileOpener(open FileOpener) Option {
	return func(c *Controller) {
		c.openFile = open
	}
}

func NewController(client *api.Client, store *jobs.Store, notifier *Notifier, opts ...Option) *Controller {
	c := &Controller{
		client:       client,
		store:        store,
		notifier:     notifier,
		pollMode:     PollModeSingle,
		maxAttempts:  30,
		backoffBase:  time.Second,
		currentPhase: jobs.PhaseIdle,
		openFile: func(path string) (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot is the controller state the presentation layer renders from.
type Snapshot struct {
	SelectedFile    string
	JobID           string
	Phase           jobs.Phase
	ColorClass      string
	Message         string
	Result          *api.AnalysisResult
	Jobs            []jobs.Job
	PendingDeleteID string
	Analyzing       bool
	Deleting        bool
	Refreshing      bool
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		SelectedFile:    c.selectedFile,
		JobID:           c.currentJobID,
		Phase:           c.currentPhase,
		ColorClass:      jobs.Classify(string(c.currentPhase)).ColorClass,
		Message:         c.currentMessage,
		Result:          c.currentResult,
		Jobs:            c.store.List(),
		PendingDeleteID: c.pendingDeleteID,
		Analyzing:       c.analyzing,
		Deleting:        c.deleting,
		Refreshing:      c.refreshing,
	}
}

// SelectFile records a new local file choice and resets the focused job to
// its initial state. No backend call.
func (c *Controller) SelectFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.epoch++
	c.selectedFile = path
	c.currentJobID = ""
	c.currentPhase = jobs.PhaseIdle
	c.currentResult = nil
	c.currentMessage = fmt.Sprintf("Selected file: %s", filepath.Base(path))
}

// Analyze uploads the selected file and follows the resulting job according
// to the configured poll mode. Precondition failures (no file, upload
// already in flight) are returned; backend and transport failures are
// absorbed into a terminal FAILURE phase and never propagated.
func (c *Controller) Analyze(ctx context.Context) error {
	c.mu.Lock()
	if c.analyzing {
		c.mu.Unlock()
		return ErrAnalyzeInFlight
	}
	if c.selectedFile == "" {
		c.mu.Unlock()
		return ErrNoFile
	}
	path := c.selectedFile
	// The pending file choice is consumed by the upload; analyzing again
	// requires picking a file first.
	c.selectedFile = ""
	c.epoch++
	epoch := c.epoch
	c.analyzing = true
	c.currentJobID = ""
	c.currentResult = nil
	c.currentPhase = jobs.PhaseUploading
	c.currentMessage = fmt.Sprintf("Uploading %s...", filepath.Base(path))
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.analyzing = false
		c.mu.Unlock()
	}()

	file, err := c.openFile(path)
	if err != nil {
		c.apply(epoch, func() {
			c.currentPhase = jobs.PhaseFailure
			c.currentMessage = fmt.Sprintf("Could not read %s: %v", filepath.Base(path), err)
		})
		return nil
	}

	resp, uploadErr := c.client.Upload(ctx, filepath.Base(path), file)
	file.Close()

	// The history list must reflect the new job whatever the outcome.
	defer func() {
		_ = c.store.Refresh(ctx)
	}()

	if uploadErr != nil {
		c.apply(epoch, func() {
			c.currentPhase = jobs.PhaseFailure
			c.currentResult = nil
			c.currentMessage = failureMessage(uploadErr)
		})
		return nil
	}

	if resp.FromCache && resp.Results != nil {
		c.apply(epoch, func() {
			c.currentJobID = resp.JobID
			c.currentPhase = jobs.PhaseSuccess
			c.currentResult = resp.Results
			c.currentMessage = messageOrDefault(resp.Message, "Result served from cache")
		})
		return nil
	}

	cls := jobs.Classify(resp.Status)
	applied := c.apply(epoch, func() {
		c.currentJobID = resp.JobID
		c.currentPhase = cls.Phase
		c.currentMessage = messageOrDefault(resp.Message, "Analysis started")
	})
	if !applied {
		return nil
	}

	c.watch(ctx, epoch, resp.JobID)
	return nil
}

// SelectJob redirects focus to an existing job from the history list. For a
// job already reported successful the full result is fetched immediately;
// for an in-progress job the controller waits for the background list
// refresh instead of fetching.
func (c *Controller) SelectJob(ctx context.Context, jobID, rawStatus string) {
	cls := jobs.Classify(rawStatus)

	c.mu.Lock()
	c.epoch++
	epoch := c.epoch
	c.currentJobID = jobID
	c.currentPhase = cls.Phase
	c.currentResult = nil
	switch {
	case cls.Phase == jobs.PhaseSuccess:
		c.currentMessage = "Loading result..."
	case cls.Phase == jobs.PhaseFailure:
		c.currentMessage = "Analysis failed"
	default:
		c.currentMessage = "Analysis in progress"
	}
	c.mu.Unlock()

	if cls.Phase != jobs.PhaseSuccess {
		return
	}

	status, err := c.client.JobStatus(ctx, jobID)
	if err != nil {
		c.apply(epoch, func() {
			c.currentPhase = jobs.PhaseFailure
			c.currentMessage = failureMessage(err)
		})
		return
	}

	c.apply(epoch, func() {
		c.currentPhase = jobs.PhaseSuccess
		c.currentResult = status.Results
		c.currentMessage = "Analysis complete"
	})
}

// RequestDelete marks a job for deletion pending confirmation. Local state
// only; the presentation layer gates ConfirmDelete behind a prompt.
func (c *Controller) RequestDelete(jobID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingDeleteID = jobID
}

// CancelDelete abandons a pending delete without a backend call.
func (c *Controller) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingDeleteID = ""
}

// ConfirmDelete issues the delete for the pending job id. On success the
// job is removed locally and, if it was the focused job, focus resets to
// IDLE. On failure state is left untouched and the error is surfaced as a
// notification. The pending id and busy flag are cleared on every exit
// path.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	if c.deleting {
		c.mu.Unlock()
		return ErrDeleteInFlight
	}
	jobID := c.pendingDeleteID
	if jobID == "" {
		c.mu.Unlock()
		return ErrNoPendingDelete
	}
	c.deleting = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.pendingDeleteID = ""
		c.deleting = false
		c.mu.Unlock()
	}()

	if err := c.client.DeleteJob(ctx, jobID); err != nil {
		c.notifier.Push(LevelError, fmt.Sprintf("Could not delete job: %v", err))
		return nil
	}

	c.store.RemoveLocal(jobID)

	c.mu.Lock()
	if c.currentJobID == jobID {
		c.epoch++
		c.currentJobID = ""
		c.currentPhase = jobs.PhaseIdle
		c.currentResult = nil
		c.currentMessage = ""
	}
	c.mu.Unlock()

	c.notifier.Push(LevelInfo, "Job deleted")
	return nil
}

// RefreshNow is the manual "refresh" action: same list fetch as the
// background tick, but with the loading flag set for its duration and a
// notification on failure.
func (c *Controller) RefreshNow(ctx context.Context) {
	c.mu.Lock()
	c.refreshing = true
	c.mu.Unlock()

	err := c.store.Refresh(ctx)

	c.mu.Lock()
	c.refreshing = false
	c.mu.Unlock()

	if err != nil {
		c.notifier.Push(LevelError, fmt.Sprintf("Could not refresh job list: %v", err))
	}
}

// RefreshSilent is the background tick variant: no loading flag, failures
// only logged by the store.
func (c *Controller) RefreshSilent(ctx context.Context) {
	_ = c.store.Refresh(ctx)
}

// watch follows a job to a terminal phase. In single mode it checks once
// and leaves an in-progress job to the background list refresh; in
// until-terminal mode it retries with exponential backoff up to the attempt
// budget. A stale epoch stops the watch immediately.
func (c *Controller) watch(ctx context.Context, epoch uint64, jobID string) {
	attempts := c.maxAttempts
	if c.pollMode == PollModeSingle {
		attempts = 1
	}

	delay := c.backoffBase
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
			delay *= 2
			if delay > maxBackoff {
				delay = maxBackoff
			}
		}

		status, err := c.client.JobStatus(ctx, jobID)
		if err != nil {
			c.apply(epoch, func() {
				c.currentPhase = jobs.PhaseFailure
				c.currentResult = nil
				c.currentMessage = failureMessage(err)
			})
			return
		}

		cls := jobs.Classify(status.Status)
		switch cls.Phase {
		case jobs.PhaseSuccess:
			c.apply(epoch, func() {
				c.currentPhase = jobs.PhaseSuccess
				c.currentResult = status.Results
				c.currentMessage = "Analysis complete"
			})
			return
		case jobs.PhaseFailure:
			message := "Analysis failed"
			if status.Error != "" {
				message = fmt.Sprintf("Analysis failed: %s", status.Error)
			}
			c.apply(epoch, func() {
				c.currentPhase = jobs.PhaseFailure
				c.currentResult = nil
				c.currentMessage = message
			})
			return
		default:
			applied := c.apply(epoch, func() {
				c.currentPhase = cls.Phase
				c.currentMessage = "Analysis in progress"
			})
			if !applied {
				return
			}
		}
	}
}

// apply runs mutate under the lock only if the selection epoch has not
// moved on since the triggering action started. Reports whether the update
// was applied.
func (c *Controller) apply(epoch uint64, mutate func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if epoch != c.epoch {
		return false
	}
	mutate()
	return true
}

func failureMessage(err error) string {
	if api.IsBackend(err) {
		return err.Error()
	}
	return fmt.Sprintf("Network error: %v", err)
}

func messageOrDefault(message, fallback string) string {
	if message != "" {
		return message
	}
	return fallback
}
