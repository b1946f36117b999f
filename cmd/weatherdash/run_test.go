package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altocumulus/weatherdash/internal/api"
	"github.com/altocumulus/weatherdash/internal/dashboard"
	"github.com/altocumulus/weatherdash/internal/jobs"
)

func newTestApp(t *testing.T) *app {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/api/jobs" {
			w.Write([]byte(`[
				{"job_id":"job-1","status":"COMPLETED","timestamp":100},
				{"job_id":"job-2","status":"PENDING","timestamp":200}
			]`))
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)

	client := api.NewClient(server.URL, time.Second)
	store := jobs.NewStore(client)
	notifier := dashboard.NewNotifier()
	return &app{
		client:     client,
		store:      store,
		notifier:   notifier,
		controller: dashboard.NewController(client, store, notifier),
	}
}

func TestResolveJob_ByIndexAndID(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.store.Refresh(context.Background()))

	jobID, rawStatus, ok := resolveJob(app, "1")
	require.True(t, ok)
	assert.Equal(t, "job-1", jobID)
	assert.Equal(t, "COMPLETED", rawStatus)

	jobID, rawStatus, ok = resolveJob(app, "job-2")
	require.True(t, ok)
	assert.Equal(t, "job-2", jobID)
	assert.Equal(t, "PENDING", rawStatus)

	_, _, ok = resolveJob(app, "3")
	assert.False(t, ok)
	_, _, ok = resolveJob(app, "job-404")
	assert.False(t, ok)
}

func TestDispatch_QuitAndFile(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	assert.True(t, dispatch(ctx, app, "quit"))
	assert.True(t, dispatch(ctx, app, "q"))
	assert.False(t, dispatch(ctx, app, ""))

	assert.False(t, dispatch(ctx, app, "file /tmp/august.csv"))
	snap := app.controller.Snapshot()
	assert.Equal(t, "/tmp/august.csv", snap.SelectedFile)

	assert.False(t, dispatch(ctx, app, "nonsense"))
}

func TestDispatch_DeleteFlow(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	dispatch(ctx, app, "delete job-1")
	assert.Equal(t, "job-1", app.controller.Snapshot().PendingDeleteID)

	dispatch(ctx, app, "cancel")
	assert.Empty(t, app.controller.Snapshot().PendingDeleteID)
}
