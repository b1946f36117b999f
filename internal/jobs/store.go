package jobs

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/altocumulus/weatherdash/internal/api"
	"github.com/altocumulus/weatherdash/pkg/log"
)

// Store is the in-memory cache of recently-seen jobs. It is refreshed by
// replacing the whole collection from the latest successful listing, so a
// refresh racing another refresh (or a local removal) converges on the
// server's view without merge logic.
type Store struct {
	client *api.Client

	mu   sync.RWMutex
	jobs []Job

	group singleflight.Group
}

func NewStore(client *api.Client) *Store {
	return &Store{
		client: client,
		jobs:   make([]Job, 0),
	}
}

// Refresh replaces the collection with the backend's current recent-jobs
// window. A failed fetch leaves the previous collection intact; the error is
// logged and returned so callers may surface it, but the store itself stays
// valid. Concurrent refreshes are collapsed into a single backend call.
func (s *Store) Refresh(ctx context.Context) error {
	_, err, _ := s.group.Do("refresh", func() (interface{}, error) {
		summaries, err := s.client.ListJobs(ctx)
		if err != nil {
			log.Warn("Job list refresh failed: %v", err)
			return nil, err
		}

		next := make([]Job, 0, len(summaries))
		for _, summary := range summaries {
			next = append(next, FromSummary(summary))
		}

		s.mu.Lock()
		s.jobs = next
		s.mu.Unlock()
		return nil, nil
	})
	return err
}

// RemoveLocal drops a job from the local collection only. Used after a
// confirmed server-side delete; the next Refresh reconciles with the server
// either way.
func (s *Store) RemoveLocal(jobID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		if job.JobID == jobID {
			continue
		}
		next = append(next, job)
	}
	s.jobs = next
}

// List returns a snapshot of the collection in backend order.
func (s *Store) List() []Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ret := make([]Job, len(s.jobs))
	copy(ret, s.jobs)
	return ret
}

// Get looks up a job by id.
func (s *Store) Get(jobID string) (Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, job := range s.jobs {
		if job.JobID == jobID {
			return job, true
		}
	}
	return Job{}, false
}

// Len reports the current collection size.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}
