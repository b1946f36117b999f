package dashboard

import (
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
)

// Poller drives the background job-list refresh on a fixed interval. It is
// started exactly once and stopped exactly once; overlapping ticks are safe
// because the store's refresh collapses concurrent fetches and replaces the
// collection wholesale.
type Poller struct {
	cron      *cron.Cron
	startOnce sync.Once
	stopOnce  sync.Once
}

// NewPoller schedules tick at the given @every interval. The interval comes
// from configuration; sub-second intervals are rounded up by the scheduler.
func NewPoller(interval string, tick func()) (*Poller, error) {
	engine := cron.New()
	if _, err := engine.AddFunc(fmt.Sprintf("@every %s", interval), tick); err != nil {
		return nil, fmt.Errorf("invalid poll interval %q: %w", interval, err)
	}
	return &Poller{cron: engine}, nil
}

func (p *Poller) Start() {
	p.startOnce.Do(func() {
		p.cron.Start()
	})
}

// Stop cancels the schedule and waits for an in-flight tick to finish.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		ctx := p.cron.Stop()
		<-ctx.Done()
	})
}
