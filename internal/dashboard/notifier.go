package dashboard

import (
	"sync"

	"github.com/google/uuid"
)

type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notification is a transient message for the presentation layer, used for
// outcomes that must not disturb the focused job's phase (delete results,
// failed list refreshes).
type Notification struct {
	ID      string
	Level   Level
	Message string
}

// Notifier queues notifications until the presentation layer drains them.
type Notifier struct {
	mu      sync.Mutex
	pending []Notification
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Push(level Level, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.pending = append(n.pending, Notification{
		ID:      uuid.NewString(),
		Level:   level,
		Message: message,
	})
}

// Drain returns and clears all queued notifications in arrival order.
func (n *Notifier) Drain() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	ret := n.pending
	n.pending = nil
	return ret
}
