// Package notify is the ephemeral toast queue: messages expire on their own
// after a configurable lifetime and are never persisted.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long a notification lives unless overridden.
const DefaultTTL = 5 * time.Second

// Type classifies a notification for rendering.
type Type string

const (
	Info    Type = "info"
	Success Type = "success"
	Warning Type = "warning"
	Error   Type = "error"
)

// Notification is one queued toast.
type Notification struct {
	ID      string
	Type    Type
	Title   string
	Message string
	TTL     time.Duration
}

// Notifier is a bounded, self-pruning notification queue. Insertion order is
// the only ordering guarantee.
type Notifier struct {
	mu       sync.Mutex
	queue    []Notification
	timers   map[string]*time.Timer
	onChange func([]Notification)
}

// New creates an empty notifier. onChange, when non-nil, is invoked with a
// snapshot after every mutation; the CLI uses it to repaint.
func New(onChange func([]Notification)) *Notifier {
	return &Notifier{
		timers:   make(map[string]*time.Timer),
		onChange: onChange,
	}
}

// Add appends a notification and schedules its own removal after ttl
// (DefaultTTL when ttl <= 0). It returns the notification id so callers can
// dismiss early.
func (n *Notifier) Add(typ Type, title, message string, ttl time.Duration) string {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	item := Notification{
		ID:      uuid.NewString(),
		Type:    typ,
		Title:   title,
		Message: message,
		TTL:     ttl,
	}

	n.mu.Lock()
	n.queue = append(n.queue, item)
	n.timers[item.ID] = time.AfterFunc(ttl, func() {
		n.Remove(item.ID)
	})
	n.mu.Unlock()

	n.notifyChange()
	return item.ID
}

// Remove dismisses a notification early and cancels its expiry timer.
// Removing an id that already expired is a no-op.
func (n *Notifier) Remove(id string) {
	n.mu.Lock()
	if t, ok := n.timers[id]; ok {
		t.Stop()
		delete(n.timers, id)
	}
	removed := false
	for i, item := range n.queue {
		if item.ID == id {
			n.queue = append(n.queue[:i], n.queue[i+1:]...)
			removed = true
			break
		}
	}
	n.mu.Unlock()

	if removed {
		n.notifyChange()
	}
}

// Clear empties the queue and cancels all pending timers.
func (n *Notifier) Clear() {
	n.mu.Lock()
	for id, t := range n.timers {
		t.Stop()
		delete(n.timers, id)
	}
	n.queue = nil
	n.mu.Unlock()

	n.notifyChange()
}

// Snapshot returns a copy of the queue in insertion order.
func (n *Notifier) Snapshot() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notification, len(n.queue))
	copy(out, n.queue)
	return out
}

func (n *Notifier) notifyChange() {
	if n.onChange == nil {
		return
	}
	n.onChange(n.Snapshot())
}
