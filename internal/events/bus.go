// Package events is the in-process publish/subscribe channel that tells
// interested parties (the SSE stream, the audit trail) about goal, ledger and
// notification changes.
package events

import (
	"sync"
	"time"

	"finfacil/internal/models"
)

// Type names a domain event.
type Type string

const (
	GoalCreated         Type = "goal-created"
	GoalUpdated         Type = "goal-updated"
	GoalDeleted         Type = "goal-deleted"
	EntryAdded          Type = "entry-added"
	EntryRemoved        Type = "entry-removed"
	NotificationCreated Type = "notification-created"
)

// Event is a single change announcement. Only the fields relevant to Type
// are set.
type Event struct {
	Type         Type                 `json:"type"`
	GoalID       string               `json:"goal_id,omitempty"`
	EntryID      string               `json:"entry_id,omitempty"`
	Goal         *models.Goal         `json:"goal,omitempty"`
	Entry        *models.GoalEntry    `json:"entry,omitempty"`
	Notification *models.Notification `json:"notification,omitempty"`
	OccurredAt   time.Time            `json:"occurred_at"`
}

// Handler receives published events. It runs on the publisher's goroutine
// and must not block.
type Handler func(Event)

// Publisher announces events.
type Publisher interface {
	Publish(Event)
}

// Subscriber registers handlers.
type Subscriber interface {
	Subscribe(Handler) (unsubscribe func())
}

// Bus delivers every published event to every current subscriber, in
// subscription order, before Publish returns.
type Bus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[int]Handler
	order    []int
}

// NewBus creates a bus with no subscribers.
func NewBus() *Bus {
	return &Bus{handlers: make(map[int]Handler)}
}

// Subscribe adds h and returns a function that removes it. Calling the
// returned function more than once is harmless.
func (b *Bus) Subscribe(h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[id] = h
	b.order = append(b.order, id)

	var once sync.Once
	return func() {
		once.Do(func() { b.unsubscribe(id) })
	}
}

func (b *Bus) unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.handlers, id)
	for i, v := range b.order {
		if v == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// Publish stamps OccurredAt when unset and delivers e synchronously. The
// subscriber list is copied under the lock so handlers may subscribe or
// unsubscribe while being called.
func (b *Bus) Publish(e Event) {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}

	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.order))
	for _, id := range b.order {
		handlers = append(handlers, b.handlers[id])
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(e)
	}
}

// Len returns the number of current subscribers.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.order)
}

// Discard is a Publisher that drops every event.
var Discard Publisher = discard{}

type discard struct{}

func (discard) Publish(Event) {}
