package events

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Filter selects the events a subscriber cares about
type Filter func(Event) bool

// All accepts every event
func All(Event) bool { return true }

// Bus is the in-process change broker. Mutations Publish after they commit;
// live queries Subscribe and re-read storage whenever a matching event arrives.
//
// Delivery is coalescing: each subscription buffers one pending event and
// drops the rest, since a subscriber only needs to know that it must re-read.
// A Bus may forward what it publishes to the daemon and inject what the daemon
// broadcasts, so that several processes share one database.
type Bus struct {
	origin string
	seq    atomic.Int64

	mu   sync.RWMutex
	subs map[uint64]*subscription
	next uint64

	forwarder  EventPublisher
	maxRetries int
}

type subscription struct {
	ch     chan Event
	filter Filter
}

// NewBus creates a Bus with a fresh origin id
func NewBus() *Bus {
	return &Bus{
		origin:     uuid.NewString(),
		subs:       make(map[uint64]*subscription),
		maxRetries: 3,
	}
}

// Origin identifies events published by this Bus
func (b *Bus) Origin() string { return b.origin }

// SetForwarder makes Publish also send events to another process; nil disables forwarding
func (b *Bus) SetForwarder(p EventPublisher) {
	b.mu.Lock()
	b.forwarder = p
	b.mu.Unlock()
}

// Publish stamps the event, delivers it to local subscribers and, when a
// forwarder is set, sends it to the daemon without blocking the caller.
func (b *Bus) Publish(event Event) {
	event.Origin = b.origin
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	b.Deliver(event)

	b.mu.RLock()
	fwd := b.forwarder
	b.mu.RUnlock()
	if fwd != nil {
		go func() {
			_ = PublishWithRetry(fwd, event, b.maxRetries)
		}()
	}
}

// Deliver fans an event out to local subscribers only
func (b *Bus) Deliver(event Event) {
	event.SequenceID = b.seq.Add(1)

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, sub := range b.subs {
		if sub.filter != nil && !sub.filter(event) {
			continue
		}
		select {
		case sub.ch <- event:
		default:
			// a signal is already pending
		}
	}
}

// Subscribe registers a subscriber. The returned channel is closed once ctx is done.
func (b *Bus) Subscribe(ctx context.Context, filter Filter) <-chan Event {
	ch := make(chan Event, 1)

	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = &subscription{ch: ch, filter: filter}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
		close(ch)
	}()

	return ch
}

// Subscribers returns the number of live subscriptions
func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Bridge delivers events received from the daemon to local subscribers until
// ctx is done or the listener gives up. Events this Bus published itself are
// skipped since they were already delivered locally.
func (b *Bus) Bridge(ctx context.Context, client EventPublisher) error {
	incoming, err := client.Listen(ctx)
	if err != nil {
		return err
	}
	for event := range incoming {
		if event.Origin == b.origin {
			continue
		}
		slog.Debug("remote change", "event_type", event.Type, "task_list_id", event.TaskListID)
		b.Deliver(event)
	}
	return nil
}
