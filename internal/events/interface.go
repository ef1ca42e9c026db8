package events

import (
	"context"

	"github.com/thenoetrevino/todometer/internal/types"
)

// NotifyFunc receives user-facing connection notices (level is "info", "warning" or "error")
type NotifyFunc func(level, message string)

// EventPublisher defines the interface for sending and receiving events
// across processes.
type EventPublisher interface {
	// Connect establishes a connection to the daemon socket
	Connect(ctx context.Context) error

	// SendEvent queues an event to be sent to the daemon
	SendEvent(event Event) error

	// Listen starts listening for events from the daemon
	Listen(ctx context.Context) (<-chan Event, error)

	// Subscribe changes the subscription to a specific task list
	Subscribe(taskListID types.TaskListID) error

	// SetNotifyFunc installs a callback for connection notices
	SetNotifyFunc(fn NotifyFunc)

	// Close closes the connection to the daemon and stops all goroutines
	Close() error
}

// Compile-time verification that *Client implements EventPublisher
var _ EventPublisher = (*Client)(nil)
