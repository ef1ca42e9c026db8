package events

import (
	"time"

	"github.com/thenoetrevino/todometer/internal/types"
)

// ProtocolVersion is the version of the daemon wire protocol
const ProtocolVersion = 1

// EventType indicates what kind of change occurred
type EventType string

const (
	EventTaskListChanged  EventType = "task_list_changed"
	EventTaskChanged      EventType = "task_changed"
	EventChecklistChanged EventType = "checklist_changed"
	EventSelectionChanged EventType = "selection_changed"

	// EventDatabaseChanged is the coalesced form sent between processes.
	// Receivers treat it as "anything in TaskListID (or anywhere, if empty) may have changed".
	EventDatabaseChanged EventType = "db_changed"

	EventPing EventType = "ping"
	EventPong EventType = "pong"
)

// Event represents a committed change to the database
type Event struct {
	Type       EventType        `json:"type"`
	TaskListID types.TaskListID `json:"task_list_id,omitempty"` // empty = unknown or every task list
	TaskID     types.TaskID     `json:"task_id,omitempty"`
	Origin     string           `json:"origin,omitempty"` // process that produced the event
	Timestamp  time.Time        `json:"timestamp"`
	SequenceID int64            `json:"sequence_id"` // assigned by whoever fans the event out
}

// InTaskList reports whether the event may affect the given task list
func (e Event) InTaskList(id types.TaskListID) bool {
	return e.TaskListID == "" || e.TaskListID == id
}

// MessageType discriminates wire messages
type MessageType string

const (
	MessageEvent     MessageType = "event"
	MessageSubscribe MessageType = "subscribe"
	MessagePing      MessageType = "ping"
	MessagePong      MessageType = "pong"
)

// SubscribeMessage is sent by clients to subscribe to specific task list updates
type SubscribeMessage struct {
	TaskListID types.TaskListID `json:"task_list_id"` // empty = all task lists
}

// Message wraps events and control messages for the wire protocol.
// Messages are newline-delimited JSON.
type Message struct {
	Version   int               `json:"version"`
	Type      MessageType       `json:"type"`
	Event     *Event            `json:"event,omitempty"`
	Subscribe *SubscribeMessage `json:"subscribe,omitempty"`
}
