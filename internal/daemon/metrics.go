package daemon

import (
	"sync/atomic"
	"time"
)

// Metrics tracks daemon statistics using atomic operations for thread-safety
type Metrics struct {
	EventsSent       atomic.Int64
	EventsReceived   atomic.Int64
	EventsBroadcast  atomic.Int64
	EventsDropped    atomic.Int64
	ClientsTotal     atomic.Int64
	ConnectedClients atomic.Int32
	StartTime        time.Time
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime: time.Now(),
	}
}

// IncEventsSent counts a message queued for a client
func (m *Metrics) IncEventsSent() {
	m.EventsSent.Add(1)
}

// IncEventsReceived counts an event received from a client
func (m *Metrics) IncEventsReceived() {
	m.EventsReceived.Add(1)
}

// IncEventsBroadcast counts an event fanned out by the broadcast loop
func (m *Metrics) IncEventsBroadcast() {
	m.EventsBroadcast.Add(1)
}

// IncEventsDropped counts a message dropped because a queue was full
func (m *Metrics) IncEventsDropped() {
	m.EventsDropped.Add(1)
}

// IncClientsTotal counts an accepted connection
func (m *Metrics) IncClientsTotal() {
	m.ClientsTotal.Add(1)
}

// SetConnectedClients sets the current connected clients count
func (m *Metrics) SetConnectedClients(count int32) {
	m.ConnectedClients.Store(count)
}

// MetricsSnapshot represents a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	EventsSent       int64     `json:"events_sent"`
	EventsReceived   int64     `json:"events_received"`
	EventsBroadcast  int64     `json:"events_broadcast"`
	EventsDropped    int64     `json:"events_dropped"`
	ClientsTotal     int64     `json:"clients_total"`
	ConnectedClients int32     `json:"connected_clients"`
	StartTime        time.Time `json:"start_time"`
	Uptime           string    `json:"uptime"`
}

// GetSnapshot returns a snapshot of current metrics
func (m *Metrics) GetSnapshot() MetricsSnapshot {
	return MetricsSnapshot{
		EventsSent:       m.EventsSent.Load(),
		EventsReceived:   m.EventsReceived.Load(),
		EventsBroadcast:  m.EventsBroadcast.Load(),
		EventsDropped:    m.EventsDropped.Load(),
		ClientsTotal:     m.ClientsTotal.Load(),
		ConnectedClients: m.ConnectedClients.Load(),
		StartTime:        m.StartTime,
		Uptime:           time.Since(m.StartTime).String(),
	}
}
