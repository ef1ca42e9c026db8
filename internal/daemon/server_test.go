package daemon

import (
	"context"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/todometer/internal/events"
	"github.com/thenoetrevino/todometer/internal/types"
)

// Test helpers to avoid import cycle with testutil

func getTestSocketPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test-todometer.sock")
}

func setupTestDaemon(t *testing.T, opts ...Option) (*Server, string) {
	t.Helper()
	socketPath := getTestSocketPath(t)

	server, err := NewServer(socketPath, opts...)
	if err != nil {
		t.Fatalf("Failed to create test daemon: %v", err)
	}

	t.Cleanup(func() {
		_ = server.Shutdown()
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	go func() { _ = server.Start(ctx) }()

	return server, socketPath
}

type rawClient struct {
	conn     net.Conn
	encoder  *json.Encoder
	messages chan events.Message
}

func connectRawClient(t *testing.T, socketPath string) *rawClient {
	t.Helper()

	conn, err := (&net.Dialer{}).DialContext(context.Background(), "unix", socketPath)
	if err != nil {
		t.Fatalf("Failed to dial: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})

	c := &rawClient{
		conn:     conn,
		encoder:  json.NewEncoder(conn),
		messages: make(chan events.Message, 32),
	}
	go func() {
		defer close(c.messages)
		decoder := json.NewDecoder(conn)
		for {
			var msg events.Message
			if err := decoder.Decode(&msg); err != nil {
				return
			}
			c.messages <- msg
		}
	}()
	return c
}

func (c *rawClient) send(t *testing.T, msg events.Message) {
	t.Helper()
	msg.Version = events.ProtocolVersion
	if err := c.encoder.Encode(msg); err != nil {
		t.Fatalf("Failed to send %s: %v", msg.Type, err)
	}
}

func (c *rawClient) subscribe(t *testing.T, taskListID types.TaskListID) {
	t.Helper()
	c.send(t, events.Message{
		Type:      events.MessageSubscribe,
		Subscribe: &events.SubscribeMessage{TaskListID: taskListID},
	})
}

func (c *rawClient) publish(t *testing.T, event events.Event) {
	t.Helper()
	c.send(t, events.Message{Type: events.MessageEvent, Event: &event})
}

// nextEvent waits for the next event message, skipping pings
func (c *rawClient) nextEvent(t *testing.T, timeout time.Duration) events.Event {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case msg, ok := <-c.messages:
			if !ok {
				t.Fatal("Connection closed")
			}
			if msg.Type == events.MessageEvent && msg.Event != nil {
				return *msg.Event
			}
		case <-deadline:
			t.Fatal("Timeout waiting for event")
			return events.Event{}
		}
	}
}

func (c *rawClient) expectNoEvent(t *testing.T, timeout time.Duration) {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case msg, ok := <-c.messages:
			if !ok {
				return
			}
			if msg.Type == events.MessageEvent {
				t.Fatalf("Unexpected event: %+v", msg.Event)
			}
		case <-deadline:
			return
		}
	}
}

func waitForClients(t *testing.T, server *Server, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return server.Metrics().ConnectedClients == int32(n)
	}, 2*time.Second, 10*time.Millisecond, "expected %d connected clients", n)
}

// settle gives the server time to process subscribe messages, which are not acknowledged
func settle() {
	time.Sleep(50 * time.Millisecond)
}

// ============================================================================
// Server Initialization Tests
// ============================================================================

func TestNewServer_Success(t *testing.T) {
	socketPath := getTestSocketPath(t)

	server, err := NewServer(socketPath)
	require.NoError(t, err)
	defer func() { _ = server.Shutdown() }()

	assert.Equal(t, socketPath, server.SocketPath())
	info, err := os.Stat(socketPath)
	require.NoError(t, err)
	assert.Equal(t, os.ModeSocket, info.Mode()&os.ModeSocket)
}

func TestNewServer_DirectoryCreation(t *testing.T) {
	socketPath := filepath.Join(t.TempDir(), "nested", "dir", "todometer.sock")

	server, err := NewServer(socketPath)
	require.NoError(t, err)
	defer func() { _ = server.Shutdown() }()

	_, err = os.Stat(filepath.Dir(socketPath))
	assert.NoError(t, err)
}

func TestNewServer_StaleSocketCleanup(t *testing.T) {
	socketPath := getTestSocketPath(t)
	require.NoError(t, os.WriteFile(socketPath, []byte("stale"), 0o600))

	server, err := NewServer(socketPath)
	require.NoError(t, err)
	defer func() { _ = server.Shutdown() }()

	info, err := os.Stat(socketPath)
	require.NoError(t, err)
	assert.Equal(t, os.ModeSocket, info.Mode()&os.ModeSocket)
}

func TestNewServer_Options(t *testing.T) {
	server, err := NewServer(getTestSocketPath(t),
		WithBroadcastBuffer(3),
		WithClientBuffer(7),
		WithHealthCheck(time.Second, 2*time.Second),
	)
	require.NoError(t, err)
	defer func() { _ = server.Shutdown() }()

	assert.Equal(t, 3, cap(server.broadcast))
	assert.Equal(t, 7, server.clientBufferSize)
	assert.Equal(t, time.Second, server.pingInterval)
	assert.Equal(t, 2*time.Second, server.staleAfter)
}

func TestNewServer_IgnoresInvalidOptions(t *testing.T) {
	server, err := NewServer(getTestSocketPath(t), WithBroadcastBuffer(0), WithClientBuffer(-1))
	require.NoError(t, err)
	defer func() { _ = server.Shutdown() }()

	assert.Equal(t, 100, cap(server.broadcast))
	assert.Equal(t, 10, server.clientBufferSize)
}

// ============================================================================
// Client Connection Tests
// ============================================================================

func TestClientConnection_Multiple(t *testing.T) {
	server, socketPath := setupTestDaemon(t)

	for range 3 {
		connectRawClient(t, socketPath)
	}
	waitForClients(t, server, 3)
	assert.Equal(t, int64(3), server.Metrics().ClientsTotal)
}

func TestClientDisconnection(t *testing.T) {
	server, socketPath := setupTestDaemon(t)

	c := connectRawClient(t, socketPath)
	waitForClients(t, server, 1)

	require.NoError(t, c.conn.Close())
	waitForClients(t, server, 0)
}

func TestClientConnection_EventsClient(t *testing.T) {
	server, socketPath := setupTestDaemon(t)

	client, err := events.NewClient(socketPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, client.Connect(ctx))

	waitForClients(t, server, 1)
}

// ============================================================================
// Broadcast Tests
// ============================================================================

func TestBroadcast_ReachesSender(t *testing.T) {
	_, socketPath := setupTestDaemon(t)
	c := connectRawClient(t, socketPath)

	c.publish(t, events.Event{Type: events.EventTaskChanged, TaskListID: "list-1", TaskID: "task-1"})

	event := c.nextEvent(t, 2*time.Second)
	assert.Equal(t, events.EventTaskChanged, event.Type)
	assert.Equal(t, types.TaskListID("list-1"), event.TaskListID)
	assert.Equal(t, types.TaskID("task-1"), event.TaskID)
}

func TestBroadcast_MultipleClients(t *testing.T) {
	server, socketPath := setupTestDaemon(t)

	clients := []*rawClient{
		connectRawClient(t, socketPath),
		connectRawClient(t, socketPath),
		connectRawClient(t, socketPath),
	}
	waitForClients(t, server, 3)

	require.NoError(t, server.Broadcast(events.Event{Type: events.EventTaskListChanged}))

	for i, c := range clients {
		event := c.nextEvent(t, 2*time.Second)
		assert.Equal(t, events.EventTaskListChanged, event.Type, "client %d", i)
	}
}

func TestBroadcast_SubscriptionFiltering(t *testing.T) {
	server, socketPath := setupTestDaemon(t)

	listA := connectRawClient(t, socketPath)
	listB := connectRawClient(t, socketPath)
	waitForClients(t, server, 2)

	listA.subscribe(t, "a")
	listB.subscribe(t, "b")
	settle()

	require.NoError(t, server.Broadcast(events.Event{Type: events.EventTaskChanged, TaskListID: "a"}))

	event := listA.nextEvent(t, 2*time.Second)
	assert.Equal(t, types.TaskListID("a"), event.TaskListID)
	listB.expectNoEvent(t, 200*time.Millisecond)
}

func TestBroadcast_UnscopedEventReachesEveryone(t *testing.T) {
	server, socketPath := setupTestDaemon(t)

	listA := connectRawClient(t, socketPath)
	all := connectRawClient(t, socketPath)
	waitForClients(t, server, 2)

	listA.subscribe(t, "a")
	settle()

	require.NoError(t, server.Broadcast(events.Event{Type: events.EventDatabaseChanged}))

	assert.Equal(t, events.EventDatabaseChanged, listA.nextEvent(t, 2*time.Second).Type)
	assert.Equal(t, events.EventDatabaseChanged, all.nextEvent(t, 2*time.Second).Type)
}

func TestBroadcast_ResubscribeChangesScope(t *testing.T) {
	server, socketPath := setupTestDaemon(t)
	c := connectRawClient(t, socketPath)
	waitForClients(t, server, 1)

	c.subscribe(t, "a")
	settle()
	c.subscribe(t, "b")
	settle()

	require.NoError(t, server.Broadcast(events.Event{Type: events.EventTaskChanged, TaskListID: "a"}))
	c.expectNoEvent(t, 200*time.Millisecond)

	require.NoError(t, server.Broadcast(events.Event{Type: events.EventTaskChanged, TaskListID: "b"}))
	assert.Equal(t, types.TaskListID("b"), c.nextEvent(t, 2*time.Second).TaskListID)
}

func TestBroadcast_SequenceNumbers(t *testing.T) {
	server, socketPath := setupTestDaemon(t)
	c := connectRawClient(t, socketPath)
	waitForClients(t, server, 1)

	for range 3 {
		require.NoError(t, server.Broadcast(events.Event{Type: events.EventTaskChanged}))
	}

	var last int64
	for range 3 {
		event := c.nextEvent(t, 2*time.Second)
		assert.Greater(t, event.SequenceID, last)
		last = event.SequenceID
	}
	assert.Equal(t, int64(3), last)
}

func TestBroadcast_CountsMetrics(t *testing.T) {
	server, socketPath := setupTestDaemon(t)
	c := connectRawClient(t, socketPath)
	waitForClients(t, server, 1)

	c.publish(t, events.Event{Type: events.EventTaskChanged})
	c.nextEvent(t, 2*time.Second)

	snap := server.Metrics()
	assert.Equal(t, int64(1), snap.EventsReceived)
	assert.Equal(t, int64(1), snap.EventsBroadcast)
	assert.Equal(t, int64(1), snap.EventsSent)
}

func TestBroadcast_FullQueue(t *testing.T) {
	// not started, so nothing drains the queue
	server, err := NewServer(getTestSocketPath(t), WithBroadcastBuffer(1))
	require.NoError(t, err)
	defer func() { _ = server.Shutdown() }()

	require.NoError(t, server.Broadcast(events.Event{Type: events.EventTaskChanged}))
	assert.ErrorIs(t, server.Broadcast(events.Event{Type: events.EventTaskChanged}), ErrBroadcastFull)
}

func TestBroadcast_EventsClientsSeeEachOther(t *testing.T) {
	server, socketPath := setupTestDaemon(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sender, err := events.NewClient(socketPath, events.WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sender.Close() })
	require.NoError(t, sender.Connect(ctx))

	receiver, err := events.NewClient(socketPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = receiver.Close() })
	require.NoError(t, receiver.Connect(ctx))

	received, err := receiver.Listen(ctx)
	require.NoError(t, err)
	waitForClients(t, server, 2)

	require.NoError(t, sender.SendEvent(events.Event{Type: events.EventTaskListChanged, TaskListID: "list-1"}))

	select {
	case event := <-received:
		assert.Equal(t, events.EventTaskListChanged, event.Type)
		assert.Equal(t, types.TaskListID("list-1"), event.TaskListID)
	case <-ctx.Done():
		t.Fatal("Timeout waiting for event")
	}
}

// ============================================================================
// Health Tests
// ============================================================================

func TestHealth_PingsClients(t *testing.T) {
	server, socketPath := setupTestDaemon(t, WithHealthCheck(20*time.Millisecond, time.Minute))
	c := connectRawClient(t, socketPath)
	waitForClients(t, server, 1)

	deadline := time.After(2 * time.Second)
	for {
		select {
		case msg := <-c.messages:
			if msg.Type == events.MessagePing {
				return
			}
		case <-deadline:
			t.Fatal("Timeout waiting for ping")
		}
	}
}

func TestHealth_RemovesSilentClients(t *testing.T) {
	server, socketPath := setupTestDaemon(t, WithHealthCheck(20*time.Millisecond, 60*time.Millisecond))
	connectRawClient(t, socketPath)
	waitForClients(t, server, 1)

	// the raw client never answers pings
	waitForClients(t, server, 0)
}

func TestHealth_PongKeepsClientAlive(t *testing.T) {
	server, socketPath := setupTestDaemon(t, WithHealthCheck(20*time.Millisecond, 200*time.Millisecond))
	c := connectRawClient(t, socketPath)
	waitForClients(t, server, 1)

	stop := time.After(500 * time.Millisecond)
	for {
		select {
		case msg := <-c.messages:
			if msg.Type == events.MessagePing {
				c.send(t, events.Message{Type: events.MessagePong})
			}
		case <-stop:
			assert.Equal(t, int32(1), server.Metrics().ConnectedClients)
			return
		}
	}
}

// ============================================================================
// Shutdown Tests
// ============================================================================

func TestShutdown_GracefulClose(t *testing.T) {
	server, socketPath := setupTestDaemon(t)
	c := connectRawClient(t, socketPath)
	waitForClients(t, server, 1)

	require.NoError(t, server.Shutdown())

	_, err := os.Stat(socketPath)
	assert.True(t, os.IsNotExist(err), "socket file should be removed")

	select {
	case _, ok := <-c.messages:
		for ok {
			_, ok = <-c.messages
		}
	case <-time.After(2 * time.Second):
		t.Fatal("client connection was not closed")
	}
	assert.Equal(t, int32(0), server.Metrics().ConnectedClients)
}

func TestShutdown_Idempotent(t *testing.T) {
	server, _ := setupTestDaemon(t)

	assert.NoError(t, server.Shutdown())
	assert.NoError(t, server.Shutdown())
	assert.ErrorIs(t, server.Broadcast(events.Event{}), net.ErrClosed)
}

func TestStart_ReturnsWhenContextCancelled(t *testing.T) {
	server, err := NewServer(getTestSocketPath(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}
