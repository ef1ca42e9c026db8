package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/thenoetrevino/todometer/internal/types"
)

// DefaultDebounce is the batching window used when none is configured
const DefaultDebounce = 100 * time.Millisecond

// Client represents a connection to the todometer daemon.
// It handles event sending, receiving, batching, reconnection, and subscriptions.
type Client struct {
	socketPath string
	conn       net.Conn
	encoder    *json.Encoder
	decoder    *json.Decoder
	mu         sync.Mutex

	// Batching configuration
	eventQueue chan Event
	debounce   time.Duration
	closed     bool

	// Reconnection configuration
	maxRetries int
	baseDelay  time.Duration

	// Subscription state
	currentTaskListID types.TaskListID

	// Event tracking
	lastSequence int64

	notify NotifyFunc

	// Context for graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc

	batcherOnce sync.Once
	batcherDone chan struct{}
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithDebounce sets the batching window; non-positive values keep the default
func WithDebounce(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.debounce = d
		}
	}
}

// WithReconnect sets how many times and how quickly Listen reconnects
func WithReconnect(maxRetries int, baseDelay time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.baseDelay = baseDelay
	}
}

// NewClient creates a new event client but does not connect.
// The socket path should be the full path to the Unix domain socket.
func NewClient(socketPath string, opts ...ClientOption) (*Client, error) {
	if socketPath == "" {
		return nil, errors.New("socket path is empty")
	}

	ctx, cancel := context.WithCancel(context.Background())

	c := &Client{
		socketPath:  socketPath,
		eventQueue:  make(chan Event, 100),
		debounce:    DefaultDebounce,
		maxRetries:  5,
		baseDelay:   1 * time.Second,
		ctx:         ctx,
		cancel:      cancel,
		batcherDone: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SetNotifyFunc installs a callback for connection notices
func (c *Client) SetNotifyFunc(fn NotifyFunc) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.notify = fn
	c.mu.Unlock()
}

func (c *Client) notifyf(level, format string, args ...any) {
	c.mu.Lock()
	fn := c.notify
	c.mu.Unlock()
	if fn != nil {
		fn(level, fmt.Sprintf(format, args...))
	}
}

// Connect establishes a connection to the daemon socket and sends the
// current subscription. The batching goroutine is started on first connect.
func (c *Client) Connect(ctx context.Context) error {
	if c == nil {
		return ErrNilClient
	}
	if err := c.dial(ctx); err != nil {
		return err
	}
	c.batcherOnce.Do(func() {
		go c.startBatcher()
	})
	return nil
}

func (c *Client) dial(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClientClosed
	}

	dialer := net.Dialer{}
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("failed to dial daemon socket: %w", err)
	}

	c.conn = conn
	c.encoder = json.NewEncoder(conn)
	c.decoder = json.NewDecoder(conn)

	msg := Message{
		Version:   ProtocolVersion,
		Type:      MessageSubscribe,
		Subscribe: &SubscribeMessage{TaskListID: c.currentTaskListID},
	}
	if err := c.encoder.Encode(msg); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			slog.Debug("error closing connection", "error", closeErr)
		}
		c.conn = nil
		return fmt.Errorf("failed to send subscription: %w", err)
	}
	return nil
}

// SendEvent queues an event to be sent to the daemon.
// Events are batched and sent in bursts within the debounce window.
// Returns ErrQueueFull if the queue is full (non-blocking send).
func (c *Client) SendEvent(event Event) error {
	if c == nil {
		return ErrNilClient
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClientClosed
	}
	select {
	case c.eventQueue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// batch accumulates the events of one debounce window
type batch struct {
	pending    bool
	first      Event
	count      int
	taskListID types.TaskListID
	mixedLists bool
}

func (b *batch) add(e Event) {
	if !b.pending {
		*b = batch{pending: true, first: e, count: 1, taskListID: e.TaskListID}
		return
	}
	b.count++
	if e.TaskListID != b.taskListID {
		b.mixedLists = true
	}
}

// event collapses the batch: a single event is sent as is, several are
// merged into one EventDatabaseChanged scoped to their common task list.
func (b *batch) event() Event {
	if b.count == 1 {
		return b.first
	}
	e := Event{
		Type:       EventDatabaseChanged,
		TaskListID: b.taskListID,
		Origin:     b.first.Origin,
	}
	if b.mixedLists {
		e.TaskListID = ""
	}
	return e
}

// startBatcher runs in a goroutine and batches events from the queue.
// It sends at most one message per debounce window.
func (c *Client) startBatcher() {
	defer close(c.batcherDone)

	ticker := time.NewTicker(c.debounce)
	defer ticker.Stop()

	var b batch

	flushPending := func() {
		if !b.pending {
			return
		}
		event := b.event()
		event.Timestamp = time.Now()
		if err := c.sendMessage(Message{Version: ProtocolVersion, Type: MessageEvent, Event: &event}); err != nil {
			if !isConnectionError(err) {
				slog.Warn("failed to send batched event", "error", err)
			}
		}
		b = batch{}
	}

	for {
		select {
		case <-c.ctx.Done():
			flushPending()
			return

		case event, ok := <-c.eventQueue:
			if !ok {
				flushPending()
				return
			}
			b.add(event)

		case <-ticker.C:
			flushPending()
		}
	}
}

// sendMessage writes a message to the daemon socket.
func (c *Client) sendMessage(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return ErrNotConnected
	}

	// Set a short write deadline to detect dead connections
	if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
		return fmt.Errorf("connection error: %w", err)
	}
	return c.encoder.Encode(msg)
}

// Listen starts listening for events from the daemon.
// It returns a channel that receives events and handles reconnection automatically.
// The channel is closed when ctx is done or reconnection fails.
func (c *Client) Listen(ctx context.Context) (<-chan Event, error) {
	eventChan := make(chan Event, 10)
	if c == nil {
		close(eventChan)
		return eventChan, ErrNilClient
	}
	go c.listenLoop(ctx, eventChan)
	return eventChan, nil
}

func (c *Client) listenLoop(ctx context.Context, eventChan chan Event) {
	defer close(eventChan)

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.ctx.Done():
			return
		default:
		}

		err := c.readEvents(ctx, eventChan)
		if err == nil || ctx.Err() != nil || c.ctx.Err() != nil {
			return
		}

		slog.Warn("daemon connection lost, reconnecting", "error", err)
		c.notifyf("warning", "Lost connection to daemon, reconnecting")

		if c.reconnect(ctx) {
			c.notifyf("info", "Reconnected to daemon")
			continue
		}

		slog.Error("failed to reconnect to daemon", "attempts", c.maxRetries)
		c.notifyf("error", "Could not reconnect to daemon; live updates from other processes are off")
		return
	}
}

// readEvents reads messages from the socket and forwards events.
func (c *Client) readEvents(ctx context.Context, eventChan chan Event) error {
	for {
		var msg Message

		c.mu.Lock()
		if c.conn == nil {
			c.mu.Unlock()
			return ErrNotConnected
		}
		// Pings arrive every 30s; 60s of silence means the daemon is gone
		if err := c.conn.SetReadDeadline(time.Now().Add(60 * time.Second)); err != nil {
			c.mu.Unlock()
			return fmt.Errorf("failed to set read deadline: %w", err)
		}
		decoder := c.decoder
		c.mu.Unlock()

		if err := decoder.Decode(&msg); err != nil {
			return fmt.Errorf("failed to decode message: %w", err)
		}

		if msg.Version != 0 && msg.Version != ProtocolVersion {
			slog.Warn("daemon protocol version mismatch", "got", msg.Version, "want", ProtocolVersion)
		}

		switch msg.Type {
		case MessageEvent:
			if msg.Event == nil {
				continue
			}
			// duplicate or out of order; reset on reconnect since a restarted daemon counts from 1
			if msg.Event.SequenceID != 0 && msg.Event.SequenceID <= c.lastSequence {
				continue
			}
			c.lastSequence = msg.Event.SequenceID
			select {
			case eventChan <- *msg.Event:
			case <-ctx.Done():
				return ctx.Err()
			}

		case MessagePing:
			if err := c.sendMessage(Message{Version: ProtocolVersion, Type: MessagePong}); err != nil {
				if !isConnectionError(err) {
					slog.Warn("failed to send pong", "error", err)
				}
			}
		}
	}
}

// isConnectionError checks if an error is a network connection error
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, net.ErrClosed) || errors.Is(err, ErrNotConnected) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "broken pipe") ||
		strings.Contains(errStr, "connection reset")
}

// reconnect attempts to reconnect to the daemon with exponential backoff.
func (c *Client) reconnect(ctx context.Context) bool {
	delay := c.baseDelay

	for i := 0; i < c.maxRetries; i++ {
		select {
		case <-ctx.Done():
			return false
		case <-c.ctx.Done():
			return false
		case <-time.After(delay):
			c.mu.Lock()
			if c.conn != nil {
				if err := c.conn.Close(); err != nil {
					slog.Debug("error closing connection during reconnect", "error", err)
				}
				c.conn = nil
			}
			c.mu.Unlock()

			if err := c.dial(ctx); err == nil {
				slog.Info("reconnected to daemon", "attempt", i+1)
				c.lastSequence = 0
				return true
			}

			slog.Debug("reconnection attempt failed", "attempt", i+1, "max", c.maxRetries, "retry_in", delay)
			delay *= 2
		}
	}

	return false
}

// Subscribe changes the subscription to a specific task list.
// The empty id subscribes to all task lists.
func (c *Client) Subscribe(taskListID types.TaskListID) error {
	if c == nil {
		return ErrNilClient
	}
	c.mu.Lock()
	c.currentTaskListID = taskListID
	c.mu.Unlock()

	return c.sendMessage(Message{
		Version:   ProtocolVersion,
		Type:      MessageSubscribe,
		Subscribe: &SubscribeMessage{TaskListID: taskListID},
	})
}

// Close flushes pending events, closes the connection and stops all goroutines.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	// lets the batcher flush what is queued before exiting
	close(c.eventQueue)
	c.mu.Unlock()

	started := true
	c.batcherOnce.Do(func() { started = false })
	if started {
		<-c.batcherDone
	}
	c.cancel()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		err := c.conn.Close()
		c.conn = nil
		return err
	}
	return nil
}
