package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/thenoetrevino/todometer/internal/events"
)

// ErrBroadcastFull is returned by Broadcast when the broadcast queue is full
var ErrBroadcastFull = errors.New("broadcast channel full")

// client represents a connected client to the daemon
type client struct {
	id           int64
	conn         net.Conn
	send         chan events.Message
	subscription events.SubscribeMessage
	lastPong     time.Time
	mu           sync.Mutex // Protects subscription and lastPong
	closeOnce    sync.Once  // Ensures send channel is closed only once
}

func (c *client) subscribedTo(event events.Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subscription.TaskListID == "" || event.InTaskList(c.subscription.TaskListID)
}

// Server is the change-notification daemon. Every event a client sends is
// stamped with a sequence number and forwarded to all clients subscribed to
// its task list, the sender included.
type Server struct {
	socketPath string
	listener   net.Listener
	clients    map[*client]bool
	mu         sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc

	broadcast       chan events.Event
	metrics         *Metrics
	sequenceCounter atomic.Int64
	clientCounter   atomic.Int64

	clientBufferSize int
	pingInterval     time.Duration
	staleAfter       time.Duration

	shutdownOnce sync.Once
}

// Option configures a Server
type Option func(*serverOptions)

type serverOptions struct {
	broadcastBuffer int
	clientBuffer    int
	pingInterval    time.Duration
	staleAfter      time.Duration
}

// WithBroadcastBuffer sets the size of the shared broadcast queue
func WithBroadcastBuffer(n int) Option {
	return func(o *serverOptions) {
		if n > 0 {
			o.broadcastBuffer = n
		}
	}
}

// WithClientBuffer sets the size of each client's send queue
func WithClientBuffer(n int) Option {
	return func(o *serverOptions) {
		if n > 0 {
			o.clientBuffer = n
		}
	}
}

// WithHealthCheck sets how often clients are pinged and how long a client may
// go without answering before it is dropped
func WithHealthCheck(pingInterval, staleAfter time.Duration) Option {
	return func(o *serverOptions) {
		if pingInterval > 0 && staleAfter > 0 {
			o.pingInterval = pingInterval
			o.staleAfter = staleAfter
		}
	}
}

// NewServer creates a daemon listening on socketPath, replacing a stale socket file
func NewServer(socketPath string, opts ...Option) (*Server, error) {
	o := serverOptions{
		broadcastBuffer: 100,
		clientBuffer:    10,
		pingInterval:    30 * time.Second,
		staleAfter:      90 * time.Second,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if dir := filepath.Dir(socketPath); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create socket directory: %w", err)
		}
	}

	if _, err := os.Stat(socketPath); err == nil {
		if err := os.Remove(socketPath); err != nil {
			return nil, fmt.Errorf("failed to remove stale socket: %w", err)
		}
	}

	lc := net.ListenConfig{}
	listener, err := lc.Listen(context.Background(), "unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create socket listener: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		socketPath:       socketPath,
		listener:         listener,
		clients:          make(map[*client]bool),
		ctx:              ctx,
		cancel:           cancel,
		broadcast:        make(chan events.Event, o.broadcastBuffer),
		metrics:          NewMetrics(),
		clientBufferSize: o.clientBuffer,
		pingInterval:     o.pingInterval,
		staleAfter:       o.staleAfter,
	}, nil
}

// SocketPath is the path the server listens on
func (s *Server) SocketPath() string { return s.socketPath }

// Metrics returns a snapshot of the daemon statistics
func (s *Server) Metrics() MetricsSnapshot { return s.metrics.GetSnapshot() }

// Start runs the accept, broadcast and health loops until ctx is done or
// Shutdown is called, then shuts down.
func (s *Server) Start(ctx context.Context) error {
	slog.Info("daemon starting", "socket_path", s.socketPath)

	combinedCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case <-s.ctx.Done():
			cancel()
		case <-combinedCtx.Done():
		}
	}()

	acceptErr := make(chan error, 1)
	go func() {
		acceptErr <- s.acceptLoop(combinedCtx)
	}()

	go s.broadcastLoop(combinedCtx)
	go s.monitorHealth(combinedCtx)

	var err error
	select {
	case <-combinedCtx.Done():
		slog.Info("daemon context cancelled, shutting down")
	case err = <-acceptErr:
		if err != nil {
			slog.Error("accept loop failed", "error", err)
		}
	}

	if shutdownErr := s.Shutdown(); shutdownErr != nil {
		return errors.Join(err, shutdownErr)
	}
	return err
}

// acceptLoop accepts incoming client connections
func (s *Server) acceptLoop(ctx context.Context) error {
	unixListener, _ := s.listener.(*net.UnixListener)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		// A deadline lets the loop notice cancellation
		if unixListener != nil {
			if err := unixListener.SetDeadline(time.Now().Add(1 * time.Second)); err != nil {
				slog.Warn("failed to set listener deadline", "error", err)
			}
		}

		conn, err := s.listener.Accept()
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept error: %w", err)
		}

		c := &client{
			id:       s.clientCounter.Add(1),
			conn:     conn,
			send:     make(chan events.Message, s.clientBufferSize),
			lastPong: time.Now(),
		}

		s.mu.Lock()
		s.clients[c] = true
		s.mu.Unlock()

		s.metrics.IncClientsTotal()
		s.updateClientCount()

		slog.Info("client connected", "client_id", c.id, "clients", s.getClientCount())

		go s.handleClient(c)
		go s.clientWriter(c)
	}
}

// broadcastLoop distributes events to subscribed clients
func (s *Server) broadcastLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case event := <-s.broadcast:
			event.SequenceID = s.sequenceCounter.Add(1)
			s.metrics.IncEventsBroadcast()

			msg := events.Message{
				Version: events.ProtocolVersion,
				Type:    events.MessageEvent,
				Event:   &event,
			}

			s.mu.RLock()
			for c := range s.clients {
				if !c.subscribedTo(event) {
					continue
				}
				// a slow client misses the event rather than stalling everyone
				if !s.sendToClient(c, msg) {
					slog.Warn("client send queue full, event dropped",
						"client_id", c.id, "event_type", event.Type, "task_list_id", event.TaskListID)
				}
			}
			s.mu.RUnlock()
		}
	}
}

// handleClient reads messages from a connected client
func (s *Server) handleClient(c *client) {
	defer func() {
		s.removeClient(c)
		slog.Info("client disconnected", "client_id", c.id, "clients", s.getClientCount())
	}()

	decoder := json.NewDecoder(c.conn)

	for {
		var msg events.Message

		if err := decoder.Decode(&msg); err != nil {
			return
		}

		if msg.Version != 0 && msg.Version != events.ProtocolVersion {
			slog.Warn("protocol version mismatch", "client_id", c.id, "got", msg.Version, "want", events.ProtocolVersion)
		}

		switch msg.Type {
		case events.MessageEvent:
			if msg.Event == nil {
				continue
			}
			s.metrics.IncEventsReceived()
			if err := s.Broadcast(*msg.Event); err != nil {
				s.metrics.IncEventsDropped()
				slog.Warn("broadcast queue full, event dropped", "client_id", c.id)
			}

		case events.MessageSubscribe:
			if msg.Subscribe != nil {
				c.mu.Lock()
				c.subscription = *msg.Subscribe
				c.mu.Unlock()
				slog.Debug("client subscribed", "client_id", c.id, "task_list_id", msg.Subscribe.TaskListID)
			}

		case events.MessagePong:
			c.mu.Lock()
			c.lastPong = time.Now()
			c.mu.Unlock()
		}
	}
}

// clientWriter sends messages to a client
func (s *Server) clientWriter(c *client) {
	encoder := json.NewEncoder(c.conn)

	for msg := range c.send {
		if err := encoder.Encode(msg); err != nil {
			return
		}
	}
}

// monitorHealth pings clients and removes those that stopped answering
func (s *Server) monitorHealth(ctx context.Context) {
	pingTicker := time.NewTicker(s.pingInterval)
	defer pingTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-pingTicker.C:
			s.mu.RLock()
			clients := make([]*client, 0, len(s.clients))
			for c := range s.clients {
				clients = append(clients, c)
			}
			s.mu.RUnlock()

			now := time.Now()
			ping := events.Message{Version: events.ProtocolVersion, Type: events.MessagePing}

			// collect under the client lock, remove outside the server lock
			for _, c := range clients {
				c.mu.Lock()
				silentFor := now.Sub(c.lastPong)
				c.mu.Unlock()

				if silentFor > s.staleAfter {
					slog.Info("removing stale client", "client_id", c.id, "last_pong_ago", silentFor)
					s.removeClient(c)
					continue
				}
				if !s.sendToClient(c, ping) {
					slog.Debug("failed to send ping, queue full", "client_id", c.id)
				}
			}
			slog.Debug("daemon health", "metrics", s.metrics.GetSnapshot())
		}
	}
}

// Broadcast queues an event for every subscribed client (non-blocking)
func (s *Server) Broadcast(event events.Event) error {
	select {
	case <-s.ctx.Done():
		return net.ErrClosed
	default:
	}

	select {
	case s.broadcast <- event:
		return nil
	default:
		return ErrBroadcastFull
	}
}

// Shutdown closes the listener and every client connection and removes the
// socket file. It is safe to call more than once.
func (s *Server) Shutdown() error {
	var err error
	s.shutdownOnce.Do(func() {
		slog.Info("shutting down daemon", "metrics", s.metrics.GetSnapshot())

		s.cancel()

		if s.listener != nil {
			if closeErr := s.listener.Close(); closeErr != nil && !errors.Is(closeErr, net.ErrClosed) {
				err = fmt.Errorf("failed to close listener: %w", closeErr)
			}
		}

		s.mu.Lock()
		for c := range s.clients {
			_ = c.conn.Close()
			c.closeOnce.Do(func() {
				close(c.send)
			})
		}
		s.clients = make(map[*client]bool)
		s.mu.Unlock()
		s.updateClientCount()

		if removeErr := os.Remove(s.socketPath); removeErr != nil && !os.IsNotExist(removeErr) {
			slog.Warn("failed to remove socket file", "error", removeErr)
		}
	})

	return err
}

func (s *Server) getClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) updateClientCount() {
	s.metrics.SetConnectedClients(int32(s.getClientCount()))
}

// removeClient safely removes a client from the server
func (s *Server) removeClient(c *client) {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()

	_ = c.conn.Close()
	c.closeOnce.Do(func() {
		close(c.send)
	})

	s.updateClientCount()
}

// sendToClient attempts to send a message to a client (non-blocking).
// Returns false if the queue is full.
func (s *Server) sendToClient(c *client, msg events.Message) bool {
	select {
	case c.send <- msg:
		s.metrics.IncEventsSent()
		return true
	default:
		s.metrics.IncEventsDropped()
		return false
	}
}
