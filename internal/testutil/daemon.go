package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/thenoetrevino/todometer/internal/daemon"
	"github.com/thenoetrevino/todometer/internal/events"
)

// GetTestSocketPath returns a socket path inside a per-test temporary directory
func GetTestSocketPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test-todometer.sock")
}

// SetupTestDaemon starts a daemon on a temporary socket.
// Returns the server and socket path. Cleanup is automatic via t.Cleanup().
func SetupTestDaemon(t *testing.T, opts ...daemon.Option) (*daemon.Server, string) {
	t.Helper()

	socketPath := GetTestSocketPath(t)

	server, err := daemon.NewServer(socketPath, opts...)
	if err != nil {
		t.Fatalf("Failed to create test daemon: %v", err)
	}

	t.Cleanup(func() {
		if err := server.Shutdown(); err != nil {
			t.Logf("Warning: daemon shutdown error during cleanup: %v", err)
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	go func() {
		_ = server.Start(ctx)
	}()

	return server, socketPath
}

// WaitForClientCount waits until the daemon reports the expected number of clients
func WaitForClientCount(t *testing.T, server *daemon.Server, expected int, timeout time.Duration) bool {
	t.Helper()
	return WaitForCondition(t, func() bool {
		return server.Metrics().ConnectedClients == int32(expected)
	}, timeout, "daemon client count")
}

// WaitForEvent waits for an event on the channel with timeout
func WaitForEvent(t *testing.T, ch <-chan events.Event, timeout time.Duration) events.Event {
	t.Helper()
	select {
	case event, ok := <-ch:
		if !ok {
			t.Fatal("Event channel closed unexpectedly")
		}
		return event
	case <-time.After(timeout):
		t.Fatalf("Timeout waiting for event after %v", timeout)
		return events.Event{}
	}
}

// WaitForNoEvent fails the test if an event arrives within timeout
func WaitForNoEvent(t *testing.T, ch <-chan events.Event, timeout time.Duration) {
	t.Helper()
	select {
	case event, ok := <-ch:
		if ok {
			t.Fatalf("Expected no event, but received: %+v", event)
		}
	case <-time.After(timeout):
	}
}

// WaitForCondition polls condition until it holds or timeout passes
func WaitForCondition(t *testing.T, condition func() bool, timeout time.Duration, description string) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Logf("Timeout waiting for %s after %v", description, timeout)
	return false
}
