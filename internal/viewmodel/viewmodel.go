// Package viewmodel holds screen state for the application's front-ends.
//
// A view-model observes use-case streams inside its own scope, turns user
// intents into use-case calls and publishes a notification on Changes()
// whenever its state moves. Writes are guarded: while one is outstanding,
// further submits are rejected. Close cancels the scope and waits for every
// background goroutine to finish.
package viewmodel

import (
	"context"
	"errors"
	"sync"

	"github.com/thenoetrevino/todometer/internal/repository"
	"github.com/thenoetrevino/todometer/internal/result"
)

// Validation errors reported by forms before any use-case runs
var (
	ErrEmptyTitle = errors.New("title must not be empty")
	ErrEmptyName  = errors.New("name must not be empty")
	ErrNotLoaded  = errors.New("not loaded yet")
)

// ErrorMessage maps an error to the text shown to the user
func ErrorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return ""
	case errors.Is(err, ErrEmptyTitle):
		return "Title can't be empty"
	case errors.Is(err, ErrEmptyName):
		return "Name can't be empty"
	case errors.Is(err, ErrNotLoaded):
		return "Still loading, try again"
	case errors.Is(err, repository.ErrTaskNotFound):
		return "This task no longer exists"
	case errors.Is(err, repository.ErrTaskListNotFound):
		return "This task list no longer exists"
	case errors.Is(err, repository.ErrChecklistItemNotFound):
		return "This checklist item no longer exists"
	default:
		return "Something went wrong"
	}
}

// scope is the lifetime and write guard shared by every view-model
type scope struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu           sync.Mutex
	closed       bool
	submitting   bool
	errorMessage string

	changes chan struct{}
}

func newScope(parent context.Context) *scope {
	ctx, cancel := context.WithCancel(parent)
	return &scope{
		ctx:     ctx,
		cancel:  cancel,
		changes: make(chan struct{}, 1),
	}
}

// Changes receives a value after every state change. Notifications coalesce:
// a receiver that falls behind sees one pending signal and reads the latest state.
func (s *scope) Changes() <-chan struct{} { return s.changes }

// IsSubmitting reports whether a write is outstanding
func (s *scope) IsSubmitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// ErrorMessage is the message of the last failed write, or ""
func (s *scope) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errorMessage
}

// DismissError clears the error message
func (s *scope) DismissError() {
	s.mu.Lock()
	s.errorMessage = ""
	s.mu.Unlock()
	s.notify()
}

// Close cancels every stream and write of the view-model and waits for them
func (s *scope) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

func (s *scope) notify() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

// launch runs fn in the scope unless it is closed
func (s *scope) launch(fn func(ctx context.Context)) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		fn(s.ctx)
	}()
	return true
}

// reject records a validation failure without running anything
func (s *scope) reject(err error) bool {
	s.mu.Lock()
	s.errorMessage = ErrorMessage(err)
	s.mu.Unlock()
	s.notify()
	return false
}

// submit runs write in the background unless a write is already outstanding.
// onSuccess runs with the scope's lock released, before observers are notified.
func (s *scope) submit(write func(ctx context.Context) error, onSuccess func()) bool {
	s.mu.Lock()
	if s.submitting || s.closed {
		s.mu.Unlock()
		return false
	}
	s.submitting = true
	s.errorMessage = ""
	s.mu.Unlock()
	s.notify()

	started := s.launch(func(ctx context.Context) {
		err := write(ctx)
		if err == nil && onSuccess != nil {
			onSuccess()
		}

		s.mu.Lock()
		s.submitting = false
		s.errorMessage = ErrorMessage(err)
		s.mu.Unlock()
		s.notify()
	})
	if !started {
		s.mu.Lock()
		s.submitting = false
		s.mu.Unlock()
	}
	return started
}

// observe stores every snapshot of stream with set and notifies observers
func observe[T any](s *scope, stream <-chan result.Result[T], set func(result.Result[T])) {
	s.launch(func(context.Context) {
		for r := range stream {
			s.mu.Lock()
			set(r)
			s.mu.Unlock()
			s.notify()
		}
	})
}

// errOf drops the value of a write result
func errOf[T any](r result.Result[T]) error {
	return r.Err()
}
