package repository

import (
	"context"

	"github.com/thenoetrevino/todometer/internal/events"
	"github.com/thenoetrevino/todometer/internal/result"
)

// watch runs load once, then again after every bus event accepted by filter,
// sending each outcome on the returned channel. The channel holds at most one
// unread snapshot: a newer snapshot replaces an unread older one. It is closed
// once ctx is done.
func watch[T any](ctx context.Context, bus *events.Bus, filter events.Filter, load func(context.Context) (T, error)) <-chan result.Result[T] {
	out := make(chan result.Result[T], 1)
	// subscribe before the first load so no commit in between is missed
	changes := bus.Subscribe(ctx, filter)

	go func() {
		defer close(out)
		for {
			snapshot := result.From(load(ctx))
			if ctx.Err() != nil {
				return
			}
			offer(out, snapshot)

			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
			}
		}
	}()

	return out
}

// offer replaces any unread value in out with v; out must have capacity one
// and a single sender
func offer[T any](out chan T, v T) {
	for {
		select {
		case out <- v:
			return
		default:
			select {
			case <-out:
			default:
			}
		}
	}
}

// First returns the first snapshot of a stream. Cancel ctx afterwards to
// release the stream.
func First[T any](ctx context.Context, stream <-chan result.Result[T]) result.Result[T] {
	select {
	case <-ctx.Done():
		return result.Error[T](ctx.Err())
	case r, ok := <-stream:
		if !ok {
			if err := ctx.Err(); err != nil {
				return result.Error[T](err)
			}
			return result.Error[T](context.Canceled)
		}
		return r
	}
}

// Once opens a stream, returns its first snapshot and releases it
func Once[T any](ctx context.Context, open func(context.Context) <-chan result.Result[T]) result.Result[T] {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	return First(ctx, open(ctx))
}

// Switch follows src and, for every success whose key differs from the
// previous one, replaces the inner stream with open(value). Snapshots of the
// current inner stream are forwarded; errors from src are forwarded and drop
// the inner stream. The result closes when ctx is done or src closes.
func Switch[A, B any, K comparable](ctx context.Context, src <-chan result.Result[A], key func(A) K, open func(context.Context, A) <-chan result.Result[B]) <-chan result.Result[B] {
	out := make(chan result.Result[B], 1)

	go func() {
		defer close(out)

		var (
			inner       <-chan result.Result[B]
			cancelInner context.CancelFunc = func() {}
			current     K
			active      bool
		)
		defer func() { cancelInner() }()

		for {
			select {
			case <-ctx.Done():
				return

			case r, ok := <-src:
				if !ok {
					return
				}
				if r.IsError() {
					cancelInner()
					inner, active = nil, false
					offer(out, result.Error[B](r.Err()))
					continue
				}
				value, isSuccess := r.Value()
				if !isSuccess {
					continue
				}
				if active && key(value) == current {
					continue
				}
				cancelInner()
				var innerCtx context.Context
				innerCtx, cancelInner = context.WithCancel(ctx)
				inner, current, active = open(innerCtx, value), key(value), true

			case r, ok := <-inner:
				if !ok {
					inner = nil
					continue
				}
				offer(out, r)
			}
		}
	}()

	return out
}
