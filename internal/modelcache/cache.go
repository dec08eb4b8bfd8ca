// Package modelcache provides a concurrency-safe, single-flight lazy loader
// for an expensive artifact such as a multi-hundred-megabyte model. The
// loaded value is loaded at most once per success and shared read-only by
// every caller for the rest of the process lifetime.
package modelcache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// -- Sentinels --

var (
	// ErrWaitAborted is returned when a caller's bounded wait expires or is
	// cancelled while another caller's load is still in flight. It is
	// distinct from a load failure: the load may still succeed for the
	// other waiters.
	ErrWaitAborted = errors.New("wait for model load aborted")

	// ErrNilLoader is returned when GetOrLoad is called without a loader.
	ErrNilLoader = errors.New("loader cannot be nil")
)

// Loader produces the expensive value. It is expected to perform blocking
// I/O; the cache itself performs none.
type Loader[T any] func() (T, error)

// flight is one in-progress load shared by every caller that arrives while
// it runs. val and err are written once, before done is closed.
type flight[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Cache is a single-flight lazy loader. The zero value is not usable; build
// one with New and share it by reference. It is an explicit singleton with a
// documented lifecycle: constructed during process wiring, shared with every
// consumer, torn down with the process.
//
// State machine: empty -> loading -> ready | failed. A failed load does not
// poison the cache; the next call simply retries. Ready is terminal: the
// loader is never invoked again and callers take a lock-free fast path.
type Cache[T any] struct {
	ready atomic.Pointer[T]

	mu       sync.Mutex
	inFlight *flight[T]
}

// New creates an empty cache.
func New[T any]() *Cache[T] {
	return &Cache[T]{}
}

// GetOrLoad returns the cached value, joining or starting a load as needed.
//
// Exactly one execution of loader is in flight at a time: the first caller
// to find the cache empty (or failed) runs it, and every caller that arrives
// while it runs waits for that same execution and receives the identical
// result. Callers arriving after a successful load never block and never
// re-invoke the loader.
//
// ctx bounds only this caller's wait on somebody else's load; expiry yields
// an ErrWaitAborted-wrapped error and leaves the in-flight load untouched.
// The caller that runs the loader is committed to it and does not observe
// ctx until the load resolves.
func (c *Cache[T]) GetOrLoad(ctx context.Context, loader Loader[T]) (T, error) {
	if v := c.ready.Load(); v != nil {
		return *v, nil
	}

	var zero T
	if loader == nil {
		return zero, ErrNilLoader
	}
	if err := ctx.Err(); err != nil {
		return zero, fmt.Errorf("%w: %w", ErrWaitAborted, err)
	}

	c.mu.Lock()
	// Re-check under the lock: a load may have completed while we waited.
	if v := c.ready.Load(); v != nil {
		c.mu.Unlock()
		return *v, nil
	}
	if f := c.inFlight; f != nil {
		c.mu.Unlock()
		select {
		case <-f.done:
			return f.val, f.err
		case <-ctx.Done():
			return zero, fmt.Errorf("%w: %w", ErrWaitAborted, ctx.Err())
		}
	}

	f := &flight[T]{done: make(chan struct{})}
	c.inFlight = f
	c.mu.Unlock()

	f.val, f.err = runLoader(loader)

	c.mu.Lock()
	c.inFlight = nil
	if f.err == nil {
		v := f.val
		c.ready.Store(&v)
	}
	c.mu.Unlock()
	close(f.done)

	return f.val, f.err
}

// Ready reports whether a successful load has completed.
func (c *Cache[T]) Ready() bool {
	return c.ready.Load() != nil
}

// Peek returns the cached value without triggering a load.
func (c *Cache[T]) Peek() (T, bool) {
	if v := c.ready.Load(); v != nil {
		return *v, true
	}
	var zero T
	return zero, false
}

// runLoader invokes the loader, converting a panic into an error so a broken
// loader cannot wedge every waiter of the flight.
func runLoader[T any](loader Loader[T]) (val T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("loader panicked: %v", r)
		}
	}()
	return loader()
}
