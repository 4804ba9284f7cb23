package host

import (
	"context"
	"sync"
	"sync/atomic"
)

// Dispatcher marshals work onto the document run loop.
type Dispatcher interface {
	// Dispatch enqueues fn for execution on the loop's goroutine.
	// Functions run in submission order. Dispatch never blocks on fn.
	Dispatch(fn func())
}

// RunLoop is the single goroutine that owns all document, console, and
// clipboard access. Background goroutines submit work with Dispatch; the
// owning goroutine drains the queue with Run.
//
// The queue-and-drain shape means no locks guard the collaborators
// themselves: confinement to one goroutine is the isolation mechanism.
type RunLoop struct {
	queue  chan func()
	closed atomic.Bool
	done   chan struct{}

	closeOnce sync.Once
}

// NewRunLoop creates a run loop with the given queue capacity.
// A size of zero or less uses a default of 64.
func NewRunLoop(size int) *RunLoop {
	if size <= 0 {
		size = 64
	}
	return &RunLoop{
		queue: make(chan func(), size),
		done:  make(chan struct{}),
	}
}

// Dispatch enqueues fn. After Close the loop goroutine is gone, so fn runs
// inline on the caller instead of being lost; a closed loop no longer
// guarantees confinement.
func (l *RunLoop) Dispatch(fn func()) {
	if l.closed.Load() {
		fn()
		return
	}
	select {
	case l.queue <- fn:
	case <-l.done:
		fn()
	}
}

// Run drains the queue until the context is cancelled or Close is called.
// MUST be called from the goroutine that owns the document.
func (l *RunLoop) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			l.drain()
			return
		case <-l.done:
			l.drain()
			return
		case fn := <-l.queue:
			fn()
		}
	}
}

// drain executes anything already queued so late completions are not lost.
func (l *RunLoop) drain() {
	for {
		select {
		case fn := <-l.queue:
			fn()
		default:
			return
		}
	}
}

// Close stops the loop. Idempotent.
func (l *RunLoop) Close() {
	l.closeOnce.Do(func() {
		l.closed.Store(true)
		close(l.done)
	})
}

// Call runs fn on the dispatcher and waits for it to finish. It is the
// synchronous round-trip used for document reads from background
// goroutines. Never call it from the loop goroutine itself.
func Call(d Dispatcher, fn func()) {
	done := make(chan struct{})
	d.Dispatch(func() {
		defer close(done)
		fn()
	})
	<-done
}

// SyncDispatcher runs dispatched functions inline on the caller's
// goroutine. Useful for hosts without a separate document thread and for
// tests.
type SyncDispatcher struct{}

// Dispatch runs fn immediately.
func (SyncDispatcher) Dispatch(fn func()) { fn() }
