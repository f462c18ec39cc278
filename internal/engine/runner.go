package engine

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrRunnerStopped = errors.New("runner stopped")

// Runner owns the goroutine an Engine runs on. Commands sent through Do or Call and the
// clock ticks are serialized on that goroutine, so the engine needs no locks.
//
// The ticker exists only while the clock is playing: pausing, reaching the end under
// the stop policy, Stop and context cancellation all release it.
type Runner struct {
	engine *Engine
	cmds   chan func(*Engine)

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

func NewRunner(e *Engine) *Runner {
	return &Runner{
		engine: e,
		cmds:   make(chan func(*Engine), 64),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Run processes commands and ticks until Stop is called or ctx ends.
func (r *Runner) Run(ctx context.Context) error {
	defer close(r.done)

	var (
		ticker *time.Ticker
		tick   <-chan time.Time
	)
	defer func() {
		if ticker != nil {
			ticker.Stop()
		}
	}()

	schedule := func() {
		playing := r.engine.Playing()
		switch {
		case playing && ticker == nil:
			ticker = time.NewTicker(r.engine.clock.Interval())
			tick = ticker.C
			r.engine.log.Debug("runner ticking", "interval", r.engine.clock.Interval())
		case !playing && ticker != nil:
			ticker.Stop()
			ticker, tick = nil, nil
			r.engine.log.Debug("runner idle", "time_ms", r.engine.State().CurrentTime)
		}
	}

	schedule()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.stop:
			return nil
		case fn := <-r.cmds:
			fn(r.engine)
		case <-tick:
			r.engine.Tick()
		}
		schedule()
	}
}

// Do queues fn to run on the loop goroutine without waiting for it.
func (r *Runner) Do(fn func(*Engine)) error {
	if r.stopped() {
		return ErrRunnerStopped
	}
	select {
	case <-r.done:
		return ErrRunnerStopped
	case <-r.stop:
		return ErrRunnerStopped
	case r.cmds <- fn:
		return nil
	}
}

// Call runs fn on the loop goroutine and waits for it to return. It must not be called
// from that goroutine, for example from a subscriber.
func (r *Runner) Call(ctx context.Context, fn func(*Engine)) error {
	finished := make(chan struct{})
	wrapped := func(e *Engine) {
		defer close(finished)
		fn(e)
	}

	if r.stopped() {
		return ErrRunnerStopped
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-r.done:
		return ErrRunnerStopped
	case <-r.stop:
		return ErrRunnerStopped
	case r.cmds <- wrapped:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-r.done:
		// the command may have been dropped with the queue
		select {
		case <-finished:
			return nil
		default:
			return ErrRunnerStopped
		}
	case <-finished:
		return nil
	}
}

func (r *Runner) stopped() bool {
	select {
	case <-r.done:
		return true
	case <-r.stop:
		return true
	default:
		return false
	}
}

// Stop ends Run. It is safe to call more than once.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

// Done is closed once Run has returned.
func (r *Runner) Done() <-chan struct{} { return r.done }
