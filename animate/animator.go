package animate

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/beepath/search"
)

// Default pacing of the visualizer.
const (
	DefaultSearchDelay   = 5 * time.Millisecond
	DefaultFrontierDelay = time.Duration(0)
	DefaultPathDelay     = 40 * time.Millisecond
)

// Delays holds the pause after each event role.
type Delays struct {
	Search   time.Duration
	Frontier time.Duration
	Path     time.Duration
}

// DefaultDelays returns 5ms after explored cells, no pause after frontier
// updates and 40ms after path cells.
func DefaultDelays() Delays {
	return Delays{
		Search:   DefaultSearchDelay,
		Frontier: DefaultFrontierDelay,
		Path:     DefaultPathDelay,
	}
}

// For returns the pause that follows an event of role r.
func (d Delays) For(r search.Role) time.Duration {
	switch r {
	case search.Explored:
		return d.Search
	case search.Frontier:
		return d.Frontier
	case search.Path:
		return d.Path
	}
	return 0
}

// Sleeper pauses for d or until ctx is done, whichever comes first.
type Sleeper func(ctx context.Context, d time.Duration) error

// Sleep is the wall-clock Sleeper.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Option configures an Animator.
type Option func(*Animator)

// WithDelays overrides DefaultDelays. Negative durations are treated as 0.
func WithDelays(d Delays) Option {
	return func(a *Animator) {
		a.delays = Delays{
			Search:   max(d.Search, 0),
			Frontier: max(d.Frontier, 0),
			Path:     max(d.Path, 0),
		}
	}
}

// WithSleeper replaces the wall-clock Sleeper; tests use it to run
// instantly.
func WithSleeper(s Sleeper) Option {
	return func(a *Animator) {
		if s != nil {
			a.sleep = s
		}
	}
}

// WithLogger sets the lifecycle logger.
func WithLogger(l *logrus.Logger) Option {
	return func(a *Animator) {
		if l != nil {
			a.log = l
		}
	}
}

// Animator plays one search at a time. It is safe to call Stop from
// another goroutine while Play runs.
type Animator struct {
	delays Delays
	sleep  Sleeper
	log    *logrus.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
}

// New returns an Animator with DefaultDelays, the wall-clock Sleeper and
// the standard logrus logger unless overridden.
func New(opts ...Option) *Animator {
	a := &Animator{
		delays: DefaultDelays(),
		sleep:  Sleep,
		log:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Delays returns the configured pacing.
func (a *Animator) Delays() Delays { return a.delays }

// Play drives s to completion, calling draw for every event and pausing
// per role. It returns when s finishes, ctx is done or Stop is called;
// in the last two cases s is cancelled and the result reports not found.
//
// Steps:
//  1. Register a cancel func for Stop.
//  2. Loop: check ctx, pull one event, draw it, sleep.
//  3. Log the outcome with the elapsed time.
func (a *Animator) Play(ctx context.Context, s *search.Stepper, draw func(search.Event)) search.Result {
	ctx, cancel := context.WithCancel(ctx)
	a.mu.Lock()
	a.cancel = cancel
	a.mu.Unlock()
	defer func() {
		a.mu.Lock()
		a.cancel = nil
		a.mu.Unlock()
		cancel()
	}()

	entry := a.log.WithField("algorithm", s.Algorithm().String())
	entry.Debug("search started")
	began := time.Now()

	for {
		if ctx.Err() != nil {
			s.Cancel()
			break
		}
		ev, ok := s.Next()
		if !ok {
			break
		}
		if draw != nil {
			draw(ev)
		}
		if err := a.sleep(ctx, a.delays.For(ev.Role)); err != nil {
			s.Cancel()
			break
		}
	}

	res := s.Result()
	entry = entry.WithFields(logrus.Fields{
		"state":    s.State().String(),
		"found":    res.Found,
		"explored": res.Explored,
		"path":     len(res.Path),
		"elapsed":  time.Since(began).String(),
	})
	if s.State() == search.Cancelled {
		entry.Info("search cancelled")
	} else {
		entry.Info("search finished")
	}
	return res
}

// Stop cancels the search currently in Play, if any.
func (a *Animator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		a.cancel()
	}
}
