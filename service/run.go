package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/beepath/animate"
	"github.com/katalvlaran/beepath/search"
)

// Outcome is the result of one search run.
type Outcome struct {
	search.Result
	Algorithm string `json:"algorithm"`
	State     string `json:"state"`
	ASCII     string `json:"ascii"`
}

// Search runs algo on id without pacing and returns the outcome.
func (svc *Service) Search(ctx context.Context, id string, algo string) (Outcome, error) {
	return svc.run(ctx, id, algo, animate.Delays{}, nil)
}

// Stream runs algo on id with the configured pacing, calling draw for
// every event. It returns early when ctx is done or Stop(id) is called.
func (svc *Service) Stream(ctx context.Context, id string, algo string, draw func(search.Event)) (Outcome, error) {
	return svc.run(ctx, id, algo, svc.delays, draw)
}

// Stop cancels the search running on id. Reports whether one was running.
func (svc *Service) Stop(id string) bool {
	svc.mu.Lock()
	cancel, ok := svc.running[id]
	svc.mu.Unlock()
	if ok {
		cancel()
		svc.log.WithField("grid", id).Info("search stop requested")
	}
	return ok
}

// Running reports whether a search on id is in flight in this process.
func (svc *Service) Running(id string) bool {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	_, ok := svc.running[id]
	return ok
}

// run is shared by Search and Stream.
//
// Steps:
//  1. Parse algo and take the guard for id.
//  2. Load the grid and build a stepper on its start and goal.
//  3. Register a cancel func for Stop.
//  4. Play the stepper and render the final grid.
func (svc *Service) run(ctx context.Context, id, algo string, delays animate.Delays, draw func(search.Event)) (Outcome, error) {
	a, err := search.ParseAlgorithm(algo)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	release, err := svc.guard.Acquire(ctx, id)
	if err != nil {
		return Outcome{}, err
	}
	defer release()

	g, err := svc.load(ctx, id)
	if err != nil {
		return Outcome{}, err
	}
	st, err := search.NewStepper(g, g.Start(), g.Goal(), a)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	svc.mu.Lock()
	svc.running[id] = cancel
	svc.mu.Unlock()
	defer func() {
		svc.mu.Lock()
		delete(svc.running, id)
		svc.mu.Unlock()
	}()

	anim := animate.New(
		animate.WithDelays(delays),
		animate.WithSleeper(svc.sleeper),
		animate.WithLogger(svc.log),
	)
	res := anim.Play(ctx, st, draw)
	svc.log.WithFields(logrus.Fields{"grid": id, "algorithm": a.String(), "found": res.Found}).Debug("search done")

	return Outcome{
		Result:    res,
		Algorithm: a.String(),
		State:     st.State().String(),
		ASCII:     g.Render(res.Path),
	}, nil
}
