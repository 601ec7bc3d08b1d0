package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/beepath/animate"
	"github.com/katalvlaran/beepath/grid"
	"github.com/katalvlaran/beepath/store"
)

// ErrInvalidRequest wraps every input validation failure.
var ErrInvalidRequest = errors.New("service: invalid request")

// Defaults are applied to CreateRequest fields left empty.
type Defaults struct {
	Rows    int
	Cols    int
	Density float64
}

// Option configures a Service.
type Option func(*Service)

// WithStore replaces the default in-memory store.
func WithStore(s store.Store) Option {
	return func(svc *Service) {
		if s != nil {
			svc.store = s
		}
	}
}

// WithGuard replaces the default in-process guard.
func WithGuard(g animate.Guard) Option {
	return func(svc *Service) {
		if g != nil {
			svc.guard = g
		}
	}
}

// WithLogger sets the logger shared with the animator.
func WithLogger(l *logrus.Logger) Option {
	return func(svc *Service) {
		if l != nil {
			svc.log = l
		}
	}
}

// WithDelays sets the pacing of streamed searches.
func WithDelays(d animate.Delays) Option {
	return func(svc *Service) { svc.delays = d }
}

// WithSleeper sets the sleeper of streamed searches.
func WithSleeper(s animate.Sleeper) Option {
	return func(svc *Service) {
		if s != nil {
			svc.sleeper = s
		}
	}
}

// WithDefaults sets the dimensions and density used by Create.
func WithDefaults(d Defaults) Option {
	return func(svc *Service) { svc.defaults = d }
}

// Service manages grid sessions. It is safe for concurrent use.
type Service struct {
	store    store.Store
	guard    animate.Guard
	log      *logrus.Logger
	delays   animate.Delays
	sleeper  animate.Sleeper
	defaults Defaults
	newID    func() string

	mu      sync.Mutex
	running map[string]context.CancelFunc
	editing map[string]*idLock
}

// idLock serialises load, modify and save of one grid.
type idLock struct {
	mu   sync.Mutex
	refs int
}

// New returns a Service backed by an in-memory store and a local guard
// unless overridden.
func New(opts ...Option) *Service {
	svc := &Service{
		store:    store.NewMemoryStore(0),
		guard:    animate.NewLocalGuard(),
		log:      logrus.StandardLogger(),
		delays:   animate.DefaultDelays(),
		sleeper:  animate.Sleep,
		defaults: Defaults{Rows: 20, Cols: 40, Density: grid.DefaultDensity},
		newID:    uuid.NewString,
		running:  make(map[string]context.CancelFunc),
		editing:  make(map[string]*idLock),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// View is the public snapshot of one grid session.
type View struct {
	ID     string      `json:"id"`
	Layout grid.Layout `json:"layout"`
	Stats  grid.Stats  `json:"stats"`
	ASCII  string      `json:"ascii"`
}

func view(id string, g *grid.Grid) View {
	return View{ID: id, Layout: g.Layout(), Stats: g.Stats(), ASCII: g.String()}
}

// CreateRequest describes a new grid. Zero Rows/Cols and a nil Density
// fall back to Defaults; an empty Pattern means "empty".
type CreateRequest struct {
	Rows    int         `json:"rows"`
	Cols    int         `json:"cols"`
	Pattern string      `json:"pattern"`
	Density *float64    `json:"density"`
	Seed    *int64      `json:"seed"`
	Start   *grid.Coord `json:"start"`
	Goal    *grid.Coord `json:"goal"`
}

func (svc *Service) build(req CreateRequest) (*grid.Grid, error) {
	rows, cols := req.Rows, req.Cols
	if rows == 0 {
		rows = svc.defaults.Rows
	}
	if cols == 0 {
		cols = svc.defaults.Cols
	}
	pattern := grid.Empty
	if req.Pattern != "" {
		p, err := grid.ParsePattern(req.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
		pattern = p
	}
	density := svc.defaults.Density
	if req.Density != nil {
		density = *req.Density
	}
	opts := []grid.Option{grid.WithDensity(density)}
	if req.Seed != nil {
		opts = append(opts, grid.WithSeed(*req.Seed))
	}
	if req.Start != nil {
		opts = append(opts, grid.WithStart(*req.Start))
	}
	if req.Goal != nil {
		opts = append(opts, grid.WithGoal(*req.Goal))
	}
	g, err := grid.New(rows, cols, pattern, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return g, nil
}

// Create builds and stores a new grid.
func (svc *Service) Create(ctx context.Context, req CreateRequest) (View, error) {
	g, err := svc.build(req)
	if err != nil {
		return View{}, err
	}
	id := svc.newID()
	if err := svc.store.Save(ctx, id, g.Layout()); err != nil {
		return View{}, err
	}
	svc.log.WithFields(logrus.Fields{"grid": id, "rows": g.Rows(), "cols": g.Cols(), "pattern": req.Pattern}).Info("grid created")
	return view(id, g), nil
}

// Get returns the current snapshot of id.
func (svc *Service) Get(ctx context.Context, id string) (View, error) {
	g, err := svc.load(ctx, id)
	if err != nil {
		return View{}, err
	}
	return view(id, g), nil
}

// Stats returns the wall statistics of id.
func (svc *Service) Stats(ctx context.Context, id string) (grid.Stats, error) {
	g, err := svc.load(ctx, id)
	if err != nil {
		return grid.Stats{}, err
	}
	return g.Stats(), nil
}

// Delete removes id and cancels any search running on it.
func (svc *Service) Delete(ctx context.Context, id string) error {
	svc.Stop(id)
	return svc.store.Delete(ctx, id)
}

func (svc *Service) load(ctx context.Context, id string) (*grid.Grid, error) {
	l, err := svc.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	g, err := grid.FromLayout(l)
	if err != nil {
		return nil, fmt.Errorf("service: stored layout %s: %w", id, err)
	}
	return g, nil
}

// lockID blocks until no other edit of id is in flight in this process.
// Stores shared across processes are not serialised.
func (svc *Service) lockID(id string) (unlock func()) {
	svc.mu.Lock()
	l, ok := svc.editing[id]
	if !ok {
		l = &idLock{}
		svc.editing[id] = l
	}
	l.refs++
	svc.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		svc.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(svc.editing, id)
		}
		svc.mu.Unlock()
	}
}

// update loads id, applies fn and saves the result under the id lock.
func (svc *Service) update(ctx context.Context, id string, fn func(*grid.Grid) error) (View, error) {
	defer svc.lockID(id)()

	g, err := svc.load(ctx, id)
	if err != nil {
		return View{}, err
	}
	if err := fn(g); err != nil {
		return View{}, err
	}
	if err := svc.store.Save(ctx, id, g.Layout()); err != nil {
		return View{}, err
	}
	return view(id, g), nil
}
