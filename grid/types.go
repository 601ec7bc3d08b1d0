package grid

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// Sentinel errors for grid construction and parsing.
var (
	// ErrEmptyGrid indicates rows or cols is smaller than one.
	ErrEmptyGrid = errors.New("grid: must have at least one row and one column")
	// ErrOutOfBounds indicates a start or goal coordinate outside the lattice.
	ErrOutOfBounds = errors.New("grid: coordinate out of bounds")
	// ErrSameStartGoal indicates start and goal share a coordinate.
	ErrSameStartGoal = errors.New("grid: start and goal must differ")
	// ErrOptionViolation indicates an invalid Option value.
	ErrOptionViolation = errors.New("grid: invalid option supplied")
	// ErrUnknownPattern indicates an unrecognised pattern name.
	ErrUnknownPattern = errors.New("grid: unknown pattern")
	// ErrBadLayout indicates a malformed ASCII or snapshot layout.
	ErrBadLayout = errors.New("grid: malformed layout")
)

// Coord addresses one cell: X is the column, Y the row.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String renders the coordinate as "(x,y)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Cell is a value copy of one lattice position. Hosts receive Cells from
// At; mutating a copy never changes the grid.
type Cell struct {
	Coord
	Wall  bool `json:"wall"`
	Start bool `json:"start"`
	Goal  bool `json:"goal"`

	// Run state, written only by a search.
	Distance float64 `json:"-"`
	GScore   float64 `json:"-"`
	FScore   float64 `json:"-"`
	Visited  bool    `json:"visited"`
	// Prev is meaningful only when HasPrev is true.
	Prev    Coord `json:"prev"`
	HasPrev bool  `json:"hasPrev"`
}

// Pattern selects the initial wall layout used by New.
type Pattern int

const (
	// Empty leaves every cell open.
	Empty Pattern = iota
	// Random walls each cell with probability density and relocates the goal.
	Random
	// Maze carves a connected binary-tree maze of chambers at odd coordinates,
	// with corridors from start and goal to their nearest chamber.
	Maze
	// Vertical draws broken wall columns every third column.
	Vertical
	// Horizontal draws broken wall rows every third row.
	Horizontal
	// Diagonal walls cells on every third anti-diagonal.
	Diagonal
	// Border walls most of the outer ring.
	Border
	// Filled walls every cell except start and goal.
	Filled
)

var patternNames = [...]string{
	Empty:      "empty",
	Random:     "random",
	Maze:       "maze",
	Vertical:   "vertical",
	Horizontal: "horizontal",
	Diagonal:   "diagonal",
	Border:     "border",
	Filled:     "filled",
}

// String returns the lower-case pattern name.
func (p Pattern) String() string {
	if p < 0 || int(p) >= len(patternNames) {
		return fmt.Sprintf("pattern(%d)", int(p))
	}
	return patternNames[p]
}

// ParsePattern maps a case-insensitive name onto a Pattern.
func ParsePattern(name string) (Pattern, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range patternNames {
		if n == name {
			return Pattern(i), nil
		}
	}
	return Empty, fmt.Errorf("%w: %q", ErrUnknownPattern, name)
}

// Patterns lists every pattern in declaration order.
func Patterns() []Pattern {
	out := make([]Pattern, len(patternNames))
	for i := range patternNames {
		out[i] = Pattern(i)
	}
	return out
}

// Stats summarises the wall layout.
type Stats struct {
	WallCount       int `json:"wallCount"`
	EmptyCount      int `json:"emptyCount"`
	TotalCells      int `json:"totalCells"`
	WallPercentage  int `json:"wallPercentage"`
	EmptyPercentage int `json:"emptyPercentage"`
}

// Deterministic defaults.
const (
	DefaultDensity      = 0.2
	MaxDensity          = 0.6
	DefaultGoalAttempts = 100
)

// Option configures New via functional arguments. Invalid values are
// recorded and surfaced as ErrOptionViolation when New runs.
type Option func(*Options)

// Options holds the knobs resolved by New.
type Options struct {
	// Density is the wall probability of the Random pattern, in [0, MaxDensity].
	Density float64
	// Start is the start marker; defaults to (0,0).
	Start Coord
	// Goal is the goal marker; nil means bottom-right.
	Goal *Coord
	// GoalAttempts bounds the random goal relocation of the Random pattern.
	GoalAttempts int
	// Rand drives stochastic patterns; nil means a time-seeded source.
	Rand *rand.Rand

	err error
}

// DefaultOptions returns Options with DefaultDensity, start (0,0),
// bottom-right goal and DefaultGoalAttempts.
func DefaultOptions() Options {
	return Options{
		Density:      DefaultDensity,
		Start:        Coord{},
		GoalAttempts: DefaultGoalAttempts,
	}
}

// WithDensity sets the Random wall probability. Values outside [0, 0.6]
// are recorded as ErrOptionViolation.
func WithDensity(d float64) Option {
	return func(o *Options) {
		if math.IsNaN(d) || d < 0 || d > MaxDensity {
			o.err = fmt.Errorf("%w: density %v outside [0, %v]", ErrOptionViolation, d, MaxDensity)
			return
		}
		o.Density = d
	}
}

// WithStart places the start marker.
func WithStart(c Coord) Option {
	return func(o *Options) { o.Start = c }
}

// WithGoal places the goal marker. The Random pattern may still relocate it.
func WithGoal(c Coord) Option {
	return func(o *Options) {
		g := c
		o.Goal = &g
	}
}

// WithGoalAttempts bounds random goal placement; n must be positive.
func WithGoalAttempts(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: goal attempts must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.GoalAttempts = n
	}
}

// WithRand supplies the RNG for stochastic patterns. nil is ignored.
func WithRand(r *rand.Rand) Option {
	return func(o *Options) {
		if r != nil {
			o.Rand = r
		}
	}
}

// WithSeed creates a deterministic RNG from seed.
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Rand = rand.New(rand.NewSource(seed))
	}
}
