// Command beepath runs Dijkstra and A* on a grid in the terminal.
//
// Usage:
//
//	beepath -rows 15 -cols 30 -pattern maze -seed 7 -algo both
//	beepath -map level.txt -algo astar -animate
//
// With -animate the grid is redrawn after every explored and path cell
// using the same pacing as the web visualizer; Ctrl-C stops the search.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/beepath/animate"
	"github.com/katalvlaran/beepath/grid"
	"github.com/katalvlaran/beepath/search"
)

type options struct {
	rows, cols  int
	pattern     string
	density     float64
	seed        int64
	algo        string
	mapFile     string
	animate     bool
	searchDelay time.Duration
	pathDelay   time.Duration
	verbose     bool
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("beepath", flag.ContinueOnError)
	fs.IntVar(&o.rows, "rows", 15, "grid rows")
	fs.IntVar(&o.cols, "cols", 30, "grid columns")
	fs.StringVar(&o.pattern, "pattern", "random", "wall pattern: "+patternList())
	fs.Float64Var(&o.density, "density", grid.DefaultDensity, "wall density of the random pattern, in [0, 0.6]")
	fs.Int64Var(&o.seed, "seed", 0, "RNG seed (0 = time based)")
	fs.StringVar(&o.algo, "algo", "both", "dijkstra, astar or both")
	fs.StringVar(&o.mapFile, "map", "", "ASCII layout file ('.', '#', 'S', 'G'); overrides -rows/-cols/-pattern")
	fs.BoolVar(&o.animate, "animate", false, "redraw the grid while searching")
	fs.DurationVar(&o.searchDelay, "search-delay", animate.DefaultSearchDelay, "pause after each explored cell when animating")
	fs.DurationVar(&o.pathDelay, "path-delay", animate.DefaultPathDelay, "pause after each path cell when animating")
	fs.BoolVar(&o.verbose, "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	return o, nil
}

func patternList() string {
	names := make([]string, 0, len(grid.Patterns()))
	for _, p := range grid.Patterns() {
		names = append(names, p.String())
	}
	return strings.Join(names, ", ")
}

// exitCode maps a flag parsing error to the process status; -h is not a
// failure.
func exitCode(err error) int {
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	return 2
}

func main() {
	o, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(exitCode(err))
	}
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if o.verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, o, os.Stdout, log); err != nil {
		log.WithError(err).Error("beepath failed")
		os.Exit(1)
	}
}

// run builds the grid and runs every requested algorithm on it.
func run(ctx context.Context, o options, out io.Writer, log *logrus.Logger) error {
	g, err := buildGrid(o)
	if err != nil {
		return err
	}
	algos, err := parseAlgorithms(o.algo)
	if err != nil {
		return err
	}

	delays := animate.Delays{}
	if o.animate {
		delays = animate.Delays{Search: o.searchDelay, Path: o.pathDelay}
	}
	anim := animate.New(animate.WithDelays(delays), animate.WithLogger(log))

	for _, a := range algos {
		s, err := search.NewStepper(g, g.Start(), g.Goal(), a)
		if err != nil {
			return err
		}
		var draw func(search.Event)
		if o.animate {
			canvas := newCanvas(g)
			draw = func(ev search.Event) {
				canvas.paint(ev)
				if ev.Role != search.Frontier {
					fmt.Fprint(out, "\033[H\033[2J", canvas.String(), "\n")
				}
			}
		}
		began := time.Now()
		res := anim.Play(ctx, s, draw)
		report(out, g, a, s.State(), res, time.Since(began))
		if ctx.Err() != nil {
			return nil
		}
	}
	return nil
}

func buildGrid(o options) (*grid.Grid, error) {
	if o.mapFile != "" {
		f, err := os.Open(o.mapFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return readLayout(f)
	}
	p, err := grid.ParsePattern(o.pattern)
	if err != nil {
		return nil, err
	}
	opts := []grid.Option{grid.WithDensity(o.density)}
	if o.seed != 0 {
		opts = append(opts, grid.WithSeed(o.seed))
	}
	return grid.New(o.rows, o.cols, p, opts...)
}

// readLayout parses an ASCII layout, skipping blank lines.
func readLayout(r io.Reader) (*grid.Grid, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimRight(sc.Text(), " \r"); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return grid.Parse(lines)
}

func parseAlgorithms(name string) ([]search.Algorithm, error) {
	if strings.EqualFold(name, "both") {
		return []search.Algorithm{search.Dijkstra, search.AStar}, nil
	}
	a, err := search.ParseAlgorithm(name)
	if err != nil {
		return nil, err
	}
	return []search.Algorithm{a}, nil
}

func report(out io.Writer, g *grid.Grid, a search.Algorithm, st search.State, res search.Result, elapsed time.Duration) {
	fmt.Fprintf(out, "%s: %s, found=%t, path=%d, explored=%d, %s\n",
		a, st, res.Found, len(res.Path), res.Explored, elapsed.Round(time.Microsecond))
	fmt.Fprintln(out, g.Render(res.Path))
}
