// Command bench is the benchmark driver for the packing heuristics. It
// generates seeded random instances and reports, per heuristic, the bin
// counts relative to the trivial lower bound and the accumulated packing
// time. Heuristics race against each other per run; each call owns its
// auxiliary structures, so that is safe.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/cheggaaa/pb/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Submanifold/bin-packing-heuristics/internal/application"
	"github.com/Submanifold/bin-packing-heuristics/internal/binpack"
	"github.com/Submanifold/bin-packing-heuristics/internal/generator"
	"github.com/Submanifold/bin-packing-heuristics/internal/logging"
)

type heuristicStats struct {
	runs         int
	totalBins    int
	minBins      int
	maxBins      int
	totalElapsed time.Duration
}

func (s *heuristicStats) record(bins int, elapsed time.Duration) {
	if s.runs == 0 || bins < s.minBins {
		s.minBins = bins
	}
	if bins > s.maxBins {
		s.maxBins = bins
	}
	s.runs++
	s.totalBins += bins
	s.totalElapsed += elapsed
}

func main() {
	app := kingpin.New("binpack-bench", "Benchmark driver comparing Best-Fit heuristic quality and running time")
	items := app.Flag("items", "Number of items per generated instance").Default("10000").Int()
	capacity := app.Flag("capacity", "Bin capacity").Default("1000").Int()
	minSize := app.Flag("min-size", "Smallest generated item size").Default("1").Int()
	maxSize := app.Flag("max-size", "Largest generated item size (defaults to capacity)").Default("0").Int()
	seed := app.Flag("seed", "Base seed; run r uses seed+r").Default("1").Int64()
	runs := app.Flag("runs", "Number of generated instances").Default("10").Int()
	names := app.Flag("heuristics", "Comma-separated heuristic names (default: all)").Default("").String()
	logLevel := app.Flag("log-level", "Log level for diagnostics").Default("warn").String()

	kingpin.MustParse(app.Parse(os.Args[1:]))

	logger, err := logging.New(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	heuristics, err := selectHeuristics(*names)
	if err != nil {
		logger.Fatal("invalid heuristic selection", zap.Error(err))
	}

	if *maxSize <= 0 {
		*maxSize = *capacity
	}

	stats := make(map[string]*heuristicStats, len(heuristics))
	for _, h := range heuristics {
		stats[h.Name()] = &heuristicStats{}
	}

	totalLowerBound := 0
	bar := pb.StartNew(*runs * len(heuristics))
	for r := 0; r < *runs; r++ {
		inst, err := generator.Uniform(generator.Config{
			Count:    *items,
			Capacity: *capacity,
			MinSize:  *minSize,
			MaxSize:  *maxSize,
			Seed:     *seed + int64(r),
		})
		if err != nil {
			logger.Fatal("failed to generate instance", zap.Error(err))
		}
		totalLowerBound += inst.LowerBound()

		var g errgroup.Group
		for _, h := range heuristics {
			h := h
			g.Go(func() error {
				defer bar.Increment()
				result, err := h.Pack(inst)
				if err != nil {
					return fmt.Errorf("%s: %w", h.Name(), err)
				}
				stats[h.Name()].record(result.Bins, result.Elapsed)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			logger.Fatal("benchmark run failed", zap.Error(err))
		}
	}
	bar.Finish()

	report(heuristics, stats, totalLowerBound, *runs)
}

// selectHeuristics resolves a comma-separated name list against the registry;
// an empty list selects every registered heuristic.
func selectHeuristics(names string) ([]binpack.Heuristic, error) {
	all := application.Heuristics()
	if strings.TrimSpace(names) == "" {
		return all, nil
	}

	byName := make(map[string]binpack.Heuristic, len(all))
	available := make([]string, 0, len(all))
	for _, h := range all {
		byName[h.Name()] = h
		available = append(available, h.Name())
	}

	var selected []binpack.Heuristic
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		h, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown heuristic %q (available: %s)", name, strings.Join(available, ", "))
		}
		selected = append(selected, h)
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("no heuristics selected")
	}
	return selected, nil
}

func report(heuristics []binpack.Heuristic, stats map[string]*heuristicStats, totalLowerBound, runs int) {
	fmt.Printf("%-18s %12s %10s %10s %10s %14s\n",
		"heuristic", "avg bins", "min", "max", "vs LB", "total time")
	for _, h := range heuristics {
		s := stats[h.Name()]
		if s.runs == 0 {
			continue
		}
		avg := float64(s.totalBins) / float64(s.runs)
		ratio := float64(s.totalBins) / float64(totalLowerBound)
		fmt.Printf("%-18s %12.1f %10d %10d %9.3fx %14s\n",
			h.Name(), avg, s.minBins, s.maxBins, ratio, s.totalElapsed)
	}
	fmt.Printf("\n%d runs, average lower bound %.1f bins\n",
		runs, float64(totalLowerBound)/float64(runs))
}
