package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/limaJavier/regatta/pkg/csp"
	"github.com/limaJavier/regatta/pkg/model"
	"github.com/limaJavier/regatta/pkg/sat"
)

const (
	scenarioDirectory = "../../pkg/model/testdata/satisfiable/"
	resultsFile       = "benchmark_results.csv"
)

type Scenario struct {
	Name    string
	Regatta model.Regatta
	Races   int
	Heats   int
	Boats   int
}

type Variant struct {
	Strategy model.Strategy
	Backend  string
}

type Measurement struct {
	Scenario  string
	Variant   Variant
	Status    csp.Status
	Duration  time.Duration
	Variables uint64
	Clauses   uint64
}

type Summary struct {
	Scenario  Scenario
	Variant   Variant
	Runs      int
	Solved    int
	Status    csp.Status // Status of the last run
	MeanMs    float64
	StdDevMs  float64
	MedianMs  float64
	Variables uint64
	Clauses   uint64
}

func main() {
	directory := flag.String("scenarios", scenarioDirectory, "directory holding the regatta entry files")
	repeats := flag.Int("repeats", 3, "runs per scenario, strategy and backend")
	parallel := flag.Int("parallel", runtime.NumCPU(), "builds running at the same time")
	backendsFlag := flag.String("backends", "", "comma separated SAT backends, defaults to gini plus every external solver on PATH")
	timeout := flag.Duration("timeout", model.DefaultTimeout, "budget of a single build")
	out := flag.String("out", resultsFile, "CSV file the summaries are written to")
	flag.Parse()

	scenarios, err := loadScenarios(*directory)
	if err != nil {
		log.Fatalf("cannot load scenarios: %v", err)
	}
	backends := availableBackends()
	if *backendsFlag != "" {
		backends = strings.Split(*backendsFlag, ",")
	}
	variants := lo.FlatMap([]model.Strategy{model.StrategyEmbedded, model.StrategyPostponed}, func(strategy model.Strategy, _ int) []Variant {
		return lo.Map(backends, func(backend string, _ int) Variant { return Variant{Strategy: strategy, Backend: backend} })
	})

	settings := model.DefaultSettings()
	settings.Timeout = *timeout

	measurements, err := measureAll(context.Background(), scenarios, variants, settings, *repeats, *parallel)
	if err != nil {
		log.Fatalf("benchmark failed: %v", err)
	}

	summaries := summarize(scenarios, variants, measurements)
	for _, summary := range summaries {
		fmt.Printf("%v [%v/%v]: %d/%d solved, mean %.1fms, median %.1fms\n",
			summary.Scenario.Name, summary.Variant.Strategy, summary.Variant.Backend,
			summary.Solved, summary.Runs, summary.MeanMs, summary.MedianMs)
	}

	if err := toCsv(*out, summaries); err != nil {
		log.Fatalf("cannot write results: %v", err)
	}
}

func loadScenarios(directory string) ([]Scenario, error) {
	files, err := os.ReadDir(directory)
	if err != nil {
		return nil, err
	}

	scenarios := make([]Scenario, 0, len(files))
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".json" {
			continue
		}
		regatta, err := model.InputFromJson(filepath.Join(directory, file.Name()))
		if err != nil {
			return nil, fmt.Errorf("%v: %w", file.Name(), err)
		}
		scenarios = append(scenarios, Scenario{
			Name:    strings.TrimSuffix(file.Name(), ".json"),
			Regatta: regatta,
			Races:   len(regatta.Races),
			Heats:   len(regatta.Heats()),
			Boats:   regatta.Boats(),
		})
	}
	return scenarios, nil
}

// availableBackends returns gini and every external solver whose executable is found on PATH
func availableBackends() []string {
	return lo.Filter(sat.Backends(), func(backend string, _ int) bool {
		if backend == sat.GiniBackend {
			return true
		}
		_, err := exec.LookPath(sat.DefaultPath(backend))
		return err == nil
	})
}

// measureAll runs every scenario with every variant repeats times, builds are independent and run concurrently
func measureAll(ctx context.Context, scenarios []Scenario, variants []Variant, settings model.Settings, repeats, parallel int) ([]Measurement, error) {
	var (
		mu           sync.Mutex
		measurements = make([]Measurement, 0, len(scenarios)*len(variants)*repeats)
	)

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(max(parallel, 1))
	for _, scenario := range scenarios {
		for _, variant := range variants {
			for range repeats {
				group.Go(func() error {
					measurement, err := measure(ctx, scenario, variant, settings)
					if err != nil {
						return fmt.Errorf("scenario %q with strategy %q and backend %q: %w", scenario.Name, variant.Strategy, variant.Backend, err)
					}
					mu.Lock()
					measurements = append(measurements, measurement)
					mu.Unlock()
					return nil
				})
			}
		}
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return measurements, nil
}

func measure(ctx context.Context, scenario Scenario, variant Variant, settings model.Settings) (Measurement, error) {
	solver, err := sat.New(variant.Backend, nil)
	if err != nil {
		return Measurement{}, err
	}
	scheduler, err := model.NewScheduler(variant.Strategy, csp.NewSATSolver(solver))
	if err != nil {
		return Measurement{}, err
	}

	schedule, stats, err := scheduler.Build(ctx, scenario.Regatta, settings)
	if err != nil {
		return Measurement{}, err
	} else if schedule != nil && !scheduler.Verify(schedule, scenario.Regatta, settings) {
		return Measurement{}, fmt.Errorf("verification failed")
	}

	return Measurement{
		Scenario:  scenario.Name,
		Variant:   variant,
		Status:    stats.Status,
		Duration:  stats.Duration,
		Variables: stats.Variables,
		Clauses:   stats.Clauses,
	}, nil
}

func summarize(scenarios []Scenario, variants []Variant, measurements []Measurement) []Summary {
	summaries := make([]Summary, 0, len(scenarios)*len(variants))
	for _, scenario := range scenarios {
		for _, variant := range variants {
			runs := lo.Filter(measurements, func(measurement Measurement, _ int) bool {
				return measurement.Scenario == scenario.Name && measurement.Variant == variant
			})
			if len(runs) == 0 {
				continue
			}

			durations := lo.Map(runs, func(measurement Measurement, _ int) float64 {
				return float64(measurement.Duration) / float64(time.Millisecond)
			})
			slices.Sort(durations)

			summary := Summary{
				Scenario:  scenario,
				Variant:   variant,
				Runs:      len(runs),
				Solved:    lo.CountBy(runs, func(measurement Measurement) bool { return measurement.Status.Solved() }),
				Status:    runs[len(runs)-1].Status,
				MeanMs:    stat.Mean(durations, nil),
				MedianMs:  stat.Quantile(0.5, stat.Empirical, durations, nil),
				Variables: runs[0].Variables,
				Clauses:   runs[0].Clauses,
			}
			if len(durations) > 1 {
				summary.StdDevMs = stat.StdDev(durations, nil)
			}
			summaries = append(summaries, summary)
		}
	}
	return summaries
}

func toCsv(path string, summaries []Summary) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	header := []string{"Scenario", "Races", "Heats", "Boats", "Strategy", "Backend", "Runs", "Solved", "Status", "Variables", "Clauses", "Mean(ms)", "StdDev(ms)", "Median(ms)"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}

	for _, summary := range summaries {
		record := []string{
			summary.Scenario.Name,
			fmt.Sprintf("%d", summary.Scenario.Races),
			fmt.Sprintf("%d", summary.Scenario.Heats),
			fmt.Sprintf("%d", summary.Scenario.Boats),
			summary.Variant.Strategy.String(),
			summary.Variant.Backend,
			fmt.Sprintf("%d", summary.Runs),
			fmt.Sprintf("%d", summary.Solved),
			summary.Status.String(),
			fmt.Sprintf("%d", summary.Variables),
			fmt.Sprintf("%d", summary.Clauses),
			fmt.Sprintf("%.1f", summary.MeanMs),
			fmt.Sprintf("%.1f", summary.StdDevMs),
			fmt.Sprintf("%.1f", summary.MedianMs),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("cannot write CSV record: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
