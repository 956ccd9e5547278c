package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"decay-ca/internal/config"
	"decay-ca/internal/logging"
)

func main() {
	runFile := flag.String("run", "", "YAML run description")
	trials := flag.Int("trials", 8, "random fields to compare")
	workers := flag.Int("workers", 1, "trials evaluated concurrently")
	bands := flag.Int("bands", runtime.NumCPU(), "row bands for the direct engine")
	rows := flag.Int("rows", 0, "override rows")
	cols := flag.Int("cols", 0, "override cols")
	iterations := flag.Int("iterations", -1, "override generations per trial")
	rule := flag.String("rule", "", "override rule in B/S notation")
	topology := flag.String("topology", "", "override neighbourhood (moore or vonneumann)")
	state := flag.Int("state", 0, "override state")
	flag.Parse()

	run, err := config.Load(*runFile)
	if err != nil {
		log.Fatalf("load run: %v", err)
	}
	if *rows > 0 {
		run.Rows = *rows
	}
	if *cols > 0 {
		run.Cols = *cols
	}
	if *iterations >= 0 {
		run.Iterations = *iterations
	}
	if *rule != "" {
		run.Rule = *rule
	}
	if *topology != "" {
		run.Topology = *topology
	}
	if *state > 0 {
		run.State = *state
	}
	if err := run.Validate(); err != nil {
		log.Fatalf("invalid run: %v", err)
	}
	rs, err := run.RuleSet()
	if err != nil {
		log.Fatalf("invalid run: %v", err)
	}

	logger := logging.New(logging.Options{Level: run.Log.Level, Development: run.Log.Development, File: run.Log.File})
	defer func() { _ = logger.Sync() }()
	logger = logger.With(zap.String("run_id", uuid.NewString()))
	logger.Info("comparing engines",
		append(logging.RuleFields(rs.Notation(), rs.Topology().String(), rs.State(), "both"),
			zap.Int("rows", run.Rows),
			zap.Int("cols", run.Cols),
			zap.Int("iterations", run.Iterations),
			zap.Int("trials", *trials),
			zap.Int("bands", *bands),
		)...)

	b := bench{
		rows:        run.Rows,
		cols:        run.Cols,
		probability: run.Probability,
		iterations:  run.Iterations,
		bands:       *bands,
		rules:       rs,
	}

	jobs := make(chan trial)
	results := make(chan trialResult)
	var wg sync.WaitGroup
	for i := 0; i < max(*workers, 1); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range jobs {
				res, err := b.run(t)
				if err != nil {
					logger.Fatal("trial failed", zap.Int64("seed", t.seed), zap.Error(err))
				}
				results <- res
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()
	go func() {
		for i := 0; i < *trials; i++ {
			jobs <- trial{seed: run.Seed + int64(i)}
		}
		close(jobs)
	}()

	start := time.Now()
	var all []trialResult
	for res := range results {
		all = append(all, res)
		logger.Debug("trial done", zap.Int64("seed", res.seed), zap.Duration("direct", res.direct), zap.Duration("conv", res.conv))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].seed < all[j].seed })

	ok := color.New(color.FgGreen, color.Bold).SprintFunc()
	bad := color.New(color.FgRed, color.Bold).SprintFunc()
	var direct, conv time.Duration
	mismatches := 0
	for _, res := range all {
		direct += res.direct
		conv += res.conv
		if res.matched() {
			fmt.Printf("%s %s\n", ok("MATCH   "), res)
			continue
		}
		mismatches++
		fmt.Printf("%s %s first difference at generation %d\n", bad("MISMATCH"), res, res.generation)
	}

	fmt.Printf("\n%d trials of %d generations on %dx%d (%s) in %s\n",
		len(all), run.Iterations, run.Rows, run.Cols, rs, time.Since(start).Round(time.Millisecond))
	fmt.Printf("  standard:    %s\n", direct.Round(time.Microsecond))
	fmt.Printf("  convolution: %s\n", conv.Round(time.Microsecond))
	if conv > 0 {
		fmt.Printf("  speedup:     %.2fx\n", float64(direct)/float64(conv))
	}
	logger.Info("comparison finished", zap.Int("mismatches", mismatches), zap.Duration("direct", direct), zap.Duration("conv", conv))
	if mismatches > 0 {
		_ = logger.Sync()
		os.Exit(1)
	}
}
