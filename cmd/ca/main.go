//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"decay-ca/internal/app"
	"decay-ca/internal/config"
	"decay-ca/internal/core"
	"decay-ca/internal/logging"
	_ "decay-ca/internal/sims/life"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	run, err := config.Load(cfg.RunFile)
	if err != nil {
		log.Fatalf("load run: %v", err)
	}
	if err := run.Validate(); err != nil {
		log.Fatalf("invalid run: %v", err)
	}
	periodSet := false
	flag.Visit(func(f *flag.Flag) { periodSet = periodSet || f.Name == "period" })
	if !periodSet {
		cfg.Period = time.Duration(run.PeriodMS) * time.Millisecond
	}

	logger := logging.New(logging.Options{Level: run.Log.Level, Development: run.Log.Development, File: run.Log.File})
	defer func() { _ = logger.Sync() }()

	sim, err := core.Build(cfg.Sim, run.SimParams())
	if err != nil {
		logger.Fatal("build sim", zap.Error(err))
	}
	logger.Info("starting viewer",
		zap.String("sim", sim.Name()),
		zap.Int("rows", run.Rows),
		zap.Int("cols", run.Cols),
		zap.String("rule", run.Rule),
		zap.Duration("period", cfg.Period),
	)

	game := app.New(sim, cfg, run.Seed, logger)
	size := sim.Size()

	ebiten.SetWindowTitle("decay-ca — " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.HUDWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("viewer stopped", zap.Error(err))
	}
}
