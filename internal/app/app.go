//go:build ebiten

package app

import (
	"image/color"
	"time"

	"go.uber.org/zap"

	"decay-ca/internal/core"
	"decay-ca/internal/render"
	"decay-ca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	hud     *ui.HUD
	pace    *core.FixedStep
	log     *zap.Logger

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
	finished bool
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config, seed int64, log *zap.Logger) *Game {
	palette := render.VitalityPalette(color.Black, color.White)
	gp := render.NewGridPainter(sim.Size().W, sim.Size().H, palette)
	return &Game{
		sim:     sim,
		painter: gp,
		hud:     ui.NewHUD(sim, cfg.HUDWidth),
		pace:    core.NewFixedStep(cfg.Period),
		log:     log,
		scale:   cfg.Scale,
		seed:    seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
	g.finished = false
	g.log.Info("reset", zap.Int64("seed", seed))
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	if g.tickOnce || (!g.paused && g.pace.ShouldStep()) {
		g.sim.Step()
		g.tickOnce = false
		g.log.Debug("generation", zap.Int("generation", g.sim.Generation()))
	}
	if g.sim.Done() && !g.finished {
		g.finished = true
		g.log.Info("run finished", zap.Int("generation", g.sim.Generation()))
	}
	g.hud.Update(g.paused)
	return nil
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.scale)
	g.hud.Draw(screen, g.sim.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}
