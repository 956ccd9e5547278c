package life

import (
	"iter"
	"math"

	"decay-ca/internal/core"
	pcore "decay-ca/pkg/core"
	"decay-ca/pkg/engine"
	"decay-ca/pkg/rules"
)

// unbounded is the generation budget used when Config.Iterations is 0.
const unbounded = math.MaxInt32

// Life renders an engine.Sequence one generation at a time.
type Life struct {
	cfg   Config
	rules *rules.RuleSet
	eng   engine.Engine

	grid  *pcore.Grid
	gen   int
	done  bool
	next  func() (int, *pcore.Grid, bool)
	stop  func()
	cells []uint8
}

// New validates cfg and returns a Life simulation seeded with cfg.Seed.
func New(cfg Config) (*Life, error) {
	rs, err := cfg.RuleSet()
	if err != nil {
		return nil, err
	}
	if _, err := pcore.NewGrid(cfg.Height, cfg.Width); err != nil {
		return nil, err
	}
	if cfg.Probability < 0 || cfg.Probability > 1 {
		return nil, pcore.Configf("p", "must be within [0,1], got %g", cfg.Probability)
	}
	eng, err := engine.New(cfg.Algorithm, rs)
	if err != nil {
		return nil, err
	}
	l := &Life{cfg: cfg, rules: rs, eng: eng, cells: make([]uint8, cfg.Width*cfg.Height)}
	l.Reset(cfg.Seed)
	return l, nil
}

// Name returns the simulation identifier.
func (l *Life) Name() string { return "life" }

// Size returns the grid dimensions.
func (l *Life) Size() core.Size { return core.Size{W: l.cfg.Width, H: l.cfg.Height} }

// Generation is the index of the grid currently shown.
func (l *Life) Generation() int { return l.gen }

// Done reports whether the configured number of iterations has been shown.
func (l *Life) Done() bool { return l.done }

// Grid returns the current generation. Callers must not modify it.
func (l *Life) Grid() *pcore.Grid { return l.grid }

// Rules returns the rule set in use.
func (l *Life) Rules() *rules.RuleSet { return l.rules }

// Reset seeds a fresh random field and restarts the sequence.
func (l *Life) Reset(seed int64) {
	if l.stop != nil {
		l.stop()
	}
	initial, err := pcore.RandomGrid(l.cfg.Height, l.cfg.Width, l.cfg.Probability, l.rules.State(), seed)
	if err != nil {
		// New already validated every input RandomGrid checks.
		panic(err)
	}
	iterations := l.cfg.Iterations
	if iterations == 0 {
		iterations = unbounded
	}
	seq, err := engine.NewSequence(initial, l.eng, iterations)
	if err != nil {
		panic(err)
	}
	l.next, l.stop = iter.Pull2(seq.All())
	l.done = false
	l.advance()
}

// Step shows the next generation, if any remain.
func (l *Life) Step() {
	if l.done {
		return
	}
	l.advance()
}

// Close releases the pending sequence.
func (l *Life) Close() {
	if l.stop != nil {
		l.stop()
		l.stop = nil
	}
}

func (l *Life) advance() {
	gen, g, ok := l.next()
	if !ok {
		l.done = true
		return
	}
	l.gen, l.grid = gen, g
	if l.cfg.Iterations > 0 && gen >= l.cfg.Iterations {
		l.done = true
	}
	l.refreshCells()
}

// Cells exposes vitality scaled to 0..255.
func (l *Life) Cells() []uint8 { return l.cells }

func (l *Life) refreshCells() {
	state := l.rules.State()
	for i, v := range l.grid.Cells() {
		l.cells[i] = uint8(v * 255 / state)
	}
}

// Parameters describes the running configuration.
func (l *Life) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.IntParam("w", "Width", l.cfg.Width),
				core.IntParam("h", "Height", l.cfg.Height),
				core.FloatParam("p", "Initial density", l.cfg.Probability),
				core.Int64Param("seed", "Seed", l.cfg.Seed),
			},
		},
		{
			Name: "Rule",
			Params: []core.Parameter{
				core.StringParam("rule", "Birth/survive", l.rules.Notation()),
				core.StringParam("topology", "Neighbourhood", l.rules.Topology().String()),
				core.IntParam("state", "State", l.rules.State()),
			},
		},
		{
			Name: "Run",
			Params: []core.Parameter{
				core.StringParam("algorithm", "Algorithm", l.eng.Name()),
				core.IntParam("iterations", "Iterations", l.cfg.Iterations),
			},
		},
	}}
}

func init() {
	core.Register("life", func(cfg map[string]string) (core.Sim, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, err
		}
		return New(c)
	})
}
