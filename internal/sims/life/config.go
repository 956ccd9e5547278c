package life

import (
	"strconv"

	pcore "decay-ca/pkg/core"
	"decay-ca/pkg/engine"
	"decay-ca/pkg/rules"
)

// Config holds parameters for the decaying life automaton.
type Config struct {
	Width  int
	Height int

	State    int
	Topology rules.Topology
	Birth    []int
	Survive  []int

	Algorithm   engine.Algorithm
	Probability float64
	Seed        int64

	// Iterations bounds the run; 0 runs until the viewer quits.
	Iterations int
}

// DefaultConfig returns the classic Conway setup on a small field.
func DefaultConfig() Config {
	return Config{
		Width:       10,
		Height:      10,
		State:       1,
		Topology:    rules.Moore,
		Birth:       []int{3},
		Survive:     []int{2, 3},
		Algorithm:   engine.Convolution,
		Probability: 0.2,
		Seed:        42,
	}
}

// FromMap populates a Config from a string map. Width and height fall back to
// the defaults when they do not parse; every rule or run setting that fails to
// parse is reported.
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	if cfg == nil {
		return c, nil
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["state"]; ok {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return c, pcore.Configf("state", "not an integer: %q", v)
		}
		c.State = parsed
	}
	if v, ok := cfg["topology"]; ok {
		t, err := rules.ParseTopology(v)
		if err != nil {
			return c, err
		}
		c.Topology = t
	}
	if v, ok := cfg["rule"]; ok && v != "" {
		birth, survive, err := rules.ParseNotation(v)
		if err != nil {
			return c, err
		}
		c.Birth, c.Survive = birth, survive
	}
	if v, ok := cfg["birth"]; ok {
		counts, err := rules.ParseCounts(v)
		if err != nil {
			return c, err
		}
		c.Birth = counts
	}
	if v, ok := cfg["survive"]; ok {
		counts, err := rules.ParseCounts(v)
		if err != nil {
			return c, err
		}
		c.Survive = counts
	}
	if v, ok := cfg["algorithm"]; ok {
		alg, err := engine.ParseAlgorithm(v)
		if err != nil {
			return c, err
		}
		c.Algorithm = alg
	}
	if v, ok := cfg["p"]; ok {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed < 0 || parsed > 1 {
			return c, pcore.Configf("p", "want a probability in [0,1], got %q", v)
		}
		c.Probability = parsed
	}
	if v, ok := cfg["seed"]; ok {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c, pcore.Configf("seed", "not an integer: %q", v)
		}
		c.Seed = parsed
	}
	if v, ok := cfg["iterations"]; ok {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			return c, pcore.Configf("iterations", "want a non-negative integer, got %q", v)
		}
		c.Iterations = parsed
	}
	return c, nil
}

// RuleSet validates and builds the transition rule.
func (c Config) RuleSet() (*rules.RuleSet, error) {
	return rules.New(c.State, c.Topology, c.Birth, c.Survive)
}
