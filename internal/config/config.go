// Package config loads run descriptions for the command line tools. Values
// come from defaults, an optional YAML file and LIFE_* environment variables,
// in increasing order of precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	pcore "decay-ca/pkg/core"
	"decay-ca/pkg/engine"
	"decay-ca/pkg/rules"
)

// Log configures the logger.
type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
	File        string `yaml:"file"`
}

// Run describes one simulation run.
type Run struct {
	Rows        int     `yaml:"rows"`
	Cols        int     `yaml:"cols"`
	Probability float64 `yaml:"probability"`
	Seed        int64   `yaml:"seed"`

	State    int    `yaml:"state"`
	Topology string `yaml:"topology"`
	// Rule is B/S notation. Birth and Survive, when set, override its sections.
	Rule    string `yaml:"rule"`
	Birth   string `yaml:"birth"`
	Survive string `yaml:"survive"`

	Algorithm  string `yaml:"algorithm"`
	Iterations int    `yaml:"iterations"`
	// PeriodMS is the display time per generation in milliseconds.
	PeriodMS int `yaml:"period_ms"`

	Log Log `yaml:"log"`
}

// Default mirrors the classic command line defaults.
func Default() Run {
	return Run{
		Rows:        10,
		Cols:        10,
		Probability: 0.2,
		Seed:        42,
		State:       1,
		Topology:    "moore",
		Rule:        "B3/S23",
		Algorithm:   "convolution",
		Iterations:  10,
		PeriodMS:    500,
		Log:         Log{Level: "info", Development: true},
	}
}

// Load reads the run from path on top of Default and then applies the
// environment. An empty path skips the file. Any .env file in the working
// directory is loaded first; a missing one is not an error.
func Load(path string) (Run, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Run{}, fmt.Errorf("load .env: %w", err)
	}
	run := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Run{}, fmt.Errorf("read run file: %w", err)
		}
		if run, err = Parse(data); err != nil {
			return Run{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := run.ApplyEnv(os.LookupEnv); err != nil {
		return Run{}, err
	}
	return run, nil
}

// Parse decodes YAML on top of Default. Unknown keys are rejected.
func Parse(data []byte) (Run, error) {
	run := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&run); err != nil && !errors.Is(err, io.EOF) {
		return Run{}, fmt.Errorf("decode run: %w", err)
	}
	return run, nil
}

// ApplyEnv overrides fields from LIFE_* variables found by lookup.
func (r *Run) ApplyEnv(lookup func(string) (string, bool)) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"LIFE_ROWS", &r.Rows},
		{"LIFE_COLS", &r.Cols},
		{"LIFE_STATE", &r.State},
		{"LIFE_ITERATIONS", &r.Iterations},
		{"LIFE_PERIOD_MS", &r.PeriodMS},
	}
	for _, f := range ints {
		if v, ok := lookup(f.key); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return pcore.Configf(f.key, "not an integer: %q", v)
			}
			*f.dst = n
		}
	}
	strs := []struct {
		key string
		dst *string
	}{
		{"LIFE_TOPOLOGY", &r.Topology},
		{"LIFE_RULE", &r.Rule},
		{"LIFE_BIRTH", &r.Birth},
		{"LIFE_SURVIVE", &r.Survive},
		{"LIFE_ALGORITHM", &r.Algorithm},
		{"LIFE_LOG_LEVEL", &r.Log.Level},
		{"LIFE_LOG_FILE", &r.Log.File},
	}
	for _, f := range strs {
		if v, ok := lookup(f.key); ok {
			*f.dst = v
		}
	}
	if v, ok := lookup("LIFE_PROBABILITY"); ok {
		p, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return pcore.Configf("LIFE_PROBABILITY", "not a number: %q", v)
		}
		r.Probability = p
	}
	if v, ok := lookup("LIFE_SEED"); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return pcore.Configf("LIFE_SEED", "not an integer: %q", v)
		}
		r.Seed = n
	}
	return nil
}

// RuleSet validates the rule fields and builds the rule set.
func (r Run) RuleSet() (*rules.RuleSet, error) {
	topology, err := rules.ParseTopology(r.Topology)
	if err != nil {
		return nil, err
	}
	var birth, survive []int
	if r.Rule != "" {
		if birth, survive, err = rules.ParseNotation(r.Rule); err != nil {
			return nil, err
		}
	}
	if r.Birth != "" {
		if birth, err = rules.ParseCounts(r.Birth); err != nil {
			return nil, err
		}
	}
	if r.Survive != "" {
		if survive, err = rules.ParseCounts(r.Survive); err != nil {
			return nil, err
		}
	}
	return rules.New(r.State, topology, birth, survive)
}

// EngineAlgorithm parses the algorithm name.
func (r Run) EngineAlgorithm() (engine.Algorithm, error) {
	return engine.ParseAlgorithm(r.Algorithm)
}

// Validate checks everything a run needs before any simulation work starts.
func (r Run) Validate() error {
	if _, err := r.RuleSet(); err != nil {
		return err
	}
	if _, err := r.EngineAlgorithm(); err != nil {
		return err
	}
	if r.Rows <= 0 || r.Cols <= 0 {
		return pcore.Configf("size", "rows and cols must be at least 1, got %dx%d", r.Rows, r.Cols)
	}
	if r.Probability < 0 || r.Probability > 1 {
		return pcore.Configf("probability", "must be within [0,1], got %g", r.Probability)
	}
	if r.Iterations < 0 {
		return pcore.Configf("iterations", "must not be negative, got %d", r.Iterations)
	}
	return nil
}

// InitialGrid samples the starting field from Probability and Seed.
func (r Run) InitialGrid() (*pcore.Grid, error) {
	return pcore.RandomGrid(r.Rows, r.Cols, r.Probability, r.State, r.Seed)
}

// SimParams renders the run as the key/value map sim factories accept.
func (r Run) SimParams() map[string]string {
	params := map[string]string{
		"w":          strconv.Itoa(r.Cols),
		"h":          strconv.Itoa(r.Rows),
		"p":          strconv.FormatFloat(r.Probability, 'f', -1, 64),
		"seed":       strconv.FormatInt(r.Seed, 10),
		"state":      strconv.Itoa(r.State),
		"topology":   r.Topology,
		"rule":       r.Rule,
		"algorithm":  r.Algorithm,
		"iterations": strconv.Itoa(r.Iterations),
	}
	if r.Birth != "" {
		params["birth"] = r.Birth
	}
	if r.Survive != "" {
		params["survive"] = r.Survive
	}
	return params
}
