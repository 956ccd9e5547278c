package main

import (
	"fmt"
	"iter"
	"time"

	pcore "decay-ca/pkg/core"
	"decay-ca/pkg/engine"
	"decay-ca/pkg/rules"
)

type trial struct {
	seed int64
}

type trialResult struct {
	seed       int64
	generation int // first mismatching generation, -1 when every grid matched
	direct     time.Duration
	conv       time.Duration
	population int
}

func (r trialResult) matched() bool { return r.generation < 0 }

func (r trialResult) String() string {
	return fmt.Sprintf("seed=%d direct=%s conv=%s final population=%d",
		r.seed, r.direct.Round(time.Microsecond), r.conv.Round(time.Microsecond), r.population)
}

type bench struct {
	rows, cols  int
	probability float64
	iterations  int
	bands       int
	rules       *rules.RuleSet
}

// run pulls both engines' sequences in lockstep, timing each pull and
// comparing every generation.
func (b bench) run(t trial) (trialResult, error) {
	initial, err := pcore.RandomGrid(b.rows, b.cols, b.probability, b.rules.State(), t.seed)
	if err != nil {
		return trialResult{}, err
	}
	direct, err := engine.NewSequence(initial, engine.NewDirect(b.rules, b.bands), b.iterations)
	if err != nil {
		return trialResult{}, err
	}
	conv, err := engine.NewSequence(initial, engine.NewConvolution(b.rules), b.iterations)
	if err != nil {
		return trialResult{}, err
	}

	nextDirect, stopDirect := iter.Pull2(direct.All())
	defer stopDirect()
	nextConv, stopConv := iter.Pull2(conv.All())
	defer stopConv()

	res := trialResult{seed: t.seed, generation: -1}
	for {
		start := time.Now()
		gen, a, okA := nextDirect()
		res.direct += time.Since(start)

		start = time.Now()
		_, c, okC := nextConv()
		res.conv += time.Since(start)

		if !okA || !okC {
			if okA != okC {
				return res, fmt.Errorf("seed %d: sequences ended at different lengths", t.seed)
			}
			return res, nil
		}
		res.population = c.Population()
		if res.matched() && !a.Equal(c) {
			res.generation = gen
		}
	}
}
