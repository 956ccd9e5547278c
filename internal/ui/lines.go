package ui

import (
	"fmt"
	"strings"

	"decay-ca/internal/core"
)

// Status is the run state shown under the parameter list.
type Status struct {
	Generation int
	Population int
	Done       bool
	Paused     bool
}

// PanelLines lays out the HUD text: a title, one block per parameter group
// and the run status.
func PanelLines(sim core.Sim, status Status) []string {
	lines := []string{title(sim), ""}
	if provider, ok := sim.(core.ParameterProvider); ok {
		for _, group := range provider.Parameters().Groups {
			lines = append(lines, group.Name)
			for _, p := range group.Params {
				lines = append(lines, fmt.Sprintf("  %-14s %s", p.Label, p.Value))
			}
			lines = append(lines, "")
		}
	}
	state := "running"
	switch {
	case status.Done:
		state = "finished"
	case status.Paused:
		state = "paused"
	}
	lines = append(lines,
		fmt.Sprintf("Generation %d", status.Generation),
		fmt.Sprintf("Alive      %d", status.Population),
		state,
	)
	return lines
}

func title(sim core.Sim) string {
	if sim == nil || sim.Name() == "" {
		return "Parameters"
	}
	name := sim.Name()
	return strings.ToUpper(name[:1]) + name[1:] + " Parameters"
}

// Population counts nonzero palette indices.
func Population(cells []uint8) int {
	n := 0
	for _, c := range cells {
		if c != 0 {
			n++
		}
	}
	return n
}
