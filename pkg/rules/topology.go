package rules

import (
	"strings"

	"decay-ca/pkg/core"
)

// Topology selects which surrounding cells count as neighbours.
type Topology uint8

const (
	// Moore counts the eight surrounding cells.
	Moore Topology = iota
	// VonNeumann counts the four orthogonally adjacent cells.
	VonNeumann
)

// ParseTopology accepts m, moore, v, vn, vonneumann and von-neumann in any case.
func ParseTopology(s string) (Topology, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "moore":
		return Moore, nil
	case "v", "vn", "vonneumann", "von-neumann", "von_neumann":
		return VonNeumann, nil
	}
	return 0, core.Configf("topology", "unknown neighbourhood %q (want moore or vonneumann)", s)
}

// MaxNeighbors returns the largest possible neighbour count.
func (t Topology) MaxNeighbors() int {
	if t == VonNeumann {
		return 4
	}
	return 8
}

func (t Topology) valid() bool { return t == Moore || t == VonNeumann }

func (t Topology) String() string {
	switch t {
	case Moore:
		return "moore"
	case VonNeumann:
		return "vonneumann"
	}
	return "unknown"
}
