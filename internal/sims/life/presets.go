package life

import "decay-ca/internal/core"

// presets are named rule variants registered next to "life". Keys given by
// the caller win over the preset's.
var presets = map[string]map[string]string{
	"highlife": {"rule": "B36/S23"},
	"seeds":    {"rule": "B2/S"},
	"daynight": {"rule": "B3678/S34678"},
	"embers":   {"rule": "B3/S23", "state": "6"},
	"diamonds": {"rule": "B1/S1", "topology": "vonneumann", "state": "3"},
}

func withPreset(preset, cfg map[string]string) map[string]string {
	merged := make(map[string]string, len(preset)+len(cfg))
	for k, v := range preset {
		merged[k] = v
	}
	for k, v := range cfg {
		merged[k] = v
	}
	return merged
}

func init() {
	for name, preset := range presets {
		core.Register(name, func(cfg map[string]string) (core.Sim, error) {
			c, err := FromMap(withPreset(preset, cfg))
			if err != nil {
				return nil, err
			}
			return New(c)
		})
	}
}
