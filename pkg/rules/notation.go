package rules

import (
	"strconv"
	"strings"

	"decay-ca/pkg/core"
)

// ParseCounts reads a neighbour count list. Items are separated by commas or
// spaces and may be single counts ("3") or inclusive ranges ("2-4"). An empty
// string yields an empty list.
func ParseCounts(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == ';' })
	var out []int
	for _, f := range fields {
		lo, hi, isRange := strings.Cut(f, "-")
		if !isRange {
			n, err := strconv.Atoi(f)
			if err != nil {
				return nil, core.Configf("counts", "bad count %q", f)
			}
			out = append(out, n)
			continue
		}
		a, err := strconv.Atoi(lo)
		if err != nil {
			return nil, core.Configf("counts", "bad range start %q", f)
		}
		b, err := strconv.Atoi(hi)
		if err != nil {
			return nil, core.Configf("counts", "bad range end %q", f)
		}
		if b < a {
			return nil, core.Configf("counts", "empty range %q", f)
		}
		for n := a; n <= b; n++ {
			out = append(out, n)
		}
	}
	return out, nil
}

// ParseNotation reads B/S rule notation such as "B3/S23" or "S23/B3". Each
// digit after the prefix is one neighbour count. Prefixes are case-insensitive.
func ParseNotation(s string) (birth, survive []int, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil, core.Configf("rule", "empty notation")
	}
	var seenB, seenS bool
	for _, part := range strings.Split(s, "/") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, nil, core.Configf("rule", "empty section in %q", s)
		}
		counts, err := digitCounts(part[1:])
		if err != nil {
			return nil, nil, core.Configf("rule", "%q: %v", s, err)
		}
		switch part[0] {
		case 'B', 'b':
			if seenB {
				return nil, nil, core.Configf("rule", "duplicate birth section in %q", s)
			}
			seenB, birth = true, counts
		case 'S', 's':
			if seenS {
				return nil, nil, core.Configf("rule", "duplicate survive section in %q", s)
			}
			seenS, survive = true, counts
		default:
			return nil, nil, core.Configf("rule", "section %q needs a B or S prefix", part)
		}
	}
	if !seenB || !seenS {
		return nil, nil, core.Configf("rule", "%q needs both B and S sections", s)
	}
	return birth, survive, nil
}

func digitCounts(s string) ([]int, error) {
	out := make([]int, 0, len(s))
	for _, r := range s {
		if r < '0' || r > '9' {
			return nil, strconv.ErrSyntax
		}
		out = append(out, int(r-'0'))
	}
	return out, nil
}

// FromNotation parses notation and builds the RuleSet in one go.
func FromNotation(notation string, state int, topology Topology) (*RuleSet, error) {
	birth, survive, err := ParseNotation(notation)
	if err != nil {
		return nil, err
	}
	return New(state, topology, birth, survive)
}
