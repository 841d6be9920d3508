package channel

import (
	"fmt"
	"strings"
)

// Channel is a spatial axis mapped to a fixed column of every table.
type Channel int

const (
	X Channel = iota
	Y
	Z
)

// All lists the channels in plotting order.
var All = []Channel{X, Y, Z}

func (c Channel) Index() int {
	return int(c)
}

func (c Channel) String() string {
	switch c {
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	default:
		return fmt.Sprintf("Channel(%d)", int(c))
	}
}

// Parse accepts "x", "Y", "z" and similar.
func Parse(s string) (Channel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "X":
		return X, nil
	case "Y":
		return Y, nil
	case "Z":
		return Z, nil
	}
	return 0, fmt.Errorf("unknown channel: %q", s)
}

// ParseList parses a comma-separated list such as "x,z". Empty input yields All.
func ParseList(s string) ([]Channel, error) {
	if strings.TrimSpace(s) == "" {
		return All, nil
	}
	parts := strings.Split(s, ",")
	out := make([]Channel, 0, len(parts))
	seen := make(map[Channel]bool)
	for _, p := range parts {
		c, err := Parse(p)
		if err != nil {
			return nil, err
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out, nil
}
