package extract

import (
	"errors"
	"fmt"
	"strings"
)

var ErrGranularity = errors.New("unknown granularity")

// Granularity selects the scope the declaration sets are collected from.
type Granularity int

const (
	// Class treats the input as a complete compilation unit.
	Class Granularity = iota
	// Method treats the input as a single class member.
	Method
)

var granularityNames = map[Granularity]string{
	Class:  "class",
	Method: "method",
}

func Granularities() []Granularity {
	return []Granularity{Class, Method}
}

func (g Granularity) String() string {
	if name, ok := granularityNames[g]; ok {
		return name
	}
	return "unknown"
}

// ParseGranularity accepts the granularity names in any letter case.
func ParseGranularity(s string) (Granularity, error) {
	for g, name := range granularityNames {
		if strings.EqualFold(s, name) {
			return g, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (want one of %s)", ErrGranularity, s, strings.Join(GranularityNames(), ", "))
}

func GranularityNames() []string {
	names := make([]string, 0, len(granularityNames))
	for _, g := range Granularities() {
		names = append(names, g.String())
	}
	return names
}
