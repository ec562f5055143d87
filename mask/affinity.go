package mask

import (
	"fmt"
	"math"
	"sort"
	"unicode/utf8"
)

// Strategy scores how well a mask fits a text. Higher is better.
type Strategy int

const (
	// WholeString uses the affinity reported by Apply.
	WholeString Strategy = iota
	// Prefix counts the leading runes the formatted text shares with the input.
	Prefix
	// Capacity prefers the mask whose total text length is closest to the
	// input length, excluding masks too short for it.
	Capacity
	// ExtractedValueCapacity is Capacity measured on the extracted value.
	ExtractedValueCapacity
)

var strategyNames = map[Strategy]string{
	WholeString:            "whole-string",
	Prefix:                 "prefix",
	Capacity:               "capacity",
	ExtractedValueCapacity: "extracted-value-capacity",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseStrategy accepts the names printed by Strategy.String. An empty name
// is WholeString.
func ParseStrategy(name string) (Strategy, error) {
	if name == "" {
		return WholeString, nil
	}
	for s, n := range strategyNames {
		if n == name {
			return s, nil
		}
	}
	return WholeString, fmt.Errorf("unknown affinity strategy %q", name)
}

// Affinity scores m against text.
func (s Strategy) Affinity(m *Mask, text CaretString) int {
	switch s {
	case Prefix:
		formatted := []rune(m.Apply(text).FormattedText.Text)
		input := []rune(text.Text)
		n := 0
		for n < len(formatted) && n < len(input) && formatted[n] == input[n] {
			n++
		}
		return n
	case Capacity:
		length := utf8.RuneCountInString(text.Text)
		if length > m.TotalTextLength() {
			return math.MinInt
		}
		return length - m.TotalTextLength()
	case ExtractedValueCapacity:
		length := utf8.RuneCountInString(m.Apply(text).ExtractedValue)
		if length > m.TotalValueLength() {
			return math.MinInt
		}
		return length - m.TotalValueLength()
	default:
		return m.Apply(text).Affinity
	}
}

// Selector chooses between a primary mask and affine alternatives for
// every text it formats.
type Selector struct {
	Primary  *Mask
	Affine   []*Mask
	Strategy Strategy
}

// Pick returns the mask with the highest affinity for text. The primary
// mask wins ties; affine masks keep their order among themselves.
func (s *Selector) Pick(text CaretString) *Mask {
	if len(s.Affine) == 0 {
		return s.Primary
	}

	type scored struct {
		mask     *Mask
		affinity int
	}
	candidates := make([]scored, 0, len(s.Affine)+1)
	candidates = append(candidates, scored{s.Primary, s.Strategy.Affinity(s.Primary, text)})
	for _, m := range s.Affine {
		candidates = append(candidates, scored{m, s.Strategy.Affinity(m, text)})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].affinity > candidates[j].affinity
	})
	return candidates[0].mask
}

// Apply formats text with the best mask for it.
func (s *Selector) Apply(text CaretString) Result {
	return s.Pick(text).Apply(text)
}

// Placeholder is the primary mask's placeholder.
func (s *Selector) Placeholder() string {
	return s.Primary.Placeholder()
}
