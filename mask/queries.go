package mask

import "github.com/gnoswap-labs/inputmask/internal/state"

// Placeholder is the ghost text for an empty field: literals as they are
// and one class character per value slot ('0' digit, 'a' letter,
// '-' alphanumeric, the notation character for custom classes).
func (m *Mask) Placeholder() string {
	p := m.appendPlaceholder(m.chain.Head(), nil)
	if m.rtl {
		return reverseString(p)
	}
	return p
}

// AcceptableTextLength is the shortest formatted text that completes the mask.
func (m *Mask) AcceptableTextLength() int {
	return m.count(state.KindFixed, state.KindFree, state.KindValue)
}

// TotalTextLength is the longest formatted text the mask produces.
func (m *Mask) TotalTextLength() int {
	return m.count(state.KindFixed, state.KindFree, state.KindValue, state.KindOptionalValue)
}

// AcceptableValueLength is the shortest extracted value that completes the mask.
func (m *Mask) AcceptableValueLength() int {
	return m.count(state.KindFixed, state.KindValue)
}

// TotalValueLength is the longest extracted value the mask produces.
func (m *Mask) TotalValueLength() int {
	return m.count(state.KindFixed, state.KindValue, state.KindOptionalValue)
}

func (m *Mask) count(kinds ...state.Kind) int {
	n := 0
	for i := m.chain.Head(); i != state.EOL; i = m.chain.Child(i) {
		kind := m.chain.At(i).Kind
		for _, k := range kinds {
			if kind == k {
				n++
				break
			}
		}
	}
	return n
}

func (m *Mask) appendPlaceholder(i state.Index, placeholder []rune) string {
	for ; i != state.EOL; i = m.chain.Child(i) {
		s := m.chain.At(i)
		switch s.Kind {
		case state.KindFixed, state.KindFree:
			placeholder = append(placeholder, s.Char)
		case state.KindValue, state.KindOptionalValue:
			if s.Type.Elliptical {
				return string(placeholder)
			}
			placeholder = append(placeholder, s.Type.Placeholder())
		}
	}
	return string(placeholder)
}

// noMandatoryLeft walks from i and stops at the first state that decides
// completion: EOL and elliptical slots complete, fixed literals and
// mandatory slots do not.
func (m *Mask) noMandatoryLeft(i state.Index) bool {
	for {
		s := m.chain.At(i)
		switch s.Kind {
		case state.KindEOL:
			return true
		case state.KindValue:
			return s.Type.Elliptical
		case state.KindFixed:
			return false
		}
		i = s.Child
	}
}
