// Package caret pairs a text value with a caret offset and the direction the
// caret leans while the text is being reformatted.
package caret

import "fmt"

// Gravity is either forward (the caret skips over literals inserted at it)
// or backward (the caret rewinds over literals it has just passed).
type Gravity struct {
	backward bool
	flag     bool
}

// Forward is insertion gravity. With autocomplete, literals that follow
// the caret are filled in before the user types past them.
func Forward(autocomplete bool) Gravity { return Gravity{flag: autocomplete} }

// Backward is deletion gravity. With autoskip, literals left dangling at
// the end of the value are trimmed.
func Backward(autoskip bool) Gravity { return Gravity{backward: true, flag: autoskip} }

func (g Gravity) IsForward() bool    { return !g.backward }
func (g Gravity) Autocomplete() bool { return !g.backward && g.flag }
func (g Gravity) Autoskip() bool     { return g.backward && g.flag }

func (g Gravity) String() string {
	if g.backward {
		return fmt.Sprintf("backward(autoskip=%t)", g.flag)
	}
	return fmt.Sprintf("forward(autocomplete=%t)", g.flag)
}

// String is a text with a caret. Caret counts runes from the start.
type String struct {
	Text    string
	Caret   int
	Gravity Gravity
}

// New clamps caret into the text.
func New(text string, caret int, gravity Gravity) String {
	return String{Text: text, Caret: clamp(caret, len([]rune(text))), Gravity: gravity}
}

// Runes returns the text and a caret clamped to it.
func (s String) Runes() ([]rune, int) {
	runes := []rune(s.Text)
	return runes, clamp(s.Caret, len(runes))
}

// Reversed mirrors the text and moves the caret to the mirrored offset.
func (s String) Reversed() String {
	runes, caret := s.Runes()
	return String{Text: string(Reverse(runes)), Caret: len(runes) - caret, Gravity: s.Gravity}
}

// Reverse reverses runes in place and returns them.
func Reverse(runes []rune) []rune {
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return runes
}

func clamp(caret, length int) int {
	if caret < 0 {
		return 0
	}
	if caret > length {
		return length
	}
	return caret
}

// Iterator scans a String one rune at a time and tells whether an edit at
// the scan position would move the caret.
type Iterator struct {
	runes   []rune
	caret   int
	gravity Gravity
	index   int
}

func NewIterator(s String) *Iterator {
	runes, caret := s.Runes()
	return &Iterator{runes: runes, caret: caret, gravity: s.Gravity}
}

// InsertionAffectsCaret is true once the scan reaches the caret. With
// backward gravity an insertion exactly at the caret stays after it.
func (it *Iterator) InsertionAffectsCaret() bool {
	if it.gravity.backward {
		return it.index < it.caret
	}
	return it.index <= it.caret
}

// DeletionAffectsCaret is true while the scan is before the caret.
func (it *Iterator) DeletionAffectsCaret() bool {
	return it.index < it.caret
}

// Next returns the rune under the scan and advances past it.
func (it *Iterator) Next() (rune, bool) {
	if it.index >= len(it.runes) {
		return 0, false
	}
	r := it.runes[it.index]
	it.index++
	return r, true
}
