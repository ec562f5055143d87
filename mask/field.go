package mask

// Masker is anything that formats a caret string, a *Mask or a *Selector.
type Masker interface {
	Apply(text CaretString) Result
	Placeholder() string
}

var (
	_ Masker = (*Mask)(nil)
	_ Masker = (*Selector)(nil)
)

// Field models a single text input driven by a masker. It keeps the last
// formatted text and caret and replays each edit through the masker the
// way a UI text field would.
type Field struct {
	masker       Masker
	text         []rune
	caret        int
	autocomplete bool
	autoskip     bool
	last         Result
}

// NewField returns an empty field. autocomplete and autoskip configure
// the forward and backward gravities used for typing and deleting.
func NewField(m Masker, autocomplete, autoskip bool) *Field {
	f := &Field{masker: m, autocomplete: autocomplete, autoskip: autoskip}
	f.last = Result{FormattedText: NewCaretString("", 0, Forward(autocomplete))}
	return f
}

// Type inserts s at the caret.
func (f *Field) Type(s string) Result {
	ins := []rune(s)
	text := make([]rune, 0, len(f.text)+len(ins))
	text = append(text, f.text[:f.caret]...)
	text = append(text, ins...)
	text = append(text, f.text[f.caret:]...)
	return f.apply(string(text), f.caret+len(ins), Forward(f.autocomplete))
}

// Backspace removes the rune before the caret.
func (f *Field) Backspace() Result {
	if f.caret == 0 {
		return f.apply(string(f.text), 0, Backward(f.autoskip))
	}
	text := make([]rune, 0, len(f.text))
	text = append(text, f.text[:f.caret-1]...)
	text = append(text, f.text[f.caret:]...)
	return f.apply(string(text), f.caret-1, Backward(f.autoskip))
}

// SetText replaces the whole content, as a paste would.
func (f *Field) SetText(s string) Result {
	n := len([]rune(s))
	return f.apply(s, n, Forward(f.autocomplete))
}

// MoveCaret places the caret without editing.
func (f *Field) MoveCaret(offset int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(f.text) {
		offset = len(f.text)
	}
	f.caret = offset
}

func (f *Field) apply(text string, caretPos int, gravity Gravity) Result {
	res := f.masker.Apply(NewCaretString(text, caretPos, gravity))
	f.text, f.caret = res.FormattedText.Runes()
	f.last = res
	return res
}

func (f *Field) Text() string   { return string(f.text) }
func (f *Field) Caret() int     { return f.caret }
func (f *Field) Result() Result { return f.last }
