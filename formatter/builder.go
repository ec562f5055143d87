package formatter

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/fatih/color"
	"github.com/rivo/uniseg"

	"github.com/gnoswap-labs/inputmask/mask"
)

const tabWidth = 8

var (
	warningStyle    = color.New(color.FgHiYellow, color.Bold)
	errorStyle      = color.New(color.FgRed, color.Bold)
	ruleStyle       = color.New(color.FgYellow, color.Bold)
	fileStyle       = color.New(color.FgCyan, color.Bold)
	lineStyle       = color.New(color.FgHiBlue, color.Bold)
	suggestionStyle = color.New(color.FgGreen, color.Bold)
	tailStyle       = color.New(color.Faint)
	noStyle         = color.New(color.FgWhite)
)

const resultTemplate = `{{header .Label .Input}}
{{text .Formatted}}
{{caret .Column}}
{{value .Value}}
{{status .Complete .Affinity}}{{tail .Tail}}`

const placeholderTemplate = `{{header "pattern" .Pattern}}
{{text .Placeholder}}
{{length "acceptable text length" .AcceptableTextLength}}
{{length "total text length" .TotalTextLength}}
{{length "acceptable value length" .AcceptableValueLength}}
{{length "total value length" .TotalValueLength}}
`

// ResultData is what the result template renders.
type ResultData struct {
	Label     string
	Input     string
	Formatted string
	Column    int
	Value     string
	Complete  bool
	Affinity  int
	Tail      string
}

// PlaceholderData is what the placeholder template renders.
type PlaceholderData struct {
	Pattern               string
	Placeholder           string
	AcceptableTextLength  int
	TotalTextLength       int
	AcceptableValueLength int
	TotalValueLength      int
}

var funcMap = template.FuncMap{
	"header": header,
	"text":   text,
	"caret":  caretMarker,
	"value":  value,
	"status": status,
	"tail":   tail,
	"length": length,
}

// FormatResult renders the outcome of applying a mask to input.
func FormatResult(input string, r mask.Result) string {
	return FormatStep("result", input, r)
}

// FormatStep is FormatResult with a custom header label, used when replaying
// keystrokes.
func FormatStep(label, input string, r mask.Result) string {
	data := ResultData{
		Label:     label,
		Input:     input,
		Formatted: r.FormattedText.Text,
		Column:    VisualColumn(r.FormattedText.Text, r.FormattedText.Caret),
		Value:     r.ExtractedValue,
		Complete:  r.Complete,
		Affinity:  r.Affinity,
		Tail:      r.TailPlaceholder,
	}
	return render("result", resultTemplate, data)
}

// FormatPlaceholder renders the placeholder and length queries of m.
func FormatPlaceholder(m *mask.Mask) string {
	data := PlaceholderData{
		Pattern:               m.Pattern(),
		Placeholder:           m.Placeholder(),
		AcceptableTextLength:  m.AcceptableTextLength(),
		TotalTextLength:       m.TotalTextLength(),
		AcceptableValueLength: m.AcceptableValueLength(),
		TotalValueLength:      m.TotalValueLength(),
	}
	return render("placeholder", placeholderTemplate, data)
}

// FormatError renders a failure for the named subject.
func FormatError(subject string, err error) string {
	return errorStyle.Sprint("error: ") + fileStyle.Sprint(subject) + "\n" +
		lineStyle.Sprint("  = ") + noStyle.Sprintf("%v\n", err)
}

func render(name, text string, data any) string {
	tmpl := template.Must(template.New(name).Funcs(funcMap).Parse(text))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("Error formatting %s: %v", name, err)
	}
	return buf.String()
}

// utils functions used in the text templates

func header(label, subject string) string {
	return ruleStyle.Sprintf("%s: ", label) + fileStyle.Sprintf("%q", subject)
}

func text(s string) string {
	return lineStyle.Sprint("  | ") + s
}

func caretMarker(column int) string {
	return lineStyle.Sprint("  | ") + strings.Repeat(" ", column) + suggestionStyle.Sprint("^")
}

func value(v string) string {
	return lineStyle.Sprint("  = ") + fmt.Sprintf("value: %q", v)
}

func status(complete bool, affinity int) string {
	var s string
	if complete {
		s = suggestionStyle.Sprint("complete")
	} else {
		s = warningStyle.Sprint("incomplete")
	}
	return lineStyle.Sprint("  = ") + s + fmt.Sprintf(" (affinity %d)\n", affinity)
}

func tail(t string) string {
	if t == "" {
		return ""
	}
	return lineStyle.Sprint("  = ") + "tail: " + tailStyle.Sprint(t) + "\n"
}

func length(label string, n int) string {
	return lineStyle.Sprint("  = ") + fmt.Sprintf("%s: %d", label, n)
}

// VisualColumn returns the terminal column of a caret placed after the first
// caret runes of line. Wide graphemes take two columns and tabs advance to
// the next tab stop.
func VisualColumn(line string, caret int) int {
	column, runes := 0, 0
	g := uniseg.NewGraphemes(line)
	for runes < caret && g.Next() {
		cluster := g.Runes()
		runes += len(cluster)
		if len(cluster) == 1 && cluster[0] == '\t' {
			column += tabWidth - column%tabWidth
			continue
		}
		column += g.Width()
	}
	return column
}
