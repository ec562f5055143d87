// Package sanitizer validates a raw mask pattern and rewrites it into the
// canonical block form the compiler consumes.
package sanitizer

import (
	"sort"
	"strings"

	"github.com/gnoswap-labs/inputmask/internal/types"
)

const escape = '\\'

// Sanitize checks bracket balance, splits optional blocks that mix value
// classes and sorts the characters inside each optional block.
func Sanitize(pattern string) (string, error) {
	if err := checkBraces(pattern); err != nil {
		return "", err
	}
	blocks := divideMixedBlocks(formatBlocks(pattern))
	return strings.Join(sortBlocks(blocks), ""), nil
}

// checkBraces rejects nested, stray, mismatched and unclosed '[' '{' as
// well as a trailing escape.
func checkBraces(pattern string) error {
	var (
		open    rune
		openPos int
		escaped bool
	)
	runes := []rune(pattern)
	for i, c := range runes {
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case escape:
			escaped = true
		case '[', '{':
			if open != 0 {
				return types.NewFormatError(pattern, i, "'"+string(c)+"' nested inside '"+string(open)+"'")
			}
			open, openPos = c, i
		case ']', '}':
			if open != opener(c) {
				return types.NewFormatError(pattern, i, "unmatched '"+string(c)+"'")
			}
			open = 0
		}
	}
	if escaped {
		return types.NewFormatError(pattern, len(runes)-1, "escape at the end of pattern")
	}
	if open != 0 {
		return types.NewFormatError(pattern, openPos, "'"+string(open)+"' is never closed")
	}
	return nil
}

func opener(closer rune) rune {
	if closer == ']' {
		return '['
	}
	return '{'
}

// formatBlocks cuts the pattern at every unescaped bracket or brace so that
// each optional or fixed section becomes its own block.
func formatBlocks(pattern string) []string {
	var (
		blocks  []string
		current strings.Builder
		escaped bool
	)
	flush := func() {
		if current.Len() > 0 {
			blocks = append(blocks, current.String())
			current.Reset()
		}
	}

	for _, c := range pattern {
		if c == escape && !escaped {
			escaped = true
			current.WriteRune(c)
			continue
		}
		if (c == '[' || c == '{') && !escaped {
			flush()
		}
		current.WriteRune(c)
		if (c == ']' || c == '}') && !escaped {
			flush()
		}
		escaped = false
	}
	flush()

	return blocks
}

type valueClass int

const (
	classNone valueClass = iota
	classNumeric
	classLetter
	classAlphaNumeric
)

func classOf(c rune) valueClass {
	switch c {
	case '0', '9':
		return classNumeric
	case 'A', 'a':
		return classLetter
	case '_', '-':
		return classAlphaNumeric
	}
	return classNone
}

// conflicts reports whether block already holds a built-in value character
// of another class than c.
func conflicts(block string, c rune) bool {
	own := classOf(c)
	if own == classNone {
		return false
	}
	for _, b := range block {
		if other := classOf(b); other != classNone && other != own {
			return true
		}
	}
	return false
}

// divideMixedBlocks splits "[00AA]" into "[00][AA]".
func divideMixedBlocks(blocks []string) []string {
	result := make([]string, 0, len(blocks))
	for _, block := range blocks {
		if !strings.HasPrefix(block, "[") {
			result = append(result, block)
			continue
		}

		var (
			buf     strings.Builder
			escaped bool
		)
		for _, c := range block {
			if c == '[' && buf.Len() == 0 {
				buf.WriteRune(c)
				continue
			}
			if c == ']' && !escaped {
				buf.WriteRune(c)
				result = append(result, buf.String())
				buf.Reset()
				break
			}
			if c == escape && !escaped {
				escaped = true
				buf.WriteRune(c)
				continue
			}
			// an escape target stays glued to its escape
			if !escaped && conflicts(buf.String(), c) {
				buf.WriteRune(']')
				result = append(result, buf.String())
				buf.Reset()
				buf.WriteRune('[')
			}
			escaped = false
			buf.WriteRune(c)
		}
		if buf.Len() > 0 {
			result = append(result, buf.String())
		}
	}
	return result
}

// sortBlocks orders the characters of every optional block so that
// mandatory placeholders come first and equivalent patterns compile alike.
func sortBlocks(blocks []string) []string {
	sorted := make([]string, 0, len(blocks))
	for _, block := range blocks {
		if !strings.HasPrefix(block, "[") || strings.ContainsRune(block, escape) {
			sorted = append(sorted, block)
			continue
		}

		inner := strings.TrimSuffix(strings.TrimPrefix(block, "["), "]")
		switch {
		case strings.ContainsAny(inner, "09"), strings.ContainsAny(inner, "Aa"):
			inner = sortRunes(inner)
		default:
			// '_' and '-' sort after every letter; swap them for 'A' and 'a'
			// so mandatory still precedes optional.
			inner = strings.NewReplacer("_", "A", "-", "a").Replace(inner)
			inner = sortRunes(inner)
			inner = strings.NewReplacer("A", "_", "a", "-").Replace(inner)
		}
		sorted = append(sorted, "["+inner+"]")
	}
	return sorted
}

func sortRunes(s string) string {
	runes := []rune(s)
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	return string(runes)
}
