package mask

import (
	"strings"

	"github.com/gnoswap-labs/inputmask/internal/compiler"
)

// NewRTL compiles a right-to-left mask. The pattern is written left to
// right as usual but filled from its end, which suits amounts such as
// "[000],[000],[000]" where the last group is the one being typed.
func NewRTL(pattern string, notations ...Notation) (*Mask, error) {
	c, err := compiler.New(notations...)
	if err != nil {
		return nil, err
	}
	return compile(c, pattern, true)
}

var mirrored = map[rune]rune{'[': ']', ']': '[', '{': '}', '}': '{'}

// reversedFormat mirrors a pattern. Escapes stay in front of the character
// they escape and unescaped brackets and braces swap sides.
func reversedFormat(pattern string) string {
	runes := []rune(pattern)
	units := make([][]rune, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		if runes[i] == '\\' && i+1 < len(runes) {
			units = append(units, runes[i:i+2])
			i++
			continue
		}
		units = append(units, runes[i:i+1])
	}

	var sb strings.Builder
	for i := len(units) - 1; i >= 0; i-- {
		u := units[i]
		if len(u) == 1 {
			if m, ok := mirrored[u[0]]; ok {
				sb.WriteRune(m)
				continue
			}
		}
		sb.WriteString(string(u))
	}
	return sb.String()
}
