package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lower-cases s and strips diacritics: "São Leopoldo" -> "sao leopoldo".
// Surrounding whitespace is trimmed.
func Fold(s string) string {
	lowered := strings.ToLower(strings.TrimSpace(s))
	if lowered == "" {
		return ""
	}

	// transform.Chain keeps internal buffers, so each call builds its own chain.
	stripAccents := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(stripAccents, lowered)
	if err != nil {
		return lowered
	}
	return folded
}

// runeLen counts characters rather than bytes so accented input is measured fairly.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// titleWord upper-cases the first rune of w and lower-cases the rest.
func titleWord(w string) string {
	if w == "" {
		return w
	}
	r := []rune(strings.ToLower(w))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// titleCase applies titleWord to every whitespace-delimited token.
func titleCase(s string) string {
	tokens := strings.Fields(s)
	for i, tok := range tokens {
		tokens[i] = titleWord(tok)
	}
	return strings.Join(tokens, " ")
}
