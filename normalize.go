package main

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var punctReplacer = strings.NewReplacer(
	".", " ", ",", " ", ";", " ", ":", " ", "¡", " ", "!", " ", "¿", " ", "?", " ",
	"(", " ", ")", " ", "[", " ", "]", " ", `"`, " ", "'", " ",
)

// Normalize canonicalizes text for lexicon matching: lower-case, NFD
// decomposition with combining marks stripped (so "cámara" == "camara"),
// punctuation turned into spaces, whitespace runs collapsed, trimmed.
// Total over any input and idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	s := stripDiacritics(strings.ToLower(text))
	s = punctReplacer.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

func stripDiacritics(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
