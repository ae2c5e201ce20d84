// Package itinerary implements the itinerary Markdown format: a serializer, a line-level parser that
// collects diagnostics instead of failing, a validator on top of the parser, and a lossy line filter
// for cleaning pasted or generated text before validation.
//
// Every function in this package is pure and safe for concurrent use.
package itinerary

import (
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// invisible matches zero-width spaces, directional marks and the BOM.
var invisible = runes.Predicate(func(r rune) bool {
	switch {
	case r >= 0x200B && r <= 0x200F:
		return true
	case r >= 0x202A && r <= 0x202E:
		return true
	case r == 0x2060, r == 0xFEFF:
		return true
	}
	return false
})

var stripInvisible = runes.Remove(invisible)

var pipeReplacer = strings.NewReplacer("｜", "|")

// timeReplacer maps the fullwidth colon and every dash-like rune to ASCII.
var timeReplacer = strings.NewReplacer(
	"：", ":", // fullwidth colon
	"—", "-", // em dash
	"–", "-", // en dash
	"－", "-", // fullwidth hyphen-minus
	"‐", "-", // hyphen
	"‑", "-", // non-breaking hyphen
	"‒", "-", // figure dash
	"―", "-", // horizontal bar
	"−", "-", // minus sign
	"~", "-",
	"〜", "-", // wave dash
	"～", "-", // fullwidth tilde
	"﹣", "-", // small hyphen-minus
)

// StripInvisible removes invisible formatting runes that break pattern matching.
func StripInvisible(s string) string {
	out, _, err := transform.String(stripInvisible, s)
	if err != nil {
		return strings.Map(func(r rune) rune {
			if invisible.Contains(r) {
				return -1
			}
			return r
		}, s)
	}
	return out
}

// NormalizePipes strips invisible runes and maps the fullwidth pipe to '|'.
func NormalizePipes(s string) string {
	return pipeReplacer.Replace(StripInvisible(s))
}

// NormalizeLine prepares a single line for classification.
func NormalizeLine(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(NormalizePipes(s), "\r", ""))
}

// NormalizeTimeRange canonicalizes the time segment of a row: ASCII colon and hyphen,
// single spaces, no surrounding whitespace.
func NormalizeTimeRange(s string) string {
	return collapseSpace(timeReplacer.Replace(StripInvisible(s)))
}

// Normalize applies every canonicalization at once. It is total and idempotent.
func Normalize(s string) string {
	s = strings.ReplaceAll(StripInvisible(s), "\r", "")
	return collapseSpace(timeReplacer.Replace(pipeReplacer.Replace(s)))
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
