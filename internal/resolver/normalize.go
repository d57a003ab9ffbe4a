package resolver

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// diacriticFolder decomposes characters and drops combining marks, so that
// "SÈTE" and "SETE" normalize to the same string.
var diacriticFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// multiSpaceRegex matches runs of whitespace for collapsing.
var multiSpaceRegex = regexp.MustCompile(`\s+`)

// Normalize canonicalizes text for comparison: uppercase, diacritics
// stripped, hyphens and whitespace runs collapsed to single spaces, trimmed.
// Commas are preserved because candidate parsing splits on them.
func Normalize(text string) string {
	folded, _, err := transform.String(diacriticFolder, text)
	if err != nil {
		// Fold failure leaves the input usable, just unfolded.
		folded = text
	}
	upper := strings.ToUpper(folded)
	upper = strings.ReplaceAll(upper, "-", " ")
	upper = multiSpaceRegex.ReplaceAllString(upper, " ")
	return strings.TrimSpace(upper)
}

// normalizeSegments normalizes each comma-separated segment independently so
// that " Paris ,  France" and "PARIS, FRANCE" compare equal.
func normalizeSegments(text string) []string {
	parts := strings.Split(text, ",")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		segments = append(segments, Normalize(part))
	}
	return segments
}

// joinSegments renders normalized segments back into canonical
// "A, B, C" form.
func joinSegments(segments []string) string {
	return strings.Join(segments, ", ")
}
