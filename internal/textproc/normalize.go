package textproc

import (
	"regexp"
	"strings"
)

var (
	spaceRunRe    = regexp.MustCompile(`[ \t]+`)
	blankRunRe    = regexp.MustCompile(`\n{4,}`)
	numericLineRe = regexp.MustCompile(`(?m)^[ \t]*\d+[ \t]*$`)
	hyphenBreakRe = regexp.MustCompile(`([a-zàâäéèêëïîôöùûüÿçA-ZÀÂÄÉÈÊËÏÎÔÖÙÛÜŸÇ])-[ \t]*\n[ \t]*([a-zàâäéèêëïîôöùûüÿç])`)
	brokenLineRe  = regexp.MustCompile(`([a-zàâäéèêëïîôöùûüÿç,])[ \t]*\n[ \t]*([a-zàâäéèêëïîôöùûüÿç])`)
	trailingWSRe  = regexp.MustCompile(`(?m)[ \t]+$`)
)

// Short repeated lines up to this many runes are treated as running headers.
const maxHeaderLen = 30

// NormalizeText cleans raw extracted text while preserving paragraph and line
// structure. Control characters are dropped (keeping \n and \t), newlines are
// normalized to \n, horizontal whitespace runs collapse to a single space and
// at most two consecutive blank lines survive. Accented letters pass through
// untouched. Total over any input; NormalizeText(NormalizeText(x)) == NormalizeText(x).
func NormalizeText(raw string) string {
	if raw == "" {
		return ""
	}
	s := stripControls(raw)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = spaceRunRe.ReplaceAllString(s, " ")
	s = trailingWSRe.ReplaceAllString(s, "")
	s = blankRunRe.ReplaceAllString(s, "\n\n\n")
	return strings.TrimSpace(s)
}

// NormalizePDFText applies NormalizeText plus PDF-specific repairs: isolated
// page-number lines are dropped, short lines repeated verbatim later in the
// document (running headers and footers) are removed, words split across a
// line break by a trailing hyphen are rejoined, and sentence fragments broken
// mid-line are stitched back together.
func NormalizePDFText(raw string) string {
	s := NormalizeText(raw)
	if s == "" {
		return ""
	}
	s = numericLineRe.ReplaceAllString(s, "")
	s = dropRepeatedShortLines(s)
	s = hyphenBreakRe.ReplaceAllString(s, "$1$2")
	s = brokenLineRe.ReplaceAllString(s, "$1 $2")
	s = blankRunRe.ReplaceAllString(s, "\n\n\n")
	return strings.TrimSpace(s)
}

func stripControls(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n' || r == '\t' || r == '\r':
			b.WriteRune(r)
		case r < 0x20 || r == 0x7F || r == '\ufeff':
			// control characters and BOM
		case r == '\u00a0':
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// dropRepeatedShortLines removes every occurrence but the last of short lines
// that appear verbatim more than once. Page headers and footers repeat on
// every page; real prose lines of that length almost never do.
func dropRepeatedShortLines(s string) string {
	lines := strings.Split(s, "\n")
	remaining := make(map[string]int, len(lines))
	for _, line := range lines {
		if n := len([]rune(line)); n >= 1 && n <= maxHeaderLen && strings.TrimSpace(line) != "" {
			remaining[line]++
		}
	}
	out := lines[:0]
	for _, line := range lines {
		if c, ok := remaining[line]; ok {
			remaining[line] = c - 1
			if c > 1 {
				continue
			}
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
