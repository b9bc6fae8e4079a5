package summarize

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Function words a model may legitimately introduce even when they never
// appear in the source text.
var allowedSummaryWords = map[string]struct{}{
	"le": {}, "de": {}, "et": {}, "à": {}, "un": {}, "il": {}, "être": {}, "avoir": {},
	"que": {}, "pour": {}, "dans": {}, "ce": {}, "son": {}, "sa": {}, "ses": {},
	"the": {}, "be": {}, "to": {}, "of": {}, "and": {}, "a": {}, "in": {}, "that": {},
	"have": {}, "it": {}, "for": {}, "not": {}, "on": {}, "with": {},
	"est": {}, "sont": {}, "était": {}, "sera": {}, "fait": {}, "dit": {}, "peut": {},
	"doit": {}, "très": {}, "plus": {}, "moins": {},
	"is": {}, "are": {}, "was": {}, "will": {}, "can": {}, "could": {}, "should": {},
	"would": {}, "has": {}, "had": {}, "do": {}, "does": {},
}

var sentenceSpacingRe = regexp.MustCompile(`([.!?])\s*([A-Z])`)

// postprocessSummary flattens whitespace and regularizes sentence spacing in
// model output.
func postprocessSummary(summary string) string {
	s := wsRunRe.ReplaceAllString(strings.TrimSpace(summary), " ")
	return sentenceSpacingRe.ReplaceAllString(s, "$1 $2")
}

// looksGrounded reports whether at least 70% of the summary's words trace back
// to the original text, its singular/plural variants, or the allowlist of
// function words. A summary below that bar is treated as hallucinated.
func looksGrounded(summary, original string) bool {
	summaryWords := strings.Fields(strings.ToLower(summary))
	if len(summaryWords) == 0 {
		return false
	}
	originalWords := map[string]struct{}{}
	for _, w := range strings.Fields(strings.ToLower(original)) {
		originalWords[w] = struct{}{}
	}

	valid := 0
	for _, w := range summaryWords {
		if utf8.RuneCountInString(w) <= 2 {
			valid++
			continue
		}
		if _, ok := allowedSummaryWords[w]; ok {
			valid++
			continue
		}
		if _, ok := originalWords[w]; ok {
			valid++
			continue
		}
		if _, ok := originalWords[strings.TrimSuffix(w, "s")]; ok {
			valid++
			continue
		}
		if _, ok := originalWords[w+"s"]; ok {
			valid++
			continue
		}
	}
	return float64(valid) >= float64(len(summaryWords))*0.7
}
