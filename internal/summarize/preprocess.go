package summarize

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Remote models take a bounded input, so long books are cut down to a prefix
// that still ends cleanly.
const modelInputMaxChars = 4000

var (
	wsRunRe = regexp.MustCompile(`\s+`)
	// Keep word characters, common punctuation and accented Latin letters;
	// everything else confuses the summarization models.
	charsetRe = regexp.MustCompile(`[^\w\s.,;:!?()\[\]"'\-àâäéèêëïîôöùûüÿçñáíóúýÀÂÄÉÈÊËÏÎÔÖÙÛÜŸÇÑÁÍÓÚÝ]`)
)

// PrepareForModel flattens whitespace, strips exotic characters and truncates
// to the model input budget, preferring a sentence boundary in the last 30% of
// the window, then a word boundary in the last 20%.
func PrepareForModel(text string) string {
	cleaned := strings.TrimSpace(charsetRe.ReplaceAllString(wsRunRe.ReplaceAllString(text, " "), ""))
	if len(cleaned) <= modelInputMaxChars {
		return cleaned
	}

	cut := modelInputMaxChars
	for cut > 0 && !utf8.RuneStart(cleaned[cut]) {
		cut--
	}
	truncated := cleaned[:cut]

	bestIdx, bestEnd := -1, -1
	for _, ender := range []string{".", "!", "?", "。", "！", "？"} {
		if idx := strings.LastIndex(truncated, ender); idx > bestIdx && idx > modelInputMaxChars*7/10 {
			bestIdx, bestEnd = idx, idx+len(ender)
		}
	}
	if bestIdx > 0 {
		return truncated[:bestEnd]
	}
	if lastSpace := strings.LastIndex(truncated, " "); lastSpace > modelInputMaxChars*8/10 {
		return truncated[:lastSpace] + "..."
	}
	return truncated + "..."
}
