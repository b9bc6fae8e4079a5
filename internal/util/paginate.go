package util

import (
	"strings"
	"unicode"
)

// Paginate cuts text into pages of at most wordsPerPage whitespace-separated
// words, preserving the original spacing inside each page. Concatenating the
// pages restores the text.
func Paginate(text string, wordsPerPage int) []string {
	if wordsPerPage <= 0 {
		wordsPerPage = 250
	}
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	pages := make([]string, 0, len(text)/(wordsPerPage*5)+1)
	words := 0
	start := 0
	inWord := false
	for i, r := range text {
		if unicode.IsSpace(r) {
			if inWord {
				inWord = false
				words++
				if words == wordsPerPage {
					pages = append(pages, text[start:i])
					start = i
					words = 0
				}
			}
			continue
		}
		inWord = true
	}
	if start < len(text) {
		pages = append(pages, text[start:])
	}
	return pages
}

// PageOf returns page n (1-based) of text plus the total page count. Out of
// range pages return an empty string.
func PageOf(text string, n, wordsPerPage int) (string, int) {
	pages := Paginate(text, wordsPerPage)
	if n < 1 || n > len(pages) {
		return "", len(pages)
	}
	return pages[n-1], len(pages)
}

// Snippet flattens whitespace and truncates s to maxRunes for list views.
func Snippet(s string, maxRunes int) string {
	if maxRunes <= 0 {
		maxRunes = 420
	}
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) > maxRunes {
		return strings.TrimSpace(string(runes[:maxRunes])) + "..."
	}
	return s
}
