package textproc

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// KeywordExtractor ranks the most relevant terms of a text by a
// frequency-and-length weighted score.
type KeywordExtractor struct {
	stopwords map[string]struct{}
}

// NewKeywordExtractor builds an extractor with the default fr/en/es stopword
// set.
func NewKeywordExtractor() *KeywordExtractor {
	return &KeywordExtractor{stopwords: wordSet(
		// French
		"le", "de", "un", "à", "être", "et", "en", "avoir", "que", "pour",
		"dans", "ce", "il", "une", "sur", "avec", "ne", "se", "pas", "tout",
		"plus", "par", "grand", "ou", "son", "sa", "ses", "du", "des", "la",
		"les", "au", "aux", "cette", "ces", "cet", "mon", "ma", "mes", "ton",
		"ta", "tes", "notre", "nos", "votre", "vos", "leur", "leurs", "qui",
		"quoi", "dont", "où", "quand", "comme", "sans", "sous", "après",
		"avant", "pendant", "depuis", "jusqu", "vers", "chez", "entre",
		// English
		"the", "be", "to", "of", "and", "a", "in", "that", "have", "it", "for",
		"not", "on", "with", "he", "as", "you", "do", "at", "this", "but", "his",
		"by", "from", "they", "she", "or", "an", "will", "my", "one", "all", "would",
		// Spanish
		"el", "y", "es", "no", "te", "lo", "da", "su", "por", "son", "con",
		"para", "tiene", "las",
	)}
}

// Extract returns up to maxKeywords terms ordered by descending relevance.
// Ties keep first-encountered order. Pathological input yields an empty list,
// never an error.
func (k *KeywordExtractor) Extract(text string, maxKeywords int) []string {
	if maxKeywords <= 0 {
		return []string{}
	}

	type entry struct {
		word  string
		score float64
	}
	counts := map[string]int{}
	order := make([]string, 0, 64)
	for _, tok := range tokenizeKeywords(text) {
		if !k.keep(tok) {
			continue
		}
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}

	entries := make([]entry, 0, len(order))
	for _, w := range order {
		n := utf8.RuneCountInString(w)
		score := float64(counts[w]) * math.Log(float64(n)+1)
		if n > 5 {
			score *= 1.2
		}
		entries = append(entries, entry{word: w, score: score})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].score > entries[j].score })

	if len(entries) > maxKeywords {
		entries = entries[:maxKeywords]
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.word)
	}
	return out
}

func (k *KeywordExtractor) keep(tok string) bool {
	if utf8.RuneCountInString(tok) <= 3 {
		return false
	}
	if _, stop := k.stopwords[tok]; stop {
		return false
	}
	if !hasLatinLetter(tok) {
		return false
	}
	return true
}

// tokenizeKeywords lowercases text and splits it on anything that is not a
// letter, digit or underscore, keeping accented letters intact.
func tokenizeKeywords(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}
