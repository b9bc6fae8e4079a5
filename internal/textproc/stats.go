package textproc

import (
	"math"
	"strings"
	"unicode/utf8"

	"bookflow/internal/models"
)

// Analyzer computes summary statistics over a normalized text.
type Analyzer struct {
	detector *Detector
}

func NewAnalyzer(detector *Detector) *Analyzer {
	if detector == nil {
		detector = NewDetector()
	}
	return &Analyzer{detector: detector}
}

// ComputeStats derives the word, sentence and paragraph counts of text plus a
// language-aware reading time. Empty input yields an all-zero record; no
// division by zero is possible.
func (a *Analyzer) ComputeStats(text string) models.TextStats {
	words := CountWords(text)
	sentences := countSentences(text)
	paragraphs := countParagraphs(text)
	lang := a.detector.Detect(text)

	stats := models.TextStats{
		CharacterCount:   utf8.RuneCountInString(text),
		WordCount:        words,
		SentenceCount:    sentences,
		ParagraphCount:   paragraphs,
		DetectedLanguage: lang,
	}
	if sentences > 0 {
		stats.AverageWordsPerSentence = int(math.Round(float64(words) / float64(sentences)))
	}
	if paragraphs > 0 {
		stats.AverageWordsPerParagraph = int(math.Round(float64(words) / float64(paragraphs)))
	}
	if words > 0 {
		speed := ReadingSpeed(lang)
		stats.ReadingTimeMinutes = (words + speed - 1) / speed
	}
	return stats
}

// CountWords counts whitespace-separated tokens containing at least one Latin
// letter, so bare punctuation and purely numeric tokens do not count as words.
func CountWords(text string) int {
	count := 0
	for _, tok := range strings.Fields(text) {
		if hasLatinLetter(tok) {
			count++
		}
	}
	return count
}

func countSentences(text string) int {
	count := 0
	for _, frag := range splitSentenceFragments(text) {
		frag = strings.TrimSpace(frag)
		if utf8.RuneCountInString(frag) > 5 && hasLatinLetter(frag) {
			count++
		}
	}
	return count
}

func countParagraphs(text string) int {
	count := 0
	for _, p := range paragraphSepRe.Split(text, -1) {
		if utf8.RuneCountInString(strings.TrimSpace(p)) > 10 {
			count++
		}
	}
	return count
}

// splitSentenceFragments cuts text on sentence-ending punctuation, including
// the CJK full-width forms.
func splitSentenceFragments(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		switch r {
		case '.', '!', '?', '。', '！', '？':
			return true
		}
		return false
	})
}

// hasLatinLetter reports whether s contains an ASCII or Latin-1 accented
// letter. Multiplication and division signs sit inside the Latin-1 letter
// block and are excluded.
func hasLatinLetter(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
		if r >= 0x00C0 && r <= 0x00FF && r != 0x00D7 && r != 0x00F7 {
			return true
		}
	}
	return false
}
