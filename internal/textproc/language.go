package textproc

import (
	"regexp"
	"strings"
	"unicode"
)

// languageProfile holds the lexical cues used to score one candidate language:
// common function words, language-distinctive accented characters, and
// function-word cluster patterns.
type languageProfile struct {
	code     string
	words    map[string]struct{}
	chars    []rune
	patterns []*regexp.Regexp
}

// Detector guesses the language of a document from a prefix sample.
type Detector struct {
	profiles   []languageProfile
	sampleSize int
}

const (
	wordWeight    = 2
	charWeight    = 1
	patternWeight = 3
)

// NewDetector builds a detector for fr/en/es/it/de. Scoring is deterministic;
// a zero-score tie resolves to French, which keeps ambiguous or very short
// input stable for the app's predominantly French library.
func NewDetector() *Detector {
	return &Detector{
		sampleSize: 2000,
		profiles: []languageProfile{
			{
				code:  "fr",
				words: wordSet("le", "de", "et", "à", "un", "il", "être", "avoir", "que", "pour", "dans", "ce", "son", "une", "sur", "avec", "ne", "se", "pas", "tout"),
				chars: []rune("àéèêëçùûüôöîïâäÿ"),
				patterns: []*regexp.Regexp{
					regexp.MustCompile(`\b(les?|des?|du|aux?|ces?|cette|son|sa|ses)\b`),
				},
			},
			{
				code:  "en",
				words: wordSet("the", "be", "to", "of", "and", "a", "in", "that", "have", "it", "for", "not", "on", "with", "he", "as", "you", "do", "at"),
				patterns: []*regexp.Regexp{
					regexp.MustCompile(`\b(the|and|that|with|have|this|will|your|from|they)\b`),
				},
			},
			{
				code:  "es",
				words: wordSet("el", "de", "que", "y", "a", "en", "un", "es", "se", "no", "te", "lo", "le", "da", "su", "por", "son", "con", "para", "una"),
				chars: []rune("áéíóúñ"),
				patterns: []*regexp.Regexp{
					regexp.MustCompile(`\b(que|con|por|para|esta|este|son|las|los)\b`),
				},
			},
			{
				code:  "it",
				words: wordSet("il", "di", "che", "e", "la", "per", "una", "in", "con", "non", "da", "su", "un", "le", "si", "ma", "come", "del", "della"),
				chars: []rune("àèéìíòóùú"),
				patterns: []*regexp.Regexp{
					regexp.MustCompile(`\b(che|con|per|della|degli|sono|dalla|nella)\b`),
				},
			},
			{
				code:  "de",
				words: wordSet("der", "die", "und", "in", "den", "von", "zu", "das", "mit", "sich", "des", "auf", "für", "ist", "im", "dem", "nicht", "ein", "eine"),
				chars: []rune("äöüß"),
				patterns: []*regexp.Regexp{
					regexp.MustCompile(`\b(der|die|und|den|von|das|mit|für|ist|ein|eine)\b`),
				},
			},
		},
	}
}

// Detect returns the language code with the highest weighted score over a
// prefix sample of the text. Side-effect free.
func (d *Detector) Detect(text string) string {
	sample := strings.ToLower(prefixRunes(text, d.sampleSize))
	tokens := tokenCounts(sample)

	best := "fr"
	bestScore := 0
	for _, p := range d.profiles {
		score := 0
		for w := range p.words {
			score += tokens[w] * wordWeight
		}
		for _, c := range p.chars {
			score += strings.Count(sample, string(c)) * charWeight
		}
		for _, re := range p.patterns {
			score += len(re.FindAllStringIndex(sample, -1)) * patternWeight
		}
		if score > bestScore {
			bestScore = score
			best = p.code
		}
	}
	return best
}

// ReadingSpeed returns the assumed words-per-minute reading speed for a
// language code; unknown codes read at the French default.
func ReadingSpeed(lang string) int {
	switch lang {
	case "fr":
		return 200
	case "en":
		return 220
	case "es":
		return 190
	case "it":
		return 185
	case "de":
		return 180
	default:
		return 200
	}
}

func wordSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

func tokenCounts(sample string) map[string]int {
	fields := strings.FieldsFunc(sample, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	counts := make(map[string]int, len(fields))
	for _, f := range fields {
		counts[f]++
	}
	return counts
}

func prefixRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
