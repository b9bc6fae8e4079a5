package textproc

import (
	"strings"

	"bookflow/internal/models"
)

// SentimentAnalyzer scores a text by counting hits against small positive and
// negative word lists. It is a coarse lexicon heuristic, not a model.
type SentimentAnalyzer struct {
	positive []string
	negative []string
}

func NewSentimentAnalyzer() *SentimentAnalyzer {
	return &SentimentAnalyzer{
		positive: []string{
			"bon", "bien", "excellent", "magnifique", "parfait", "super", "génial", "formidable",
			"good", "great", "wonderful", "perfect", "amazing",
		},
		negative: []string{
			"mauvais", "mal", "terrible", "horrible", "nul", "catastrophique", "affreux",
			"bad", "awful", "dreadful",
		},
	}
}

// Analyze returns positive/negative/neutral with a confidence in [0.5, 1].
// A text with no lexicon hits is neutral at 0.5.
func (s *SentimentAnalyzer) Analyze(text string) models.Sentiment {
	positives, negatives := 0, 0
	for _, w := range strings.Fields(strings.ToLower(text)) {
		if containsAny(w, s.positive) {
			positives++
		}
		if containsAny(w, s.negative) {
			negatives++
		}
	}
	total := positives + negatives
	if total == 0 {
		return models.Sentiment{Label: "neutral", Confidence: 0.5}
	}
	label := "negative"
	if positives > negatives {
		label = "positive"
	}
	confidence := float64(max(positives, negatives)) / float64(total)
	return models.Sentiment{Label: label, Confidence: confidence}
}

func containsAny(word string, lexicon []string) bool {
	for _, l := range lexicon {
		if strings.Contains(word, l) {
			return true
		}
	}
	return false
}
