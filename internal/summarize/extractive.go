package summarize

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	sentenceEndRe = regexp.MustCompile(`[.!?。！？]+`)
	doubleDotRe   = regexp.MustCompile(`\.\s*\.`)
)

// SimpleSummary builds an extractive summary by sampling substantial sentences
// across the text: the opening sentence plus evenly strided picks. The second
// return value reports whether the result is a generic placeholder rather
// than real content.
func SimpleSummary(text string, sentenceCount int) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "Texte vide - impossible de générer un résumé.", true
	}
	if sentenceCount <= 0 {
		sentenceCount = 3
	}

	pool := sentenceCount * 6
	if pool > 30 {
		pool = 30
	}
	sentences := make([]string, 0, pool)
	for _, s := range sentenceEndRe.Split(text, -1) {
		s = strings.TrimSpace(s)
		if utf8.RuneCountInString(s) > 20 && len(strings.Fields(s)) > 4 {
			sentences = append(sentences, s)
			if len(sentences) == pool {
				break
			}
		}
	}
	if len(sentences) == 0 {
		return fmt.Sprintf("Document de %dk caractères. Contenu disponible pour lecture complète.", kiloChars(text)), true
	}

	var selected []string
	if len(sentences) >= sentenceCount {
		selected = append(selected, sentences[0])
		step := len(sentences) / sentenceCount
		for i := 1; i < sentenceCount && i*step < len(sentences); i++ {
			idx := i * step
			if idx > len(sentences)-1 {
				idx = len(sentences) - 1
			}
			if !containsString(selected, sentences[idx]) {
				selected = append(selected, sentences[idx])
			}
		}
	} else {
		selected = sentences
	}

	summary := doubleDotRe.ReplaceAllString(strings.Join(selected, ". "), ".") + "."
	if utf8.RuneCountInString(summary) < 50 {
		return fmt.Sprintf("Résumé automatique : Document de %dk caractères contenant du contenu textuel. Lecture complète recommandée pour plus de détails.", kiloChars(text)), true
	}
	return summary, false
}

func kiloChars(text string) int {
	n := utf8.RuneCountInString(text)
	return (n + 999) / 1000
}

func containsString(list []string, s string) bool {
	for _, l := range list {
		if l == s {
			return true
		}
	}
	return false
}
