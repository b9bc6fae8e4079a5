package textproc

import "testing"

func TestComputeStatsEmptyInput(t *testing.T) {
	stats := NewAnalyzer(nil).ComputeStats("")
	if stats.WordCount != 0 || stats.SentenceCount != 0 || stats.ParagraphCount != 0 {
		t.Fatalf("expected zero counts, got %+v", stats)
	}
	if stats.AverageWordsPerSentence != 0 || stats.AverageWordsPerParagraph != 0 {
		t.Fatalf("expected zero averages, got %+v", stats)
	}
	if stats.ReadingTimeMinutes != 0 {
		t.Fatalf("expected zero reading time, got %d", stats.ReadingTimeMinutes)
	}
}

func TestComputeStatsFrenchSample(t *testing.T) {
	stats := NewAnalyzer(nil).ComputeStats("Le chat mange. Le chien dort.")
	if stats.WordCount != 6 {
		t.Fatalf("wordCount = %d, want 6", stats.WordCount)
	}
	if stats.SentenceCount != 2 {
		t.Fatalf("sentenceCount = %d, want 2", stats.SentenceCount)
	}
	if stats.DetectedLanguage != "fr" {
		t.Fatalf("detectedLanguage = %q, want fr", stats.DetectedLanguage)
	}
	if stats.AverageWordsPerSentence != 3 {
		t.Fatalf("averageWordsPerSentence = %d, want 3", stats.AverageWordsPerSentence)
	}
}

func TestComputeStatsReadingTimeRoundsUp(t *testing.T) {
	stats := NewAnalyzer(nil).ComputeStats("the cat sat on the mat today")
	if stats.ReadingTimeMinutes != 1 {
		t.Fatalf("expected any non-empty text to read in at least one minute, got %d", stats.ReadingTimeMinutes)
	}
}

func TestCountWordsSkipsBareNumbersAndPunctuation(t *testing.T) {
	if got := CountWords("hello 123 -- world !"); got != 2 {
		t.Fatalf("CountWords = %d, want 2", got)
	}
	if got := CountWords("déjà vu"); got != 2 {
		t.Fatalf("accented words must count, got %d", got)
	}
}

func TestCountSentencesIgnoresShortFragments(t *testing.T) {
	// "Ok." trims to a fragment of three runes, below the length floor.
	if got := countSentences("Ok. This one is long enough to count."); got != 1 {
		t.Fatalf("countSentences = %d, want 1", got)
	}
}

func TestCountParagraphs(t *testing.T) {
	text := "A first paragraph of text.\n\nshort\n\nA second paragraph of text."
	// "short" trims to five runes, below the ten-rune floor.
	if got := countParagraphs(text); got != 2 {
		t.Fatalf("countParagraphs = %d, want 2", got)
	}
}
