package textproc

import (
	"fmt"
	"strings"
	"testing"
)

func TestSegmentDetectsChapterHeadings(t *testing.T) {
	s := NewSegmenter(0)
	sections := s.Segment("Chapter 1\nHello world. Chapter 2\nGoodbye world.")
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].Title != "Chapter 1" || sections[1].Title != "Chapter 2" {
		t.Fatalf("unexpected titles: %q, %q", sections[0].Title, sections[1].Title)
	}
}

func TestSegmentFrenchChapters(t *testing.T) {
	s := NewSegmenter(0)
	text := "CHAPITRE I\nLa nuit tombait sur la ville.\n\nCHAPITRE II\nLe matin revint doucement."
	sections := s.Segment(text)
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].Title != "CHAPITRE I" {
		t.Fatalf("unexpected title: %q", sections[0].Title)
	}
}

func TestSegmentAddsIntroductionForPreamble(t *testing.T) {
	s := NewSegmenter(0)
	text := "A short preamble before any heading.\n\nChapter 1\nFirst chapter text.\n\nChapter 2\nSecond chapter text."
	sections := s.Segment(text)
	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(sections))
	}
	if sections[0].Title != "Introduction" {
		t.Fatalf("expected implicit introduction, got %q", sections[0].Title)
	}
	if sections[0].ID != 1 || sections[1].ID != 2 || sections[2].ID != 3 {
		t.Fatalf("section ids not sequential: %d %d %d", sections[0].ID, sections[1].ID, sections[2].ID)
	}
}

func TestSegmentSingleHeadingFallsBackToSize(t *testing.T) {
	s := NewSegmenter(0)
	sections := s.Segment("Chapter 1\nOnly one heading here, so no chapter split.")
	if len(sections) != 1 {
		t.Fatalf("expected one fallback section, got %d", len(sections))
	}
	if sections[0].Title != "Section 1" {
		t.Fatalf("unexpected fallback title: %q", sections[0].Title)
	}
}

func TestSegmentSizeFallbackRespectsParagraphs(t *testing.T) {
	s := NewSegmenter(0)
	para := strings.Repeat("Prose sentence with several plain words here. ", 40) // ~2000 chars
	text := strings.TrimSpace(para) + "\n\n" + strings.TrimSpace(para) + "\n\n" + strings.TrimSpace(para)
	sections := s.Segment(text)
	if len(sections) < 2 {
		t.Fatalf("expected multiple fallback sections, got %d", len(sections))
	}
	for i, sec := range sections {
		if sec.ID != i+1 {
			t.Fatalf("ids not monotonic: section %d has id %d", i, sec.ID)
		}
		if strings.Contains(sec.Content, "\n\n") && len(sec.Content) > 2*DefaultSectionTargetChars {
			t.Fatalf("section %d spans too much text: %d chars", sec.ID, len(sec.Content))
		}
		if sec.Title != fmt.Sprintf("Section %d", sec.ID) {
			t.Fatalf("unexpected title %q for id %d", sec.Title, sec.ID)
		}
	}
	// No paragraph may be split across sections.
	for _, sec := range sections {
		if strings.HasSuffix(sec.Content, "several") || strings.HasPrefix(sec.Content, "plain") {
			t.Fatalf("section boundary inside a paragraph: %q", sec.Content[:40])
		}
	}
}

func TestSegmentFallbackCoverage(t *testing.T) {
	s := NewSegmenter(0)
	para := strings.TrimSpace(strings.Repeat("Plain prose without any heading markers at all. ", 30))
	paras := []string{para, para, para, para}
	text := strings.Join(paras, "\n\n")
	sections := s.Segment(text)
	if len(sections) < 2 {
		t.Fatalf("expected multiple fallback sections, got %d", len(sections))
	}

	parts := make([]string, 0, len(sections))
	for i, sec := range sections {
		if sec.ID != i+1 {
			t.Fatalf("ids not 1..n: got %d at %d", sec.ID, i)
		}
		parts = append(parts, sec.Content)
	}
	if got := strings.Join(parts, "\n\n"); got != text {
		t.Fatalf("fallback sections do not cover source:\n got %d chars\nwant %d chars", len(got), len(text))
	}
}

func TestSegmentOversizedParagraphStaysWhole(t *testing.T) {
	s := NewSegmenter(0)
	big := strings.TrimSpace(strings.Repeat("One very long single paragraph keeps flowing on and on. ", 80)) // > target
	text := "Small opener paragraph.\n\n" + big + "\n\nSmall closer paragraph."
	sections := s.Segment(text)
	found := false
	for _, sec := range sections {
		if strings.Contains(sec.Content, "keeps flowing") && strings.Count(sec.Content, "keeps flowing") == 80 {
			found = true
		}
	}
	if !found {
		t.Fatalf("oversized paragraph was split across sections")
	}
}

func TestSegmentEmptyText(t *testing.T) {
	s := NewSegmenter(0)
	if sections := s.Segment("   "); len(sections) != 0 {
		t.Fatalf("expected no sections for blank input, got %d", len(sections))
	}
}

func TestSegmentSectionCounts(t *testing.T) {
	s := NewSegmenter(0)
	sections := s.Segment("Chapter 1\nUn petit chat dort. Chapter 2\nLe chien aboie fort.")
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	first := sections[0]
	if first.WordCount == 0 || first.CharacterCount == 0 {
		t.Fatalf("section counts not recorded: %+v", first)
	}
	if first.StartIndex != 0 || first.EndIndex <= first.StartIndex {
		t.Fatalf("bad offsets: %+v", first)
	}
}
