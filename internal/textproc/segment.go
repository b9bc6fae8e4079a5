package textproc

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"bookflow/internal/models"
)

// Segmenter splits a normalized text into chapters when heading markers are
// present, and into size-bounded paragraph-respecting sections otherwise.
type Segmenter struct {
	patterns    []*regexp.Regexp
	targetChars int
	minMatches  int
}

// DefaultSectionTargetChars is the flush threshold for size-based fallback
// sections.
const DefaultSectionTargetChars = 2500

var paragraphSepRe = regexp.MustCompile(`\n[ \t]*\n[\n \t]*`)

// NewSegmenter builds a segmenter with the default multilingual heading
// patterns, tried in priority order. The first pattern with at least two
// matches wins; scoring never continues across later patterns.
func NewSegmenter(targetChars int) *Segmenter {
	if targetChars <= 0 {
		targetChars = DefaultSectionTargetChars
	}
	return &Segmenter{
		targetChars: targetChars,
		minMatches:  2,
		patterns: []*regexp.Regexp{
			// Keyword headings, fr/en/es/it, arabic or roman numerals.
			regexp.MustCompile(`(?i)\b(?:CHAPITRE|CHAPTER|CAP[ÍI]TULO|CAPITOLO)\s+(?:\d+|[IVXLCDM]+)\b`),
			regexp.MustCompile(`(?i)\b(?:PARTIE|PARTE|PART|LIVRE|LIBRO|BOOK|SECTION|SECCI[ÓO]N|SEZIONE)\s+(?:\d+|[IVXLCDM]+)\b`),
			regexp.MustCompile(`(?i)\b(?:Ch|Chap)\.\s*\d+`),
			// Generic numbered headings at the start of a line.
			regexp.MustCompile(`(?m)^\d+\.\s+\S`),
			regexp.MustCompile(`(?m)^\d+\s*[-–—]\s*\S`),
			regexp.MustCompile(`(?m)^[IVX]+\.\s+\S`),
			// Decorative banner lines.
			regexp.MustCompile(`(?m)^\*+[^\n*]+\*+$`),
			regexp.MustCompile(`(?m)^={3,}[^\n]*={3,}$`),
			regexp.MustCompile(`(?m)^-{3,}[^\n]*-{3,}$`),
		},
	}
}

// Segment returns the ordered sections of text. It always returns at least
// one section for non-empty input and never fails.
func (s *Segmenter) Segment(text string) []models.Section {
	if strings.TrimSpace(text) == "" {
		return []models.Section{}
	}
	for _, re := range s.patterns {
		matches := re.FindAllStringIndex(text, -1)
		if len(matches) >= s.minMatches {
			return s.splitAtHeadings(text, matches)
		}
	}
	return s.splitBySize(text)
}

// splitAtHeadings cuts the text at each heading match. Content before the
// first heading becomes an implicit "Introduction" section.
func (s *Segmenter) splitAtHeadings(text string, matches [][]int) []models.Section {
	sections := make([]models.Section, 0, len(matches)+1)

	if first := matches[0][0]; first > 0 && strings.TrimSpace(text[:first]) != "" {
		sections = append(sections, newSection(0, "Introduction", text, 0, first))
	}
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		title := strings.TrimSpace(text[m[0]:m[1]])
		sections = append(sections, newSection(0, title, text, m[0], end))
	}
	for i := range sections {
		sections[i].ID = i + 1
	}
	return sections
}

// splitBySize accumulates whole paragraphs until appending the next one would
// push a section past the target size. A single oversized paragraph still
// forms one section; paragraphs are never split internally.
func (s *Segmenter) splitBySize(text string) []models.Section {
	paras := paragraphSpans(text)
	if len(paras) == 0 {
		return []models.Section{newSection(1, "Section 1", text, 0, len(text))}
	}

	sections := make([]models.Section, 0, len(text)/s.targetChars+1)
	start, end := paras[0][0], paras[0][1]
	for _, p := range paras[1:] {
		if p[1]-start > s.targetChars && end > start {
			sections = append(sections, newSection(len(sections)+1, fmt.Sprintf("Section %d", len(sections)+1), text, start, end))
			start = p[0]
		}
		end = p[1]
	}
	sections = append(sections, newSection(len(sections)+1, fmt.Sprintf("Section %d", len(sections)+1), text, start, end))
	return sections
}

func newSection(id int, title, text string, start, end int) models.Section {
	content := strings.TrimSpace(text[start:end])
	return models.Section{
		ID:             id,
		Title:          title,
		Content:        content,
		StartIndex:     start,
		EndIndex:       end,
		WordCount:      CountWords(content),
		CharacterCount: utf8.RuneCountInString(content),
	}
}

// paragraphSpans returns the byte spans of non-blank paragraphs, trimmed to
// their first and last non-whitespace byte. Interior blank lines stay inside
// whichever paragraph run they separate sections from, so concatenating
// adjacent spans reconstructs the source text modulo separator runs.
func paragraphSpans(text string) [][2]int {
	seps := paragraphSepRe.FindAllStringIndex(text, -1)
	spans := make([][2]int, 0, len(seps)+1)
	prev := 0
	push := func(a, b int) {
		frag := text[a:b]
		trimmedLeft := len(frag) - len(strings.TrimLeft(frag, " \t\n"))
		trimmedRight := len(frag) - len(strings.TrimRight(frag, " \t\n"))
		a += trimmedLeft
		b -= trimmedRight
		if a < b {
			spans = append(spans, [2]int{a, b})
		}
	}
	for _, sep := range seps {
		push(prev, sep[0])
		prev = sep[1]
	}
	push(prev, len(text))
	return spans
}
