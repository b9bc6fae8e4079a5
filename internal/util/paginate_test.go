package util

import (
	"strings"
	"testing"
)

func TestPaginateCoversText(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("un mot après l'autre ", 100))
	pages := Paginate(text, 50)
	if len(pages) < 2 {
		t.Fatalf("expected multiple pages, got %d", len(pages))
	}
	if strings.Join(pages, "") != text {
		t.Fatalf("concatenated pages do not reconstruct the text")
	}
}

func TestPaginatePageSize(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("mot ", 120))
	pages := Paginate(text, 50)
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages for 120 words at 50/page, got %d", len(pages))
	}
	for i, p := range pages {
		if n := len(strings.Fields(p)); n > 50 {
			t.Fatalf("page %d holds %d words", i+1, n)
		}
	}
}

func TestPaginateEmpty(t *testing.T) {
	if pages := Paginate("   ", 50); len(pages) != 0 {
		t.Fatalf("blank text should have no pages, got %d", len(pages))
	}
}

func TestPageOf(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("mot ", 120))
	page, total := PageOf(text, 2, 50)
	if total != 3 || page == "" {
		t.Fatalf("PageOf(2) = %q, total %d", page, total)
	}
	if page, _ := PageOf(text, 4, 50); page != "" {
		t.Fatalf("out-of-range page should be empty, got %q", page)
	}
	if page, _ := PageOf(text, 0, 50); page != "" {
		t.Fatalf("page 0 should be empty, got %q", page)
	}
}

func TestSnippet(t *testing.T) {
	if got := Snippet("un  texte\n\navec   du  blanc", 100); got != "un texte avec du blanc" {
		t.Fatalf("Snippet = %q", got)
	}
	long := strings.Repeat("x", 500)
	if got := Snippet(long, 100); len([]rune(got)) != 103 || !strings.HasSuffix(got, "...") {
		t.Fatalf("truncation wrong: %d runes", len([]rune(got)))
	}
}
