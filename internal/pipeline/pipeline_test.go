package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bookflow/internal/config"
	"bookflow/internal/summarize"
)

type fixedProvider struct{ out string }

func (f *fixedProvider) Name() string  { return "stub" }
func (f *fixedProvider) Model() string { return "stub-model" }
func (f *fixedProvider) Summarize(ctx context.Context, req summarize.Request) (string, error) {
	return f.out, nil
}

func testConfig() config.Config {
	return config.Config{
		MinExtractChars:    100,
		SectionTargetChars: 2500,
		MaxKeywords:        8,
		ReaderWordsPerPage: 250,
	}
}

func bookBody() string {
	var b strings.Builder
	b.WriteString("Histoire des bibliothèques\nMarie Laurent\n\n")
	for i := 1; i <= 2; i++ {
		fmt.Fprintf(&b, "Chapitre %d\n", i)
		for j := 0; j < 10; j++ {
			b.WriteString("La bibliothèque municipale conserve des manuscrits anciens remarquables. ")
		}
		b.WriteString("\n\n")
	}
	return b.String()
}

func TestEnrichRunsAllAnalyses(t *testing.T) {
	p := New(testConfig(), summarize.New())
	enr, err := p.Enrich(context.Background(), bookBody(), 0)
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if len(enr.Sections) == 0 {
		t.Fatalf("no sections produced")
	}
	if enr.Stats.WordCount == 0 || enr.Stats.DetectedLanguage != "fr" {
		t.Fatalf("unexpected stats: %+v", enr.Stats)
	}
	if len(enr.Keywords) == 0 {
		t.Fatalf("no keywords produced")
	}
	if enr.Sentiment.Label == "" {
		t.Fatalf("no sentiment produced")
	}
	if enr.Summary.Summary == "" || enr.Summary.Source != summarize.SourceExtractive {
		t.Fatalf("unexpected summary: %+v", enr.Summary)
	}
}

func TestEnrichUsesRemoteSummary(t *testing.T) {
	provider := &fixedProvider{out: "La bibliothèque municipale conserve des manuscrits anciens."}
	p := New(testConfig(), summarize.New(provider))
	enr, err := p.Enrich(context.Background(), bookBody(), 0)
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if enr.Summary.Source != summarize.SourceRemote {
		t.Fatalf("expected remote summary, got %+v", enr.Summary)
	}
}

func TestEnrichCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := New(testConfig(), summarize.New())
	if _, err := p.Enrich(ctx, bookBody(), 0); err == nil {
		t.Fatalf("expected error for canceled context")
	}
}

func TestIngestAssemblesBook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "histoire.txt")
	if err := os.WriteFile(path, []byte(bookBody()), 0o644); err != nil {
		t.Fatal(err)
	}

	p := New(testConfig(), summarize.New())
	book, err := p.Ingest(context.Background(), path)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if book.Filename != "histoire.txt" || book.FileType != "txt" {
		t.Fatalf("file identity wrong: %+v", book)
	}
	if book.Title != "Histoire des bibliothèques" || book.Author != "Marie Laurent" {
		t.Fatalf("metadata heuristic wrong: title=%q author=%q", book.Title, book.Author)
	}
	if book.TotalPages < 1 || book.FileSize == 0 {
		t.Fatalf("size fields wrong: pages=%d size=%d", book.TotalPages, book.FileSize)
	}
	if book.Status != "processed" || book.Summary == "" {
		t.Fatalf("book not fully processed: %+v", book)
	}
	if book.Progress.CurrentPage != 1 || book.Progress.Completed {
		t.Fatalf("fresh book must start unread: %+v", book.Progress)
	}
	if len(book.Chapters) != 3 || book.Chapters[0].Title != "Introduction" {
		t.Fatalf("expected introduction plus 2 chapters, got %+v", book.Chapters)
	}
}

func TestIngestRejectsUnsupportedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.docx")
	if err := os.WriteFile(path, []byte("irrelevant"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := New(testConfig(), summarize.New()).Ingest(context.Background(), path); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}
