// Package pipeline composes extraction, text analysis and summarization into
// the ingestion flow that turns an uploaded file into a readable book.
package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"bookflow/internal/config"
	"bookflow/internal/extract"
	"bookflow/internal/models"
	"bookflow/internal/summarize"
	"bookflow/internal/textproc"
)

// Pipeline holds the analysis components shared by all ingestions. Safe for
// concurrent use.
type Pipeline struct {
	cfg        config.Config
	extractor  *extract.Extractor
	analyzer   *textproc.Analyzer
	segmenter  *textproc.Segmenter
	keywords   *textproc.KeywordExtractor
	sentiment  *textproc.SentimentAnalyzer
	summarizer *summarize.Summarizer
}

func New(cfg config.Config, summarizer *summarize.Summarizer) *Pipeline {
	if summarizer == nil {
		summarizer = summarize.New()
	}
	return &Pipeline{
		cfg:        cfg,
		extractor:  extract.New(cfg.MinExtractChars, cfg.ReaderWordsPerPage),
		analyzer:   textproc.NewAnalyzer(nil),
		segmenter:  textproc.NewSegmenter(cfg.SectionTargetChars),
		keywords:   textproc.NewKeywordExtractor(),
		sentiment:  textproc.NewSentimentAnalyzer(),
		summarizer: summarizer,
	}
}

// Enrichment is everything derived from a book's extracted text.
type Enrichment struct {
	Sections  []models.Section
	Stats     models.TextStats
	Keywords  []string
	Sentiment models.Sentiment
	Summary   summarize.Result
}

// Enrich runs the independent analysis steps concurrently. The local steps
// cannot fail; only context cancellation aborts the group, so a slow or dead
// summarization backend degrades the summary without losing the book.
// customSummaryLength overrides the length band when positive.
func (p *Pipeline) Enrich(ctx context.Context, text string, customSummaryLength int) (Enrichment, error) {
	var enr Enrichment
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		enr.Summary = p.summarizer.Summarize(gctx, text, customSummaryLength)
		return nil
	})
	g.Go(func() error {
		enr.Sections = p.segmenter.Segment(text)
		return nil
	})
	g.Go(func() error {
		enr.Stats = p.analyzer.ComputeStats(text)
		return nil
	})
	g.Go(func() error {
		enr.Keywords = p.keywords.Extract(text, p.cfg.MaxKeywords)
		return nil
	})
	g.Go(func() error {
		enr.Sentiment = p.sentiment.Analyze(text)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Enrichment{}, err
	}
	if err := ctx.Err(); err != nil {
		return Enrichment{}, err
	}
	return enr, nil
}

// Ingest extracts the file at path and enriches its text into a book record.
// IDs and shelf assignment are the caller's concern.
func (p *Pipeline) Ingest(ctx context.Context, path string) (models.Book, error) {
	res, err := p.extractor.FromFile(path)
	if err != nil {
		return models.Book{}, err
	}
	enr, err := p.Enrich(ctx, res.Text, 0)
	if err != nil {
		return models.Book{}, err
	}

	var size int64
	if info, statErr := os.Stat(path); statErr == nil {
		size = info.Size()
	}
	return models.Book{
		Filename:      filepath.Base(path),
		Title:         res.Title,
		Author:        res.Author,
		FileType:      strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."),
		FileSize:      size,
		TotalPages:    res.PageCount,
		ExtractedText: res.Text,
		Summary:       enr.Summary.Summary,
		SummarySource: enr.Summary.Source,
		Chapters:      enr.Sections,
		Keywords:      enr.Keywords,
		Stats:         enr.Stats,
		Sentiment:     enr.Sentiment,
		Progress:      models.NewReadingProgress(),
		Status:        "processed",
	}, nil
}
