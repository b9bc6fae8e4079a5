package activities

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"bookflow/internal/config"
	"bookflow/internal/extract"
	"bookflow/internal/models"
	"bookflow/internal/pipeline"
	"bookflow/internal/storage"
	"bookflow/internal/summarize"
	"bookflow/internal/util"
)

type Activities struct {
	cfg          config.Config
	extractor    *extract.Extractor
	pipe         *pipeline.Pipeline
	shelfRepo    *storage.ShelfRepo
	bookRepo     *storage.BookRepo
	sectionRepo  *storage.SectionRepo
	progressRepo *storage.ProgressRepo
	auditRepo    *storage.SummaryAuditRepo
}

func New(cfg config.Config, db *storage.DB) *Activities {
	return &Activities{
		cfg:          cfg,
		extractor:    extract.New(cfg.MinExtractChars, cfg.ReaderWordsPerPage),
		pipe:         pipeline.New(cfg, summarize.NewFromConfig(cfg)),
		shelfRepo:    storage.NewShelfRepo(db),
		bookRepo:     storage.NewBookRepo(db),
		sectionRepo:  storage.NewSectionRepo(db),
		progressRepo: storage.NewProgressRepo(db),
		auditRepo:    storage.NewSummaryAuditRepo(db),
	}
}

func (a *Activities) ListUploadsActivity(ctx context.Context, in ListUploadsInput) (ListUploadsOutput, error) {
	_ = ctx
	dir := in.UploadDir
	if dir == "" {
		dir = filepath.Join(a.cfg.UploadRoot, in.ShelfID)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ListUploadsOutput{}, fmt.Errorf("read upload dir: %w", err)
	}
	paths := make([]string, 0)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".pdf", ".txt":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return ListUploadsOutput{Paths: paths}, nil
}

func (a *Activities) ComputeBookIDActivity(ctx context.Context, in ComputeBookIDInput) (ComputeBookIDOutput, error) {
	_ = ctx
	f, err := os.Open(in.BookPath)
	if err != nil {
		return ComputeBookIDOutput{}, fmt.Errorf("open file for hash: %w", err)
	}
	defer f.Close()
	sum, err := util.SHA256HexFromReader(f)
	if err != nil {
		return ComputeBookIDOutput{}, fmt.Errorf("hash file: %w", err)
	}
	return ComputeBookIDOutput{BookID: sum}, nil
}

func (a *Activities) ExtractTextActivity(ctx context.Context, in ExtractTextInput) (ExtractTextOutput, error) {
	_ = ctx
	res, err := a.extractor.FromFile(in.BookPath)
	if err != nil {
		return ExtractTextOutput{}, err
	}
	return ExtractTextOutput{
		Text:      res.Text,
		PageCount: res.PageCount,
		Title:     res.Title,
		Author:    res.Author,
	}, nil
}

func (a *Activities) ProcessTextActivity(ctx context.Context, in ProcessTextInput) (ProcessTextOutput, error) {
	enr, err := a.pipe.Enrich(ctx, in.Text, in.CustomSummaryLength)
	if err != nil {
		return ProcessTextOutput{}, err
	}
	return ProcessTextOutput{
		Sections:      enr.Sections,
		Stats:         enr.Stats,
		Keywords:      enr.Keywords,
		Sentiment:     enr.Sentiment,
		Summary:       enr.Summary.Summary,
		SummarySource: enr.Summary.Source,
		Provider:      enr.Summary.Provider,
		Model:         enr.Summary.Model,
	}, nil
}

func (a *Activities) SaveBookActivity(ctx context.Context, in SaveBookInput) error {
	if err := a.bookRepo.UpsertBook(ctx, in.Book); err != nil {
		return err
	}
	return a.sectionRepo.ReplaceSections(ctx, in.Book.ShelfID, in.Book.BookID, in.Book.Chapters)
}

func (a *Activities) UpdateBookStatusActivity(ctx context.Context, in UpdateBookStatusInput) error {
	return a.bookRepo.MarkBookStatus(ctx, models.Book{
		BookID:     in.BookID,
		ShelfID:    in.ShelfID,
		Filename:   in.Filename,
		FileType:   in.FileType,
		Status:     in.Status,
		FailReason: in.FailReason,
	})
}

func (a *Activities) WriteBookArtifactsActivity(ctx context.Context, in WriteBookArtifactsInput) error {
	_ = ctx
	base := filepath.Join(a.cfg.ArtifactRoot, in.ShelfID, "books", in.BookID)
	if err := util.EnsureDir(base); err != nil {
		return err
	}
	if err := util.WriteJSONAtomic(filepath.Join(base, "book.json"), in.Metadata); err != nil {
		return err
	}
	if in.Text != "" {
		if err := util.WriteTextAtomic(filepath.Join(base, "book.txt"), in.Text); err != nil {
			return err
		}
	}
	rows := make([]any, 0, len(in.Sections))
	for _, s := range in.Sections {
		rows = append(rows, s)
	}
	if err := util.WriteJSONLinesAtomic(filepath.Join(base, "sections.jsonl"), rows); err != nil {
		return err
	}
	return util.WriteJSONAtomic(filepath.Join(base, "processing_log.json"), in.ProcessingLog)
}

func (a *Activities) WriteShelfSummaryActivity(ctx context.Context, in WriteShelfSummaryInput) error {
	_ = ctx
	outPath := filepath.Join(a.cfg.ArtifactRoot, in.ShelfID, "shelf_summary.json")
	return util.WriteJSONAtomic(outPath, in.Summary)
}

func (a *Activities) LogSummaryCallActivity(ctx context.Context, in LogSummaryCallInput) error {
	if in.CallID == "" {
		in.CallID = uuid.NewString()
	}
	return a.auditRepo.Insert(ctx, storage.SummaryCallRecord{
		CallID:    in.CallID,
		ShelfID:   in.ShelfID,
		BookID:    in.BookID,
		Provider:  in.Provider,
		Model:     in.Model,
		Source:    in.Source,
		Status:    in.Status,
		ErrorType: in.ErrorType,
	})
}

func (a *Activities) ListFailedBooksActivity(ctx context.Context, in ListFailedBooksInput) (ListFailedBooksOutput, error) {
	books, err := a.bookRepo.ListFailedBooks(ctx, in.ShelfID)
	if err != nil {
		return ListFailedBooksOutput{}, err
	}
	out := ListFailedBooksOutput{Books: make([]FailedBook, 0, len(books))}
	for _, b := range books {
		out.Books = append(out.Books, FailedBook{BookID: b.BookID, Filename: b.Filename})
	}
	return out, nil
}
