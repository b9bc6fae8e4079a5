package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"bookflow/internal/models"
)

type BookRepo struct {
	db *DB
}

func NewBookRepo(db *DB) *BookRepo {
	return &BookRepo{db: db}
}

// UpsertBook writes the full book record. The analysis payloads (keywords,
// stats, sentiment, progress) travel as jsonb documents.
func (r *BookRepo) UpsertBook(ctx context.Context, b models.Book) error {
	keywords, err := json.Marshal(b.Keywords)
	if err != nil {
		return fmt.Errorf("marshal keywords: %w", err)
	}
	stats, err := json.Marshal(b.Stats)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	sentiment, err := json.Marshal(b.Sentiment)
	if err != nil {
		return fmt.Errorf("marshal sentiment: %w", err)
	}
	progress, err := json.Marshal(b.Progress)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}

	_, err = r.db.Pool.Exec(ctx, `
INSERT INTO books (book_id, shelf_id, filename, title, author, description, file_type, file_size,
                   total_pages, extracted_text, summary, summary_source, keywords, stats, sentiment,
                   progress, status, fail_reason)
VALUES ($1, $2, $3, NULLIF($4,''), NULLIF($5,''), NULLIF($6,''), $7, $8,
        $9, NULLIF($10,''), NULLIF($11,''), NULLIF($12,''), $13::jsonb, $14::jsonb, $15::jsonb,
        $16::jsonb, $17, NULLIF($18,''))
ON CONFLICT (book_id)
DO UPDATE SET
  shelf_id = EXCLUDED.shelf_id,
  filename = EXCLUDED.filename,
  title = COALESCE(EXCLUDED.title, books.title),
  author = COALESCE(EXCLUDED.author, books.author),
  description = COALESCE(EXCLUDED.description, books.description),
  file_type = EXCLUDED.file_type,
  file_size = EXCLUDED.file_size,
  total_pages = EXCLUDED.total_pages,
  extracted_text = COALESCE(EXCLUDED.extracted_text, books.extracted_text),
  summary = COALESCE(EXCLUDED.summary, books.summary),
  summary_source = COALESCE(EXCLUDED.summary_source, books.summary_source),
  keywords = EXCLUDED.keywords,
  stats = EXCLUDED.stats,
  sentiment = EXCLUDED.sentiment,
  status = EXCLUDED.status,
  fail_reason = EXCLUDED.fail_reason,
  updated_at = NOW()`,
		b.BookID, b.ShelfID, b.Filename, b.Title, b.Author, b.Description, b.FileType, b.FileSize,
		b.TotalPages, b.ExtractedText, b.Summary, b.SummarySource, keywords, stats, sentiment,
		progress, b.Status, b.FailReason,
	)
	if err != nil {
		return fmt.Errorf("upsert book: %w", err)
	}
	return nil
}

// MarkBookStatus records a status transition, inserting a stub row when the
// book is seen for the first time. Existing analysis columns are untouched.
func (r *BookRepo) MarkBookStatus(ctx context.Context, b models.Book) error {
	progress, err := json.Marshal(models.NewReadingProgress())
	if err != nil {
		return fmt.Errorf("marshal default progress: %w", err)
	}
	_, err = r.db.Pool.Exec(ctx, `
INSERT INTO books (book_id, shelf_id, filename, file_type, total_pages, keywords, stats, sentiment, progress, status, fail_reason)
VALUES ($1, $2, $3, $4, 0, '[]'::jsonb, '{}'::jsonb, '{}'::jsonb, $5::jsonb, $6, NULLIF($7,''))
ON CONFLICT (book_id)
DO UPDATE SET
  status = EXCLUDED.status,
  fail_reason = EXCLUDED.fail_reason,
  updated_at = NOW()`,
		b.BookID, b.ShelfID, b.Filename, b.FileType, progress, b.Status, b.FailReason)
	if err != nil {
		return fmt.Errorf("mark book status: %w", err)
	}
	return nil
}

func (r *BookRepo) UpdateBookStatus(ctx context.Context, bookID, status, failReason string) error {
	_, err := r.db.Pool.Exec(ctx, `UPDATE books SET status=$2, fail_reason=NULLIF($3,''), updated_at=NOW() WHERE book_id=$1`, bookID, status, failReason)
	if err != nil {
		return fmt.Errorf("update book status: %w", err)
	}
	return nil
}

const bookColumns = `
book_id, shelf_id::text, filename, COALESCE(title,''), COALESCE(author,''), COALESCE(description,''),
file_type, file_size, total_pages, COALESCE(summary,''), COALESCE(summary_source,''),
keywords, stats, sentiment, progress, status, COALESCE(fail_reason,''), created_at, updated_at`

// ListBooksByShelf returns the shelf's books without their extracted text;
// full text is only fetched per book.
func (r *BookRepo) ListBooksByShelf(ctx context.Context, shelfID string) ([]models.Book, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT `+bookColumns+`
FROM books
WHERE shelf_id=$1
ORDER BY created_at DESC`, shelfID)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	out := make([]models.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return out, nil
}

func (r *BookRepo) GetBookByID(ctx context.Context, shelfID, bookID string) (models.Book, error) {
	row := r.db.Pool.QueryRow(ctx, `
SELECT `+bookColumns+`
FROM books
WHERE shelf_id=$1 AND book_id=$2`, shelfID, bookID)
	b, err := scanBook(row)
	if err != nil {
		return models.Book{}, fmt.Errorf("get book by id: %w", err)
	}
	return b, nil
}

// GetBookText returns only the extracted text, which can run to megabytes.
func (r *BookRepo) GetBookText(ctx context.Context, shelfID, bookID string) (string, error) {
	var text string
	err := r.db.Pool.QueryRow(ctx, `
SELECT COALESCE(extracted_text,'') FROM books WHERE shelf_id=$1 AND book_id=$2`, shelfID, bookID).Scan(&text)
	if err != nil {
		return "", fmt.Errorf("get book text: %w", err)
	}
	return text, nil
}

func (r *BookRepo) ListFailedBooks(ctx context.Context, shelfID string) ([]models.Book, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT `+bookColumns+`
FROM books
WHERE shelf_id=$1 AND status='failed'
ORDER BY updated_at DESC`, shelfID)
	if err != nil {
		return nil, fmt.Errorf("list failed books: %w", err)
	}
	defer rows.Close()
	out := make([]models.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (models.Book, error) {
	var b models.Book
	var keywords, stats, sentiment, progress []byte
	if err := row.Scan(&b.BookID, &b.ShelfID, &b.Filename, &b.Title, &b.Author, &b.Description,
		&b.FileType, &b.FileSize, &b.TotalPages, &b.Summary, &b.SummarySource,
		&keywords, &stats, &sentiment, &progress, &b.Status, &b.FailReason, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return models.Book{}, fmt.Errorf("scan book: %w", err)
	}
	if len(keywords) > 0 {
		if err := json.Unmarshal(keywords, &b.Keywords); err != nil {
			return models.Book{}, fmt.Errorf("decode keywords: %w", err)
		}
	}
	if len(stats) > 0 {
		if err := json.Unmarshal(stats, &b.Stats); err != nil {
			return models.Book{}, fmt.Errorf("decode stats: %w", err)
		}
	}
	if len(sentiment) > 0 {
		if err := json.Unmarshal(sentiment, &b.Sentiment); err != nil {
			return models.Book{}, fmt.Errorf("decode sentiment: %w", err)
		}
	}
	if len(progress) > 0 {
		if err := json.Unmarshal(progress, &b.Progress); err != nil {
			return models.Book{}, fmt.Errorf("decode progress: %w", err)
		}
	}
	return b, nil
}
