package storage

import (
	"context"
	"fmt"

	"bookflow/internal/models"
)

type SectionRepo struct {
	db *DB
}

func NewSectionRepo(db *DB) *SectionRepo {
	return &SectionRepo{db: db}
}

// ReplaceSections swaps a book's sections atomically. Re-ingesting a book must
// never leave a mix of old and new sections behind.
func (r *SectionRepo) ReplaceSections(ctx context.Context, shelfID, bookID string, sections []models.Section) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx replace sections: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM sections WHERE shelf_id=$1::uuid AND book_id=$2`, shelfID, bookID); err != nil {
		return fmt.Errorf("delete old sections: %w", err)
	}
	for _, s := range sections {
		_, err := tx.Exec(ctx, `
INSERT INTO sections (shelf_id, book_id, section_id, title, content, start_index, end_index, word_count, character_count)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			shelfID, bookID, s.ID, s.Title, s.Content, s.StartIndex, s.EndIndex, s.WordCount, s.CharacterCount,
		)
		if err != nil {
			return fmt.Errorf("insert section %d: %w", s.ID, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit sections tx: %w", err)
	}
	return nil
}

func (r *SectionRepo) ListSectionsByBook(ctx context.Context, shelfID, bookID string) ([]models.Section, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT section_id, title, content, start_index, end_index, word_count, character_count
FROM sections
WHERE shelf_id=$1::uuid AND book_id=$2
ORDER BY section_id ASC`, shelfID, bookID)
	if err != nil {
		return nil, fmt.Errorf("list sections by book: %w", err)
	}
	defer rows.Close()
	out := make([]models.Section, 0, 16)
	for rows.Next() {
		var s models.Section
		if err := rows.Scan(&s.ID, &s.Title, &s.Content, &s.StartIndex, &s.EndIndex, &s.WordCount, &s.CharacterCount); err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sections: %w", err)
	}
	return out, nil
}
