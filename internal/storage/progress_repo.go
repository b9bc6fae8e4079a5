package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"bookflow/internal/models"
)

// ProgressPatch is a partial reading-progress update. Nil fields are left
// untouched.
type ProgressPatch struct {
	CurrentPage     *int   `json:"current_page,omitempty"`
	CurrentChapter  *int   `json:"current_chapter,omitempty"`
	CurrentPosition *int   `json:"current_position,omitempty"`
	Bookmarks       *[]int `json:"bookmarks,omitempty"`
	Completed       *bool  `json:"completed,omitempty"`
}

// Empty reports whether the patch carries no changes.
func (p ProgressPatch) Empty() bool {
	return p.CurrentPage == nil && p.CurrentChapter == nil && p.CurrentPosition == nil &&
		p.Bookmarks == nil && p.Completed == nil
}

type ProgressRepo struct {
	db *DB
}

func NewProgressRepo(db *DB) *ProgressRepo {
	return &ProgressRepo{db: db}
}

func (r *ProgressRepo) GetProgress(ctx context.Context, shelfID, bookID string) (models.ReadingProgress, error) {
	var raw []byte
	err := r.db.Pool.QueryRow(ctx, `
SELECT progress FROM books WHERE shelf_id=$1 AND book_id=$2`, shelfID, bookID).Scan(&raw)
	if err != nil {
		return models.ReadingProgress{}, fmt.Errorf("get progress: %w", err)
	}
	progress := models.NewReadingProgress()
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &progress); err != nil {
			return models.ReadingProgress{}, fmt.Errorf("decode progress: %w", err)
		}
	}
	return progress, nil
}

// UpdateProgress merges the patch into the stored progress document. The jsonb
// concatenation keeps omitted fields intact while arrays are replaced whole.
func (r *ProgressRepo) UpdateProgress(ctx context.Context, shelfID, bookID string, patch ProgressPatch) (models.ReadingProgress, error) {
	if patch.Empty() {
		return r.GetProgress(ctx, shelfID, bookID)
	}
	delta, err := json.Marshal(patch)
	if err != nil {
		return models.ReadingProgress{}, fmt.Errorf("marshal progress patch: %w", err)
	}

	var raw []byte
	err = r.db.Pool.QueryRow(ctx, `
UPDATE books
SET progress = progress || $3::jsonb || jsonb_build_object('updated_at', NOW()),
    updated_at = NOW()
WHERE shelf_id=$1 AND book_id=$2
RETURNING progress`, shelfID, bookID, delta).Scan(&raw)
	if err != nil {
		return models.ReadingProgress{}, fmt.Errorf("update progress: %w", err)
	}
	var progress models.ReadingProgress
	if err := json.Unmarshal(raw, &progress); err != nil {
		return models.ReadingProgress{}, fmt.Errorf("decode updated progress: %w", err)
	}
	return progress, nil
}
