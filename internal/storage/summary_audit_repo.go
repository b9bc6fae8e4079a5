package storage

import (
	"context"
	"fmt"
)

// SummaryCallRecord is one audit row for a summarization attempt, including
// local fallbacks.
type SummaryCallRecord struct {
	CallID    string
	ShelfID   string
	BookID    string
	Provider  string
	Model     string
	Source    string
	Status    string
	ErrorType string
}

type SummaryAuditRepo struct {
	db *DB
}

func NewSummaryAuditRepo(db *DB) *SummaryAuditRepo {
	return &SummaryAuditRepo{db: db}
}

func (r *SummaryAuditRepo) Insert(ctx context.Context, rec SummaryCallRecord) error {
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO summary_calls(call_id, shelf_id, book_id, provider_name, model, source, status, error_type)
VALUES (COALESCE(NULLIF($1,'')::uuid, gen_random_uuid()), NULLIF($2,'')::uuid, NULLIF($3,''), NULLIF($4,''), NULLIF($5,''), $6, $7, NULLIF($8,''))`,
		rec.CallID, rec.ShelfID, rec.BookID, rec.Provider, rec.Model, rec.Source, rec.Status, rec.ErrorType)
	if err != nil {
		return fmt.Errorf("insert summary call: %w", err)
	}
	return nil
}
