package storage

import (
	"context"
	"fmt"

	"bookflow/internal/models"
)

type ShelfRepo struct {
	db *DB
}

func NewShelfRepo(db *DB) *ShelfRepo {
	return &ShelfRepo{db: db}
}

func (r *ShelfRepo) CreateShelf(ctx context.Context, shelf models.Shelf) error {
	_, err := r.db.Pool.Exec(ctx, `INSERT INTO shelves (shelf_id, name) VALUES ($1, $2)`, shelf.ShelfID, shelf.Name)
	if err != nil {
		return fmt.Errorf("insert shelf: %w", err)
	}
	return nil
}

func (r *ShelfRepo) ListShelves(ctx context.Context) ([]models.Shelf, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT shelf_id::text, name, created_at FROM shelves ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list shelves: %w", err)
	}
	defer rows.Close()

	out := make([]models.Shelf, 0)
	for rows.Next() {
		var s models.Shelf
		if err := rows.Scan(&s.ShelfID, &s.Name, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan shelf: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shelves: %w", err)
	}
	return out, nil
}
