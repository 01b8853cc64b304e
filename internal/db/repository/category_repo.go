package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

type categoryStore interface {
	ListCategories(ctx context.Context) ([]sqlcgen.Category, error)
	GetCategory(ctx context.Context, id int32) (sqlcgen.Category, error)
}

// CategoryRepository wraps sqlc queries for category lookups.
type CategoryRepository struct {
	store categoryStore
}

var _ trivia.CategoryStore = (*CategoryRepository)(nil)

func NewCategoryRepository(store categoryStore) *CategoryRepository {
	return &CategoryRepository{store: store}
}

// ListCategories returns all categories ordered by id.
func (r *CategoryRepository) ListCategories(ctx context.Context) ([]trivia.Category, error) {
	rows, err := r.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]trivia.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, toCategory(row))
	}
	return out, nil
}

// GetCategory fetches a category by id.
func (r *CategoryRepository) GetCategory(ctx context.Context, id int) (trivia.Category, error) {
	if !fitsInt32(id) {
		return trivia.Category{}, trivia.ErrRecordNotFound
	}
	row, err := r.store.GetCategory(ctx, int32(id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return trivia.Category{}, trivia.ErrRecordNotFound
		}
		return trivia.Category{}, err
	}
	return toCategory(row), nil
}

func toCategory(row sqlcgen.Category) trivia.Category {
	return trivia.Category{ID: int(row.ID), Type: row.Type}
}
