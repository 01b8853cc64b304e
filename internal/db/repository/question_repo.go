package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jackc/pgx/v5"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

type questionStore interface {
	ListQuestions(ctx context.Context) ([]sqlcgen.Question, error)
	ListQuestionsByCategory(ctx context.Context, category string) ([]sqlcgen.Question, error)
	SearchQuestions(ctx context.Context, pattern string) ([]sqlcgen.Question, error)
	ListUnseenQuestions(ctx context.Context, excluded []int32) ([]sqlcgen.Question, error)
	ListUnseenQuestionsByCategory(ctx context.Context, arg sqlcgen.ListUnseenQuestionsByCategoryParams) ([]sqlcgen.Question, error)
	GetQuestion(ctx context.Context, id int32) (sqlcgen.Question, error)
}

// QuestionRepository wraps sqlc queries for question access. Writes go
// through a transaction so a failed insert or delete leaves no trace.
type QuestionRepository struct {
	store questionStore
	tx    txRunner
}

var _ trivia.QuestionStore = (*QuestionRepository)(nil)

func NewQuestionRepository(store questionStore, tx txRunner) *QuestionRepository {
	return &QuestionRepository{store: store, tx: tx}
}

// ListQuestions returns every question ordered by id.
func (r *QuestionRepository) ListQuestions(ctx context.Context) ([]trivia.Question, error) {
	return toQuestions(r.store.ListQuestions(ctx))
}

// ListQuestionsByCategory returns the questions carrying categoryType, ordered by id.
func (r *QuestionRepository) ListQuestionsByCategory(ctx context.Context, categoryType string) ([]trivia.Question, error) {
	return toQuestions(r.store.ListQuestionsByCategory(ctx, categoryType))
}

// SearchQuestions matches term as a literal, case-insensitive substring.
func (r *QuestionRepository) SearchQuestions(ctx context.Context, term string) ([]trivia.Question, error) {
	return toQuestions(r.store.SearchQuestions(ctx, escapeLike(term)))
}

// ListUnseenQuestions returns every question whose id is not in excluded.
func (r *QuestionRepository) ListUnseenQuestions(ctx context.Context, excluded []int) ([]trivia.Question, error) {
	return toQuestions(r.store.ListUnseenQuestions(ctx, toInt32s(excluded)))
}

// ListUnseenQuestionsByCategory narrows ListUnseenQuestions to one category type.
func (r *QuestionRepository) ListUnseenQuestionsByCategory(ctx context.Context, categoryType string, excluded []int) ([]trivia.Question, error) {
	return toQuestions(r.store.ListUnseenQuestionsByCategory(ctx, sqlcgen.ListUnseenQuestionsByCategoryParams{
		Category: categoryType,
		Excluded: toInt32s(excluded),
	}))
}

// GetQuestion fetches a question by id.
func (r *QuestionRepository) GetQuestion(ctx context.Context, id int) (trivia.Question, error) {
	if !fitsInt32(id) {
		return trivia.Question{}, trivia.ErrRecordNotFound
	}
	row, err := r.store.GetQuestion(ctx, int32(id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return trivia.Question{}, trivia.ErrRecordNotFound
		}
		return trivia.Question{}, err
	}
	return toQuestion(row), nil
}

// CreateQuestion inserts q and returns the stored row with its assigned id.
func (r *QuestionRepository) CreateQuestion(ctx context.Context, q trivia.NewQuestion) (trivia.Question, error) {
	if !fitsInt32(q.Difficulty) {
		return trivia.Question{}, fmt.Errorf("difficulty %d out of range", q.Difficulty)
	}

	var created sqlcgen.Question
	err := r.tx.InTx(ctx, func(w questionWriter) error {
		row, err := w.InsertQuestion(ctx, sqlcgen.InsertQuestionParams{
			Question:   q.Question,
			Answer:     q.Answer,
			Difficulty: int32(q.Difficulty),
			Category:   q.Category,
		})
		if err != nil {
			return fmt.Errorf("insert question: %w", err)
		}
		created = row
		return nil
	})
	if err != nil {
		return trivia.Question{}, err
	}
	return toQuestion(created), nil
}

// DeleteQuestion removes the question with id.
func (r *QuestionRepository) DeleteQuestion(ctx context.Context, id int) error {
	if !fitsInt32(id) {
		return trivia.ErrRecordNotFound
	}
	return r.tx.InTx(ctx, func(w questionWriter) error {
		affected, err := w.DeleteQuestion(ctx, int32(id))
		if err != nil {
			return fmt.Errorf("delete question: %w", err)
		}
		if affected == 0 {
			return trivia.ErrRecordNotFound
		}
		return nil
	})
}

func toQuestion(row sqlcgen.Question) trivia.Question {
	return trivia.Question{
		ID:         int(row.ID),
		Question:   row.Question,
		Answer:     row.Answer,
		Difficulty: int(row.Difficulty),
		Category:   row.Category,
	}
}

func toQuestions(rows []sqlcgen.Question, err error) ([]trivia.Question, error) {
	if err != nil {
		return nil, err
	}
	out := make([]trivia.Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, toQuestion(row))
	}
	return out, nil
}

// toInt32s never returns nil: a NULL array makes `id <> ALL(...)` match nothing.
// Ids outside the int32 range cannot exist in the table and are dropped.
func toInt32s(ids []int) []int32 {
	out := make([]int32, 0, len(ids))
	for _, id := range ids {
		if fitsInt32(id) {
			out = append(out, int32(id))
		}
	}
	return out
}

func fitsInt32(v int) bool {
	return v >= math.MinInt32 && v <= math.MaxInt32
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
