package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/importer/external"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

var imported = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "trivia",
	Name:      "imported_questions_total",
	Help:      "Questions handled by the importer by source and result.",
}, []string{"source", "result"})

// Source is an external question provider.
type Source interface {
	Name() string
	Fetch(ctx context.Context, amount int) ([]external.Question, error)
}

// questionService is the slice of trivia.Service the importer drives.
type questionService interface {
	ListCategories(ctx context.Context) (trivia.CategoriesResponse, error)
	Search(ctx context.Context, term string) (trivia.SearchResponse, error)
	CreateQuestion(ctx context.Context, req trivia.CreateQuestionRequest) (trivia.CreateResponse, error)
}

// Stats summarises one import run.
type Stats struct {
	Fetched   int
	Imported  int
	Duplicate int
	Unmapped  int
	Failed    int
}

// Importer pulls questions from external providers and stores the ones whose
// category maps onto a local category. Questions already present by exact
// text are left alone.
type Importer struct {
	svc     questionService
	sources []Source
	logger  zerolog.Logger
}

func New(svc questionService, sources []Source, logger zerolog.Logger) *Importer {
	return &Importer{
		svc:     svc,
		sources: sources,
		logger:  logger.With().Str("component", "question_importer").Logger(),
	}
}

// Run asks every source for amount questions. A failing source is logged and
// skipped; Run only errors when no source could be read at all.
func (im *Importer) Run(ctx context.Context, amount int) (Stats, error) {
	var stats Stats
	if amount <= 0 {
		return stats, fmt.Errorf("amount must be positive, got %d", amount)
	}

	categories, err := im.svc.ListCategories(ctx)
	if err != nil {
		return stats, fmt.Errorf("list categories: %w", err)
	}
	ids := categoryIDs(categories.Categories)

	var sourceErrs []error
	for _, src := range im.sources {
		questions, err := src.Fetch(ctx, amount)
		if err != nil {
			im.logger.Warn().Err(err).Str("source", src.Name()).Msg("question source failed")
			sourceErrs = append(sourceErrs, fmt.Errorf("%s: %w", src.Name(), err))
			continue
		}
		stats.Fetched += len(questions)

		for _, q := range questions {
			result := im.store(ctx, ids, q)
			imported.WithLabelValues(src.Name(), result).Inc()
			switch result {
			case resultImported:
				stats.Imported++
			case resultDuplicate:
				stats.Duplicate++
			case resultUnmapped:
				stats.Unmapped++
			default:
				stats.Failed++
			}
		}
	}

	if len(sourceErrs) > 0 && len(sourceErrs) == len(im.sources) {
		return stats, errors.Join(sourceErrs...)
	}

	im.logger.Info().
		Int("fetched", stats.Fetched).
		Int("imported", stats.Imported).
		Int("duplicate", stats.Duplicate).
		Int("unmapped", stats.Unmapped).
		Int("failed", stats.Failed).
		Msg("question import finished")
	return stats, nil
}

const (
	resultImported  = "imported"
	resultDuplicate = "duplicate"
	resultUnmapped  = "unmapped"
	resultFailed    = "failed"
)

func (im *Importer) store(ctx context.Context, ids map[string]int, q external.Question) string {
	categoryID, ok := ids[localCategory(q.Category)]
	if !ok || strings.TrimSpace(q.Question) == "" || strings.TrimSpace(q.Answer) == "" {
		return resultUnmapped
	}

	existing, err := im.svc.Search(ctx, q.Question)
	if err != nil {
		im.logger.Warn().Err(err).Msg("duplicate check failed")
		return resultFailed
	}
	for _, e := range existing.Questions {
		if strings.EqualFold(e.Question, q.Question) {
			return resultDuplicate
		}
	}

	_, err = im.svc.CreateQuestion(ctx, trivia.CreateQuestionRequest{
		Question:   q.Question,
		Answer:     q.Answer,
		Difficulty: trivia.Int(difficultyLevel(q.Difficulty)),
		Category:   trivia.Int(categoryID),
	})
	if err != nil {
		im.logger.Warn().Err(err).Str("category", q.Category).Msg("question not imported")
		return resultFailed
	}
	return resultImported
}

func categoryIDs(categories trivia.CategoryMap) map[string]int {
	out := make(map[string]int, len(categories))
	for id, typ := range categories {
		out[strings.ToLower(typ)] = id
	}
	return out
}

// Provider labels are matched by prefix, in order.
var categoryPrefixes = []struct {
	prefix string
	local  string
}{
	{"science", "science"},
	{"art", "art"},
	{"geography", "geography"},
	{"history", "history"},
	{"entertainment", "entertainment"},
	{"film", "entertainment"},
	{"music", "entertainment"},
	{"celebrities", "entertainment"},
	{"sport", "sports"},
}

func localCategory(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	for _, p := range categoryPrefixes {
		if strings.HasPrefix(label, p.prefix) {
			return p.local
		}
	}
	return ""
}

func difficultyLevel(label string) int {
	switch strings.ToLower(label) {
	case "easy":
		return 1
	case "hard":
		return 5
	default:
		return 3
	}
}
