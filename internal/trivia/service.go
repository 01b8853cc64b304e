package trivia

import (
	"context"
	"math/rand/v2"

	"github.com/rs/zerolog"
)

// CategoryStore is the read-only view of categories the service needs.
type CategoryStore interface {
	ListCategories(ctx context.Context) ([]Category, error)
	// GetCategory returns ErrRecordNotFound when id does not exist.
	GetCategory(ctx context.Context, id int) (Category, error)
}

// QuestionStore is the question side of the record store.
type QuestionStore interface {
	ListQuestions(ctx context.Context) ([]Question, error)
	ListQuestionsByCategory(ctx context.Context, categoryType string) ([]Question, error)
	SearchQuestions(ctx context.Context, term string) ([]Question, error)
	ListUnseenQuestions(ctx context.Context, excluded []int) ([]Question, error)
	ListUnseenQuestionsByCategory(ctx context.Context, categoryType string, excluded []int) ([]Question, error)
	// GetQuestion returns ErrRecordNotFound when id does not exist.
	GetQuestion(ctx context.Context, id int) (Question, error)
	CreateQuestion(ctx context.Context, q NewQuestion) (Question, error)
	// DeleteQuestion returns ErrRecordNotFound when nothing was removed.
	DeleteQuestion(ctx context.Context, id int) error
}

// ChangeNotifier is told about successful mutations. Failures are logged only.
type ChangeNotifier interface {
	QuestionCreated(ctx context.Context, q Question) error
	QuestionDeleted(ctx context.Context, id int) error
}

// ServiceOptions tunes the service; zero values fall back to defaults.
type ServiceOptions struct {
	PageSize int
	// Intn returns a uniform value in [0, n). Defaults to math/rand/v2.IntN.
	Intn     func(n int) int
	Notifier ChangeNotifier
}

// Service implements listing, search, mutation and quiz selection over the
// record store. It holds no per-request state.
type Service struct {
	categories CategoryStore
	questions  QuestionStore
	notifier   ChangeNotifier
	pageSize   int
	intn       func(n int) int
	logger     zerolog.Logger
}

func NewService(categories CategoryStore, questions QuestionStore, opts ServiceOptions, logger zerolog.Logger) *Service {
	if opts.PageSize <= 0 {
		opts.PageSize = QuestionsPerPage
	}
	if opts.Intn == nil {
		opts.Intn = rand.IntN
	}
	return &Service{
		categories: categories,
		questions:  questions,
		notifier:   opts.Notifier,
		pageSize:   opts.PageSize,
		intn:       opts.Intn,
		logger:     logger.With().Str("component", "trivia_service").Logger(),
	}
}
