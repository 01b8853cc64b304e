package trivia

import (
	"context"
	"errors"
	"fmt"
)

const (
	msgCategoryRequired = "category is required"
	msgCategoryNotFound = "category is not found"
)

// NextQuizQuestion picks a question uniformly at random among those in the
// requested category whose ids are not in previous. A nil question with a nil
// error means the category is exhausted.
func (s *Service) NextQuizQuestion(ctx context.Context, previous []int, category *QuizCategory) (*Question, error) {
	if category == nil {
		return nil, badRequest(msgCategoryRequired)
	}
	if category.Unresolvable || !category.ID.Set {
		return nil, notFound(msgCategoryNotFound)
	}

	var (
		candidates []Question
		err        error
		label      = CurrentCategoryAll
	)
	if category.ID.Value == AllCategoriesID {
		candidates, err = s.questions.ListUnseenQuestions(ctx, previous)
		if err != nil {
			return nil, serverError(fmt.Errorf("list quiz candidates: %w", err))
		}
	} else {
		resolved, lookupErr := s.categories.GetCategory(ctx, category.ID.Value)
		if lookupErr != nil {
			if errors.Is(lookupErr, ErrRecordNotFound) {
				return nil, notFound(msgCategoryNotFound)
			}
			return nil, serverError(fmt.Errorf("get category %d: %w", category.ID.Value, lookupErr))
		}
		label = resolved.Type
		candidates, err = s.questions.ListUnseenQuestionsByCategory(ctx, resolved.Type, previous)
		if err != nil {
			return nil, serverError(fmt.Errorf("list quiz candidates for %q: %w", resolved.Type, err))
		}
	}

	if len(candidates) == 0 {
		quizSelections.WithLabelValues(outcomeExhausted).Inc()
		s.logger.Debug().Str("category", label).Int("seen", len(previous)).Msg("quiz category exhausted")
		return nil, nil
	}

	picked := candidates[s.intn(len(candidates))]
	quizSelections.WithLabelValues(outcomeServed).Inc()
	return &picked, nil
}
