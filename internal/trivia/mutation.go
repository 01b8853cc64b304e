package trivia

import (
	"context"
	"errors"
	"fmt"
)

// CreateQuestion validates req and stores a new question under the type of
// the referenced category.
func (s *Service) CreateQuestion(ctx context.Context, req CreateQuestionRequest) (CreateResponse, error) {
	if req.Question == "" || req.Answer == "" || req.Difficulty.Value == 0 || req.Category.Value == 0 {
		return CreateResponse{}, badRequest("")
	}

	category, err := s.categories.GetCategory(ctx, req.Category.Value)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return CreateResponse{}, notFound("")
		}
		return CreateResponse{}, serverError(fmt.Errorf("get category %d: %w", req.Category.Value, err))
	}

	created, err := s.questions.CreateQuestion(ctx, NewQuestion{
		Question:   req.Question,
		Answer:     req.Answer,
		Difficulty: req.Difficulty.Value,
		Category:   category.Type,
	})
	if err != nil {
		s.logger.Error().Err(err).Int("category_id", category.ID).Msg("question insert failed")
		return CreateResponse{}, serverError(fmt.Errorf("insert question: %w", err))
	}

	if s.notifier != nil {
		if err := s.notifier.QuestionCreated(ctx, created); err != nil {
			s.logger.Warn().Err(err).Int("question_id", created.ID).Msg("question created event not published")
		}
	}

	return CreateResponse{Success: true}, nil
}

// DeleteQuestion removes the question with the given id.
func (s *Service) DeleteQuestion(ctx context.Context, id int) (DeleteResponse, error) {
	if _, err := s.questions.GetQuestion(ctx, id); err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return DeleteResponse{}, notFound("")
		}
		return DeleteResponse{}, serverError(fmt.Errorf("get question %d: %w", id, err))
	}

	if err := s.questions.DeleteQuestion(ctx, id); err != nil {
		// Lost a race with another delete.
		if errors.Is(err, ErrRecordNotFound) {
			return DeleteResponse{}, notFound("")
		}
		s.logger.Error().Err(err).Int("question_id", id).Msg("question delete failed")
		return DeleteResponse{}, unprocessable(fmt.Errorf("delete question %d: %w", id, err))
	}

	if s.notifier != nil {
		if err := s.notifier.QuestionDeleted(ctx, id); err != nil {
			s.logger.Warn().Err(err).Int("question_id", id).Msg("question deleted event not published")
		}
	}

	return DeleteResponse{Deleted: id}, nil
}
