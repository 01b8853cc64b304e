package trivia

import (
	"context"
	"errors"
	"fmt"
)

// ListCategories returns every category keyed by id.
func (s *Service) ListCategories(ctx context.Context) (CategoriesResponse, error) {
	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		return CategoriesResponse{}, serverError(fmt.Errorf("list categories: %w", err))
	}
	return CategoriesResponse{Categories: newCategoryMap(categories)}, nil
}

// ListQuestions returns one page of all questions ordered by id.
// currentCategory comes from the first question of the whole set, not the page.
func (s *Service) ListQuestions(ctx context.Context, page int) (QuestionListResponse, error) {
	all, err := s.questions.ListQuestions(ctx)
	if err != nil {
		return QuestionListResponse{}, serverError(fmt.Errorf("list questions: %w", err))
	}

	current, err := Paginate(all, page, s.pageSize)
	if err != nil {
		return QuestionListResponse{}, err
	}

	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		return QuestionListResponse{}, serverError(fmt.Errorf("list categories: %w", err))
	}

	return QuestionListResponse{
		Questions:       current,
		TotalQuestions:  len(all),
		Categories:      newCategoryMap(categories),
		CurrentCategory: currentCategoryOf(all),
	}, nil
}

// ListByCategory returns one page of the questions filed under category id.
func (s *Service) ListByCategory(ctx context.Context, categoryID, page int) (CategoryQuestionsResponse, error) {
	category, err := s.categories.GetCategory(ctx, categoryID)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return CategoryQuestionsResponse{}, notFound("")
		}
		return CategoryQuestionsResponse{}, serverError(fmt.Errorf("get category %d: %w", categoryID, err))
	}

	matches, err := s.questions.ListQuestionsByCategory(ctx, category.Type)
	if err != nil {
		return CategoryQuestionsResponse{}, serverError(fmt.Errorf("list questions for %q: %w", category.Type, err))
	}

	current, err := Paginate(matches, page, s.pageSize)
	if err != nil {
		return CategoryQuestionsResponse{}, err
	}

	return CategoryQuestionsResponse{
		Questions:       current,
		TotalQuestions:  len(matches),
		CurrentCategory: category.Type,
	}, nil
}

// Search returns every question whose text contains term, ignoring case.
// Results are not paginated.
func (s *Service) Search(ctx context.Context, term string) (SearchResponse, error) {
	matches, err := s.questions.SearchQuestions(ctx, term)
	if err != nil {
		return SearchResponse{}, serverError(fmt.Errorf("search questions: %w", err))
	}
	if matches == nil {
		matches = []Question{}
	}
	return SearchResponse{
		Questions:       matches,
		TotalQuestions:  len(matches),
		CurrentCategory: currentCategoryOf(matches),
	}, nil
}

// ExportQuestions returns every question, or only those of categoryID when it
// is not AllCategoriesID, together with the label of the exported set.
func (s *Service) ExportQuestions(ctx context.Context, categoryID int) (string, []Question, error) {
	if categoryID == AllCategoriesID {
		all, err := s.questions.ListQuestions(ctx)
		if err != nil {
			return "", nil, serverError(fmt.Errorf("list questions: %w", err))
		}
		return CurrentCategoryAll, all, nil
	}

	category, err := s.categories.GetCategory(ctx, categoryID)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return "", nil, notFound("")
		}
		return "", nil, serverError(fmt.Errorf("get category %d: %w", categoryID, err))
	}
	matches, err := s.questions.ListQuestionsByCategory(ctx, category.Type)
	if err != nil {
		return "", nil, serverError(fmt.Errorf("list questions for %q: %w", category.Type, err))
	}
	return category.Type, matches, nil
}
