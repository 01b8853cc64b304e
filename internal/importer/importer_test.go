package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/importer/external"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

type stubSource struct {
	name      string
	questions []external.Question
	err       error
}

func (s stubSource) Name() string { return s.name }

func (s stubSource) Fetch(ctx context.Context, amount int) ([]external.Question, error) {
	if s.err != nil {
		return nil, s.err
	}
	if amount < len(s.questions) {
		return s.questions[:amount], nil
	}
	return s.questions, nil
}

type stubService struct {
	existing  []trivia.Question
	created   []trivia.CreateQuestionRequest
	createErr error
}

func (s *stubService) ListCategories(ctx context.Context) (trivia.CategoriesResponse, error) {
	return trivia.CategoriesResponse{Categories: trivia.CategoryMap{
		1: "Science", 2: "Art", 3: "Geography", 4: "History", 5: "Entertainment", 6: "Sports",
	}}, nil
}

func (s *stubService) Search(ctx context.Context, term string) (trivia.SearchResponse, error) {
	var out []trivia.Question
	for _, q := range s.existing {
		if strings.Contains(strings.ToLower(q.Question), strings.ToLower(term)) {
			out = append(out, q)
		}
	}
	return trivia.SearchResponse{Questions: out, TotalQuestions: len(out)}, nil
}

func (s *stubService) CreateQuestion(ctx context.Context, req trivia.CreateQuestionRequest) (trivia.CreateResponse, error) {
	if s.createErr != nil {
		return trivia.CreateResponse{}, s.createErr
	}
	s.created = append(s.created, req)
	s.existing = append(s.existing, trivia.Question{Question: req.Question})
	return trivia.CreateResponse{Success: true}, nil
}

func TestImporterRun(t *testing.T) {
	svc := &stubService{existing: []trivia.Question{{ID: 1, Question: "What is the largest planet?"}}}
	src := stubSource{name: "opentdb", questions: []external.Question{
		{Category: "Science: Computers", Difficulty: "hard", Question: "What does CPU stand for?", Answer: "Central Processing Unit"},
		{Category: "Entertainment: Film", Difficulty: "easy", Question: "Who directed Jaws?", Answer: "Steven Spielberg"},
		{Category: "sport_and_leisure", Difficulty: "medium", Question: "How many players in a rugby union team?", Answer: "15"},
		{Category: "Mythology", Difficulty: "easy", Question: "Who is the Greek god of the sea?", Answer: "Poseidon"},
		{Category: "Science & Nature", Difficulty: "easy", Question: "what is the largest planet?", Answer: "Jupiter"},
	}}
	im := New(svc, []Source{src}, zerolog.Nop())

	stats, err := im.Run(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, Stats{Fetched: 5, Imported: 3, Duplicate: 1, Unmapped: 1}, stats)

	require.Len(t, svc.created, 3)
	assert.Equal(t, trivia.CreateQuestionRequest{
		Question:   "What does CPU stand for?",
		Answer:     "Central Processing Unit",
		Difficulty: trivia.Int(5),
		Category:   trivia.Int(1),
	}, svc.created[0])
	assert.Equal(t, trivia.Int(5), svc.created[1].Category)
	assert.Equal(t, trivia.Int(1), svc.created[1].Difficulty)
	assert.Equal(t, trivia.Int(6), svc.created[2].Category)
	assert.Equal(t, trivia.Int(3), svc.created[2].Difficulty)
}

func TestImporterSkipsFailingSource(t *testing.T) {
	svc := &stubService{}
	im := New(svc, []Source{
		stubSource{name: "broken", err: errors.New("timeout")},
		stubSource{name: "triviaapi", questions: []external.Question{
			{Category: "history", Difficulty: "medium", Question: "In which year did WW2 end?", Answer: "1945"},
		}},
	}, zerolog.Nop())

	stats, err := im.Run(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Imported)
}

func TestImporterAllSourcesFail(t *testing.T) {
	im := New(&stubService{}, []Source{
		stubSource{name: "a", err: errors.New("down")},
		stubSource{name: "b", err: errors.New("down")},
	}, zerolog.Nop())

	_, err := im.Run(context.Background(), 5)
	assert.Error(t, err)
}

func TestImporterCountsCreateFailures(t *testing.T) {
	svc := &stubService{createErr: errors.New("insert failed")}
	im := New(svc, []Source{stubSource{name: "s", questions: []external.Question{
		{Category: "Art", Difficulty: "easy", Question: "Who painted the Mona Lisa?", Answer: "Leonardo"},
	}}}, zerolog.Nop())

	stats, err := im.Run(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Failed)
}

func TestImporterRejectsNonPositiveAmount(t *testing.T) {
	im := New(&stubService{}, nil, zerolog.Nop())

	_, err := im.Run(context.Background(), 0)
	assert.Error(t, err)
}

func TestLocalCategory(t *testing.T) {
	cases := map[string]string{
		"Science: Mathematics":                "science",
		"arts_and_literature":                 "art",
		"Entertainment: Cartoon & Animations": "entertainment",
		"film_and_tv":                         "entertainment",
		"Sports":                              "sports",
		"General Knowledge":                   "",
	}
	for label, want := range cases {
		assert.Equal(t, want, localCategory(label), label)
	}
}
