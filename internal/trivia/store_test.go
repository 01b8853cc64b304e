package trivia

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
)

// memoryStore is an in-process CategoryStore and QuestionStore.
type memoryStore struct {
	mu         sync.Mutex
	categories []Category
	questions  map[int]Question
	nextID     int

	listErr   error
	insertErr error
	deleteErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		categories: []Category{
			{ID: 1, Type: "Science"},
			{ID: 2, Type: "Art"},
			{ID: 3, Type: "Geography"},
			{ID: 4, Type: "History"},
			{ID: 5, Type: "Entertainment"},
			{ID: 6, Type: "Sports"},
		},
		questions: map[int]Question{},
		nextID:    1,
	}
}

// seed adds n questions per listed category type, in order.
func (m *memoryStore) seed(categoryType string, n int) []Question {
	out := make([]Question, 0, n)
	for i := 0; i < n; i++ {
		q, _ := m.CreateQuestion(context.Background(), NewQuestion{
			Question:   categoryType + " question",
			Answer:     "answer",
			Difficulty: 1 + i%5,
			Category:   categoryType,
		})
		out = append(out, q)
	}
	return out
}

func (m *memoryStore) ListCategories(ctx context.Context) ([]Category, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return slices.Clone(m.categories), nil
}

func (m *memoryStore) GetCategory(ctx context.Context, id int) (Category, error) {
	for _, c := range m.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return Category{}, ErrRecordNotFound
}

func (m *memoryStore) sorted(keep func(Question) bool) ([]Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := []Question{}
	for _, q := range m.questions {
		if keep(q) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryStore) ListQuestions(ctx context.Context) ([]Question, error) {
	return m.sorted(func(Question) bool { return true })
}

func (m *memoryStore) ListQuestionsByCategory(ctx context.Context, categoryType string) ([]Question, error) {
	return m.sorted(func(q Question) bool { return q.Category == categoryType })
}

func (m *memoryStore) SearchQuestions(ctx context.Context, term string) ([]Question, error) {
	needle := strings.ToLower(term)
	return m.sorted(func(q Question) bool { return strings.Contains(strings.ToLower(q.Question), needle) })
}

func (m *memoryStore) ListUnseenQuestions(ctx context.Context, excluded []int) ([]Question, error) {
	return m.sorted(func(q Question) bool { return !slices.Contains(excluded, q.ID) })
}

func (m *memoryStore) ListUnseenQuestionsByCategory(ctx context.Context, categoryType string, excluded []int) ([]Question, error) {
	return m.sorted(func(q Question) bool {
		return q.Category == categoryType && !slices.Contains(excluded, q.ID)
	})
}

func (m *memoryStore) GetQuestion(ctx context.Context, id int) (Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.questions[id]
	if !ok {
		return Question{}, ErrRecordNotFound
	}
	return q, nil
}

func (m *memoryStore) CreateQuestion(ctx context.Context, nq NewQuestion) (Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return Question{}, m.insertErr
	}
	q := Question{
		ID:         m.nextID,
		Question:   nq.Question,
		Answer:     nq.Answer,
		Difficulty: nq.Difficulty,
		Category:   nq.Category,
	}
	m.questions[q.ID] = q
	m.nextID++
	return q, nil
}

func (m *memoryStore) DeleteQuestion(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.questions[id]; !ok {
		return ErrRecordNotFound
	}
	delete(m.questions, id)
	return nil
}

func (m *memoryStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.questions)
}

type recordingNotifier struct {
	created []Question
	deleted []int
	err     error
}

func (n *recordingNotifier) QuestionCreated(ctx context.Context, q Question) error {
	n.created = append(n.created, q)
	return n.err
}

func (n *recordingNotifier) QuestionDeleted(ctx context.Context, id int) error {
	n.deleted = append(n.deleted, id)
	return n.err
}
