package trivia

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// CurrentCategoryAll is reported when a result set carries no category.
const CurrentCategoryAll = "ALL"

// AllCategoriesID is the quiz category id meaning "no category restriction".
const AllCategoriesID = 0

// Category is a read-only grouping of questions.
type Category struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// Question is the record shape returned to clients.
// Category holds the category type string, not the category id. Renaming a
// category's type orphans every question that still carries the old string.
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty int    `json:"difficulty"`
	Category   string `json:"category"`
}

// CategoryMap maps category ids to their type; JSON renders it as {"1": "Science"}.
type CategoryMap map[int]string

func newCategoryMap(categories []Category) CategoryMap {
	out := make(CategoryMap, len(categories))
	for _, c := range categories {
		out[c.ID] = c.Type
	}
	return out
}

// NewQuestion carries the fields persisted for a freshly created question.
type NewQuestion struct {
	Question   string
	Answer     string
	Difficulty int
	Category   string
}

// FlexInt decodes a JSON number or a numeric string. Set reports whether a
// non-null value was present.
type FlexInt struct {
	Value int
	Set   bool
}

// Int returns a populated FlexInt.
func Int(v int) FlexInt {
	return FlexInt{Value: v, Set: true}
}

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = FlexInt{}
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("expected integer, got %s", data)
	}
	*f = FlexInt{Value: v, Set: true}
	return nil
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(f.Value)), nil
}

// CreateQuestionRequest is the POST /questions body when no searchTerm is given.
type CreateQuestionRequest struct {
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	Difficulty FlexInt `json:"difficulty"`
	Category   FlexInt `json:"category"`
}

// QuizCategory identifies the category a quiz is played in. Only the id is
// consulted; any other member of the client's category object is ignored.
// Unresolvable is set when an id was sent that cannot name any category.
type QuizCategory struct {
	ID           FlexInt `json:"id"`
	Unresolvable bool    `json:"-"`
}

func (c *QuizCategory) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*c = QuizCategory{}
	if len(raw.ID) == 0 {
		return nil
	}
	if err := c.ID.UnmarshalJSON(raw.ID); err != nil {
		c.ID = FlexInt{}
		c.Unresolvable = true
	}
	return nil
}

// QuizRequest is the POST /quizzes body.
type QuizRequest struct {
	PreviousQuestions []int         `json:"previous_questions"`
	QuizCategory      *QuizCategory `json:"quiz_category"`
}

// CategoriesResponse is returned by GET /categories.
type CategoriesResponse struct {
	Categories CategoryMap `json:"categories"`
}

// QuestionListResponse is returned by GET /questions.
type QuestionListResponse struct {
	Questions       []Question  `json:"questions"`
	TotalQuestions  int         `json:"totalQuestions"`
	Categories      CategoryMap `json:"categories"`
	CurrentCategory string      `json:"currentCategory"`
}

// CategoryQuestionsResponse is returned by GET /categories/{id}/questions.
type CategoryQuestionsResponse struct {
	Questions       []Question `json:"questions"`
	TotalQuestions  int        `json:"totalQuestions"`
	CurrentCategory string     `json:"currentCategory"`
}

// SearchResponse is returned by POST /questions with a searchTerm.
type SearchResponse struct {
	Questions       []Question `json:"questions"`
	TotalQuestions  int        `json:"totalQuestions"`
	CurrentCategory string     `json:"currentCategory"`
}

// CreateResponse acknowledges a created question.
type CreateResponse struct {
	Success bool `json:"success"`
}

// DeleteResponse echoes the removed question id.
type DeleteResponse struct {
	Deleted int `json:"deleted"`
}

// QuizResponse carries the next quiz question, or null once the pool is exhausted.
type QuizResponse struct {
	Question *Question `json:"question"`
}

func currentCategoryOf(questions []Question) string {
	if len(questions) == 0 {
		return CurrentCategoryAll
	}
	return questions[0].Category
}
