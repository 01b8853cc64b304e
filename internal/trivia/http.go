package trivia

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// HTTPHandler exposes the trivia REST endpoints.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandler constructs the trivia HTTP handler.
func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "trivia_http").Logger(),
	}
}

// Register mounts the trivia routes on mux. Each path also gets a
// method-less pattern so unsupported methods answer 405 in the JSON envelope.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /categories", h.ListCategories)
	mux.HandleFunc("GET /categories/{id}/questions", h.ListCategoryQuestions)
	mux.HandleFunc("GET /questions", h.ListQuestions)
	mux.HandleFunc("POST /questions", h.PostQuestions)
	mux.HandleFunc("DELETE /questions/{id}", h.DeleteQuestion)
	mux.HandleFunc("POST /quizzes", h.NextQuizQuestion)

	for _, path := range []string{"/categories", "/categories/{id}/questions", "/questions", "/questions/{id}", "/quizzes"} {
		mux.HandleFunc(path, httperrors.MethodNotAllowedHandler)
	}
}

// ListCategories handles GET /categories
func (h *HTTPHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.ListCategories(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, resp)
}

// ListQuestions handles GET /questions?page=N
func (h *HTTPHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.ListQuestions(r.Context(), pageParam(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, resp)
}

// ListCategoryQuestions handles GET /categories/{id}/questions?page=N
func (h *HTTPHandler) ListCategoryQuestions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httperrors.RespondNotFound(w, "")
		return
	}

	resp, err := h.svc.ListByCategory(r.Context(), id, pageParam(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, resp)
}

// PostQuestions handles POST /questions. A body carrying a searchTerm key,
// even an empty one, is a search; anything else is a create.
func (h *HTTPHandler) PostQuestions(w http.ResponseWriter, r *http.Request) {
	var body map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body == nil {
		httperrors.RespondBadRequest(w, "")
		return
	}

	if raw, ok := body["searchTerm"]; ok {
		var term *string
		if err := json.Unmarshal(raw, &term); err != nil {
			httperrors.RespondBadRequest(w, "")
			return
		}
		search := ""
		if term != nil {
			search = *term
		}

		resp, err := h.svc.Search(r.Context(), search)
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		h.respondJSON(w, http.StatusOK, resp)
		return
	}

	req, err := decodeCreateRequest(body)
	if err != nil {
		httperrors.RespondBadRequest(w, "")
		return
	}

	resp, err := h.svc.CreateQuestion(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, resp)
}

// DeleteQuestion handles DELETE /questions/{id}
func (h *HTTPHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httperrors.RespondNotFound(w, "")
		return
	}

	resp, err := h.svc.DeleteQuestion(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, resp)
}

// NextQuizQuestion handles POST /quizzes
func (h *HTTPHandler) NextQuizQuestion(w http.ResponseWriter, r *http.Request) {
	var req QuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, "")
		return
	}

	question, err := h.svc.NextQuizQuestion(r.Context(), req.PreviousQuestions, req.QuizCategory)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, QuizResponse{Question: question})
}

func (h *HTTPHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var te *Error
	if !errors.As(err, &te) {
		te = serverError(err)
	}

	status := statusFor(te.Kind)
	if status >= http.StatusInternalServerError || te.Kind == KindUnprocessable {
		logger := logging.FromContext(r.Context())
		logger.Error().Err(err).Str("kind", te.Kind.String()).Msg("request failed")
	}
	httperrors.RespondError(w, status, te.Message)
}

func (h *HTTPHandler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Warn().Err(err).Msg("failed to encode response")
	}
}

func statusFor(kind Kind) int {
	switch kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnprocessable:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func decodeCreateRequest(body map[string]json.RawMessage) (CreateQuestionRequest, error) {
	var req CreateQuestionRequest
	fields := map[string]interface{}{
		"question":   &req.Question,
		"answer":     &req.Answer,
		"difficulty": &req.Difficulty,
		"category":   &req.Category,
	}
	for key, dst := range fields {
		raw, ok := body[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return CreateQuestionRequest{}, err
		}
	}
	return req, nil
}

// pageParam mirrors a lenient query parser: a missing or non-numeric page is 1.
// A page too large for int saturates so that Paginate reports it as NotFound.
func pageParam(r *http.Request) int {
	raw := r.URL.Query().Get("page")
	page, err := strconv.Atoi(raw)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			if strings.HasPrefix(raw, "-") {
				return math.MinInt
			}
			return math.MaxInt
		}
		return 1
	}
	return page
}

// pathID parses the {id} path segment. Negative ids and ids that overflow int
// never match a row, so both report false and surface as NotFound.
func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}
