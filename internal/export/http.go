package export

import (
	"bytes"
	"context"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

type questionExporter interface {
	ExportQuestions(ctx context.Context, categoryID int) (string, []trivia.Question, error)
}

// HTTPHandler serves question downloads.
type HTTPHandler struct {
	svc    questionExporter
	logger zerolog.Logger
}

func NewHTTPHandler(svc questionExporter, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "question_export").Logger(),
	}
}

// Register mounts GET /questions/export.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /questions/export", h.Export)
}

// Export handles GET /questions/export?format=xlsx|csv&category=N
func (h *HTTPHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = FormatXLSX
	}
	if format != FormatXLSX && format != FormatCSV {
		httperrors.RespondBadRequest(w, "")
		return
	}

	categoryID := trivia.AllCategoriesID
	if raw := r.URL.Query().Get("category"); raw != "" {
		// Anything that does not parse as a non-negative int names no category.
		id, err := strconv.Atoi(raw)
		if err != nil || id < 0 {
			httperrors.RespondNotFound(w, "")
			return
		}
		categoryID = id
	}

	label, questions, err := h.svc.ExportQuestions(r.Context(), categoryID)
	if err != nil {
		var te *trivia.Error
		if errors.As(err, &te) && te.Kind == trivia.KindNotFound {
			httperrors.RespondNotFound(w, "")
			return
		}
		logging.FromContext(r.Context()).Error().Err(err).Msg("question export failed")
		httperrors.RespondInternalError(w)
		return
	}

	var buf bytes.Buffer
	if format == FormatCSV {
		err = WriteCSV(&buf, questions)
	} else {
		err = WriteXLSX(&buf, questions)
	}
	if err != nil {
		logging.FromContext(r.Context()).Error().Err(err).Str("format", format).Msg("question export render failed")
		httperrors.RespondInternalError(w)
		return
	}

	w.Header().Set("Content-Type", ContentType(format))
	w.Header().Set("Content-Disposition", contentDisposition(label, format))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn().Err(err).Msg("failed to write export")
	}
}

// contentDisposition names the download after the category label. Labels that
// are not plain tokens are quoted or RFC 2231 encoded.
func contentDisposition(label, format string) string {
	filename := "questions-" + strings.ToLower(label) + "." + format
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return "attachment; filename=questions." + format
}
