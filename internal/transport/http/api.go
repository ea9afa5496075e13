package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"smart-note-service/internal/app"
	"smart-note-service/internal/domain"
	"smart-note-service/internal/export"
	"smart-note-service/internal/platform/logger"
)

// API exposes the content store as JSON over HTTP. Required fields are
// validated here; the store trusts its callers.
type API struct {
	store *app.Store
	log   *logger.Logger
	now   func() time.Time
}

func NewAPI(store *app.Store, log *logger.Logger) *API {
	return &API{store: store, log: log, now: time.Now}
}

// Routes registers the JSON API, the health check and the websocket endpoint.
func (a *API) Routes(ws *WSHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("GET /api/summaries", a.listSummaries)
	mux.HandleFunc("POST /api/summaries", a.createSummary)
	mux.HandleFunc("GET /api/summaries/{id}", a.getSummary)
	mux.HandleFunc("DELETE /api/summaries/{id}", a.deleteSummary)
	mux.HandleFunc("GET /api/summaries/{id}/export", a.exportSummary)

	mux.HandleFunc("GET /api/quizzes", a.listQuizzes)
	mux.HandleFunc("POST /api/quizzes", a.createQuiz)
	mux.HandleFunc("GET /api/quizzes/{id}", a.getQuiz)
	mux.HandleFunc("DELETE /api/quizzes/{id}", a.deleteQuiz)
	mux.HandleFunc("GET /api/quizzes/{id}/attempts", a.listAttempts)
	mux.HandleFunc("POST /api/quizzes/{id}/attempts", a.createAttempt)

	mux.HandleFunc("GET /api/attempts/{id}", a.getAttempt)
	mux.HandleFunc("PUT /api/attempts/{id}/answers/{questionId}", a.submitAnswer)
	mux.HandleFunc("POST /api/attempts/{id}/complete", a.completeAttempt)
	mux.HandleFunc("GET /api/attempts/{id}/review", a.reviewAttempt)
	mux.HandleFunc("GET /api/attempts/{id}/review/export", a.exportReview)

	mux.HandleFunc("GET /api/settings", a.getSettings)
	mux.HandleFunc("PATCH /api/settings", a.updateSettings)
	mux.HandleFunc("GET /api/dashboard", a.dashboard)

	if ws != nil {
		mux.HandleFunc("GET /ws", ws.ServeWS)
	}
	return mux
}

// maxQuestionCount bounds generation work done under the store's write lock.
const maxQuestionCount = 100

type summaryRequest struct {
	Title  string               `json:"title"`
	Text   string               `json:"text"`
	Length domain.SummaryLength `json:"length"`
}

type quizRequest struct {
	SummaryID     string            `json:"summaryId"`
	Title         string            `json:"title"`
	Difficulty    domain.Difficulty `json:"difficulty"`
	QuestionCount int               `json:"questionCount"`
}

type answerRequest struct {
	Answer domain.Answer `json:"answer"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (a *API) listSummaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := a.store.SearchSummaries(r.Context(), r.URL.Query().Get("q"))
	a.respond(w, r, http.StatusOK, summaries, err)
}

func (a *API) createSummary(w http.ResponseWriter, r *http.Request) {
	var req summaryRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Text) == "" {
		a.fail(w, r, invalid("title and text are required"))
		return
	}
	if req.Length != "" && !req.Length.Valid() {
		a.fail(w, r, invalid("unknown summary length %q", req.Length))
		return
	}
	summary, err := a.store.CreateSummary(r.Context(), app.SummaryInput{Title: req.Title, Text: req.Text, Length: req.Length})
	a.respond(w, r, http.StatusCreated, summary, err)
}

func (a *API) getSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := a.store.Summary(r.Context(), r.PathValue("id"))
	a.respond(w, r, http.StatusOK, summary, err)
}

func (a *API) deleteSummary(w http.ResponseWriter, r *http.Request) {
	err := a.store.DeleteSummary(r.Context(), r.PathValue("id"))
	a.respond(w, r, http.StatusNoContent, nil, err)
}

func (a *API) exportSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := a.store.Summary(r.Context(), r.PathValue("id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.download(w, r, export.SummaryContent(summary), summary.Title)
}

func (a *API) listQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := a.store.Quizzes(r.Context())
	a.respond(w, r, http.StatusOK, quizzes, err)
}

func (a *API) createQuiz(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	if req.SummaryID == "" || strings.TrimSpace(req.Title) == "" {
		a.fail(w, r, invalid("summaryId and title are required"))
		return
	}
	if req.Difficulty != "" && !req.Difficulty.Valid() {
		a.fail(w, r, invalid("unknown difficulty %q", req.Difficulty))
		return
	}
	if req.QuestionCount < 0 || req.QuestionCount > maxQuestionCount {
		a.fail(w, r, invalid("questionCount must be between 0 and %d", maxQuestionCount))
		return
	}
	quiz, err := a.store.CreateQuiz(r.Context(), app.QuizInput{
		SummaryID:     req.SummaryID,
		Title:         req.Title,
		Difficulty:    req.Difficulty,
		QuestionCount: req.QuestionCount,
	})
	a.respond(w, r, http.StatusCreated, quiz, err)
}

func (a *API) getQuiz(w http.ResponseWriter, r *http.Request) {
	quiz, err := a.store.Quiz(r.Context(), r.PathValue("id"))
	a.respond(w, r, http.StatusOK, quiz, err)
}

func (a *API) deleteQuiz(w http.ResponseWriter, r *http.Request) {
	err := a.store.DeleteQuiz(r.Context(), r.PathValue("id"))
	a.respond(w, r, http.StatusNoContent, nil, err)
}

func (a *API) listAttempts(w http.ResponseWriter, r *http.Request) {
	attempts, err := a.store.AttemptsForQuiz(r.Context(), r.PathValue("id"))
	a.respond(w, r, http.StatusOK, attempts, err)
}

func (a *API) createAttempt(w http.ResponseWriter, r *http.Request) {
	quizID := r.PathValue("id")
	if _, err := a.store.Quiz(r.Context(), quizID); err != nil {
		a.fail(w, r, err)
		return
	}
	attempt, err := a.store.CreateAttempt(r.Context(), quizID)
	a.respond(w, r, http.StatusCreated, attempt, err)
}

func (a *API) getAttempt(w http.ResponseWriter, r *http.Request) {
	attempt, err := a.store.Attempt(r.Context(), r.PathValue("id"))
	a.respond(w, r, http.StatusOK, attempt, err)
}

func (a *API) submitAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	if req.Answer.IsZero() {
		a.fail(w, r, invalid("answer is required"))
		return
	}
	attempt, err := a.store.SubmitAnswer(r.Context(), r.PathValue("id"), r.PathValue("questionId"), req.Answer)
	a.respond(w, r, http.StatusOK, attempt, err)
}

func (a *API) completeAttempt(w http.ResponseWriter, r *http.Request) {
	attempt, err := a.store.CompleteAttempt(r.Context(), r.PathValue("id"))
	a.respond(w, r, http.StatusOK, attempt, err)
}

func (a *API) reviewAttempt(w http.ResponseWriter, r *http.Request) {
	review, err := a.store.ReviewAttempt(r.Context(), r.PathValue("id"))
	a.respond(w, r, http.StatusOK, review, err)
}

func (a *API) exportReview(w http.ResponseWriter, r *http.Request) {
	review, err := a.store.ReviewAttempt(r.Context(), r.PathValue("id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.download(w, r, export.ReviewContent(review), review.QuizTitle+" Results")
}

func (a *API) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := a.store.Settings(r.Context())
	a.respond(w, r, http.StatusOK, settings, err)
}

func (a *API) updateSettings(w http.ResponseWriter, r *http.Request) {
	var patch domain.SettingsPatch
	if err := decode(r, &patch); err != nil {
		a.fail(w, r, err)
		return
	}
	if err := validatePatch(patch); err != nil {
		a.fail(w, r, err)
		return
	}
	settings, err := a.store.UpdateSettings(r.Context(), patch)
	a.respond(w, r, http.StatusOK, settings, err)
}

func (a *API) dashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := a.store.Dashboard(r.Context())
	a.respond(w, r, http.StatusOK, dash, err)
}

func validatePatch(p domain.SettingsPatch) error {
	switch {
	case p.DefaultSummaryLength != nil && !p.DefaultSummaryLength.Valid():
		return invalid("unknown summary length %q", *p.DefaultSummaryLength)
	case p.DefaultQuizDifficulty != nil && !p.DefaultQuizDifficulty.Valid():
		return invalid("unknown difficulty %q", *p.DefaultQuizDifficulty)
	case p.DefaultQuizQuestionCount != nil && (*p.DefaultQuizQuestionCount < 1 || *p.DefaultQuizQuestionCount > maxQuestionCount):
		return invalid("defaultQuizQuestionCount must be between 1 and %d", maxQuestionCount)
	case p.Theme != nil && !p.Theme.Valid():
		return invalid("unknown theme %q", *p.Theme)
	}
	return nil
}

// download serves content as a text file, or as a PDF named after title when
// format=pdf.
func (a *API) download(w http.ResponseWriter, r *http.Request, content, title string) {
	var doc export.Document
	switch r.URL.Query().Get("format") {
	case "", "txt", "text":
		doc = export.Text(content, a.now())
	case "pdf":
		doc = export.PDF(content, title, a.now())
	default:
		a.fail(w, r, invalid("unknown export format"))
		return
	}
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(doc.Body)
}

func (a *API) respond(w http.ResponseWriter, r *http.Request, status int, body any, err error) {
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}
	writeJSON(w, status, body)
}

func (a *API) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		a.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAttemptCompleted), errors.Is(err, domain.ErrAttemptIncomplete):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
}
