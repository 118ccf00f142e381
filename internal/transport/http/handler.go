package http

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"mbti-service/internal/app"
	"mbti-service/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// maxPayloadBytes caps JSON and websocket message sizes; a full answer set is well under 1KB.
const maxPayloadBytes = 4 << 10

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Options configures session cookies and request throttling.
type Options struct {
	SessionTTL    time.Duration
	SecureCookies bool
	// GlobalLimiters apply to every route except /healthz.
	GlobalLimiters []Limiter
	// SubmitLimiters additionally apply to answer submissions on every transport.
	SubmitLimiters []Limiter
}

// Handler serves the questionnaire over HTML forms, JSON and websockets.
type Handler struct {
	service *app.AssessmentService
	log     zerolog.Logger
	opts    Options
	ws      *WSHandler
}

func NewHandler(service *app.AssessmentService, log zerolog.Logger, opts Options) *Handler {
	h := &Handler{service: service, log: log, opts: opts}
	h.ws = NewWSHandler(h)
	return h
}

// Routes builds the full middleware chain and route table.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("GET /test", h.Test)
	mux.Handle("POST /submit", h.withLimits(h.opts.SubmitLimiters, http.HandlerFunc(h.Submit)))
	mux.HandleFunc("GET /results", h.Results)

	mux.HandleFunc("GET /api/questions", h.ListQuestions)
	mux.Handle("POST /api/answers", h.withLimits(h.opts.SubmitLimiters, http.HandlerFunc(h.SubmitAnswers)))
	mux.HandleFunc("GET /api/result", h.GetResult)
	mux.HandleFunc("DELETE /api/result", h.ClearResult)
	mux.HandleFunc("GET /api/types", h.ListTypes)
	mux.HandleFunc("GET /api/stats", h.Stats)
	mux.HandleFunc("GET /ws", h.ws.ServeWS)

	root := http.NewServeMux()
	root.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	root.Handle("/", h.withLimits(h.opts.GlobalLimiters, h.withSession(mux)))
	return h.withLogging(root)
}

// Index clears any previous result and renders the landing page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Start(r.Context(), SessionID(r.Context())); err != nil {
		h.serverError(w, err)
		return
	}
	h.render(w, "index", map[string]any{"QuestionCount": len(h.service.Questions())})
}

func (h *Handler) Test(w http.ResponseWriter, r *http.Request) {
	h.render(w, "test", map[string]any{"Questions": h.service.Questions()})
}

// Submit handles the questionnaire form. Incomplete forms go back to the test.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/test", http.StatusSeeOther)
		return
	}

	answers := collectAnswers(r.PostForm, h.service.Questions())
	_, err := h.service.Submit(r.Context(), SessionID(r.Context()), answers)
	switch {
	case errors.Is(err, domain.ErrIncompleteSubmission):
		http.Redirect(w, r, "/test", http.StatusSeeOther)
	case err != nil:
		h.serverError(w, err)
	default:
		http.Redirect(w, r, "/results", http.StatusSeeOther)
	}
}

func (h *Handler) Results(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Result(r.Context(), SessionID(r.Context()))
	if errors.Is(err, domain.ErrResultNotFound) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.serverError(w, err)
		return
	}
	h.render(w, "results", map[string]any{"Result": result, "Pairs": tallyPairs(result.Tally)})
}

func (h *Handler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Questions())
}

type answersRequest struct {
	Answers domain.AnswerSet `json:"answers"`
}

func (h *Handler) SubmitAnswers(w http.ResponseWriter, r *http.Request) {
	var req answersRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxPayloadBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "answers payload too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid_payload", "invalid answers payload")
		return
	}

	sessionID := SessionID(r.Context())
	if _, err := h.service.Submit(r.Context(), sessionID, req.Answers); err != nil {
		h.apiError(w, err)
		return
	}
	result, err := h.service.Result(r.Context(), sessionID)
	if err != nil {
		h.apiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) GetResult(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Result(r.Context(), SessionID(r.Context()))
	if err != nil {
		h.apiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) ClearResult(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Start(r.Context(), SessionID(r.Context())); err != nil {
		h.apiError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.TypeDescriptions())
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.TypeDistribution(r.Context())
	if err != nil {
		h.apiError(w, err)
		return
	}
	if counts == nil {
		counts = []domain.TypeCount{}
	}
	writeJSON(w, http.StatusOK, counts)
}

func (h *Handler) apiError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrIncompleteSubmission):
		writeError(w, http.StatusUnprocessableEntity, "incomplete_submission", "every question needs an A or B answer")
	case errors.Is(err, domain.ErrResultNotFound):
		writeError(w, http.StatusNotFound, "result_not_found", "no result for this session yet")
	default:
		h.log.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

func (h *Handler) serverError(w http.ResponseWriter, err error) {
	h.log.Error().Err(err).Msg("request failed")
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		h.log.Error().Err(err).Str("template", name).Msg("render failed")
	}
}

// collectAnswers reads question_<id> fields for every catalog question. Empty fields are left out.
func collectAnswers(form url.Values, questions []domain.Question) domain.AnswerSet {
	answers := make(domain.AnswerSet, len(questions))
	for _, q := range questions {
		if v := form.Get(fmt.Sprintf("question_%d", q.ID)); v != "" {
			answers[q.ID] = domain.Choice(v)
		}
	}
	return answers
}

type tallyPair struct {
	First       string
	FirstCount  int
	Second      string
	SecondCount int
}

func tallyPairs(tally domain.ScoreTally) []tallyPair {
	pairs := make([]tallyPair, 0, len(domain.Dimensions))
	for _, d := range domain.Dimensions {
		first, second := d.Letters()
		pairs = append(pairs, tallyPair{First: first, FirstCount: tally[first], Second: second, SecondCount: tally[second]})
	}
	return pairs
}
