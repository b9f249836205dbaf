package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"qr-quiz-service/internal/app"
	"qr-quiz-service/internal/domain"
	"qr-quiz-service/internal/qr"
	"qr-quiz-service/internal/validation"
)

// ProfileHeader names the device profile a request acts for.
const ProfileHeader = "X-Quiz-Profile"

const maxImageBytes = 4 << 20

// Handler serves the quiz REST API.
type Handler struct {
	service    *app.QuizService
	identities app.IdentityProvider
	validator  *validation.Validator
	limiter    *profileLimiter
	logger     *zap.Logger
}

// Options tune the REST API.
type Options struct {
	SubmitRate  float64
	SubmitBurst int
}

func NewHandler(service *app.QuizService, identities app.IdentityProvider, logger *zap.Logger, opts Options) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		service:    service,
		identities: identities,
		validator:  validation.New(),
		limiter:    newProfileLimiter(opts.SubmitRate, opts.SubmitBurst),
		logger:     logger,
	}
}

type resolveRequest struct {
	Code string `json:"code" validate:"required"`
}

type nameRequest struct {
	Name string `json:"name"`
}

type completeRequest struct {
	Answers domain.AnswerSelection `json:"answers"`
}

type profileResponse struct {
	UserID    string   `json:"userId"`
	UserName  string   `json:"userName,omitempty"`
	Completed []string `json:"completed"`
}

type leaderboardResponse struct {
	domain.Leaderboard
	Error string `json:"error,omitempty"`
}

func (h *Handler) identity(w http.ResponseWriter, r *http.Request) (app.IdentityStore, bool) {
	profile := r.Header.Get(ProfileHeader)
	if profile == "" {
		writeError(w, http.StatusBadRequest, "missing "+ProfileHeader+" header")
		return nil, false
	}
	return h.identities.ForProfile(profile), true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	if err := h.validator.Validate(dst); err != nil {
		writeServiceError(w, err)
		return false
	}
	return true
}

func (h *Handler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	var identity app.IdentityStore
	if profile := r.Header.Get(ProfileHeader); profile != "" {
		identity = h.identities.ForProfile(profile)
	}
	quizzes, err := h.service.Quizzes(r.Context(), identity)
	if err != nil {
		h.logger.Error("list quizzes", zap.Error(err))
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quizzes)
}

func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.service.Quiz(chi.URLParam(r, "quizID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

func (h *Handler) QuizQR(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.service.Quiz(chi.URLParam(r, "quizID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	png, err := qr.Encode(quiz.ID, size)
	if err != nil {
		h.logger.Error("encode qr", zap.String("quiz_id", quiz.ID), zap.Error(err))
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// ResolveQR maps scanned text to its quiz.
func (h *Handler) ResolveQR(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if !h.decode(w, r, &req) {
		return
	}
	quiz, err := h.service.ResolveQR(req.Code)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

// DecodeQR reads a QR code from an uploaded PNG or JPEG body and resolves it.
func (h *Handler) DecodeQR(w http.ResponseWriter, r *http.Request) {
	text, err := qr.Decode(io.LimitReader(r.Body, maxImageBytes))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	quiz, err := h.service.ResolveQR(text)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	userID, err := identity.UserID(ctx)
	if err != nil {
		h.logger.Error("resolve user id", zap.Error(err))
		writeServiceError(w, err)
		return
	}
	name, _, err := identity.UserName(ctx)
	if err != nil {
		h.logger.Error("read user name", zap.Error(err))
		writeServiceError(w, err)
		return
	}
	quizzes, err := h.service.Quizzes(ctx, identity)
	if err != nil {
		h.logger.Error("list completion flags", zap.Error(err))
		writeServiceError(w, err)
		return
	}

	resp := profileResponse{UserID: userID, UserName: name, Completed: []string{}}
	for _, q := range quizzes {
		if q.Completed {
			resp.Completed = append(resp.Completed, q.ID)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) SetName(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}
	var req nameRequest
	if !h.decode(w, r, &req) {
		return
	}
	name, err := app.NormalizeName(req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := identity.SetUserName(r.Context(), name); err != nil {
		h.logger.Error("store user name", zap.Error(err))
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"userName": name})
}

// Complete scores a finished quiz and submits the result.
// A failed submission still answers 200 with submitted=false.
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}
	if !h.limiter.Allow(r.Header.Get(ProfileHeader)) {
		writeError(w, http.StatusTooManyRequests, "too many submissions")
		return
	}
	var req completeRequest
	if !h.decode(w, r, &req) {
		return
	}
	completion, err := h.service.Complete(r.Context(), identity, chi.URLParam(r, "quizID"), req.Answers)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, completion)
}

// Leaderboard answers 503 with an empty board when the backend fails.
func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	lb, err := h.service.Leaderboard(r.Context(), r.URL.Query().Get("quizId"))
	if errors.Is(err, domain.ErrQuizNotFound) {
		writeServiceError(w, err)
		return
	}
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, leaderboardResponse{Leaderboard: lb, Error: "result backend unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, leaderboardResponse{Leaderboard: lb})
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}
	items, err := h.service.History(r.Context(), identity)
	if err != nil {
		h.logger.Error("load history", zap.Error(err))
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
