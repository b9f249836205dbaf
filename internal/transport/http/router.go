package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// NewRouter wires the REST API and the live leaderboard socket.
func NewRouter(h *Handler, ws *WSHandler, allowedOrigins []string) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(h.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", ProfileHeader},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ws/leaderboard", ws.ServeWS)

	r.Route("/api", func(r chi.Router) {
		r.Get("/quizzes", h.ListQuizzes)
		r.Route("/quizzes/{quizID}", func(r chi.Router) {
			r.Get("/", h.GetQuiz)
			r.Get("/qr.png", h.QuizQR)
			r.Post("/complete", h.Complete)
		})
		r.Post("/qr/resolve", h.ResolveQR)
		r.Post("/qr/decode", h.DecodeQR)
		r.Get("/profile", h.GetProfile)
		r.Put("/profile/name", h.SetName)
		r.Get("/leaderboard", h.Leaderboard)
		r.Get("/history", h.History)
	})
	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
