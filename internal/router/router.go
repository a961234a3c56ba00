package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"mindmate-backend/internal/handlers"
	"mindmate-backend/internal/middleware"
	"mindmate-backend/internal/websocket"
)

func New(
	jwtAuth *middleware.JWTAuth,
	chatHandler *handlers.ChatHandler,
	moodHandler *handlers.MoodHandler,
	summaryHandler *handlers.SummaryHandler,
	googleFitHandler *handlers.GoogleFitHandler,
	wsHub *websocket.Hub,
	chatRateLimit int,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Chat rate limiter (per IP, per minute)
	chatLimiter := middleware.NewRateLimiter(chatRateLimit, time.Minute)

	r.Get("/health", handlers.Health)

	routes := func(r chi.Router) {
		// ──── Chat ────
		r.Route("/chat", func(r chi.Router) {
			r.With(chatLimiter.Middleware).Post("/", chatHandler.Chat)
			r.Get("/provider", chatHandler.Provider)
		})

		// ──── Per-user routes ────
		r.Group(func(r chi.Router) {
			r.Use(middleware.Identity(jwtAuth))

			r.Route("/mood", func(r chi.Router) {
				r.Post("/", moodHandler.Log)
				r.Get("/", moodHandler.List)
				r.Post("/clear", moodHandler.Clear)
			})
			r.Get("/summary", summaryHandler.Get)
			r.Get("/ws", wsHub.HandleWebSocket)
		})

		// ──── Google Fit ────
		r.Route("/googlefit", func(r chi.Router) {
			r.Get("/steps", googleFitHandler.Steps)
			r.Get("/heart-rate", googleFitHandler.HeartRate)
			r.Get("/steps-today", googleFitHandler.StepsToday)
			r.Get("/heart-points", googleFitHandler.HeartPoints)
			r.Get("/target-steps", googleFitHandler.TargetSteps)
			r.Get("/data", googleFitHandler.Data)
		})
	}

	routes(r)
	r.Route("/api/v1", routes)

	return r
}
