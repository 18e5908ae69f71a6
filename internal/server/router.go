package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/ayush/ai-diary/backend/internal/auth"
	"github.com/ayush/ai-diary/backend/internal/diary"
	"github.com/ayush/ai-diary/backend/internal/media"
	"github.com/ayush/ai-diary/backend/internal/middleware"
	"github.com/ayush/ai-diary/backend/internal/web"
)

// Deps are the handlers and settings the router is built from.
type Deps struct {
	Auth        *auth.Handler
	Diary       *diary.Handler
	Media       *media.Handler
	Log         *zap.Logger
	BodyLimit   int64
	CORSOrigins []string
}

// NewRouter mounts every endpoint of the diary API.
func NewRouter(d Deps) http.Handler {
	h := func(f web.Func) http.HandlerFunc { return web.Handle(d.Log, f) }

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}))
	if d.BodyLimit > 0 {
		r.Use(chimw.RequestSize(d.BodyLimit))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		web.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get(media.UploadsPath+"/{name}", h(d.Media.Serve))

	r.Route("/api", func(r chi.Router) {
		r.Post("/upload", h(d.Media.Upload))
		r.Get("/images", h(d.Media.ListImages))
		r.Post("/analyze-image", h(d.Media.Analyze))

		r.Post("/register", h(d.Auth.Register))
		r.Post("/login", h(d.Auth.Login))

		r.Post("/diary", h(d.Diary.Create))
		r.Get("/diary/{userId}", h(d.Diary.ListByUser))
	})

	return r
}
