package app

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/THE-DEEPDAS/Anveshak-sub000/internal/api/handlers"
	"github.com/THE-DEEPDAS/Anveshak-sub000/internal/config"
	"github.com/THE-DEEPDAS/Anveshak-sub000/internal/core"
	"github.com/THE-DEEPDAS/Anveshak-sub000/internal/services"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
}

// NewServer builds and wires all routes.
func NewServer(ctx context.Context, cfg *config.Config, db core.DbClient, obj core.ObjectClient, parser *services.ParseService, matcher *services.MatchService) *Server {
	resumeHandler := handlers.NewResumeHandler(db, obj, parser, cfg)
	matchHandler := handlers.NewMatchHandler(db, matcher, cfg)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8888"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-User-ID"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(api chi.Router) {
		api.Post("/resumes", resumeHandler.UploadResume)
		api.Get("/resumes", resumeHandler.ListResumes)
		api.Get("/resumes/{id}", resumeHandler.GetResume)
		api.Post("/resumes/{id}/reparse", resumeHandler.ReparseResume)
		api.Get("/resumes/{id}/history", resumeHandler.ParseHistory)
		api.Post("/resumes/{id}/matches", matchHandler.MatchResume)

		api.Post("/companies/import", matchHandler.ImportCompanies)
	})

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	return &Server{httpServer: httpSrv}
}

// Start runs the HTTP server.
func (s *Server) Start() {
	log.Printf("HTTP server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down HTTP server...")
	return s.httpServer.Shutdown(ctx)
}
