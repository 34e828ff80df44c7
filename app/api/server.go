package api

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rbhz/dictionary-lookup/app/lookup"
	"github.com/rs/zerolog/log"
)

type Server struct {
	router chi.Router
	srv    *http.Server
}

// Run listens on the port until ctx is cancelled
func (s *Server) Run(ctx context.Context, port int) error {
	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("failed to shutdown API server")
		}
	}()
	log.Info().Int("port", port).Msg("starting API server")
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) setJsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func NewServer(service *lookup.Service, jwtSecret string) *Server {
	s := &Server{}
	auth := &authService{jwtSecret: []byte(jwtSecret)}
	sessions := sessionService{lookup: service, auth: auth}
	page := pageService{
		lookup:   service,
		auth:     auth,
		template: template.Must(template.New("page").Parse(pageTemplate)),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/", page.Show)
	r.Post("/", page.Search)
	r.Post("/unmount", page.Unmount)

	r.Route("/api/v1/session", func(r chi.Router) {
		r.Use(s.setJsonContentType)
		r.Post("/", sessions.Mount)
		r.Group(func(r chi.Router) {
			r.Use(auth.SessionCtx)
			r.Get("/", sessions.State)
			r.Delete("/", sessions.Unmount)
			r.Put("/query", sessions.TextChange)
			r.Post("/lookup", sessions.Trigger)
		})
	})

	s.router = r
	return s
}
