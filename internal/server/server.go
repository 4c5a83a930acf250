// Package server exposes sessions over HTTP: an HTML page for browsers and a
// small JSON API under /api/v1.
package server

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"pdf-rag/internal/config"
	"pdf-rag/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	shutdownTimeout = 10 * time.Second
)

type Server struct {
	cfg    config.ServerConfig
	store  *session.Store
	engine *gin.Engine
	page   *template.Template
	md     goldmark.Markdown
}

func New(cfg config.ServerConfig, store *session.Store) (*Server, error) {
	page, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		cfg:   cfg,
		store: store,
		page:  page,
		md:    goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}

	engine := gin.New()
	engine.MaxMultipartMemory = cfg.MaxUploadMB << 20
	engine.Use(gin.Recovery(), requestLogger())
	s.registerRoutes(engine)
	s.engine = engine
	return s, nil
}

func (s *Server) registerRoutes(router *gin.Engine) {
	router.GET("/healthz", s.healthHandler)

	web := router.Group("/")
	web.Use(s.sessionMiddleware())
	{
		web.GET("", s.indexHandler)
		web.POST("process", s.processFormHandler)
		web.POST("ask", s.askFormHandler)
	}

	v1 := router.Group("/api/v1")
	v1.Use(s.sessionMiddleware())
	{
		v1.POST("/process", s.processAPIHandler)
		v1.POST("/ask", s.askAPIHandler)
		v1.GET("/session", s.sessionAPIHandler)
	}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sweepCtx, stopSweeper := context.WithCancel(ctx)
	defer stopSweeper()
	go s.store.RunSweeper(sweepCtx)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.cfg.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to serve HTTP: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	log.Info().Msg("HTTP server stopped")
	return nil
}

// renderMarkdown converts model output to HTML. Raw HTML in the source is
// escaped by goldmark's default renderer.
func (s *Server) renderMarkdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(text), &buf); err != nil {
		log.Warn().Err(err).Msg("Error rendering markdown")
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(buf.String())
}
