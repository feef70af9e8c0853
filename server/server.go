package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/existflow/notejar/internal/catalog"
	"github.com/existflow/notejar/internal/jar"
	"github.com/existflow/notejar/internal/logger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Server exposes the note jar over HTTP
type Server struct {
	loop      *jar.Loop
	catalog   *catalog.Catalog
	publicDir string
	echo      *echo.Echo

	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a server and starts its jar loop. Call Close to stop it.
func New(cat *catalog.Catalog, opts jar.Options, publicDir string) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		loop:      jar.NewLoop(cat, opts),
		catalog:   cat,
		publicDir: publicDir,
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	go func() {
		defer close(s.done)
		if err := s.loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Jar loop exited", logger.F("error", err))
		}
	}()

	s.setupEcho()
	return s
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger)

	e.GET("/health", s.handleHealth)

	if s.publicDir != "" {
		e.Static("/images", s.publicDir)
	}

	api := e.Group("/api/v1")
	api.GET("/catalog", s.handleCatalog)
	api.GET("/state", s.handleState)
	api.GET("/notes", s.handleNotes)
	api.POST("/jar/activate", s.handleActivate)
	api.POST("/jar/reset", s.handleReset)
	api.POST("/notes/:id/open", s.handleOpenNote)
	api.POST("/detail/close", s.handleCloseDetail)

	s.echo = e
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start(addr string) error {
	logger.Info("Note jar server starting", logger.F("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Close stops the jar loop
func (s *Server) Close() error {
	s.cancel()
	<-s.done
	return nil
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
