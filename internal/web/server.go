// Package web serves the task board as an HTML page and a JSON API.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mood-tracker/internal/config"
	"mood-tracker/internal/logging"
	"mood-tracker/internal/services"
	"mood-tracker/internal/validation"
)

//go:embed templates/*.html
var templateFS embed.FS

const shutdownTimeout = 5 * time.Second

// Server is the mood tracker web server
type Server struct {
	board     services.BoardService
	validator *validation.TaskValidator
	layout    string
	now       func() time.Time
	router    *gin.Engine
}

// ServerOption configures a Server
type ServerOption func(*Server)

// WithClock sets the time source used to classify ad-hoc deadlines
func WithClock(now func() time.Time) ServerOption {
	return func(s *Server) {
		s.now = now
	}
}

// NewServer creates a web server for board
func NewServer(board services.BoardService, cfg *config.Config, opts ...ServerOption) *Server {
	gin.SetMode(cfg.Server.Mode)

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Server.Mode == gin.DebugMode {
		router.Use(gin.Logger())
	}

	router.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	s := &Server{
		board:     board,
		validator: validation.NewTaskValidatorWithConfig(cfg),
		layout:    cfg.Time.DisplayFormat,
		now:       time.Now,
		router:    router,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Web routes
	router.GET("/", s.handleIndex)
	router.POST("/tasks", s.handleAddTask)
	router.POST("/tasks/:index/delete", s.handleDeleteTask)

	// API routes
	api := router.Group("/api")
	{
		api.GET("/state", s.handleAPIState)
		api.POST("/tasks", s.handleAPIAddTask)
		api.DELETE("/tasks/:index", s.handleAPIDeleteTask)
		api.GET("/mood", s.handleAPIMood)
		api.GET("/playlist", s.handleAPIPlaylist)
	}

	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logging.Debugln("shutting down web server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
