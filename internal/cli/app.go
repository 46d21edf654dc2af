package cli

import (
	"io"
	"os"
	"time"

	"mood-tracker/internal/config"
	"mood-tracker/internal/services"
	"mood-tracker/internal/validation"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// App holds the dependencies shared by every command
type App struct {
	config    *config.Config
	board     services.BoardService
	playlists services.PlaylistProvider
	quotes    services.QuoteProvider
	validator *validation.TaskValidator
	errors    *ErrorHandler
	out       io.Writer
}

// NewApp creates a CLI application. Nil collaborators are skipped by the
// commands that use them.
func NewApp(cfg *config.Config, board services.BoardService, playlists services.PlaylistProvider, quotes services.QuoteProvider) *App {
	return &App{
		config:    cfg,
		board:     board,
		playlists: playlists,
		quotes:    quotes,
		validator: validation.NewTaskValidatorWithConfig(cfg),
		errors:    NewErrorHandler(),
		out:       os.Stdout,
	}
}

// SetOutput redirects command output
func (a *App) SetOutput(w io.Writer) {
	a.out = w
}

// Close releases the task store
func (a *App) Close() error {
	if a.board == nil {
		return nil
	}
	return a.board.Close()
}

func (a *App) location() *time.Location {
	return a.config.GetLocation()
}
