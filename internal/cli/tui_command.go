package cli

import (
	"context"

	"mood-tracker/internal/tui"
)

// TUICommand runs the interactive terminal interface
type TUICommand struct {
	app *App
}

// NewTUICommand creates a new tui command handler
func NewTUICommand(app *App) *TUICommand {
	return &TUICommand{app: app}
}

// Execute runs the terminal UI until the user quits or ctx is cancelled
func (c *TUICommand) Execute(ctx context.Context, _ []string) error {
	if err := tui.Run(ctx, c.app.board, c.app.config); err != nil {
		return c.app.errors.Handle("run terminal UI", err)
	}
	return nil
}
