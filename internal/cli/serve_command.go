package cli

import (
	"context"
	"fmt"

	"mood-tracker/internal/web"
)

// ServeCommand runs the web interface
type ServeCommand struct {
	app *App
}

// NewServeCommand creates a new serve command handler
func NewServeCommand(app *App) *ServeCommand {
	return &ServeCommand{app: app}
}

// Execute serves until ctx is cancelled
func (c *ServeCommand) Execute(ctx context.Context, _ []string) error {
	// the page shows a quote from the moment it first loads
	c.app.board.RefreshQuote(ctx)

	server := web.NewServer(c.app.board, c.app.config, web.WithClock(timeNow))
	fmt.Fprintf(c.app.out, "Serving on %s\n", c.app.config.Server.Addr)

	if err := server.Run(ctx, c.app.config.Server.Addr); err != nil {
		return c.app.errors.Handle("serve", err)
	}
	return nil
}
