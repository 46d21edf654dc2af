package cli

import (
	"context"
	"fmt"

	"mood-tracker/internal/logging"
)

// QuoteCommand prints a motivational quote
type QuoteCommand struct {
	app *App
}

// NewQuoteCommand creates a new quote command handler
func NewQuoteCommand(app *App) *QuoteCommand {
	return &QuoteCommand{app: app}
}

// Execute prints a fresh quote, or the fallback text when none is available
func (c *QuoteCommand) Execute(ctx context.Context, _ []string) error {
	text := c.app.config.Quotes.Fallback

	if c.app.quotes != nil {
		quote, err := c.app.quotes.Random(ctx)
		if err != nil {
			logging.Warnf("quote unavailable: %v", err)
		} else {
			text = quote.String()
		}
	}

	fmt.Fprintln(c.app.out, text)
	return nil
}
