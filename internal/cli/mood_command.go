package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mood-tracker/internal/mood"
	"mood-tracker/internal/render"
	"mood-tracker/internal/spotify"
	"mood-tracker/internal/validation"
)

// MoodCommand classifies a single deadline
type MoodCommand struct {
	app *App
}

// NewMoodCommand creates a new mood command handler
func NewMoodCommand(app *App) *MoodCommand {
	return &MoodCommand{app: app}
}

// Execute prints the mood for the deadline in args, or the empty-board mood
func (c *MoodCommand) Execute(_ context.Context, args []string) error {
	now := timeNow()

	var deadline *time.Time
	if raw := strings.TrimSpace(strings.Join(args, " ")); raw != "" {
		parsed, err := c.app.validator.ParseDeadline(raw)
		if err != nil {
			if ve, ok := err.(*validation.ValidationError); ok {
				err = ve.ToInvalidInput()
			}
			return c.app.errors.Handle("classify deadline", err)
		}
		deadline = &parsed
	}

	result := mood.Classify(deadline, now)
	key := mood.PlaylistKeyFor(result.Category)

	fmt.Fprintln(c.app.out, render.MoodLine(result))
	if deadline != nil {
		remaining := deadline.Sub(now).Round(time.Minute)
		fmt.Fprintf(c.app.out, "Time remaining: %s\n", remaining)
	}
	fmt.Fprintf(c.app.out, "Playlist: %s (%s)\n", key, spotify.EmbedURL(key))
	return nil
}
