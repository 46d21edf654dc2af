package cli

import (
	"context"
	"fmt"

	"mood-tracker/internal/logging"
	"mood-tracker/internal/mood"
	"mood-tracker/internal/spotify"
)

// PlaylistCommand shows the playlist for a mood name
type PlaylistCommand struct {
	app *App
}

// NewPlaylistCommand creates a new playlist command handler
func NewPlaylistCommand(app *App) *PlaylistCommand {
	return &PlaylistCommand{app: app}
}

// Execute prints the playlist for args[0]; unknown or missing names get the calm playlist
func (c *PlaylistCommand) Execute(ctx context.Context, args []string) error {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	key := mood.PlaylistKeyForName(name)

	embed := spotify.NewEmbed(key, "")
	if c.app.playlists != nil {
		resolved, err := c.app.playlists.Playlist(ctx, key, "")
		if err != nil {
			logging.Warnf("playlist metadata unavailable: %v", err)
		}
		if resolved != nil {
			embed = resolved
		}
	}

	fmt.Fprintf(c.app.out, "Playlist: %s\n", embed.Key)
	if embed.Title != "" {
		fmt.Fprintf(c.app.out, "Title: %s\n", embed.Title)
	}
	fmt.Fprintf(c.app.out, "URL: %s\n", embed.URL)
	return nil
}
