package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"mood-tracker/internal/config"
	"mood-tracker/internal/mood"
	"mood-tracker/internal/quotes"
	"mood-tracker/internal/services"
	"mood-tracker/internal/spotify"
)

var testNow = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

type fakePlaylists struct {
	title string
	err   error
	calls int
}

func (f *fakePlaylists) Playlist(_ context.Context, key mood.PlaylistKey, label string) (*spotify.Embed, error) {
	f.calls++
	embed := spotify.NewEmbed(key, label)
	embed.Title = f.title
	return embed, f.err
}

type fakeQuotes struct {
	quote *quotes.Quote
	err   error
	calls int
}

func (f *fakeQuotes) Random(context.Context) (*quotes.Quote, error) {
	f.calls++
	return f.quote, f.err
}

func testConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.Time.Location = "UTC"
	return cfg
}

// setupTestApp builds an app over an in-memory board with a fixed clock
func setupTestApp(t *testing.T, playlists services.PlaylistProvider, quoteProvider services.QuoteProvider) (*App, *bytes.Buffer) {
	t.Helper()

	original := timeNow
	timeNow = func() time.Time { return testNow }
	t.Cleanup(func() { timeNow = original })

	cfg := testConfig()
	app := NewApp(cfg, nil, playlists, quoteProvider)
	app.board = services.NewBoardService(
		services.NewMemoryTaskStore(app.validator),
		playlists,
		quoteProvider,
		services.WithClock(timeNow),
		services.WithFallbackQuote(cfg.Quotes.Fallback),
	)
	t.Cleanup(func() { _ = app.Close() })

	out := &bytes.Buffer{}
	app.SetOutput(out)
	return app, out
}
