package services

import (
	"context"
	"time"

	"mood-tracker/internal/domain"
	"mood-tracker/internal/mood"
	"mood-tracker/internal/quotes"
	"mood-tracker/internal/spotify"
)

// Snapshot is everything a surface needs to render the board after a change
type Snapshot struct {
	Tasks       []domain.Task    `json:"tasks"`
	Mood        mood.Result      `json:"mood"`
	PlaylistKey mood.PlaylistKey `json:"playlist_key"`
	Playlist    *spotify.Embed   `json:"playlist"`
	Quote       string           `json:"quote"`
	Now         time.Time        `json:"now"`
}

// Earliest returns the task with the nearest deadline, or nil when empty
func (s *Snapshot) Earliest() *domain.Task {
	if len(s.Tasks) == 0 {
		return nil
	}
	return &s.Tasks[0]
}

// TaskStore holds the session's tasks in sorted order
type TaskStore interface {
	Add(ctx context.Context, name, deadline string) (domain.Task, error)
	DeleteAt(ctx context.Context, index int) (domain.Task, error)
	SortedView(ctx context.Context) ([]domain.Task, error)
	Close() error
}

// PlaylistProvider resolves the playlist for a mood. It may return a usable
// embed together with an error when only the metadata lookup failed.
type PlaylistProvider interface {
	Playlist(ctx context.Context, key mood.PlaylistKey, label string) (*spotify.Embed, error)
}

// QuoteProvider fetches a motivational quote
type QuoteProvider interface {
	Random(ctx context.Context) (*quotes.Quote, error)
}

// BoardService coordinates the task store with the mood, playlist and quote
// collaborators
type BoardService interface {
	AddTask(ctx context.Context, name, deadline string) (*Snapshot, error)
	DeleteTask(ctx context.Context, index int) (*Snapshot, error)
	Snapshot(ctx context.Context) (*Snapshot, error)
	RefreshQuote(ctx context.Context) string
	Close() error
}
