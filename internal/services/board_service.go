package services

import (
	"context"
	"sync"
	"time"

	apperrors "mood-tracker/internal/errors"
	"mood-tracker/internal/logging"
	"mood-tracker/internal/mood"
	"mood-tracker/internal/spotify"
)

// boardServiceImpl implements the BoardService interface
type boardServiceImpl struct {
	store     TaskStore
	playlists PlaylistProvider
	quotes    QuoteProvider
	fallback  string
	now       func() time.Time

	mu    sync.RWMutex
	quote string
}

// BoardOption customises a board
type BoardOption func(*boardServiceImpl)

// WithClock replaces the wall clock used for classification
func WithClock(now func() time.Time) BoardOption {
	return func(b *boardServiceImpl) {
		b.now = now
	}
}

// WithFallbackQuote sets the text shown when no quote is available
func WithFallbackQuote(text string) BoardOption {
	return func(b *boardServiceImpl) {
		b.fallback = text
	}
}

// NewBoardService creates a board. Nil collaborators are skipped.
func NewBoardService(store TaskStore, playlists PlaylistProvider, quotes QuoteProvider, opts ...BoardOption) BoardService {
	b := &boardServiceImpl{
		store:     store,
		playlists: playlists,
		quotes:    quotes,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AddTask stores a task and fetches a fresh quote. Invalid input is returned
// to the caller and nothing else happens.
func (b *boardServiceImpl) AddTask(ctx context.Context, name, deadline string) (*Snapshot, error) {
	task, err := b.store.Add(ctx, name, deadline)
	if err != nil {
		return nil, err
	}
	logging.Debugf("added task %s (%q due %s)\n", task.ID, task.Name, task.Deadline.Format(time.RFC3339))

	b.RefreshQuote(ctx)
	return b.Snapshot(ctx)
}

// DeleteTask removes the task at index of the sorted view. An index that no
// longer exists is ignored.
func (b *boardServiceImpl) DeleteTask(ctx context.Context, index int) (*Snapshot, error) {
	task, err := b.store.DeleteAt(ctx, index)
	switch {
	case apperrors.IsErrorType(err, apperrors.ErrorTypeIndexOutOfRange):
		logging.Debugf("ignoring delete: %v\n", err)
	case err != nil:
		return nil, err
	default:
		logging.Debugf("deleted task %s (%q)\n", task.ID, task.Name)
	}

	return b.Snapshot(ctx)
}

// Snapshot classifies the current list and resolves its playlist
func (b *boardServiceImpl) Snapshot(ctx context.Context) (*Snapshot, error) {
	view, err := b.store.SortedView(ctx)
	if err != nil {
		return nil, err
	}

	now := b.now()
	snapshot := &Snapshot{Tasks: view, Now: now}

	var deadline *time.Time
	if earliest := snapshot.Earliest(); earliest != nil {
		deadline = &earliest.Deadline
	}
	snapshot.Mood = mood.Classify(deadline, now)
	snapshot.PlaylistKey = mood.PlaylistKeyFor(snapshot.Mood.Category)
	snapshot.Playlist = b.playlist(ctx, snapshot.PlaylistKey, snapshot.Mood.Label)
	snapshot.Quote = b.currentQuote()

	return snapshot, nil
}

// RefreshQuote fetches a new quote. On failure the last good quote stays,
// or the fallback text when none has been fetched yet.
func (b *boardServiceImpl) RefreshQuote(ctx context.Context) string {
	if b.quotes == nil {
		return b.currentQuote()
	}

	quote, err := b.quotes.Random(ctx)
	if err != nil {
		logging.Warnf("quote unavailable: %v", err)
		return b.currentQuote()
	}

	text := quote.String()
	b.mu.Lock()
	b.quote = text
	b.mu.Unlock()
	return text
}

func (b *boardServiceImpl) currentQuote() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.quote == "" {
		return b.fallback
	}
	return b.quote
}

func (b *boardServiceImpl) playlist(ctx context.Context, key mood.PlaylistKey, label string) *spotify.Embed {
	if b.playlists == nil {
		return spotify.NewEmbed(key, label)
	}

	embed, err := b.playlists.Playlist(ctx, key, label)
	if err != nil {
		logging.Warnf("playlist metadata unavailable: %v", err)
	}
	if embed == nil {
		embed = spotify.NewEmbed(key, label)
	}
	return embed
}
