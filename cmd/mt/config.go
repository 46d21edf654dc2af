package main

import (
	"fmt"

	"mood-tracker/internal/cli"
	"mood-tracker/internal/config"
	"mood-tracker/internal/quotes"
	"mood-tracker/internal/services"
	"mood-tracker/internal/spotify"
	"mood-tracker/internal/validation"
)

// StoreFactory creates task stores for the configured backend
type StoreFactory struct {
	config *config.Config
}

// NewStoreFactory creates a new store factory
func NewStoreFactory(cfg *config.Config) *StoreFactory {
	return &StoreFactory{config: cfg}
}

// CreateStore creates the task store named by Store.Backend
func (sf *StoreFactory) CreateStore() (services.TaskStore, error) {
	validator := validation.NewTaskValidatorWithConfig(sf.config)

	switch sf.config.Store.Backend {
	case config.BackendSQLite:
		return sf.createSQLiteStore(validator)
	default:
		return services.NewMemoryTaskStore(validator), nil
	}
}

// createSQLiteStore keeps the list in an in-memory SQLite database
func (sf *StoreFactory) createSQLiteStore(validator *validation.TaskValidator) (services.TaskStore, error) {
	repo, err := config.CreateRepository(sf.config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sqlite store: %w", err)
	}

	return services.NewSQLiteTaskStore(repo, validator, sf.config.GetLocation()), nil
}

// newApp wires the board and its collaborators from configuration
func newApp(cfg *config.Config) (*cli.App, error) {
	store, err := NewStoreFactory(cfg).CreateStore()
	if err != nil {
		return nil, err
	}

	playlists := spotify.NewClient(cfg.Spotify)
	quoteClient := quotes.NewClient(cfg.Quotes)

	board := services.NewBoardService(
		store,
		playlists,
		quoteClient,
		services.WithFallbackQuote(cfg.Quotes.Fallback),
	)

	return cli.NewApp(cfg, board, playlists, quoteClient), nil
}
