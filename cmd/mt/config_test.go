package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mood-tracker/internal/config"
)

func TestStoreFactory_CreateStore(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		dsn     string
		wantErr bool
	}{
		{"memory backend", config.BackendMemory, ":memory:", false},
		{"sqlite in memory", config.BackendSQLite, ":memory:", false},
		{"sqlite on disk", config.BackendSQLite, "mt.db", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewConfig()
			cfg.Store.Backend = tt.backend
			cfg.Store.DSN = tt.dsn

			store, err := NewStoreFactory(cfg).CreateStore()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer store.Close()

			ctx := context.Background()
			_, err = store.Add(ctx, "Essay", "2024-01-15")
			require.NoError(t, err)

			view, err := store.SortedView(ctx)
			require.NoError(t, err)
			assert.Len(t, view, 1)
		})
	}
}

func TestNewApp(t *testing.T) {
	cfg := config.NewConfig()

	app, err := newApp(cfg)
	require.NoError(t, err)
	require.NotNil(t, app)
	assert.NoError(t, app.Close())
}
