package stores

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crazythursday/copywriting/internal/config"
	"github.com/crazythursday/copywriting/internal/database"
	"github.com/crazythursday/copywriting/internal/supabase"
)

func TestOpen(t *testing.T) {
	t.Run("supabase requires credentials", func(t *testing.T) {
		cfg := &config.Config{Store: config.Store{Backend: config.StoreBackendSupabase}}

		store, err := Open(cfg, nil)
		assert.Nil(t, store)
		assert.ErrorIs(t, err, config.ErrMissingCredentials)
		assert.True(t, NeedsCredentials(cfg))
	})

	t.Run("supabase with credentials", func(t *testing.T) {
		cfg := &config.Config{Supabase: config.Supabase{URL: "https://x.supabase.co", AnonKey: "key"}}

		store, err := Open(cfg, nil)
		require.NoError(t, err)
		assert.IsType(t, &supabase.Client{}, store)
	})

	t.Run("sqlite uses the local database", func(t *testing.T) {
		db, err := database.NewDatabase(filepath.Join(t.TempDir(), "store.db"))
		require.NoError(t, err)
		defer db.Close()

		cfg := &config.Config{Store: config.Store{Backend: config.StoreBackendSQLite}}
		store, err := Open(cfg, db)
		require.NoError(t, err)
		assert.Same(t, db, store)
		assert.False(t, NeedsCredentials(cfg))
	})

	t.Run("sqlite without database", func(t *testing.T) {
		cfg := &config.Config{Store: config.Store{Backend: config.StoreBackendSQLite}}
		_, err := Open(cfg, nil)
		assert.ErrorIs(t, err, ErrDatabaseRequired)
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := &config.Config{Store: config.Store{Backend: "mongo"}}
		_, err := Open(cfg, nil)
		assert.ErrorContains(t, err, "unknown store backend")
	})
}
