// Package stores selects the content store backend from configuration.
package stores

import (
	"errors"
	"fmt"

	"github.com/crazythursday/copywriting/internal/config"
	"github.com/crazythursday/copywriting/internal/database"
	"github.com/crazythursday/copywriting/internal/services"
	"github.com/crazythursday/copywriting/internal/supabase"
)

// ErrDatabaseRequired is returned when the sqlite backend is selected without a local database.
var ErrDatabaseRequired = errors.New("sqlite backend requires the local database")

// NeedsCredentials reports whether cfg selects the hosted store.
func NeedsCredentials(cfg *config.Config) bool {
	return cfg.Store.Backend != config.StoreBackendSQLite
}

// Open returns the content store selected by cfg.Store.Backend. db backs the
// sqlite backend and may be nil for the hosted one.
func Open(cfg *config.Config, db *database.Database) (services.ContentStore, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendSQLite:
		if db == nil {
			return nil, ErrDatabaseRequired
		}
		return db, nil
	case config.StoreBackendSupabase, "":
		client, err := NewSupabaseClient(cfg)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q (expected %s or %s)",
			cfg.Store.Backend, config.StoreBackendSupabase, config.StoreBackendSQLite)
	}
}

// NewSupabaseClient validates the credentials and builds a client.
func NewSupabaseClient(cfg *config.Config) (*supabase.Client, error) {
	if err := cfg.Supabase.Validate(); err != nil {
		return nil, err
	}
	return supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.AnonKey,
		supabase.WithTimeout(cfg.Supabase.Timeout)), nil
}
