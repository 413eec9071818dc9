package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/crazythursday/copywriting/internal/config"
	"github.com/crazythursday/copywriting/internal/database"
	"github.com/crazythursday/copywriting/internal/entities"
	"github.com/crazythursday/copywriting/internal/services"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Supabase: config.Supabase{
			URL:     "https://example.supabase.co",
			AnonKey: "anon-key",
			Table:   config.DefaultTable,
		},
		Store:    config.Store{Backend: config.StoreBackendSupabase},
		Database: config.Database{Path: filepath.Join(dir, "copywriting.db")},
		Import: config.Import{
			DataFile:  filepath.Join(dir, "data.json"),
			RawFile:   filepath.Join(dir, "data-raw.txt"),
			BatchSize: 100,
		},
	}
}

func writeJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))
}

func texts(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "文案"
	}
	return out
}

// stubStore counts Insert calls and fails the ones listed in failOn (1-based).
type stubStore struct {
	mu       sync.Mutex
	calls    int
	inserted int
	failOn   map[int]error
}

func (s *stubStore) Insert(_ context.Context, _ string, records []entities.CopywritingInput) ([]entities.Copywriting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if err := s.failOn[s.calls]; err != nil {
		return nil, err
	}
	rows := make([]entities.Copywriting, len(records))
	for i, r := range records {
		s.inserted++
		rows[i] = entities.Copywriting{ID: uint(s.inserted), Content: r.Content, Status: r.Status}
	}
	return rows, nil
}

func (s *stubStore) List(context.Context, string, entities.ListFilter) ([]entities.Copywriting, error) {
	return nil, nil
}

func (s *stubStore) Count(context.Context, string, entities.CopywritingStatus) (int64, error) {
	return 0, nil
}

func (s *stubStore) UpdateStatus(context.Context, string, uint, entities.CopywritingStatus) (*entities.Copywriting, error) {
	return nil, entities.ErrNotFound
}

func (s *stubStore) Delete(context.Context, string, uint) error {
	return entities.ErrNotFound
}

// opener returns a StoreOpener handing out store and counting its invocations.
func opener(store services.ContentStore, opened *int) StoreOpener {
	return func(*config.Config, *database.Database) (services.ContentStore, error) {
		*opened++
		return store, nil
	}
}
