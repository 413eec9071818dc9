package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/crazythursday/copywriting/internal/audit"
	"github.com/crazythursday/copywriting/internal/database"
	auditrepo "github.com/crazythursday/copywriting/internal/database/audit"
	"github.com/crazythursday/copywriting/internal/database/runs"
)

// localState is the local SQLite database opened by a command for run
// history, audit events and, with the sqlite backend, the records themselves.
type localState struct {
	db    *database.Database
	runs  *runs.Repository
	audit *audit.Service
}

func openLocalState(path string, out io.Writer) (*localState, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for database: %w", err)
	}
	fmt.Fprintf(out, "Local database: %s\n", absPath)

	db, err := database.NewDatabase(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &localState{
		db:    db,
		runs:  runs.NewRepository(db.DB),
		audit: audit.NewService(auditrepo.NewRepository(db.DB), audit.WithSynchronousWrites()),
	}, nil
}

func (s *localState) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}
