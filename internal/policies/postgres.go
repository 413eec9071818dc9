package policies

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// PostgresSource reads pg_policies over a direct database connection.
type PostgresSource struct {
	db *sqlx.DB
}

// NewPostgresSource wraps an open connection.
func NewPostgresSource(db *sqlx.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

// OpenPostgres connects to dsn and verifies the connection.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresSource, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return NewPostgresSource(db), nil
}

func (s *PostgresSource) Name() string {
	return "postgres"
}

func (s *PostgresSource) Policies(ctx context.Context, table string) ([]Policy, error) {
	var policies []Policy
	if err := s.db.SelectContext(ctx, &policies, fmt.Sprintf(policiesQuery, "$1"), table); err != nil {
		return nil, fmt.Errorf("query pg_policies: %w", err)
	}
	return policies, nil
}

func (s *PostgresSource) Close() error {
	return s.db.Close()
}
