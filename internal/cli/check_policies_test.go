package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/crazythursday/copywriting/internal/config"
	"github.com/crazythursday/copywriting/internal/database"
	auditrepo "github.com/crazythursday/copywriting/internal/database/audit"
	"github.com/crazythursday/copywriting/internal/entities"
	"github.com/crazythursday/copywriting/internal/policies"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	found []policies.Policy
	err   error
	table string
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Policies(_ context.Context, table string) ([]policies.Policy, error) {
	f.table = table
	return f.found, f.err
}

func sourceOpener(src policies.Source, err error, opened *int) SourceOpener {
	return func(context.Context, *config.Config) (policies.Source, error) {
		*opened++
		return src, err
	}
}

func policyEvents(t *testing.T, path string) []entities.AuditEvent {
	t.Helper()
	db, err := database.NewDatabase(path)
	require.NoError(t, err)
	defer db.Close()

	events, _, err := auditrepo.NewRepository(db.DB).GetEvents(entities.AuditEventPolicyCheck, 10, 0)
	require.NoError(t, err)
	return events
}

func TestCheckPoliciesCommand_MissingCredentials(t *testing.T) {
	cfg := testConfig(t)
	cfg.Supabase.AnonKey = ""

	opened := 0
	cmd := NewCheckPoliciesCommand(cfg).
		WithOutput(&bytes.Buffer{}).
		WithSourceOpener(sourceOpener(&fakeSource{}, nil, &opened))
	require.NoError(t, cmd.ParseFlags(nil))

	err := cmd.Run(context.Background())
	assert.ErrorIs(t, err, config.ErrMissingCredentials)
	assert.Equal(t, 0, opened)
}

func TestCheckPoliciesCommand_DirectConnectionNeedsNoCredentials(t *testing.T) {
	cfg := testConfig(t)
	cfg.Supabase = config.Supabase{Table: config.DefaultTable}
	cfg.Database.PostgresDSN = "postgres://localhost/db"

	opened := 0
	src := &fakeSource{}
	cmd := NewCheckPoliciesCommand(cfg).
		WithOutput(&bytes.Buffer{}).
		WithSourceOpener(sourceOpener(src, nil, &opened))
	require.NoError(t, cmd.ParseFlags([]string{"-history=false"}))

	require.NoError(t, cmd.Run(context.Background()))
	assert.Equal(t, 1, opened)
}

func TestCheckPoliciesCommand_Success(t *testing.T) {
	cfg := testConfig(t)
	check := "true"
	src := &fakeSource{found: []policies.Policy{{
		SchemaName: "public",
		TableName:  "copywriting",
		PolicyName: "anon can insert",
		Permissive: "PERMISSIVE",
		Roles:      policies.Roles{"anon"},
		Cmd:        "INSERT",
		WithCheck:  &check,
	}}}

	opened := 0
	var out bytes.Buffer
	cmd := NewCheckPoliciesCommand(cfg).WithOutput(&out).WithSourceOpener(sourceOpener(src, nil, &opened))
	require.NoError(t, cmd.ParseFlags([]string{"-table", "copywriting"}))

	require.NoError(t, cmd.Run(context.Background()))

	assert.Equal(t, "copywriting", src.table)
	text := out.String()
	assert.Contains(t, text, "Found 1 policies on copywriting")
	assert.Contains(t, text, "anon can insert")

	events := policyEvents(t, cfg.Database.Path)
	require.Len(t, events, 1)
	assert.Equal(t, entities.AuditStatusSuccess, events[0].Status)
}

func TestCheckPoliciesCommand_SourceFailureIsNotFatal(t *testing.T) {
	tests := []struct {
		name    string
		src     *fakeSource
		openErr error
	}{
		{name: "query fails", src: &fakeSource{err: errors.New("function exec_sql does not exist")}},
		{name: "connect fails", openErr: errors.New("function exec_sql does not exist")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			var src policies.Source
			if tt.src != nil {
				src = tt.src
			}

			opened := 0
			var out bytes.Buffer
			cmd := NewCheckPoliciesCommand(cfg).WithOutput(&out).WithSourceOpener(sourceOpener(src, tt.openErr, &opened))
			require.NoError(t, cmd.ParseFlags(nil))

			require.NoError(t, cmd.Run(context.Background()))

			text := out.String()
			assert.Contains(t, text, "Query failed: function exec_sql does not exist")
			assert.Contains(t, text, policies.ManualQuery(config.DefaultTable))

			events := policyEvents(t, cfg.Database.Path)
			require.Len(t, events, 1)
			assert.Equal(t, entities.AuditStatusFailed, events[0].Status)
		})
	}
}

func TestOpenPolicySource_RPC(t *testing.T) {
	cfg := testConfig(t)

	src, err := OpenPolicySource(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &policies.RPCSource{}, src)

	cfg.Supabase.URL = ""
	_, err = OpenPolicySource(context.Background(), cfg)
	assert.ErrorIs(t, err, config.ErrMissingCredentials)
}
