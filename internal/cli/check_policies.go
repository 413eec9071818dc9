package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/crazythursday/copywriting/internal/config"
	"github.com/crazythursday/copywriting/internal/policies"
	"github.com/crazythursday/copywriting/internal/stores"
)

// SourceOpener picks where policies are read from.
type SourceOpener func(ctx context.Context, cfg *config.Config) (policies.Source, error)

// CheckPoliciesCommand prints the row-level-security policies of the collection.
// It is diagnostic: a failing source prints the query to run by hand and still
// succeeds. Only missing credentials make it fail.
type CheckPoliciesCommand struct {
	Table   string
	History bool

	cfg        *config.Config
	out        io.Writer
	openSource SourceOpener
}

func NewCheckPoliciesCommand(cfg *config.Config) *CheckPoliciesCommand {
	return &CheckPoliciesCommand{
		cfg:        cfg,
		out:        os.Stdout,
		openSource: OpenPolicySource,
	}
}

// WithOutput redirects the report.
func (cmd *CheckPoliciesCommand) WithOutput(out io.Writer) *CheckPoliciesCommand {
	cmd.out = out
	return cmd
}

// WithSourceOpener replaces the policy source factory.
func (cmd *CheckPoliciesCommand) WithSourceOpener(open SourceOpener) *CheckPoliciesCommand {
	cmd.openSource = open
	return cmd
}

func (cmd *CheckPoliciesCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("check-policies", flag.ContinueOnError)

	fs.StringVar(&cmd.Table, "table", cmd.cfg.Supabase.Table, "Table to inspect")
	fs.BoolVar(&cmd.History, "history", true, "Record the check in the local audit log")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s check-policies [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List the row level security policies of a table.\n\n")
		fmt.Fprintf(os.Stderr, "Reads pg_policies directly when DATABASE_URL is set, otherwise through\n")
		fmt.Fprintf(os.Stderr, "the %s database function of the Supabase project.\n\n", policies.ExecSQLFunction)
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.Table == "" {
		return fmt.Errorf("required flag -table not provided")
	}
	return nil
}

func (cmd *CheckPoliciesCommand) Run(ctx context.Context) error {
	fmt.Fprintf(cmd.out, "Checking RLS policies for table: %s\n\n", cmd.Table)

	if cmd.cfg.Database.PostgresDSN == "" {
		if err := cmd.cfg.Supabase.Validate(); err != nil {
			return err
		}
	}

	source, err := cmd.openSource(ctx, cmd.cfg)
	if err != nil {
		policies.RenderFailure(cmd.out, cmd.Table, err)
		cmd.audit(0, err)
		return nil
	}
	if closer, ok := source.(io.Closer); ok {
		defer closer.Close()
	}

	found, err := source.Policies(ctx, cmd.Table)
	if err != nil {
		policies.RenderFailure(cmd.out, cmd.Table, err)
		cmd.audit(0, err)
		return nil
	}

	policies.Render(cmd.out, cmd.Table, found)
	cmd.audit(len(found), nil)
	return nil
}

func (cmd *CheckPoliciesCommand) audit(n int, err error) {
	if !cmd.History {
		return
	}
	local, openErr := openLocalState(cmd.cfg.Database.Path, io.Discard)
	if openErr != nil {
		fmt.Fprintf(cmd.out, "Warning: audit log disabled: %v\n", openErr)
		return
	}
	defer local.Close()
	local.audit.LogPolicyCheck(cmd.Table, n, err)
}

// OpenPolicySource connects to Postgres when a DSN is configured and falls
// back to the exec_sql RPC of the hosted store.
func OpenPolicySource(ctx context.Context, cfg *config.Config) (policies.Source, error) {
	if cfg.Database.PostgresDSN != "" {
		source, err := policies.OpenPostgres(ctx, cfg.Database.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return source, nil
	}
	client, err := stores.NewSupabaseClient(cfg)
	if err != nil {
		return nil, err
	}
	return policies.NewRPCSource(client), nil
}
