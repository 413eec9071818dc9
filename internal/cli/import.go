package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/crazythursday/copywriting/internal/config"
	"github.com/crazythursday/copywriting/internal/database"
	"github.com/crazythursday/copywriting/internal/importers"
	"github.com/crazythursday/copywriting/internal/services"
	"github.com/crazythursday/copywriting/internal/stores"
)

// StoreOpener builds the content store for a command. stores.Open is the default.
type StoreOpener func(cfg *config.Config, db *database.Database) (services.ContentStore, error)

// ImportCommand bulk-loads a JSON array of records into the content store.
type ImportCommand struct {
	FilePath  string
	BatchSize int
	Strict    bool
	DryRun    bool
	Verbose   bool
	History   bool

	cfg       *config.Config
	out       io.Writer
	openStore StoreOpener
}

func NewImportCommand(cfg *config.Config) *ImportCommand {
	return &ImportCommand{
		cfg:       cfg,
		out:       os.Stdout,
		openStore: stores.Open,
	}
}

// WithOutput redirects progress output.
func (cmd *ImportCommand) WithOutput(out io.Writer) *ImportCommand {
	cmd.out = out
	return cmd
}

// WithStoreOpener replaces the content store factory.
func (cmd *ImportCommand) WithStoreOpener(open StoreOpener) *ImportCommand {
	cmd.openStore = open
	return cmd
}

func (cmd *ImportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)

	fs.StringVar(&cmd.FilePath, "file", cmd.cfg.Import.DataFile, "Path to the JSON array of records")
	fs.IntVar(&cmd.BatchSize, "batch-size", cmd.cfg.Import.BatchSize, "Records per insert request")
	fs.BoolVar(&cmd.Strict, "strict", false, "Abort before the first batch if any element is malformed")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Show the planned batches without contacting the store")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&cmd.History, "history", true, "Record the run in the local database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import records into the %s collection in batches.\n\n", cmd.cfg.Supabase.Table)
		fmt.Fprintf(os.Stderr, "Each element is either a string or an object {\"content\": ..., \"status\": ...}.\n")
		fmt.Fprintf(os.Stderr, "Strings are imported as pending. A failed batch does not stop the import.\n\n")
		fmt.Fprintf(os.Stderr, "Requires %s and %s unless STORE_BACKEND=sqlite.\n\n", config.EnvSupabaseURL, config.EnvSupabaseAnonKey)
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s import -file data.json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s import -file data.json -dry-run -verbose\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.FilePath == "" {
		return fmt.Errorf("required flag -file not provided")
	}
	if cmd.BatchSize <= 0 {
		return fmt.Errorf("-batch-size must be positive, got %d", cmd.BatchSize)
	}
	return nil
}

// Run executes the import. Failed batches are reported but do not make Run
// fail; only missing credentials, unreadable input and strict-mode rejections do.
// Batches are never cut short by ctx: a started import either finishes or the
// process dies, so the printed tally always matches what the store received.
func (cmd *ImportCommand) Run(ctx context.Context) error {
	ctx = context.WithoutCancel(ctx)

	fmt.Fprintln(cmd.out, "Copywriting Import")
	fmt.Fprintln(cmd.out, "==================")

	if cmd.DryRun {
		fmt.Fprintln(cmd.out, "DRY RUN MODE - No changes will be made")
		return cmd.dryRun()
	}

	if stores.NeedsCredentials(cmd.cfg) {
		if err := cmd.cfg.Supabase.Validate(); err != nil {
			return err
		}
	}

	var local *localState
	if cmd.History || !stores.NeedsCredentials(cmd.cfg) {
		var err error
		local, err = openLocalState(cmd.cfg.Database.Path, cmd.out)
		if err != nil {
			if !cmd.History || !stores.NeedsCredentials(cmd.cfg) {
				return err
			}
			fmt.Fprintf(cmd.out, "Warning: run history disabled: %v\n", err)
			local = nil
		}
	}
	defer local.Close()

	var db *database.Database
	if local != nil {
		db = local.db
	}
	store, err := cmd.openStore(cmd.cfg, db)
	if err != nil {
		return err
	}

	opts := []services.ImportOption{
		services.WithImportBatchSize(cmd.BatchSize),
		services.WithImportCollection(cmd.cfg.Supabase.Table),
	}
	if local != nil && cmd.History {
		opts = append(opts, services.WithRunRecorder(local.runs), services.WithImportAuditor(local.audit))
	}
	service := services.NewImportService(store, opts...)

	fmt.Fprintf(cmd.out, "File: %s\n", cmd.FilePath)
	records, err := cmd.load()
	if err != nil {
		service.RecordFailure(services.SourceCLI, cmd.FilePath, err)
		return err
	}

	outcome, err := service.Import(ctx, services.ImportRequest{
		Source:   services.SourceCLI,
		Origin:   cmd.FilePath,
		Records:  records,
		Reporter: importers.NewConsoleReporter(cmd.out, cmd.Verbose),
	})
	if err != nil {
		return err
	}

	if cmd.History && local != nil {
		fmt.Fprintf(cmd.out, "\nRun %s recorded\n", outcome.RunID)
	}
	if outcome.Summary.Failed > 0 {
		fmt.Fprintf(cmd.out, "%d records were not imported; see the errors above\n", outcome.Summary.Failed)
	}
	return nil
}

// load reads the input and applies the strict check.
func (cmd *ImportCommand) load() ([]importers.ImportRecord, error) {
	records, err := importers.LoadFile(cmd.FilePath)
	if err != nil {
		return nil, err
	}
	if idx := importers.FirstMalformed(records); cmd.Strict && idx >= 0 {
		return nil, fmt.Errorf("%w: element %d: %v", importers.ErrInvalidInput, idx+1, records[idx].Err)
	}
	return records, nil
}

func (cmd *ImportCommand) dryRun() error {
	fmt.Fprintf(cmd.out, "File: %s\n", cmd.FilePath)
	records, err := cmd.load()
	if err != nil {
		return err
	}

	batches := importers.Partition(records, cmd.BatchSize)
	fmt.Fprintf(cmd.out, "\nFound %d records, %d batches of up to %d\n\n", len(records), len(batches), cmd.BatchSize)
	for _, b := range batches {
		malformed := 0
		for _, r := range b.Records {
			if r.Malformed() {
				malformed++
			}
		}
		if malformed > 0 {
			fmt.Fprintf(cmd.out, "  batch %d: records %d-%d (%d malformed, would fail)\n", b.Number, b.FirstIndex(), b.LastIndex(), malformed)
			continue
		}
		fmt.Fprintf(cmd.out, "  batch %d: records %d-%d\n", b.Number, b.FirstIndex(), b.LastIndex())
	}

	if cmd.Verbose {
		for i, r := range records {
			if r.Malformed() {
				fmt.Fprintf(cmd.out, "  element %d: %v\n", i+1, r.Err)
			}
		}
	}

	fmt.Fprintln(cmd.out, "\nDry run complete. Use without -dry-run to import.")
	return nil
}

// ExitHint returns a remediation line for fatal import errors, or "".
func ExitHint(err error) string {
	switch {
	case errors.Is(err, config.ErrMissingCredentials):
		return config.CredentialsHint()
	case errors.Is(err, importers.ErrInvalidInput):
		return "the input must be a JSON array of strings or {\"content\", \"status\"} objects"
	}
	return ""
}
