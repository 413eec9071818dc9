package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/crazythursday/copywriting/internal/cli"
	"github.com/crazythursday/copywriting/internal/config"
	"github.com/crazythursday/copywriting/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run dispatches a command and returns the process exit code.
func run(args []string) int {
	if err := config.LoadEnvFiles(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	cfg := config.NewConfig()

	// If no arguments or "serve" command, run the HTTP server
	if len(args) == 0 || args[0] == "serve" {
		return exit(entrypoint.Run(cfg, Version))
	}

	command := args[0]
	args = args[1:]

	// Commands install no signal handler: SIGINT ends the process outright.
	ctx := context.Background()

	switch command {
	case "import":
		cmd := cli.NewImportCommand(cfg)
		if err := cmd.ParseFlags(args); err != nil {
			return exit(err)
		}
		return exit(cmd.Run(ctx))

	case "convert":
		cmd := cli.NewConvertCommand(cfg)
		if err := cmd.ParseFlags(args); err != nil {
			return exit(err)
		}
		return exit(cmd.Run())

	case "check-policies":
		cmd := cli.NewCheckPoliciesCommand(cfg)
		if err := cmd.ParseFlags(args); err != nil {
			return exit(err)
		}
		return exit(cmd.Run(ctx))

	case "version":
		fmt.Printf("copywriting %s (%s)\n", Version, Commit)
		return 0

	case "-h", "--help", "help":
		printUsage()
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		return 1
	}
}

func exit(err error) int {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return 0
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if hint := cli.ExitHint(err); hint != "" {
		fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
	}
	return 1
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve           Start the HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  import          Import a JSON array of records in batches\n")
	fmt.Fprintf(os.Stderr, "  convert         Convert a plain-text dump into the import JSON format\n")
	fmt.Fprintf(os.Stderr, "  check-policies  Show the row level security policies of the table\n")
	fmt.Fprintf(os.Stderr, "  version         Print version information\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
