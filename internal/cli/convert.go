package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/crazythursday/copywriting/internal/config"
	"github.com/crazythursday/copywriting/internal/converter"
)

// ConvertCommand turns a plain-text dump into the JSON array read by import.
type ConvertCommand struct {
	InputPath  string
	OutputPath string

	cfg *config.Config
	out io.Writer
}

func NewConvertCommand(cfg *config.Config) *ConvertCommand {
	return &ConvertCommand{cfg: cfg, out: os.Stdout}
}

// WithOutput redirects progress output.
func (cmd *ConvertCommand) WithOutput(out io.Writer) *ConvertCommand {
	cmd.out = out
	return cmd
}

func (cmd *ConvertCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)

	fs.StringVar(&cmd.InputPath, "input", cmd.cfg.Import.RawFile, "Plain-text file, one entry per line")
	fs.StringVar(&cmd.OutputPath, "output", cmd.cfg.Import.DataFile, "JSON file to write")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s convert [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Convert a text file into a JSON array of strings. Blank lines are skipped\n")
		fmt.Fprintf(os.Stderr, "and the literal sequences \\n and \\r become line breaks.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *ConvertCommand) Run() error {
	n, err := converter.ConvertFile(cmd.InputPath, cmd.OutputPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.out, "Converted %d entries from %s to %s\n", n, cmd.InputPath, cmd.OutputPath)
	return nil
}
