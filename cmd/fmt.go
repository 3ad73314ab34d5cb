package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/statement"
	"github.com/google/subcommands"
)

type fmtCmd struct {
	dryRun bool
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the input files into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `stmt fmt [-n]

  Validates and formats the actions and corporate actions files. This command
  reads all records, validates them, sorts them by date, and writes them back
  in a canonical JSONL format.

  With -scenario, the streams are read from the scenario and written to the
  actions and corporate actions files.

Usage Examples:
# Formats actions.jsonl and corporate.jsonl in place.
$ stmt fmt

# Splits a scenario into two files.
$ stmt -scenario history.json fmt

`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.dryRun, "n", false, "print the formatted files instead of writing them")
}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := Settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	actions, corporate, err := DecodeInputs(cfg, Logger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load inputs: %v\n", err)
		return subcommands.ExitFailure
	}

	var a, ca bytes.Buffer
	if err := statement.EncodeActions(&a, actions); err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting actions: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := statement.EncodeCorporateActions(&ca, corporate); err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting corporate actions: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.dryRun {
		fmt.Print(a.String())
		fmt.Print(ca.String())
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(cfg.Actions, a.Bytes(), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving actions: %v\n", err)
		return subcommands.ExitFailure
	}
	if cfg.Corporate == "" {
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(cfg.Corporate, ca.Bytes(), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving corporate actions: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
