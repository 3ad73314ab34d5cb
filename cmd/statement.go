package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/statement"
	"github.com/etnz/statement/date"
	"github.com/etnz/statement/renderer"
	"github.com/google/subcommands"
)

type statementCmd struct {
	format string
	from   string
	to     string
}

func (*statementCmd) Name() string     { return "statement" }
func (*statementCmd) Synopsis() string { return "replay the actions and print the daily statements" }
func (*statementCmd) Usage() string {
	return `stmt statement [-format text|markdown] [-from <date>] [-to <date>]

  Replays trader actions and corporate actions in date order, and prints a
  statement for each day the trader traded, or a stock they hold paid a
  dividend or split.

  -from and -to only select the statements printed: the whole history is
  always replayed.

Usage Examples:
$ stmt statement
$ stmt -scenario history.json statement -format markdown -from 1992-10-01

`
}

func (c *statementCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "", "output format, text or markdown (default from the configuration)")
	f.StringVar(&c.from, "from", "", "first date to print")
	f.StringVar(&c.to, "to", "", "last date to print")
}

func (c *statementCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := Settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	override(&cfg.Format, c.format)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	in, err := newWindow(c.from, c.to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	log := Logger()
	actions, corporate, err := DecodeInputs(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var selected []*statement.Statement
	engine := statement.NewEngine(cfg.Currency, statement.WithLogger(log))
	err = engine.Replay(actions, corporate, func(s *statement.Statement) error {
		if !in.contains(s.On) {
			return nil
		}
		if cfg.Format == "text" {
			for _, line := range s.Lines() {
				fmt.Println(line)
			}
			return nil
		}
		selected = append(selected, s)
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if cfg.Format == "markdown" {
		printMarkdown(renderer.LogMarkdown(selected), cfg.Style)
	}
	return subcommands.ExitSuccess
}

// window is an inclusive range of dates, open when a bound is zero.
type window struct{ from, to date.Date }

func newWindow(from, to string) (w window, err error) {
	if from != "" {
		if w.from, err = date.Parse(from); err != nil {
			return w, fmt.Errorf("invalid -from: %w", err)
		}
	}
	if to != "" {
		if w.to, err = date.Parse(to); err != nil {
			return w, fmt.Errorf("invalid -to: %w", err)
		}
	}
	if !w.from.IsZero() && !w.to.IsZero() && w.to.Before(w.from) {
		return w, fmt.Errorf("-to %s is before -from %s", w.to, w.from)
	}
	return w, nil
}

func (w window) contains(d date.Date) bool {
	if !w.from.IsZero() && d.Before(w.from) {
		return false
	}
	if !w.to.IsZero() && d.After(w.to) {
		return false
	}
	return true
}
