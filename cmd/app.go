// Package cmd implements the stmt command line application.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/statement"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	register(c, c.HelpCommand(), "")
	register(c, c.FlagsCommand(), "")
	register(c, c.CommandsCommand(), "")

	register(c, &statementCmd{}, "statements")
	register(c, &assistCmd{}, "statements")
	register(c, &fmtCmd{}, "files")
	register(c, &topicCmd{}, "documentation")
}

// commands are the names of the registered subcommands.
var commands = make(map[string]bool)

func register(c *subcommands.Commander, cmd subcommands.Command, group string) {
	commands[cmd.Name()] = true
	c.Register(cmd, group)
}

// IsCommand reports whether name is a built-in subcommand.
func IsCommand(name string) bool { return commands[name] }

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile    = flag.String("config", "", "configuration file, defaults to $STMT_CONFIG or "+DefaultConfigFile)
	actionsFile   = flag.String("actions", "", "trader actions file (JSONL)")
	corporateFile = flag.String("corporate", "", "corporate actions file (JSONL)")
	scenarioFile  = flag.String("scenario", "", "JSON document holding both streams, instead of -actions and -corporate")
	currency      = flag.String("currency", "", "ISO code of the currency of all prices")
	Verbose       = flag.Bool("v", false, "log the replay to stderr")
)

// Settings returns the configuration file overridden by the global flags.
func Settings() (Config, error) {
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		return cfg, err
	}
	if *actionsFile != "" || *corporateFile != "" {
		cfg.Scenario = ""
	}
	override(&cfg.Actions, *actionsFile)
	override(&cfg.Corporate, *corporateFile)
	override(&cfg.Scenario, *scenarioFile)
	override(&cfg.Currency, *currency)
	return cfg, cfg.Validate()
}

func override(v *string, flagValue string) {
	if flagValue != "" {
		*v = flagValue
	}
}

// Logger returns the logger of the application, on stderr.
func Logger() *slog.Logger {
	level := slog.LevelWarn
	if *Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// DecodeInputs reads both streams as configured.
func DecodeInputs(cfg Config, log *slog.Logger) ([]statement.Action, []statement.CorporateAction, error) {
	if cfg.Scenario != "" {
		f, err := os.Open(cfg.Scenario)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open scenario: %w", err)
		}
		defer f.Close()
		actions, corporate, err := statement.DecodeScenario(f, cfg.ActionsPath, cfg.CorporatePath, cfg.Currency)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", cfg.Scenario, err)
		}
		log.Debug("scenario decoded", "file", cfg.Scenario, "actions", len(actions), "corporate", len(corporate))
		return actions, corporate, nil
	}

	actions, err := decodeFile(cfg.Actions, cfg.Currency, statement.DecodeActions)
	if err != nil {
		return nil, nil, err
	}
	var corporate []statement.CorporateAction
	if cfg.Corporate != "" {
		corporate, err = decodeFile(cfg.Corporate, cfg.Currency, statement.DecodeCorporateActions)
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn("no corporate actions", "file", cfg.Corporate)
			corporate, err = nil, nil
		}
		if err != nil {
			return nil, nil, err
		}
	}
	log.Debug("inputs decoded", "actions", len(actions), "corporate", len(corporate))
	return actions, corporate, nil
}

func decodeFile[T any](name, currency string, decode func(io.Reader, string) ([]T, error)) ([]T, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open input: %w", err)
	}
	defer f.Close()
	events, err := decode(f, currency)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return events, nil
}

// printMarkdown displays markdown on the terminal, styled by style, or
// raw if it cannot be styled.
func printMarkdown(md, style string) {
	if render := markdownRenderer(style); render != nil {
		md = render(md)
	}
	fmt.Print(md)
}

// markdownRenderer styles markdown for the terminal. It returns nil when
// the style is not available.
func markdownRenderer(style string) func(string) string {
	opt := glamour.WithAutoStyle()
	if style != "" && style != "auto" {
		opt = glamour.WithStandardStyle(style)
	}
	r, err := glamour.NewTermRenderer(opt, glamour.WithWordWrap(100))
	if err != nil {
		return nil
	}
	return func(md string) string {
		out, err := r.Render(md)
		if err != nil {
			return md
		}
		return out
	}
}
