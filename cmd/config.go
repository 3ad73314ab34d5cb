package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/etnz/statement"
	"github.com/etnz/statement/agent"
	"gopkg.in/yaml.v2"
)

const (
	// DefaultConfigFile is read from the working directory when no
	// configuration file is given.
	DefaultConfigFile = ".stmt.yaml"
	// EnvConfig names the configuration file when -config is not set.
	EnvConfig = "STMT_CONFIG"
)

// Config is the content of the configuration file.
type Config struct {
	Currency      string `yaml:"currency"`
	Actions       string `yaml:"actions"`
	Corporate     string `yaml:"corporate"`
	Scenario      string `yaml:"scenario"`
	ActionsPath   string `yaml:"actionsPath"`
	CorporatePath string `yaml:"corporatePath"`
	Format        string `yaml:"format"`
	Style         string `yaml:"style"`
	Model         string `yaml:"model"`
}

// DefaultConfig returns the configuration used when there is no file.
func DefaultConfig() Config {
	return Config{
		Currency:      "USD",
		Actions:       "actions.jsonl",
		Corporate:     "corporate.jsonl",
		ActionsPath:   statement.DefaultActionsPath,
		CorporatePath: statement.DefaultCorporatePath,
		Format:        "text",
		Style:         "auto",
		Model:         agent.DefaultModel,
	}
}

// LoadConfig reads the configuration file at path over the defaults.
//
// When path is empty, it is taken from $STMT_CONFIG, or else it is
// .stmt.yaml, and a missing .stmt.yaml is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvConfig)
		explicit = path != ""
	}
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("cannot read configuration: %w", err)
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid configuration file %q: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration is usable.
func (c Config) Validate() error {
	if !statement.KnownCurrency(c.Currency) {
		return fmt.Errorf("unknown currency %q", c.Currency)
	}
	switch c.Format {
	case "text", "markdown":
	default:
		return fmt.Errorf("unknown format %q, want text or markdown", c.Format)
	}
	if c.Scenario == "" && c.Actions == "" {
		return errors.New("no input: set the actions file or a scenario")
	}
	return nil
}
