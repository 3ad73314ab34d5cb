package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/statement"
	"github.com/etnz/statement/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type assistCmd struct {
	once bool
}

func (*assistCmd) Name() string { return "assist" }
func (*assistCmd) Synopsis() string {
	return "ask an AI assistant about the statements"
}
func (*assistCmd) Usage() string {
	return `stmt assist [-once] [<question>]

  Starts an interactive session with an assistant that can read all the
  statements. The question, if any, is asked first.

  It uses the Gemini API: set GEMINI_API_KEY, or GOOGLE_API_KEY.

`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.once, "once", false, "answer the question and exit")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	question := strings.Join(f.Args(), " ")
	if c.once && question == "" {
		fmt.Fprintln(os.Stderr, "Error: -once needs a question")
		return subcommands.ExitUsageError
	}

	cfg, err := Settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	log := Logger()
	actions, corporate, err := DecodeInputs(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	statements, err := statement.Replay(actions, corporate, cfg.Currency, statement.WithLogger(log))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}
	analyst := agent.NewAnalyst(cfg.Model, statements)
	if err := analyst.Start(ctx, client); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	a := agent.New(os.Stdout, os.Stdin, analyst)
	a.Render = markdownRenderer(cfg.Style)

	if c.once {
		answer, err := a.Answer(ctx, question)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Assistant failed:", err)
			return subcommands.ExitFailure
		}
		fmt.Println(answer)
		return subcommands.ExitSuccess
	}

	var prompts []string
	if question != "" {
		prompts = append(prompts, question)
	}
	if err := a.Run(ctx, prompts...); err != nil {
		fmt.Fprintln(os.Stderr, "Assistant failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
