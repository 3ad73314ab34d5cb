package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Asker answers a user question.
type Asker interface {
	Ask(ctx context.Context, parts ...*genai.Part) (*genai.Content, error)
}

// Agent is the interactive session with an Asker.
type Agent struct {
	w      io.Writer
	r      *bufio.Reader
	expert Asker

	// Render formats answers before they are printed, they are printed as is
	// when nil.
	Render func(markdown string) string
}

// New creates a new Agent that reads the user's questions from r and writes
// the answers to w.
func New(w io.Writer, r io.Reader, expert Asker) *Agent {
	return &Agent{
		w:      w,
		r:      bufio.NewReader(r),
		expert: expert,
	}
}

const prompt = "assist> "

// Run starts the interactive REPL session. prompts are asked first, as if
// typed by the user.
func (a *Agent) Run(ctx context.Context, prompts ...string) error {
	fmt.Fprintln(a.w, "Ask anything about your statements. Type 'bye' to exit.")

	for {
		fmt.Fprint(a.w, prompt)
		var input string

		// Flush prompts from the list and then ask for the user.
		if len(prompts) > 0 {
			input, prompts = strings.TrimSpace(prompts[0]), prompts[1:]
			if input == "" {
				fmt.Fprintln(a.w)
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil // Clean exit on Ctrl+D
				}
				return err
			}
			input = strings.TrimSpace(input)
		}

		switch input {
		case "":
			continue
		case "bye":
			return nil
		}

		answer, err := a.Answer(ctx, input)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, answer)
	}
}

// Answer asks a single question.
func (a *Agent) Answer(ctx context.Context, question string) (string, error) {
	content, err := a.expert.Ask(ctx, &genai.Part{Text: question})
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, p := range content.Parts {
		b.WriteString(p.Text)
	}
	if a.Render == nil {
		return b.String(), nil
	}
	return a.Render(b.String()), nil
}
