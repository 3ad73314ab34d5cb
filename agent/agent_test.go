package agent

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/etnz/statement"
	"github.com/etnz/statement/date"
	"google.golang.org/genai"
)

// echo answers every question with its text in upper case.
type echo struct{ asked []string }

func (e *echo) Ask(_ context.Context, parts ...*genai.Part) (*genai.Content, error) {
	q := parts[0].Text
	e.asked = append(e.asked, q)
	if q == "fail" {
		return nil, errors.New("model unavailable")
	}
	return &genai.Content{Parts: []*genai.Part{{Text: strings.ToUpper(q)}}}, nil
}

func TestRun(t *testing.T) {
	var out bytes.Buffer
	e := &echo{}
	a := New(&out, strings.NewReader("how much?\n\nbye\nnever asked\n"), e)

	if err := a.Run(context.Background(), "first", ""); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got, want := strings.Join(e.asked, "|"), "first|how much?"; got != want {
		t.Errorf("asked %q, want %q", got, want)
	}
	for _, want := range []string{"assist> first\nFIRST\n", "HOW MUCH?\n"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output does not contain %q:\n%s", want, out.String())
		}
	}
}

func TestRunEOF(t *testing.T) {
	var out bytes.Buffer
	a := New(&out, strings.NewReader(""), &echo{})
	if err := a.Run(context.Background()); err != nil {
		t.Errorf("Run() error = %v, want a clean exit", err)
	}
}

func TestRunError(t *testing.T) {
	var out bytes.Buffer
	a := New(&out, strings.NewReader(""), &echo{})
	if err := a.Run(context.Background(), "fail"); err == nil {
		t.Errorf("Run() succeeded, want the model error")
	}
}

func TestAnswerRender(t *testing.T) {
	a := New(nil, strings.NewReader(""), &echo{})
	a.Render = func(md string) string { return "<" + md + ">" }
	got, err := a.Answer(context.Background(), "hi")
	if err != nil {
		t.Fatal(err)
	}
	if got != "<HI>" {
		t.Errorf("Answer() = %q, want %q", got, "<HI>")
	}
}

func TestExpertNotStarted(t *testing.T) {
	e := NewAnalyst("", nil)
	if e.ModelName != DefaultModel {
		t.Errorf("ModelName = %q, want %q", e.ModelName, DefaultModel)
	}
	if _, err := e.Ask(context.Background(), &genai.Part{Text: "hi"}); err == nil {
		t.Errorf("Ask() succeeded on a chat never started")
	}
}

func testStatements(t *testing.T) []*statement.Statement {
	t.Helper()
	usd := func(v float64) statement.Money { return statement.M(v, "USD") }
	actions := []statement.Action{
		{Date: date.MustParse("1992-07-14"), Kind: statement.Buy, Ticker: "AAPL", Shares: statement.Q(500), Price: usd(12.3)},
		{Date: date.MustParse("1992-09-13"), Kind: statement.Sell, Ticker: "AAPL", Shares: statement.Q(100), Price: usd(15.3)},
	}
	statements, err := statement.Replay(actions, nil, "USD")
	if err != nil {
		t.Fatal(err)
	}
	return statements
}

func TestTools(t *testing.T) {
	lib := NewLibrary(Tools(testStatements(t)))
	ctx := context.Background()

	tests := []struct {
		name    string
		args    map[string]any
		output  string // contained in the output
		wantErr string // contained in the error
	}{
		{name: "list_statements", output: "1992-07-14\n1992-09-13\n"},
		{name: "get_statement", args: map[string]any{"date": "1992-09-13"}, output: "## 1992-09-13"},
		{name: "get_statement", args: map[string]any{"date": "1992/08/01"}, output: "## 1992-07-14"},
		{name: "get_statement", args: map[string]any{"date": "1992-01-01"}, wantErr: "no statement on or before 1992-01-01"},
		{name: "get_statement", args: map[string]any{"date": 12}, wantErr: "not a string"},
		{name: "get_statement", wantErr: "missing"},
		{name: "all_statements", output: "## Realized Gains"},
		{name: "buy_more", wantErr: "unknown function buy_more"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := lib(ctx, &genai.FunctionCall{ID: "1", Name: tc.name, Args: tc.args})
			if resp.ID != "1" || resp.Name != tc.name {
				t.Errorf("response is %s/%s, want 1/%s", resp.ID, resp.Name, tc.name)
			}
			if tc.wantErr != "" {
				msg, _ := resp.Response["error"].(string)
				if !strings.Contains(msg, tc.wantErr) {
					t.Errorf("error = %q, want it to contain %q", msg, tc.wantErr)
				}
				return
			}
			out, _ := resp.Response["output"].(string)
			if !strings.Contains(out, tc.output) {
				t.Errorf("output = %q, want it to contain %q", out, tc.output)
			}
		})
	}
}

func TestDeclarations(t *testing.T) {
	decls := NewDeclaration(Tools(nil))
	var names []string
	for _, d := range decls {
		names = append(names, d.Name)
	}
	if got, want := strings.Join(names, ","), "list_statements,get_statement,all_statements"; got != want {
		t.Errorf("declarations = %s, want %s", got, want)
	}
}
