package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/statement"
	"github.com/etnz/statement/date"
	"github.com/etnz/statement/docs"
	"github.com/etnz/statement/renderer"
	"google.golang.org/genai"
)

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Tools returns the functions reading statements.
func Tools(statements []*statement.Statement) []*Func {
	return []*Func{
		listStatements(statements),
		getStatement(statements),
		allStatements(statements),
	}
}

func listStatements(statements []*statement.Statement) *Func {
	const name = "list_statements"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: "List the dates of all the statements, oldest first.",
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "One date per line, formatted as YYYY-MM-DD.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			var b strings.Builder
			for _, s := range statements {
				fmt.Fprintln(&b, s.On)
			}
			return success(id, name, b.String())
		},
	}
}

func getStatement(statements []*statement.Statement) *Func {
	const name = "get_statement"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `Get the statement issued on a date, or the last one issued before
			that date when nothing happened on that day.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"date": {
						Type:        genai.TypeString,
						Description: "The date of the statement.\n\n" + must(docs.GetTopic("dates")),
					},
				},
				Required: []string{"date"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The markdown statement.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			on, err := parseDate(args)
			if err != nil {
				return failure(id, name, err)
			}
			var found *statement.Statement
			for _, s := range statements {
				if s.On.After(on) {
					break
				}
				found = s
			}
			if found == nil {
				return failure(id, name, fmt.Errorf("no statement on or before %s", on))
			}
			return success(id, name, renderer.RenderStatement(found))
		},
	}
}

func allStatements(statements []*statement.Statement) *Func {
	const name = "all_statements"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: "Get every statement, followed by the realized gains per stock.",
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown document.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			return success(id, name, renderer.LogMarkdown(statements))
		},
	}
}

func parseDate(args map[string]any) (date.Date, error) {
	idate, ok := args["date"]
	if !ok {
		return date.Date{}, fmt.Errorf("argument 'date' is missing")
	}
	sdate, ok := idate.(string)
	if !ok {
		return date.Date{}, fmt.Errorf("argument 'date' is not a string as expected but %T", idate)
	}
	on, err := date.Parse(sdate)
	if err != nil {
		return date.Date{}, fmt.Errorf("argument 'date' must be a valid date got %q: %w", sdate, err)
	}
	return on, nil
}
