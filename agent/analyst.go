package agent

import (
	"fmt"

	"github.com/etnz/statement"
	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// NewAnalyst creates an expert answering questions about statements.
func NewAnalyst(model string, statements []*statement.Statement) *Expert {
	if model == "" {
		model = DefaultModel
	}
	lib := Tools(statements)

	summary := "There are no statements yet."
	if n := len(statements); n > 0 {
		summary = fmt.Sprintf("There are %d statements, from %s to %s.", n, statements[0].On, statements[n-1].On)
	}

	return &Expert{
		Name:      "Analyst",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a financial analyst reviewing the daily statements of a trader's
				brokerage account. A statement is issued on each day the trader bought or
				sold shares, or a stock they hold paid a dividend or split.

				Each statement lists the positions with their volume weighted average price,
				the cumulative dividend income, and what happened that day. Profits and
				losses of a sale are measured against the average price.

				Use the Tools to read the statements before answering, never guess figures.
				Answer in markdown.

				` + summary,
			}}},
		},
		Library: NewLibrary(lib),
	}
}
