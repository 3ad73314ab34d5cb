package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/statement"
)

// LogMarkdown generates a markdown report from a sequence of statements,
// followed by the realized gains per stock when anything was sold.
func LogMarkdown(statements []*statement.Statement) string {
	r := &logRenderer{Builder: &strings.Builder{}}

	r.Printf("# Statements\n\n")
	if len(statements) == 0 {
		r.Printf("Nothing happened.\n")
		return r.String()
	}
	first, last := statements[0].On, statements[len(statements)-1].On
	r.Printf("%d statements from %s to %s.\n\n", len(statements), first, last)

	for _, s := range statements {
		r.Printf("%s", RenderStatement(s))
	}
	r.renderGains(statements)
	return r.String()
}

// logRenderer formats the output of the log generator into a markdown string.
type logRenderer struct {
	*strings.Builder
}

// Printf formats according to a format specifier and writes to the renderer's buffer.
func (r *logRenderer) Printf(format string, args ...any) {
	fmt.Fprintf(r, format, args...)
}

// gain is the sum of the sales of a stock.
type gain struct {
	ticker string
	sales  int
	profit statement.Money
}

func (r *logRenderer) renderGains(statements []*statement.Statement) {
	var gains []*gain
	index := make(map[string]*gain)
	for _, s := range statements {
		for _, tx := range s.Transactions {
			sold, ok := tx.(statement.Sold)
			if !ok {
				continue
			}
			g, ok := index[sold.Ticker]
			if !ok {
				g = &gain{ticker: sold.Ticker, profit: sold.Profit}
				index[sold.Ticker] = g
				gains = append(gains, g)
			} else {
				g.profit = g.profit.Add(sold.Profit)
			}
			g.sales++
		}
	}

	ConditionalBlock(r, func(w io.Writer) bool {
		fmt.Fprintf(w, "## Realized Gains\n\n")
		fmt.Fprintf(w, "| Ticker | Sales | Profit |\n")
		fmt.Fprintf(w, "|:---|---:|---:|\n")
		for _, g := range gains {
			fmt.Fprintf(w, "| %s | %d | %s |\n", g.ticker, g.sales, g.profit)
		}
		fmt.Fprintf(w, "\n")
		return len(gains) > 0
	})
}
