package statement

import (
	"fmt"
	"strings"

	"github.com/etnz/statement/date"
)

// Statement is the state of the portfolio at the end of a day, with what
// happened since the previous statement.
type Statement struct {
	On           date.Date
	Holdings     []Holding // non empty positions, in the order they were opened
	Income       Money     // cumulative dividend income
	Transactions []Transaction
	Dividends    []Dividend
	Splits       []Split
}

// Holding is a non empty position.
type Holding struct {
	Ticker string
	Shares Quantity
	Price  Money
}

// Dividend reports a dividend paid on a held stock.
type Dividend struct {
	Ticker   string
	PerShare Money
	Shares   Quantity
}

// Split reports a split of a held stock.
type Split struct {
	Ticker string
	Ratio  int64
	Shares Quantity
}

// Lines returns the statement as report lines, ending with an empty line.
func (s *Statement) Lines() []string {
	lines := make([]string, 0, 4+len(s.Holdings)+len(s.Transactions)+len(s.Dividends)+len(s.Splits))
	printf := func(format string, args ...any) { lines = append(lines, fmt.Sprintf(format, args...)) }

	printf("On %s, you have:", s.On)
	for _, h := range s.Holdings {
		printf("    - %s shares of %s at %s per share", h.Shares, h.Ticker, h.Price)
	}
	printf("    - %s of dividend income", s.IncomeText())

	printf("  Transactions:")
	for _, tx := range s.Transactions {
		switch v := tx.(type) {
		case Bought:
			printf("    - You bought %s shares of %s at a price of %s per share", v.Shares, v.Ticker, v.Price)
		case Sold:
			if v.IsLoss() {
				printf("    - You sold %s shares of %s at a price of %s per share for a loss of %s", v.Shares, v.Ticker, v.Price, v.Profit.Abs())
			} else {
				printf("    - You sold %s shares of %s at a price of %s per share for a profit of %s", v.Shares, v.Ticker, v.Price, v.Profit)
			}
		}
	}
	for _, d := range s.Dividends {
		printf("    - %s paid out %s dividend per share, and you have %s shares", d.Ticker, d.PerShare, d.Shares)
	}
	for _, sp := range s.Splits {
		printf("    - %s split %d to 1, and you have %s shares", sp.Ticker, sp.Ratio, sp.Shares)
	}
	return append(lines, "")
}

// IncomeText formats the dividend income, "$0" when nothing was received.
func (s *Statement) IncomeText() string {
	if s.Income.IsZero() {
		return zero(s.Income)
	}
	return s.Income.String()
}

// zero formats a null amount without minor units, e.g. "$0".
func zero(m Money) string {
	cur := m.currency()
	s := strings.Replace(cur.Template, "1", "0", 1)
	return strings.Replace(s, "$", cur.Grapheme, 1)
}
