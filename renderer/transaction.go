package renderer

import (
	"fmt"

	"github.com/etnz/statement"
)

// Transaction renders a transaction to a string.
func Transaction(tx statement.Transaction) string {
	switch v := tx.(type) {
	case statement.Bought:
		return fmt.Sprintf("Bought %s %s at %s", v.Shares, v.Ticker, v.Price)
	case statement.Sold:
		if v.IsLoss() {
			return fmt.Sprintf("Sold %s %s at %s, loss %s", v.Shares, v.Ticker, v.Price, v.Profit.Abs())
		}
		return fmt.Sprintf("Sold %s %s at %s, profit %s", v.Shares, v.Ticker, v.Price, v.Profit)
	default:
		return fmt.Sprintf("%s %s", tx.What(), tx.Symbol())
	}
}

// Dividend renders a dividend notice to a string.
func Dividend(d statement.Dividend) string {
	return fmt.Sprintf("%s paid %s per share on %s shares", d.Ticker, d.PerShare, d.Shares)
}

// Split renders a split notice to a string.
func Split(s statement.Split) string {
	return fmt.Sprintf("%s split %d to 1, now %s shares", s.Ticker, s.Ratio, s.Shares)
}
