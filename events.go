package statement

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/statement/date"
)

// ActionKind identifies a trader action.
type ActionKind string

const (
	Buy  ActionKind = "BUY"
	Sell ActionKind = "SELL"
)

// ErrUnknownAction is returned for an action kind other than BUY or SELL.
var ErrUnknownAction = errors.New("unknown action")

// ParseActionKind parses "buy" or "sell" in any case.
func ParseActionKind(s string) (ActionKind, error) {
	switch k := ActionKind(strings.ToUpper(strings.TrimSpace(s))); k {
	case Buy, Sell:
		return k, nil
	default:
		return "", fmt.Errorf("%w %q, want BUY or SELL", ErrUnknownAction, s)
	}
}

// Action is a trade initiated by the trader.
type Action struct {
	Date   date.Date
	Kind   ActionKind
	Ticker string
	Shares Quantity
	Price  Money // per share
}

// CorporateAction is an event initiated by the market on a stock,
// regardless of who holds it.
type CorporateAction struct {
	Date     date.Date
	Stock    string
	Dividend *Money // per share, nil when the action carries no dividend
	Split    int64  // 0 when the action carries no split
}

// HasDividend reports whether the action pays a dividend.
func (c CorporateAction) HasDividend() bool { return c.Dividend != nil }

// HasSplit reports whether the action splits the stock.
func (c CorporateAction) HasSplit() bool { return c.Split != 0 }

// SortActions sorts actions by date. The sort is stable, so actions on the
// same day keep their relative order.
func SortActions(actions []Action) {
	slices.SortStableFunc(actions, func(a, b Action) int { return a.Date.Compare(b.Date) })
}

// SortCorporateActions sorts corporate actions by date, stable.
func SortCorporateActions(actions []CorporateAction) {
	slices.SortStableFunc(actions, func(a, b CorporateAction) int { return a.Date.Compare(b.Date) })
}
