package renderer

import "github.com/etnz/statement"

// Statement is the view of a statement.Statement used by the templates.
type Statement struct {
	Date         string
	Holdings     []Holding
	Income       string
	Transactions []string // transactions first, then dividends and splits
}

// Holding is one row of the holdings table.
type Holding struct {
	Ticker string
	Shares string
	Price  string
}

// NewStatement formats s for rendering.
func NewStatement(s *statement.Statement) *Statement {
	v := &Statement{
		Date:   s.On.String(),
		Income: s.IncomeText(),
	}
	for _, h := range s.Holdings {
		v.Holdings = append(v.Holdings, Holding{Ticker: h.Ticker, Shares: h.Shares.String(), Price: h.Price.String()})
	}
	for _, tx := range s.Transactions {
		v.Transactions = append(v.Transactions, Transaction(tx))
	}
	for _, d := range s.Dividends {
		v.Transactions = append(v.Transactions, Dividend(d))
	}
	for _, sp := range s.Splits {
		v.Transactions = append(v.Transactions, Split(sp))
	}
	return v
}
