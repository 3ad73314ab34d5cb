package statement

import (
	"github.com/etnz/statement/date"
)

// Portfolio is the state of the trader: shares held per instrument, the
// dividend income received so far, and what happened since the last
// statement.
type Portfolio struct {
	market   *Registry
	order    []string // tickers in the order they were first held
	holdings map[string]Quantity
	income   Money

	// consumed by the next statement
	pending []Transaction
	notices map[notice]struct{}
}

// NewPortfolio creates an empty portfolio trading instruments from market.
func NewPortfolio(market *Registry) *Portfolio {
	return &Portfolio{
		market:   market,
		holdings: make(map[string]Quantity),
		income:   M(0, market.Currency()),
		notices:  make(map[notice]struct{}),
	}
}

// Holds reports whether the portfolio has a position in ticker, even an
// empty one.
func (p *Portfolio) Holds(ticker string) bool {
	_, ok := p.holdings[ticker]
	return ok
}

// Shares returns the number of shares held in ticker.
func (p *Portfolio) Shares(ticker string) Quantity { return p.holdings[ticker] }

// Income returns the cumulative dividend income.
func (p *Portfolio) Income() Money { return p.income }

// Pending returns the transactions recorded since the last statement.
func (p *Portfolio) Pending() []Transaction { return p.pending }

// setShares sets the position in ticker, creating it if needed.
func (p *Portfolio) setShares(ticker string, q Quantity) {
	if !p.Holds(ticker) {
		p.order = append(p.order, ticker)
	}
	p.holdings[ticker] = q
}

func (p *Portfolio) notify(kind NoticeKind, ticker string) {
	p.notices[notice{kind, ticker}] = struct{}{}
}

func (p *Portfolio) notified(kind NoticeKind, ticker string) bool {
	_, ok := p.notices[notice{kind, ticker}]
	return ok
}

// RecordBuy buys shares of s at price.
//
// When the price differs from the instrument's, the instrument price
// becomes the volume weighted average of the trade and the position.
func (p *Portfolio) RecordBuy(s *Instrument, shares Quantity, price Money) {
	p.pending = append(p.pending, Bought{Ticker: s.Symbol(), Shares: shares, Price: price})
	total := p.Shares(s.Symbol()).Add(shares)
	p.setShares(s.Symbol(), total)
	if !price.Equal(s.Price()) {
		s.ApplyVolumeWeightedPrice(price, shares, total)
	}
}

// RecordSell sells shares of s at price.
//
// The position is not checked: selling more than held leaves a negative
// position.
func (p *Portfolio) RecordSell(s *Instrument, shares Quantity, price Money) {
	profit := price.Sub(s.Price()).Mul(shares)
	p.setShares(s.Symbol(), p.Shares(s.Symbol()).Sub(shares))
	p.pending = append(p.pending, Sold{Ticker: s.Symbol(), Shares: shares, Price: price, Profit: profit})
}

// CreditDividend adds the dividend of s on the shares held to the income.
func (p *Portfolio) CreditDividend(s *Instrument) {
	p.income = p.income.Add(s.Dividend().Mul(p.Shares(s.Symbol())))
}

// Render returns the statement of the portfolio on a given day, and starts
// a new cycle: pending transactions and notices are discarded.
func (p *Portfolio) Render(on date.Date) *Statement {
	st := &Statement{
		On:           on,
		Income:       p.income,
		Transactions: p.pending,
	}
	for _, ticker := range p.order {
		shares := p.holdings[ticker]
		s := p.market.Instrument(ticker)
		if !shares.IsZero() {
			st.Holdings = append(st.Holdings, Holding{Ticker: ticker, Shares: shares, Price: s.Price()})
		}
		if p.notified(DividendNotice, ticker) {
			st.Dividends = append(st.Dividends, Dividend{Ticker: ticker, PerShare: s.Dividend(), Shares: shares})
		}
		if p.notified(SplitNotice, ticker) {
			st.Splits = append(st.Splits, Split{Ticker: ticker, Ratio: s.Split(), Shares: shares})
		}
	}
	p.pending = nil
	clear(p.notices)
	return st
}
