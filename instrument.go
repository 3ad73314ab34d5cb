package statement

import (
	"errors"
	"fmt"
)

// ErrInvalidSplit is returned for a split ratio lower than 1.
var ErrInvalidSplit = errors.New("invalid split ratio")

// Instrument is the market state of a single stock.
//
// The price is always expressed for the current split ratio.
type Instrument struct {
	symbol   string
	price    Money
	dividend Money // per share
	split    int64
}

func newInstrument(symbol, currency string) *Instrument {
	return &Instrument{
		symbol:   symbol,
		price:    M(0, currency),
		dividend: M(0, currency),
		split:    1,
	}
}

// Symbol returns the ticker of the instrument.
func (s *Instrument) Symbol() string { return s.symbol }

// Price returns the current price per share.
func (s *Instrument) Price() Money { return s.price }

// Dividend returns the last dividend paid per share.
func (s *Instrument) Dividend() Money { return s.dividend }

// Split returns the current split ratio.
func (s *Instrument) Split() int64 { return s.split }

// ApplyDividend records a dividend of amount per share. If the portfolio
// holds the instrument it is credited with the dividend on its shares, and
// notified.
func (s *Instrument) ApplyDividend(amount Money, p *Portfolio) {
	s.dividend = amount
	if p.Holds(s.symbol) {
		p.CreditDividend(s)
		p.notify(DividendNotice, s.symbol)
	}
}

// ApplySplit changes the split ratio of the instrument to ratio.
//
// The price is scaled by old/new ratio and, if the portfolio holds the
// instrument, its shares are scaled by new/old ratio, truncated toward zero.
func (s *Instrument) ApplySplit(ratio int64, p *Portfolio) error {
	if ratio < 1 {
		return fmt.Errorf("%w %d for %s", ErrInvalidSplit, ratio, s.symbol)
	}
	old, next := Q(s.split), Q(ratio)
	s.price = s.price.Mul(old).Div(next)
	if p.Holds(s.symbol) {
		p.notify(SplitNotice, s.symbol)
		p.setShares(s.symbol, p.Shares(s.symbol).Mul(next).Div(old).Truncate())
	}
	s.split = ratio
	return nil
}

// ApplyVolumeWeightedPrice blends the price of a trade of shares into the
// instrument price, where total is the number of shares held after the
// trade.
//
// It does nothing when the trade is at the current price. When nothing is
// held after the trade the price becomes the trade price.
func (s *Instrument) ApplyVolumeWeightedPrice(price Money, shares, total Quantity) {
	if price.Equal(s.price) {
		return
	}
	if total.IsZero() {
		s.price = price
		return
	}
	s.price = price.Mul(shares).Add(s.price.Mul(total.Sub(shares))).Div(total)
}
