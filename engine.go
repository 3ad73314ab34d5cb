package statement

import (
	"fmt"
	"log/slog"

	"github.com/etnz/statement/date"
)

// Engine replays trader and corporate actions in date order over a
// portfolio, and emits a statement for every day that matters to the trader.
type Engine struct {
	market    *Registry
	portfolio *Portfolio
	log       *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used to trace the replay.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// NewEngine creates an engine with an empty portfolio, pricing everything in currency.
func NewEngine(currency string, opts ...Option) *Engine {
	market := NewRegistry(currency)
	e := &Engine{
		market:    market,
		portfolio: NewPortfolio(market),
		log:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Market returns the instruments known to the engine.
func (e *Engine) Market() *Registry { return e.market }

// Portfolio returns the trader's portfolio.
func (e *Engine) Portfolio() *Portfolio { return e.portfolio }

// phase is the state of a replay.
type phase int

const (
	scanning         phase = iota // both streams have events left
	drainingTrader                // only trader actions are left
	drainingCorporate             // only corporate actions are left
	done
)

func (p phase) String() string {
	switch p {
	case scanning:
		return "scanning"
	case drainingTrader:
		return "draining trader"
	case drainingCorporate:
		return "draining corporate"
	default:
		return "done"
	}
}

// Replay merges actions and corporate, both sorted by date, and calls emit
// with the statement of every day where the trader traded, or where a
// corporate action touched a stock the trader holds.
//
// On a day with both kinds of events, corporate actions are applied first,
// so that trades are recorded against split adjusted prices.
//
// Replay stops at the first error, either from a corporate action or from
// emit.
func (e *Engine) Replay(actions []Action, corporate []CorporateAction, emit func(*Statement) error) error {
	i, j := 0, 0
	for {
		var (
			on  date.Date
			due bool
		)
		p := next(i, len(actions), j, len(corporate))
		switch p {
		case scanning:
			a, c := actions[i], corporate[j]
			switch {
			case a.Date == c.Date:
				on = a.Date
				if _, err := e.applyCorporate(c); err != nil {
					return err
				}
				e.applyAction(a)
				due = true
				i, j = i+1, j+1
			case a.Date.Before(c.Date):
				on = a.Date
				e.applyAction(a)
				due = true
				i++
			default:
				on = c.Date
				held, err := e.applyCorporate(c)
				if err != nil {
					return err
				}
				due = held
				j++
			}
		case drainingTrader:
			on = actions[i].Date
			due = true
		case drainingCorporate:
			on = corporate[j].Date
		case done:
			return nil
		}

		// the rest of the day: corporate actions first
		for ; j < len(corporate) && corporate[j].Date == on; j++ {
			held, err := e.applyCorporate(corporate[j])
			if err != nil {
				return err
			}
			due = due || held
		}
		for ; i < len(actions) && actions[i].Date == on; i++ {
			e.applyAction(actions[i])
			due = true
		}

		e.log.Debug("day replayed", "date", on, "phase", p, "statement", due)
		if !due {
			continue
		}
		if err := emit(e.portfolio.Render(on)); err != nil {
			return fmt.Errorf("cannot emit statement on %s: %w", on, err)
		}
	}
}

// next returns the phase of a replay from the cursor positions.
func next(i, actions, j, corporate int) phase {
	switch {
	case i < actions && j < corporate:
		return scanning
	case i < actions:
		return drainingTrader
	case j < corporate:
		return drainingCorporate
	default:
		return done
	}
}

// applyAction records a trade in the portfolio.
func (e *Engine) applyAction(a Action) {
	s := e.market.Instrument(a.Ticker)
	switch a.Kind {
	case Buy:
		e.portfolio.RecordBuy(s, a.Shares, a.Price)
	case Sell:
		e.portfolio.RecordSell(s, a.Shares, a.Price)
	}
	e.log.Debug("trade", "date", a.Date, "kind", a.Kind, "ticker", a.Ticker, "shares", a.Shares, "price", a.Price, "position", e.portfolio.Shares(a.Ticker))
}

// applyCorporate updates the stock and reports whether the trader holds it.
func (e *Engine) applyCorporate(c CorporateAction) (held bool, err error) {
	s := e.market.Instrument(c.Stock)
	if c.HasDividend() {
		s.ApplyDividend(*c.Dividend, e.portfolio)
	}
	if c.HasSplit() {
		if err := s.ApplySplit(c.Split, e.portfolio); err != nil {
			return false, fmt.Errorf("on %s: %w", c.Date, err)
		}
	}
	held = e.portfolio.Holds(c.Stock)
	e.log.Debug("corporate action", "date", c.Date, "stock", c.Stock, "held", held, "dividend", s.Dividend(), "split", s.Split())
	return held, nil
}

// Replay replays both streams on a new engine and returns all the statements.
func Replay(actions []Action, corporate []CorporateAction, currency string, opts ...Option) ([]*Statement, error) {
	var statements []*Statement
	err := NewEngine(currency, opts...).Replay(actions, corporate, func(s *Statement) error {
		statements = append(statements, s)
		return nil
	})
	return statements, err
}
