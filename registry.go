package statement

import "iter"

// Registry is the arena of instruments, indexed by ticker.
//
// Instruments are created on first reference and never removed; the
// registry remembers the order in which they were created.
type Registry struct {
	currency    string
	order       []string
	instruments map[string]*Instrument
}

// NewRegistry creates an empty registry whose instruments are priced in currency.
func NewRegistry(currency string) *Registry {
	return &Registry{
		currency:    currency,
		instruments: make(map[string]*Instrument),
	}
}

// Currency returns the currency instruments are priced in.
func (r *Registry) Currency() string { return r.currency }

// Instrument returns the instrument for ticker, creating a placeholder with
// a zero price, no dividend and a 1:1 split if it is the first reference.
func (r *Registry) Instrument(ticker string) *Instrument {
	if s, ok := r.instruments[ticker]; ok {
		return s
	}
	s := newInstrument(ticker, r.currency)
	r.instruments[ticker] = s
	r.order = append(r.order, ticker)
	return s
}

// Lookup returns the instrument for ticker, if it was ever referenced.
func (r *Registry) Lookup(ticker string) (*Instrument, bool) {
	s, ok := r.instruments[ticker]
	return s, ok
}

// Len returns the number of known instruments.
func (r *Registry) Len() int { return len(r.order) }

// All iterates over instruments in creation order.
func (r *Registry) All() iter.Seq[*Instrument] {
	return func(yield func(*Instrument) bool) {
		for _, ticker := range r.order {
			if !yield(r.instruments[ticker]) {
				return
			}
		}
	}
}
