package statement

// Transaction is a trade recorded in the portfolio since the last statement.
//
// It is either a Bought or a Sold.
type Transaction interface {
	What() ActionKind
	Symbol() string
}

// Bought records the purchase of Shares of Ticker at Price per share.
type Bought struct {
	Ticker string
	Shares Quantity
	Price  Money
}

func (t Bought) What() ActionKind { return Buy }
func (t Bought) Symbol() string   { return t.Ticker }

// Sold records the sale of Shares of Ticker at Price per share.
//
// Profit is measured against the instrument price at the time of the sale,
// it is negative for a loss.
type Sold struct {
	Ticker string
	Shares Quantity
	Price  Money
	Profit Money
}

func (t Sold) What() ActionKind { return Sell }
func (t Sold) Symbol() string   { return t.Ticker }

// IsLoss reports whether the sale lost money.
func (t Sold) IsLoss() bool { return t.Profit.IsNegative() }

// NoticeKind identifies a corporate action to report on a statement.
type NoticeKind int

const (
	DividendNotice NoticeKind = iota
	SplitNotice
)

type notice struct {
	kind   NoticeKind
	ticker string
}
