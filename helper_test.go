package statement

import (
	"github.com/etnz/statement/date"
	"github.com/google/go-cmp/cmp"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// day is a helper for test to create dates from const
func day(s string) date.Date { return date.MustParse(s) }

// sameDate compares dates in cmp.Diff, Money and Quantity provide their own Equal.
var sameDate = cmp.Comparer(func(a, b date.Date) bool { return a == b })
