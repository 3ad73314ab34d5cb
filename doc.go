// Package statement computes brokerage statements by replaying two
// streams of dated events: the trades of a single trader, and the corporate
// actions (dividends and splits) of the market.
//
// The Engine merges both streams in date order. On a given day corporate
// actions are applied before the trader's actions. A Statement is emitted for
// every day the trader traded, and for every day a corporate action touched a
// stock the trader holds. Each statement lists:
//   - the non empty positions, priced at the volume weighted average price of
//     their buys, adjusted by splits
//   - the cumulative dividend income
//   - the buys, sells, dividends and splits since the previous statement
//
// Both streams are read from JSONL files (DecodeActions,
// DecodeCorporateActions) or from a single JSON document
// (DecodeScenario), and written back in a canonical form (EncodeActions,
// EncodeCorporateActions).
//
// This package is the engine of the `stmt` command-line tool.
package statement
