package statement

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/statement/date"
	"github.com/shopspring/decimal"
)

// This file contains the codec for both streams of events.
//
// Each stream is a JSONL file, one record per line:
//
//	{"date":"1992/07/14 11:12:30","action":"BUY","ticker":"AAPL","shares":"500","price":"12.3"}
//	{"date":"1992/08/14","stock":"AAPL","dividend":"0.10","split":""}
//
// Numbers are accepted as JSON numbers or strings, and an empty string or
// null means the field is absent. Encoding writes the canonical form: ISO
// dates, fixed key order, bare numbers.

// Default JSONPath expressions to find both streams in a single document.
const (
	DefaultActionsPath   = "$.actions"
	DefaultCorporatePath = "$.stock_actions"
)

// jsonText is a JSON scalar read as text. Strings are unquoted and trimmed,
// numbers are kept as written, null is empty.
type jsonText string

func (t *jsonText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case string(b) == "null":
		*t = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = jsonText(strings.TrimSpace(s))
	case len(b) > 0 && (b[0] == '{' || b[0] == '['):
		return fmt.Errorf("want a string or a number, got %s", b)
	default:
		*t = jsonText(b)
	}
	return nil
}

// jaction is an Action as read from json.
type jaction struct {
	Date   jsonText `json:"date"`
	Action jsonText `json:"action"`
	Ticker jsonText `json:"ticker"`
	Shares jsonText `json:"shares"`
	Price  jsonText `json:"price"`
}

func (j jaction) action(currency string) (Action, error) {
	on, err := date.Parse(string(j.Date))
	if err != nil {
		return Action{}, err
	}
	kind, err := ParseActionKind(string(j.Action))
	if err != nil {
		return Action{}, err
	}
	if j.Ticker == "" {
		return Action{}, errors.New("ticker is missing")
	}
	shares, err := decimal.NewFromString(string(j.Shares))
	if err != nil {
		return Action{}, fmt.Errorf("invalid shares %q: %w", j.Shares, err)
	}
	if !shares.IsInteger() || !shares.IsPositive() {
		return Action{}, fmt.Errorf("invalid shares %q: want a positive whole number", j.Shares)
	}
	price, err := decimal.NewFromString(string(j.Price))
	if err != nil {
		return Action{}, fmt.Errorf("invalid price %q: %w", j.Price, err)
	}
	if price.IsNegative() {
		return Action{}, fmt.Errorf("invalid price %q: must not be negative", j.Price)
	}
	return Action{
		Date:   on,
		Kind:   kind,
		Ticker: string(j.Ticker),
		Shares: Q(shares),
		Price:  M(price, currency),
	}, nil
}

// jcorporate is a CorporateAction as read from json.
type jcorporate struct {
	Date     jsonText `json:"date"`
	Stock    jsonText `json:"stock"`
	Dividend jsonText `json:"dividend"`
	Split    jsonText `json:"split"`
}

func (j jcorporate) corporateAction(currency string) (CorporateAction, error) {
	on, err := date.Parse(string(j.Date))
	if err != nil {
		return CorporateAction{}, err
	}
	if j.Stock == "" {
		return CorporateAction{}, errors.New("stock is missing")
	}
	c := CorporateAction{Date: on, Stock: string(j.Stock)}
	if j.Dividend != "" {
		d, err := decimal.NewFromString(string(j.Dividend))
		if err != nil {
			return CorporateAction{}, fmt.Errorf("invalid dividend %q: %w", j.Dividend, err)
		}
		if d.IsNegative() {
			return CorporateAction{}, fmt.Errorf("invalid dividend %q: must not be negative", j.Dividend)
		}
		m := M(d, currency)
		c.Dividend = &m
	}
	if j.Split != "" {
		s, err := strconv.ParseInt(string(j.Split), 10, 64)
		if err != nil {
			return CorporateAction{}, fmt.Errorf("invalid split %q: %w", j.Split, err)
		}
		if s < 1 {
			return CorporateAction{}, fmt.Errorf("%w %q: want 1 or more", ErrInvalidSplit, j.Split)
		}
		c.Split = s
	}
	return c, nil
}

// decodeLines calls decode on every non blank line of r.
func decodeLines(r io.Reader, decode func(line []byte) error) error {
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if err := decode(line); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading from input: %w", err)
	}
	return nil
}

func decodeAction(data []byte, currency string) (Action, error) {
	var j jaction
	if err := json.Unmarshal(data, &j); err != nil {
		return Action{}, fmt.Errorf("not a correct action record: %w", err)
	}
	return j.action(currency)
}

func decodeCorporateAction(data []byte, currency string) (CorporateAction, error) {
	var j jcorporate
	if err := json.Unmarshal(data, &j); err != nil {
		return CorporateAction{}, fmt.Errorf("not a correct corporate action record: %w", err)
	}
	return j.corporateAction(currency)
}

// DecodeActions reads trader actions from a JSONL stream, prices them in
// currency, and returns them sorted by date.
func DecodeActions(r io.Reader, currency string) ([]Action, error) {
	var actions []Action
	err := decodeLines(r, func(line []byte) error {
		a, err := decodeAction(line, currency)
		if err != nil {
			return err
		}
		actions = append(actions, a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	SortActions(actions)
	return actions, nil
}

// DecodeCorporateActions reads corporate actions from a JSONL stream and
// returns them sorted by date.
func DecodeCorporateActions(r io.Reader, currency string) ([]CorporateAction, error) {
	var actions []CorporateAction
	err := decodeLines(r, func(line []byte) error {
		c, err := decodeCorporateAction(line, currency)
		if err != nil {
			return err
		}
		actions = append(actions, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	SortCorporateActions(actions)
	return actions, nil
}

// DecodeScenario reads a JSON document holding both streams. Each stream
// is the list of records selected by a JSONPath expression; an empty
// expression selects nothing.
func DecodeScenario(r io.Reader, actionsPath, corporatePath, currency string) ([]Action, []CorporateAction, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("not a correct json document: %w", err)
	}

	records, err := selectRecords(doc, actionsPath)
	if err != nil {
		return nil, nil, err
	}
	actions := make([]Action, 0, len(records))
	for i, rec := range records {
		a, err := decodeAction(rec, currency)
		if err != nil {
			return nil, nil, fmt.Errorf("%s[%d]: %w", actionsPath, i, err)
		}
		actions = append(actions, a)
	}

	records, err = selectRecords(doc, corporatePath)
	if err != nil {
		return nil, nil, err
	}
	corporate := make([]CorporateAction, 0, len(records))
	for i, rec := range records {
		c, err := decodeCorporateAction(rec, currency)
		if err != nil {
			return nil, nil, fmt.Errorf("%s[%d]: %w", corporatePath, i, err)
		}
		corporate = append(corporate, c)
	}

	SortActions(actions)
	SortCorporateActions(corporate)
	return actions, corporate, nil
}

// selectRecords evaluates path on doc and returns each selected record as json.
func selectRecords(doc any, path string) ([][]byte, error) {
	if path == "" {
		return nil, nil
	}
	jval, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("cannot evaluate %q: %w", path, err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("%q selects a %T, want a list of records", path, jval)
	}
	records := make([][]byte, 0, len(jlist))
	for i, jobj := range jlist {
		b, err := json.Marshal(jobj)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", path, i, err)
		}
		records = append(records, b)
	}
	return records, nil
}

// number writes a decimal as a bare json number.
func number(d decimal.Decimal) json.Number { return json.Number(d.String()) }

// EncodeActions writes actions in canonical JSONL.
func EncodeActions(w io.Writer, actions []Action) error {
	for _, a := range actions {
		var o jsonObjectWriter
		o.Append("date", a.Date)
		o.Append("action", a.Kind)
		o.Append("ticker", a.Ticker)
		o.Append("shares", a.Shares)
		o.Append("price", number(a.Price.Decimal()))
		if err := writeLine(w, &o); err != nil {
			return err
		}
	}
	return nil
}

// EncodeCorporateActions writes corporate actions in canonical JSONL.
func EncodeCorporateActions(w io.Writer, actions []CorporateAction) error {
	for _, c := range actions {
		var o jsonObjectWriter
		o.Append("date", c.Date)
		o.Append("stock", c.Stock)
		if c.HasDividend() {
			o.Append("dividend", number(c.Dividend.Decimal()))
		}
		o.Optional("split", c.Split)
		if err := writeLine(w, &o); err != nil {
			return err
		}
	}
	return nil
}

func writeLine(w io.Writer, o *jsonObjectWriter) error {
	data, err := o.MarshalJSON()
	if err != nil {
		return err
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}
