package statement

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const actionsJSONL = `{"date":"1992/10/25","action":"SELL","ticker":"AAPL","shares":"300","price":"20.3"}
{"date":"1992/07/14 11:12:30","action":"BUY","ticker":"AAPL","shares":"500","price":"12.3"}

{"date":"1992-10-25","action":"buy","ticker":"MSFT","shares":500,"price":18.3}
`

const corporateJSONL = `{"date":"1992/09/01","stock":"AAPL","dividend":"","split":"3"}
{"date":"1992/08/14","stock":"AAPL","dividend":"0.10","split":""}
{"date":"1992/10/16","stock":"ABC","dividend":0.2,"split":null}
`

func TestDecodeActions(t *testing.T) {
	actions, err := DecodeActions(strings.NewReader(actionsJSONL), "USD")
	if err != nil {
		t.Fatalf("DecodeActions() error = %v", err)
	}
	want := []Action{
		buy("1992-07-14", "AAPL", 500, 12.3),
		sell("1992-10-25", "AAPL", 300, 20.3),
		buy("1992-10-25", "MSFT", 500, 18.3),
	}
	if diff := cmp.Diff(want, actions, sameDate); diff != "" {
		t.Errorf("DecodeActions() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeCorporateActions(t *testing.T) {
	actions, err := DecodeCorporateActions(strings.NewReader(corporateJSONL), "USD")
	if err != nil {
		t.Fatalf("DecodeCorporateActions() error = %v", err)
	}
	want := []CorporateAction{
		dividend("1992-08-14", "AAPL", 0.10),
		split("1992-09-01", "AAPL", 3),
		dividend("1992-10-16", "ABC", 0.2),
	}
	if diff := cmp.Diff(want, actions, sameDate); diff != "" {
		t.Errorf("DecodeCorporateActions() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		corp    bool
		wantErr string
		is      error
	}{
		{
			name:    "line number",
			input:   "{\"date\":\"1992-07-14\",\"action\":\"BUY\",\"ticker\":\"A\",\"shares\":1,\"price\":1}\n\n{\"date\":\"1992-07-14\"",
			wantErr: "line 3:",
		},
		{
			name:  "unknown kind",
			input: `{"date":"1992-07-14","action":"HOLD","ticker":"A","shares":1,"price":1}`,
			is:    ErrUnknownAction,
		},
		{
			name:    "fractional shares",
			input:   `{"date":"1992-07-14","action":"BUY","ticker":"A","shares":"1.5","price":1}`,
			wantErr: "invalid shares",
		},
		{
			name:    "negative shares",
			input:   `{"date":"1992-07-14","action":"BUY","ticker":"A","shares":-1,"price":1}`,
			wantErr: "invalid shares",
		},
		{
			name:    "missing ticker",
			input:   `{"date":"1992-07-14","action":"BUY","shares":1,"price":1}`,
			wantErr: "ticker is missing",
		},
		{
			name:    "bad date",
			input:   `{"date":"14th of July","action":"BUY","ticker":"A","shares":1,"price":1}`,
			wantErr: "line 1:",
		},
		{
			name:    "structured field",
			input:   `{"date":"1992-07-14","action":"BUY","ticker":"A","shares":[1],"price":1}`,
			wantErr: "want a string or a number",
		},
		{
			name:  "zero split",
			input: `{"date":"1992-07-14","stock":"A","split":"0"}`,
			corp:  true,
			is:    ErrInvalidSplit,
		},
		{
			name:    "fractional split",
			input:   `{"date":"1992-07-14","stock":"A","split":"1.5"}`,
			corp:    true,
			wantErr: "invalid split",
		},
		{
			name:    "negative dividend",
			input:   `{"date":"1992-07-14","stock":"A","dividend":"-1"}`,
			corp:    true,
			wantErr: "invalid dividend",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var err error
			if tc.corp {
				_, err = DecodeCorporateActions(strings.NewReader(tc.input), "USD")
			} else {
				_, err = DecodeActions(strings.NewReader(tc.input), "USD")
			}
			if err == nil {
				t.Fatal("decoding succeeded, want an error")
			}
			if tc.is != nil && !errors.Is(err, tc.is) {
				t.Errorf("error = %v, want %v", err, tc.is)
			}
			if tc.wantErr != "" && !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tc.wantErr)
			}
		})
	}
}

func TestDecodeScenario(t *testing.T) {
	doc := `{
		"actions": [
			{"date": "1992/07/14 11:12:30", "action": "BUY", "price": "12.3", "ticker": "AAPL", "shares": "500"},
			{"date": "1992/09/13 11:30:50", "action": "SELL", "price": "15.3", "ticker": "AAPL", "shares": "100"}
		],
		"stock_actions": [
			{"date": "1992/09/01", "dividend": "", "split": "3", "stock": "AAPL"},
			{"date": "1992/08/14", "dividend": "0.10", "split": "", "stock": "AAPL"}
		]
	}`
	actions, corporate, err := DecodeScenario(strings.NewReader(doc), DefaultActionsPath, DefaultCorporatePath, "USD")
	if err != nil {
		t.Fatalf("DecodeScenario() error = %v", err)
	}
	if len(actions) != 2 || actions[1].Kind != Sell {
		t.Errorf("actions = %+v, want a buy then a sell", actions)
	}
	if len(corporate) != 2 || !corporate[0].HasDividend() || corporate[1].Split != 3 {
		t.Errorf("corporate = %+v, want a dividend then a split", corporate)
	}

	t.Run("custom paths", func(t *testing.T) {
		doc := `{"trader": {"trades": [{"date": "1992-07-14", "action": "BUY", "ticker": "AAPL", "shares": 1, "price": 1.5}]}}`
		actions, corporate, err := DecodeScenario(strings.NewReader(doc), "$.trader.trades", "", "USD")
		if err != nil {
			t.Fatalf("DecodeScenario() error = %v", err)
		}
		if len(actions) != 1 || !actions[0].Price.Equal(USD(1.5)) || len(corporate) != 0 {
			t.Errorf("DecodeScenario() = %+v, %+v", actions, corporate)
		}
	})

	t.Run("not a list", func(t *testing.T) {
		_, _, err := DecodeScenario(strings.NewReader(`{"actions": {}}`), DefaultActionsPath, "", "USD")
		if err == nil || !strings.Contains(err.Error(), "want a list of records") {
			t.Errorf("DecodeScenario() error = %v, want a list error", err)
		}
	})

	t.Run("bad record", func(t *testing.T) {
		_, _, err := DecodeScenario(strings.NewReader(`{"stock_actions": [{"date": "1992-07-14"}]}`), "", DefaultCorporatePath, "USD")
		if err == nil || !strings.Contains(err.Error(), "$.stock_actions[0]") {
			t.Errorf("DecodeScenario() error = %v, want it to locate the record", err)
		}
	})
}

func TestEncode(t *testing.T) {
	actions, err := DecodeActions(strings.NewReader(actionsJSONL), "USD")
	if err != nil {
		t.Fatal(err)
	}
	corporate, err := DecodeCorporateActions(strings.NewReader(corporateJSONL), "USD")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := EncodeActions(&buf, actions); err != nil {
		t.Fatalf("EncodeActions() error = %v", err)
	}
	want := `{"date":"1992-07-14","action":"BUY","ticker":"AAPL","shares":500,"price":12.3}
{"date":"1992-10-25","action":"SELL","ticker":"AAPL","shares":300,"price":20.3}
{"date":"1992-10-25","action":"BUY","ticker":"MSFT","shares":500,"price":18.3}
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("EncodeActions() mismatch (-want +got):\n%s", diff)
	}

	buf.Reset()
	if err := EncodeCorporateActions(&buf, corporate); err != nil {
		t.Fatalf("EncodeCorporateActions() error = %v", err)
	}
	want = `{"date":"1992-08-14","stock":"AAPL","dividend":0.1}
{"date":"1992-09-01","stock":"AAPL","split":3}
{"date":"1992-10-16","stock":"ABC","dividend":0.2}
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("EncodeCorporateActions() mismatch (-want +got):\n%s", diff)
	}

	// the canonical form decodes to the same actions.
	again, err := DecodeCorporateActions(&buf, "USD")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(corporate, again, sameDate); diff != "" {
		t.Errorf("decode(encode()) mismatch (-want +got):\n%s", diff)
	}
}
