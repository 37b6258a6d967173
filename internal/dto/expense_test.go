package dto

import (
	"encoding/json"
	"testing"
)

func TestAmountInputUnmarshal(t *testing.T) {
	tests := []struct {
		body string
		want AmountInput
	}{
		{`{"amount": 40.25}`, "40.25"},
		{`{"amount": "40.25"}`, "40.25"},
		{`{"amount": 1e3}`, "1e3"},
		{`{"amount": null}`, ""},
		{`{}`, ""},
		{`{"amount": true}`, "true"},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			var req CreateExpenseRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if req.Amount != tt.want {
				t.Errorf("amount = %q, want %q", req.Amount, tt.want)
			}
		})
	}
}
