package dto

import (
	"bytes"
	"encoding/json"
)

// AmountInput holds a submitted amount as text. It accepts a JSON number
// or a numeric string; anything else is kept verbatim and fails validation later.
type AmountInput string

func (a *AmountInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*a = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = AmountInput(s)
	default:
		*a = AmountInput(data)
	}
	return nil
}

type CreateExpenseRequest struct {
	Amount      AmountInput `json:"amount" swaggertype:"string" example:"40.25"`
	Category    string      `json:"category" example:"Transportation"`
	Description string      `json:"description" example:"Gas"`
	Date        string      `json:"date" example:"2023-03-08"`
	Merchant    string      `json:"merchant,omitempty" example:"Shell"`
}

type ExpenseResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"userId"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Merchant    string  `json:"merchant"`
	CreatedAt   string  `json:"createdAt"`
}

type CategoryAggregateResponse struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}

type ExpenseQueryResponse struct {
	Expenses   []ExpenseResponse           `json:"expenses"`
	Total      float64                     `json:"total"`
	ByCategory []CategoryAggregateResponse `json:"byCategory"`
}

type CreateExpenseResponse struct {
	Success bool            `json:"success"`
	Expense ExpenseResponse `json:"expense"`
}

// ErrorResponse is the body of every failed request. Field is set for validation failures.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}
