package dto

type CreateIncomeRequest struct {
	Amount      AmountInput `json:"amount" swaggertype:"string" example:"4500.00"`
	Source      string      `json:"source" example:"Salary"`
	Description string      `json:"description" example:"Monthly Salary"`
	Date        string      `json:"date" example:"2023-03-01"`
}

type IncomeResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"userId"`
	Amount      float64 `json:"amount"`
	Source      string  `json:"source"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	CreatedAt   string  `json:"createdAt"`
}

type SourceAggregateResponse struct {
	Source string  `json:"source"`
	Total  float64 `json:"total"`
	Count  int     `json:"count"`
}

type IncomeQueryResponse struct {
	Income   []IncomeResponse          `json:"income"`
	Total    float64                   `json:"total"`
	BySource []SourceAggregateResponse `json:"bySource"`
}

type CreateIncomeResponse struct {
	Success bool           `json:"success"`
	Income  IncomeResponse `json:"income"`
}
