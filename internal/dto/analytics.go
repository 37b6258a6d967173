package dto

type CategoryShareResponse struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
}

type CategoryBreakdownResponse struct {
	Data  []CategoryShareResponse `json:"data"`
	Total float64                 `json:"total"`
}

type MerchantResponse struct {
	Merchant string  `json:"merchant"`
	Amount   float64 `json:"amount"`
}

type TopMerchantsResponse struct {
	Merchants []MerchantResponse `json:"merchants"`
}

type PeriodAmountResponse struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

type ExpensesOverTimeResponse struct {
	Data []PeriodAmountResponse `json:"data"`
}

type PeriodComparisonResponse struct {
	Date     string  `json:"date"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Savings  float64 `json:"savings"`
}

type IncomeVsExpensesResponse struct {
	Data []PeriodComparisonResponse `json:"data"`
}

type ExpenseReportResponse struct {
	StartDate        string                      `json:"startDate,omitempty"`
	EndDate          string                      `json:"endDate,omitempty"`
	Total            float64                     `json:"total"`
	ByCategory       []CategoryAggregateResponse `json:"byCategory"`
	TopMerchants     []MerchantResponse          `json:"topMerchants"`
	Daily            []PeriodAmountResponse      `json:"daily"`
	TransactionCount int                         `json:"transactionCount"`
}

type BudgetLineResponse struct {
	Category   string  `json:"category"`
	Budgeted   float64 `json:"budgeted"`
	Actual     float64 `json:"actual"`
	Percentage float64 `json:"percentage"`
}

type BudgetResponse struct {
	Budget []BudgetLineResponse `json:"budget"`
}

// OverviewPoint is one month of the dashboard chart; Name is the short month.
type OverviewPoint struct {
	Name     string  `json:"name"`
	Date     string  `json:"date"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

type DashboardCategory struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

type DashboardResponse struct {
	TotalBalance       float64             `json:"totalBalance"`
	Income             float64             `json:"income"`
	Expenses           float64             `json:"expenses"`
	ExpenseCount       int                 `json:"expenseCount"`
	OverviewData       []OverviewPoint     `json:"overviewData"`
	ExpensesByCategory []DashboardCategory `json:"expensesByCategory"`
	RecentTransactions []ExpenseResponse   `json:"recentTransactions"`
	TopMerchants       []MerchantResponse  `json:"topMerchants"`
}
