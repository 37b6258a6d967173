package service

import (
	"strings"
	"time"

	"finboard/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseFilter narrows a query. Zero-valued fields do not constrain.
type ExpenseFilter struct {
	Category  string
	StartDate *time.Time // inclusive
	EndDate   *time.Time // inclusive
}

type ExpenseQueryResult struct {
	Expenses   []models.Expense
	Total      decimal.Decimal
	ByCategory []models.CategoryAggregate
}

// ExpenseDraft is an expense as submitted, before validation.
type ExpenseDraft struct {
	Amount      string
	Category    string
	Description string
	Date        string
	Merchant    string
}

// QueryExpenses filters records by category and date window and summarizes the survivors.
// Input order is preserved and the input slice is left untouched.
func QueryExpenses(records []models.Expense, filter ExpenseFilter) ExpenseQueryResult {
	window := dateRange{start: filter.StartDate, end: filter.EndDate}

	matched := make([]models.Expense, 0, len(records))
	for _, e := range records {
		if filter.Category != "" && !strings.EqualFold(e.Category, filter.Category) {
			continue
		}
		if !window.contains(e.Date) {
			continue
		}
		matched = append(matched, e)
	}

	amount := func(e models.Expense) decimal.Decimal { return e.Amount }
	groups := groupBy(matched, func(e models.Expense) string { return e.Category }, amount)

	byCategory := make([]models.CategoryAggregate, 0, len(groups))
	for _, g := range groups {
		byCategory = append(byCategory, models.CategoryAggregate{
			Category: g.label,
			Total:    g.total,
			Count:    g.count,
		})
	}

	return ExpenseQueryResult{
		Expenses:   matched,
		Total:      sumAmounts(matched, amount),
		ByCategory: byCategory,
	}
}

// NewExpense validates a draft and builds a record with a fresh id.
// Nothing is persisted here.
func NewExpense(userID string, draft ExpenseDraft) (models.Expense, error) {
	amount, err := parseAmount("amount", draft.Amount)
	if err != nil {
		return models.Expense{}, err
	}
	category, err := requireText("category", draft.Category)
	if err != nil {
		return models.Expense{}, err
	}
	description, err := requireText("description", draft.Description)
	if err != nil {
		return models.Expense{}, err
	}
	date, err := parseCalendarDate("date", draft.Date)
	if err != nil {
		return models.Expense{}, err
	}

	merchant := cleanText(draft.Merchant)
	if merchant == "" {
		merchant = models.DefaultMerchant
	}

	return models.Expense{
		ID:          uuid.NewString(),
		UserID:      userID,
		Amount:      amount,
		Category:    category,
		Description: description,
		Date:        date,
		Merchant:    merchant,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
