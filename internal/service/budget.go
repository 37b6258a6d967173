package service

import (
	"strings"
	"time"

	"finboard/internal/models"

	"github.com/shopspring/decimal"
)

const (
	budgetWindowDays = 90
	budgetMonths     = 3
	savingsCategory  = "Savings"
)

var (
	needsCategories = []string{"Housing", "Food", "Transportation", "Utilities", "Healthcare", "Debt Payments"}
	wantsCategories = []string{"Entertainment", "Shopping", "Personal Care", "Travel"}

	needsShare   = decimal.RequireFromString("0.5")
	wantsShare   = decimal.RequireFromString("0.3")
	savingsShare = decimal.RequireFromString("0.2")
)

type BudgetRecommendation struct {
	Category string
	Amount   decimal.Decimal
}

type BudgetLine struct {
	Category   string
	Budgeted   decimal.Decimal
	Actual     decimal.Decimal
	Percentage float64
}

// budgetWindow is the trailing 90 days ending on now's calendar date.
func budgetWindow(now time.Time) dateRange {
	end := models.CalendarDate(now)
	start := end.AddDate(0, 0, -budgetWindowDays)
	return dateRange{start: &start, end: &end}
}

// MonthlySpending averages the window's spending per category over three months.
// Keys are lower-cased categories.
func MonthlySpending(expenses []models.Expense, now time.Time) map[string]decimal.Decimal {
	w := budgetWindow(now)
	res := QueryExpenses(expenses, ExpenseFilter{StartDate: w.start, EndDate: w.end})

	months := decimal.NewFromInt(budgetMonths)
	monthly := make(map[string]decimal.Decimal, len(res.ByCategory))
	for _, agg := range res.ByCategory {
		monthly[strings.ToLower(agg.Category)] = agg.Total.Div(months)
	}
	return monthly
}

// MonthlyIncome averages the window's income over three months.
func MonthlyIncome(income []models.Income, now time.Time) decimal.Decimal {
	w := budgetWindow(now)
	res := QueryIncome(income, IncomeFilter{StartDate: w.start, EndDate: w.end})
	return res.Total.Div(decimal.NewFromInt(budgetMonths))
}

// scaleGroup stretches current spending in a category group so the group sums to target.
func scaleGroup(categories []string, monthly map[string]decimal.Decimal, target decimal.Decimal) []BudgetRecommendation {
	current := decimal.Zero
	for _, c := range categories {
		current = current.Add(monthly[strings.ToLower(c)])
	}
	if !current.IsPositive() {
		return nil
	}

	factor := target.Div(current)
	var out []BudgetRecommendation
	for _, c := range categories {
		spent, ok := monthly[strings.ToLower(c)]
		if !ok {
			continue
		}
		out = append(out, BudgetRecommendation{Category: c, Amount: spent.Mul(factor).Round(2)})
	}
	return out
}

// BudgetRecommendations applies the 50/30/20 rule to the last 90 days:
// needs share 50% of monthly income, wants 30%, and 20% goes to savings.
func BudgetRecommendations(income []models.Income, expenses []models.Expense, now time.Time) []BudgetRecommendation {
	monthlyIncome := MonthlyIncome(income, now)
	monthly := MonthlySpending(expenses, now)

	var recs []BudgetRecommendation
	recs = append(recs, scaleGroup(needsCategories, monthly, monthlyIncome.Mul(needsShare))...)
	recs = append(recs, scaleGroup(wantsCategories, monthly, monthlyIncome.Mul(wantsShare))...)
	recs = append(recs, BudgetRecommendation{
		Category: savingsCategory,
		Amount:   monthlyIncome.Mul(savingsShare).Round(2),
	})
	return recs
}

// Budget compares each recommendation with actual monthly spending.
func Budget(income []models.Income, expenses []models.Expense, now time.Time) []BudgetLine {
	monthly := MonthlySpending(expenses, now)
	recs := BudgetRecommendations(income, expenses, now)

	lines := make([]BudgetLine, 0, len(recs))
	for _, r := range recs {
		actual := monthly[strings.ToLower(r.Category)].Round(2)
		lines = append(lines, BudgetLine{
			Category:   r.Category,
			Budgeted:   r.Amount,
			Actual:     actual,
			Percentage: percentOf(actual, r.Amount),
		})
	}
	return lines
}
