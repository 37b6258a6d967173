package service

import (
	"sort"
	"time"

	"finboard/internal/models"

	"github.com/shopspring/decimal"
)

const reportMerchants = 10

// ExpenseReport summarises spending inside an optional date window.
// StartDate and EndDate fall back to the earliest and latest matching
// expense and stay nil when the window is open and nothing matched.
type ExpenseReport struct {
	StartDate        *time.Time
	EndDate          *time.Time
	Total            decimal.Decimal
	ByCategory       []models.CategoryAggregate
	TopMerchants     []MerchantTotal
	Daily            []PeriodAmount
	TransactionCount int
}

func Report(expenses []models.Expense, start, end *time.Time) ExpenseReport {
	res := QueryExpenses(expenses, ExpenseFilter{StartDate: start, EndDate: end})
	items := expenseAmounts(res.Expenses)

	report := ExpenseReport{
		StartDate:        calendarPtr(start),
		EndDate:          calendarPtr(end),
		Total:            res.Total,
		ByCategory:       res.ByCategory,
		TopMerchants:     TopMerchants(res.Expenses, reportMerchants),
		Daily:            dailyTotals(items),
		TransactionCount: len(res.Expenses),
	}
	if len(items) > 0 {
		first, last := dateBounds(items)
		if report.StartDate == nil {
			report.StartDate = &first
		}
		if report.EndDate == nil {
			report.EndDate = &last
		}
	}
	return report
}

// dailyTotals lists the days that saw spending, oldest first.
func dailyTotals(items []datedAmount) []PeriodAmount {
	totals := bucketTotals(Daily, items)
	out := make([]PeriodAmount, 0, len(totals))
	for d, amount := range totals {
		out = append(out, PeriodAmount{Date: d, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

func calendarPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := models.CalendarDate(*t)
	return &d
}
