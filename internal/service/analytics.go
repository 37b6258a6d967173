package service

import (
	"sort"
	"strings"
	"time"

	"finboard/internal/models"

	"github.com/shopspring/decimal"
)

// Frequency is the bucket width of a time series.
type Frequency string

const (
	Daily   Frequency = "D"
	Weekly  Frequency = "W" // weeks end on Sunday
	Monthly Frequency = "M" // labelled by the last day of the month

	defaultTopMerchants = 5
	defaultColor        = "#808080"

	// maxSeriesPeriods caps every filled-in series, about ten years of days.
	maxSeriesPeriods = 3660
)

var hundred = decimal.NewFromInt(100)

var categoryColors = map[string]string{
	"housing":        "#FF6384",
	"food":           "#36A2EB",
	"transportation": "#FFCE56",
	"entertainment":  "#4BC0C0",
	"utilities":      "#9966FF",
	"healthcare":     "#FF9F40",
	"shopping":       "#C9CBCF",
	"education":      "#7CFC00",
	"personal care":  "#FF7F50",
	"travel":         "#00CED1",
	"debt payments":  "#FF4500",
	"other":          "#808080",
	"savings":        "#32CD32",
}

type CategoryShare struct {
	Category   string
	Amount     decimal.Decimal
	Percentage float64
	Color      string
}

type CategoryBreakdownResult struct {
	Categories []CategoryShare
	Total      decimal.Decimal
}

type MerchantTotal struct {
	Merchant string
	Amount   decimal.Decimal
}

type PeriodAmount struct {
	Date   time.Time
	Amount decimal.Decimal
}

type PeriodComparison struct {
	Date     time.Time
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Savings  decimal.Decimal
}

func ParseFrequency(s string) (Frequency, error) {
	switch f := Frequency(strings.ToUpper(strings.TrimSpace(s))); f {
	case Daily, Weekly, Monthly:
		return f, nil
	default:
		return "", ErrInvalidFrequency
	}
}

// CategoryColor returns the chart color of a category, gray for unknown ones.
func CategoryColor(category string) string {
	if c, ok := categoryColors[strings.ToLower(category)]; ok {
		return c
	}
	return defaultColor
}

func percentOf(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	return part.Div(whole).Mul(hundred).Round(2).InexactFloat64()
}

// CategoryBreakdown shares out spending within an optional date window.
func CategoryBreakdown(expenses []models.Expense, start, end *time.Time) CategoryBreakdownResult {
	res := QueryExpenses(expenses, ExpenseFilter{StartDate: start, EndDate: end})

	shares := make([]CategoryShare, 0, len(res.ByCategory))
	for _, agg := range res.ByCategory {
		shares = append(shares, CategoryShare{
			Category:   agg.Category,
			Amount:     agg.Total,
			Percentage: percentOf(agg.Total, res.Total),
			Color:      CategoryColor(agg.Category),
		})
	}
	return CategoryBreakdownResult{Categories: shares, Total: res.Total}
}

// TopMerchants ranks merchants by total spend; ties keep first-seen order.
func TopMerchants(expenses []models.Expense, n int) []MerchantTotal {
	if n <= 0 {
		n = defaultTopMerchants
	}

	groups := groupBy(expenses,
		func(e models.Expense) string { return e.Merchant },
		func(e models.Expense) decimal.Decimal { return e.Amount },
	)
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].total.GreaterThan(groups[j].total)
	})
	if len(groups) > n {
		groups = groups[:n]
	}

	out := make([]MerchantTotal, 0, len(groups))
	for _, g := range groups {
		out = append(out, MerchantTotal{Merchant: g.label, Amount: g.total})
	}
	return out
}

// periodLabel maps a date to the label of the bucket containing it.
func periodLabel(freq Frequency, t time.Time) time.Time {
	d := models.CalendarDate(t)
	switch freq {
	case Weekly:
		return d.AddDate(0, 0, (7-int(d.Weekday()))%7)
	case Monthly:
		return time.Date(d.Year(), d.Month()+1, 0, 0, 0, 0, 0, time.UTC)
	default:
		return d
	}
}

func nextPeriod(freq Frequency, label time.Time) time.Time {
	switch freq {
	case Weekly:
		return label.AddDate(0, 0, 7)
	case Monthly:
		return periodLabel(Monthly, label.AddDate(0, 0, 1))
	default:
		return label.AddDate(0, 0, 1)
	}
}

// periodCount is the number of buckets periodSpan would produce.
func periodCount(freq Frequency, first, last time.Time) int {
	from, to := periodLabel(freq, first), periodLabel(freq, last)
	switch freq {
	case Weekly:
		return int(to.Sub(from).Hours()/24)/7 + 1
	case Monthly:
		return (to.Year()-from.Year())*12 + int(to.Month()-from.Month()) + 1
	default:
		return int(to.Sub(from).Hours()/24) + 1
	}
}

// periodSpan lists every bucket label from the one holding first to the one holding last.
func periodSpan(freq Frequency, first, last time.Time) ([]time.Time, error) {
	n := periodCount(freq, first, last)
	if n > maxSeriesPeriods {
		return nil, ErrSeriesTooLong
	}
	labels := make([]time.Time, 0, n)
	end := periodLabel(freq, last)
	for l := periodLabel(freq, first); !l.After(end); l = nextPeriod(freq, l) {
		labels = append(labels, l)
	}
	return labels, nil
}

type datedAmount struct {
	date   time.Time
	amount decimal.Decimal
}

func bucketTotals(freq Frequency, items []datedAmount) map[time.Time]decimal.Decimal {
	totals := make(map[time.Time]decimal.Decimal)
	for _, it := range items {
		l := periodLabel(freq, it.date)
		totals[l] = totals[l].Add(it.amount)
	}
	return totals
}

func dateBounds(items []datedAmount) (first, last time.Time) {
	for i, it := range items {
		d := models.CalendarDate(it.date)
		if i == 0 || d.Before(first) {
			first = d
		}
		if i == 0 || d.After(last) {
			last = d
		}
	}
	return first, last
}

func expenseAmounts(expenses []models.Expense) []datedAmount {
	out := make([]datedAmount, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, datedAmount{date: e.Date, amount: e.Amount})
	}
	return out
}

func incomeAmounts(income []models.Income) []datedAmount {
	out := make([]datedAmount, 0, len(income))
	for _, in := range income {
		out = append(out, datedAmount{date: in.Date, amount: in.Amount})
	}
	return out
}

// ExpensesOverTime totals spending per period with empty periods filled in.
func ExpensesOverTime(expenses []models.Expense, freq Frequency) ([]PeriodAmount, error) {
	if _, err := ParseFrequency(string(freq)); err != nil {
		return nil, err
	}
	items := expenseAmounts(expenses)
	if len(items) == 0 {
		return []PeriodAmount{}, nil
	}

	totals := bucketTotals(freq, items)
	first, last := dateBounds(items)

	labels, err := periodSpan(freq, first, last)
	if err != nil {
		return nil, err
	}
	out := make([]PeriodAmount, 0, len(labels))
	for _, l := range labels {
		out = append(out, PeriodAmount{Date: l, Amount: totals[l]})
	}
	return out, nil
}

// IncomeVsExpenses lines up both series per period, weekly or monthly.
func IncomeVsExpenses(income []models.Income, expenses []models.Expense, freq Frequency) ([]PeriodComparison, error) {
	if freq != Weekly && freq != Monthly {
		return nil, ErrInvalidFrequency
	}

	in := incomeAmounts(income)
	out := expenseAmounts(expenses)
	all := append(append(make([]datedAmount, 0, len(in)+len(out)), in...), out...)
	if len(all) == 0 {
		return []PeriodComparison{}, nil
	}

	incomeTotals := bucketTotals(freq, in)
	expenseTotals := bucketTotals(freq, out)
	first, last := dateBounds(all)

	labels, err := periodSpan(freq, first, last)
	if err != nil {
		return nil, err
	}
	rows := make([]PeriodComparison, 0, len(labels))
	for _, l := range labels {
		i, e := incomeTotals[l], expenseTotals[l]
		rows = append(rows, PeriodComparison{Date: l, Income: i, Expenses: e, Savings: i.Sub(e)})
	}
	return rows, nil
}

// RecentExpenses returns up to n expenses, newest date first.
func RecentExpenses(expenses []models.Expense, n int) []models.Expense {
	sorted := make([]models.Expense, len(expenses))
	copy(sorted, expenses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
