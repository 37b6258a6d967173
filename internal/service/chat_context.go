package service

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"finboard/internal/models"

	"github.com/shopspring/decimal"
)

const chatTopCategories = 3

// ChatContext is the user's data a responder may draw on.
type ChatContext struct {
	Now      time.Time
	Expenses []models.Expense
	Income   []models.Income
}

// knownCategories are recognised in messages even before the user has spent in them.
var knownCategories = []string{
	"Housing", "Food", "Transportation", "Entertainment", "Utilities", "Healthcare",
	"Shopping", "Education", "Personal Care", "Travel", "Debt Payments", "Other",
}

type chatPeriod struct {
	label string
	start time.Time
	end   time.Time
}

func dollars(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// containsWord reports whether phrase occurs in message on word boundaries.
func containsWord(message, phrase string) bool {
	for from := 0; ; {
		i := strings.Index(message[from:], phrase)
		if i < 0 {
			return false
		}
		i += from
		end := i + len(phrase)
		if boundaryBefore(message, i) && boundaryAfter(message, end) {
			return true
		}
		from = i + 1
	}
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r := rune(s[i-1])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r := rune(s[i])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// extractPeriod finds a relative period in the lower-cased message.
func extractPeriod(message string, now time.Time) (chatPeriod, bool) {
	today := models.CalendarDate(now)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	yearStart := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	weekStart := today.AddDate(0, 0, -((int(today.Weekday()) + 6) % 7)) // Monday

	switch {
	case strings.Contains(message, "this month"):
		return chatPeriod{"this month", monthStart, today}, true
	case strings.Contains(message, "last month"):
		return chatPeriod{"last month", monthStart.AddDate(0, -1, 0), monthStart.AddDate(0, 0, -1)}, true
	case strings.Contains(message, "this year"):
		return chatPeriod{"this year", yearStart, today}, true
	case strings.Contains(message, "last year"):
		return chatPeriod{"last year", yearStart.AddDate(-1, 0, 0), yearStart.AddDate(0, 0, -1)}, true
	case strings.Contains(message, "this week"):
		return chatPeriod{"this week", weekStart, today}, true
	case strings.Contains(message, "last week"):
		return chatPeriod{"last week", weekStart.AddDate(0, 0, -7), weekStart.AddDate(0, 0, -1)}, true
	}
	return chatPeriod{}, false
}

// extractCategory matches the user's own categories first, then the well-known ones.
func extractCategory(message string, expenses []models.Expense) (string, bool) {
	seen := make(map[string]bool)
	var candidates []string
	for _, e := range expenses {
		if k := strings.ToLower(e.Category); !seen[k] {
			seen[k] = true
			candidates = append(candidates, e.Category)
		}
	}
	for _, c := range knownCategories {
		if k := strings.ToLower(c); !seen[k] {
			seen[k] = true
			candidates = append(candidates, c)
		}
	}
	// longer names first so "personal care" wins over a bare "care" category
	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i]) > len(candidates[j])
	})

	for _, c := range candidates {
		if containsWord(message, strings.ToLower(c)) {
			return c, true
		}
	}
	return "", false
}

func topCategories(aggs []models.CategoryAggregate, n int) []models.CategoryAggregate {
	sorted := make([]models.CategoryAggregate, len(aggs))
	copy(sorted, aggs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Total.GreaterThan(sorted[j].Total)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func listCategories(aggs []models.CategoryAggregate) string {
	parts := make([]string, 0, len(aggs))
	for _, a := range aggs {
		parts = append(parts, fmt.Sprintf("%s (%s)", a.Category, dollars(a.Total)))
	}
	return strings.Join(parts, ", ")
}

func answerSpending(message string, data ChatContext) (string, bool) {
	if len(data.Expenses) == 0 {
		return "", false
	}
	category, hasCategory := extractCategory(message, data.Expenses)
	period, hasPeriod := extractPeriod(message, data.Now)

	filter := ExpenseFilter{}
	if hasCategory {
		filter.Category = category
	}
	if hasPeriod {
		filter.StartDate, filter.EndDate = &period.start, &period.end
	}

	switch {
	case hasCategory && hasPeriod:
		res := QueryExpenses(data.Expenses, filter)
		return fmt.Sprintf("Your %s expenses %s were %s.", strings.ToLower(category), period.label, dollars(res.Total)), true
	case hasCategory:
		res := QueryExpenses(data.Expenses, filter)
		return fmt.Sprintf("Your total %s expenses are %s.", strings.ToLower(category), dollars(res.Total)), true
	case hasPeriod:
		res := QueryExpenses(data.Expenses, filter)
		reply := fmt.Sprintf("Your total expenses %s were %s.", period.label, dollars(res.Total))
		if len(res.ByCategory) > 0 {
			reply += " Your top spending categories were: " + listCategories(topCategories(res.ByCategory, chatTopCategories)) + "."
		}
		return reply, true
	}

	w := budgetWindow(data.Now)
	res := QueryExpenses(data.Expenses, ExpenseFilter{StartDate: w.start, EndDate: w.end})
	reply := fmt.Sprintf("Your total expenses over the last 3 months were %s, with a monthly average of %s.",
		dollars(res.Total), dollars(res.Total.Div(decimal.NewFromInt(budgetMonths))))
	if len(res.ByCategory) > 0 {
		reply += " Your top spending categories are: " + listCategories(topCategories(res.ByCategory, chatTopCategories)) + "."
	}
	return reply, true
}

func answerIncome(message string, data ChatContext) (string, bool) {
	if len(data.Income) == 0 {
		return "", false
	}

	label := "over the last 3 months"
	w := budgetWindow(data.Now)
	filter := IncomeFilter{StartDate: w.start, EndDate: w.end}
	if period, ok := extractPeriod(message, data.Now); ok {
		label = period.label
		filter.StartDate, filter.EndDate = &period.start, &period.end
	}

	res := QueryIncome(data.Income, filter)
	reply := fmt.Sprintf("Your total income %s was %s.", label, dollars(res.Total))
	if len(res.BySource) == 0 {
		return reply, true
	}

	sources := make([]models.SourceAggregate, len(res.BySource))
	copy(sources, res.BySource)
	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].Total.GreaterThan(sources[j].Total)
	})
	parts := make([]string, 0, len(sources))
	for _, s := range sources {
		parts = append(parts, fmt.Sprintf("%s (%s)", s.Source, dollars(s.Total)))
	}
	return reply + " Your income sources are: " + strings.Join(parts, ", ") + ".", true
}

func answerBudget(message string, data ChatContext) (string, bool) {
	if !MonthlyIncome(data.Income, data.Now).IsPositive() {
		return "", false
	}
	lines := Budget(data.Income, data.Expenses, data.Now)

	if category, ok := extractCategory(message, data.Expenses); ok {
		for _, l := range lines {
			if !strings.EqualFold(l.Category, category) {
				continue
			}
			reply := fmt.Sprintf("Your monthly budget for %s is %s. You're spending %s a month (%.1f%% of it).",
				l.Category, dollars(l.Budgeted), dollars(l.Actual), l.Percentage)
			switch {
			case l.Percentage > 100:
				reply += " You've exceeded your budget for this category."
			case l.Percentage > 80:
				reply += " You're close to your budget limit for this category."
			default:
				reply += fmt.Sprintf(" You still have %s left each month.", dollars(l.Budgeted.Sub(l.Actual)))
			}
			return reply, true
		}
	}

	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, fmt.Sprintf("%s %s", l.Category, dollars(l.Budgeted)))
	}
	return fmt.Sprintf("With a monthly income of %s, the 50/30/20 rule gives you this monthly budget: %s.",
		dollars(MonthlyIncome(data.Income, data.Now).Round(2)), strings.Join(parts, ", ")), true
}

func answerSavings(_ string, data ChatContext) (string, bool) {
	w := budgetWindow(data.Now)
	income := QueryIncome(data.Income, IncomeFilter{StartDate: w.start, EndDate: w.end}).Total
	if !income.IsPositive() {
		return "", false
	}
	spent := QueryExpenses(data.Expenses, ExpenseFilter{StartDate: w.start, EndDate: w.end}).Total
	saved := income.Sub(spent)
	rate := percentOf(saved, income)

	reply := fmt.Sprintf("Over the last 3 months, you've saved %s, which is %.1f%% of your income.", dollars(saved), rate)
	switch {
	case rate < 10:
		reply += " This is below the recommended savings rate of 20%. Consider reducing discretionary spending like Entertainment and Shopping."
	case rate < 20:
		reply += " This is a good start, but the recommended savings rate is 20%."
	default:
		reply += " Great job! You're saving above the recommended rate of 20%. Consider investing some of the surplus for long-term growth."
	}
	return reply, true
}

func answerDebt(_ string, data ChatContext) (string, bool) {
	res := QueryExpenses(data.Expenses, ExpenseFilter{Category: "Debt Payments"})
	if len(res.Expenses) == 0 {
		return "", false
	}
	return fmt.Sprintf("You've spent %s on debt payments recently. %s", dollars(res.Total), debtAdvice), true
}

// summarizeForPrompt condenses the trailing three months for a language model.
func summarizeForPrompt(data ChatContext) string {
	w := budgetWindow(data.Now)
	expenses := QueryExpenses(data.Expenses, ExpenseFilter{StartDate: w.start, EndDate: w.end})
	income := QueryIncome(data.Income, IncomeFilter{StartDate: w.start, EndDate: w.end})

	var b strings.Builder
	fmt.Fprintf(&b, "Last 3 months (%s to %s): income %s, expenses %s, %d transactions.",
		w.start.Format(models.DateLayout), w.end.Format(models.DateLayout),
		dollars(income.Total), dollars(expenses.Total), len(expenses.Expenses))
	if len(expenses.ByCategory) > 0 {
		b.WriteString(" Top categories: " + listCategories(topCategories(expenses.ByCategory, chatTopCategories)) + ".")
	}
	return b.String()
}
