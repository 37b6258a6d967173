package service

import (
	"strings"
	"time"

	"finboard/internal/models"

	"github.com/shopspring/decimal"
)

// cleanText trims and drops invalid UTF-8, which PostgreSQL rejects in TEXT columns.
func cleanText(s string) string {
	return strings.TrimSpace(strings.ToValidUTF8(s, ""))
}

const (
	maxAmountLength   = 64
	minAmountExponent = -8
	maxAmountExponent = 15

	minYear = 1900
	maxYear = 2200
)

// maxAmount is the exclusive upper bound for a stored amount.
var maxAmount = decimal.New(1, maxAmountExponent)

// parseAmount accepts a non-negative decimal in plain or exponent notation.
// The exponent must be checked before any comparison; Cmp rescales both operands.
func parseAmount(field, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, missingField(field)
	}
	if len(raw) > maxAmountLength {
		return decimal.Zero, invalidField(field, "is out of range")
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, invalidField(field, "must be a number")
	}
	if exp := amount.Exponent(); exp < minAmountExponent || exp > maxAmountExponent {
		return decimal.Zero, invalidField(field, "is out of range")
	}
	if amount.IsNegative() {
		return decimal.Zero, invalidField(field, "must not be negative")
	}
	if !amount.LessThan(maxAmount) {
		return decimal.Zero, invalidField(field, "is out of range")
	}
	return amount, nil
}

func parseCalendarDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, missingField(field)
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return time.Time{}, invalidField(field, "must be a date in YYYY-MM-DD format")
	}
	if !DateInRange(d) {
		return time.Time{}, invalidField(field, "is out of range")
	}
	return d, nil
}

// DateInRange reports whether d falls in the supported calendar years.
func DateInRange(d time.Time) bool {
	return d.Year() >= minYear && d.Year() <= maxYear
}

func requireText(field, raw string) (string, error) {
	s := cleanText(raw)
	if s == "" {
		return "", missingField(field)
	}
	return s, nil
}

// dateRange is an optional inclusive calendar-date window.
type dateRange struct {
	start *time.Time
	end   *time.Time
}

func (r dateRange) contains(t time.Time) bool {
	d := models.CalendarDate(t)
	if r.start != nil && d.Before(models.CalendarDate(*r.start)) {
		return false
	}
	if r.end != nil && d.After(models.CalendarDate(*r.end)) {
		return false
	}
	return true
}

type group struct {
	label string
	total decimal.Decimal
	count int
}

// groupBy folds items into case-insensitive groups in first-seen order.
// The label of a group is the key as spelled by its first item.
func groupBy[T any](items []T, key func(T) string, amount func(T) decimal.Decimal) []group {
	index := make(map[string]int)
	var groups []group
	for _, item := range items {
		k := key(item)
		norm := strings.ToLower(k)
		i, ok := index[norm]
		if !ok {
			i = len(groups)
			index[norm] = i
			groups = append(groups, group{label: k, total: decimal.Zero})
		}
		groups[i].total = groups[i].total.Add(amount(item))
		groups[i].count++
	}
	return groups
}

func sumAmounts[T any](items []T, amount func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(amount(item))
	}
	return total
}
