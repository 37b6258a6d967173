package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultMerchant is recorded when an expense arrives without a merchant.
const DefaultMerchant = "Unknown"

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = "2006-01-02"

// Expense is one spending event. Values are treated as immutable once built.
type Expense struct {
	ID          string          `db:"id"`
	UserID      string          `db:"user_id"`
	Amount      decimal.Decimal `db:"amount"`
	Category    string          `db:"category"`
	Description string          `db:"description"`
	Date        time.Time       `db:"date"` // calendar date at UTC midnight
	Merchant    string          `db:"merchant"`
	CreatedAt   time.Time       `db:"created_at"`
}

// CategoryAggregate is derived per query and never stored.
type CategoryAggregate struct {
	Category string
	Total    decimal.Decimal
	Count    int
}

// CalendarDate drops the time of day and location, keeping y/m/d as a UTC midnight instant.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
