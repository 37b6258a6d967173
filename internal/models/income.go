package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Income struct {
	ID          string          `db:"id"`
	UserID      string          `db:"user_id"`
	Amount      decimal.Decimal `db:"amount"`
	Source      string          `db:"source"`
	Description string          `db:"description"`
	Date        time.Time       `db:"date"`
	CreatedAt   time.Time       `db:"created_at"`
}

type SourceAggregate struct {
	Source string
	Total  decimal.Decimal
	Count  int
}
