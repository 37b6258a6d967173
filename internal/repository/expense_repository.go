package repository

import (
	"context"
	"fmt"

	"finboard/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var expenseColumns = []string{"id::text", "user_id", "amount::text", "category", "description", "date", "merchant", "created_at"}

type ExpenseRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewExpenseRepository(db *pgxpool.Pool, logger *zap.Logger) *ExpenseRepository {
	return &ExpenseRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ExpenseRepository) Create(ctx context.Context, e *models.Expense) error {
	query := squirrel.Insert("expenses").
		Columns("id", "user_id", "amount", "category", "description", "date", "merchant", "created_at").
		Values(e.ID, e.UserID, e.Amount.String(), e.Category, e.Description,
			pgtype.Date{Time: e.Date, Valid: true}, e.Merchant, e.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return mapUniqueViolation(err)
}

// CreateBatch inserts several expenses in one statement.
func (r *ExpenseRepository) CreateBatch(ctx context.Context, expenses []*models.Expense) error {
	if len(expenses) == 0 {
		return nil
	}

	builder := squirrel.Insert("expenses").
		Columns("id", "user_id", "amount", "category", "description", "date", "merchant", "created_at").
		PlaceholderFormat(squirrel.Dollar)

	for _, e := range expenses {
		builder = builder.Values(e.ID, e.UserID, e.Amount.String(), e.Category, e.Description,
			pgtype.Date{Time: e.Date, Valid: true}, e.Merchant, e.CreatedAt)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return mapUniqueViolation(err)
}

// ListByUser returns the user's expenses in insertion order.
func (r *ExpenseRepository) ListByUser(ctx context.Context, userID string) ([]models.Expense, error) {
	query := squirrel.Select(expenseColumns...).
		From("expenses").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at ASC", "id ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		var (
			e      models.Expense
			amount string
			date   pgtype.Date
		)
		if err := rows.Scan(&e.ID, &e.UserID, &amount, &e.Category, &e.Description, &date, &e.Merchant, &e.CreatedAt); err != nil {
			return nil, err
		}
		if e.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("expense %s: bad amount %q: %w", e.ID, amount, err)
		}
		e.Date = models.CalendarDate(date.Time)
		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}
