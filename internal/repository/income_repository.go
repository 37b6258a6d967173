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

type IncomeRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewIncomeRepository(db *pgxpool.Pool, logger *zap.Logger) *IncomeRepository {
	return &IncomeRepository{
		db:     db,
		logger: logger,
	}
}

func (r *IncomeRepository) Create(ctx context.Context, in *models.Income) error {
	query := squirrel.Insert("income").
		Columns("id", "user_id", "amount", "source", "description", "date", "created_at").
		Values(in.ID, in.UserID, in.Amount.String(), in.Source, in.Description,
			pgtype.Date{Time: in.Date, Valid: true}, in.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return mapUniqueViolation(err)
}

func (r *IncomeRepository) ListByUser(ctx context.Context, userID string) ([]models.Income, error) {
	query := squirrel.Select("id::text", "user_id", "amount::text", "source", "description", "date", "created_at").
		From("income").
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

	income := []models.Income{}
	for rows.Next() {
		var (
			in     models.Income
			amount string
			date   pgtype.Date
		)
		if err := rows.Scan(&in.ID, &in.UserID, &amount, &in.Source, &in.Description, &date, &in.CreatedAt); err != nil {
			return nil, err
		}
		if in.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("income %s: bad amount %q: %w", in.ID, amount, err)
		}
		in.Date = models.CalendarDate(date.Time)
		income = append(income, in)
	}

	return income, rows.Err()
}
