package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"finboard/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type IncomeFilter struct {
	Source    string
	StartDate *time.Time
	EndDate   *time.Time
}

type IncomeQueryResult struct {
	Income   []models.Income
	Total    decimal.Decimal
	BySource []models.SourceAggregate
}

type IncomeDraft struct {
	Amount      string
	Source      string
	Description string
	Date        string
}

// QueryIncome mirrors QueryExpenses with source in place of category.
func QueryIncome(records []models.Income, filter IncomeFilter) IncomeQueryResult {
	window := dateRange{start: filter.StartDate, end: filter.EndDate}

	matched := make([]models.Income, 0, len(records))
	for _, in := range records {
		if filter.Source != "" && !strings.EqualFold(in.Source, filter.Source) {
			continue
		}
		if !window.contains(in.Date) {
			continue
		}
		matched = append(matched, in)
	}

	amount := func(in models.Income) decimal.Decimal { return in.Amount }
	groups := groupBy(matched, func(in models.Income) string { return in.Source }, amount)

	bySource := make([]models.SourceAggregate, 0, len(groups))
	for _, g := range groups {
		bySource = append(bySource, models.SourceAggregate{Source: g.label, Total: g.total, Count: g.count})
	}

	return IncomeQueryResult{
		Income:   matched,
		Total:    sumAmounts(matched, amount),
		BySource: bySource,
	}
}

func NewIncome(userID string, draft IncomeDraft) (models.Income, error) {
	amount, err := parseAmount("amount", draft.Amount)
	if err != nil {
		return models.Income{}, err
	}
	source, err := requireText("source", draft.Source)
	if err != nil {
		return models.Income{}, err
	}
	description, err := requireText("description", draft.Description)
	if err != nil {
		return models.Income{}, err
	}
	date, err := parseCalendarDate("date", draft.Date)
	if err != nil {
		return models.Income{}, err
	}

	return models.Income{
		ID:          uuid.NewString(),
		UserID:      userID,
		Amount:      amount,
		Source:      source,
		Description: description,
		Date:        date,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

type IncomeService struct {
	store  IncomeStore
	logger *zap.Logger
}

func NewIncomeService(store IncomeStore, logger *zap.Logger) *IncomeService {
	return &IncomeService{
		store:  store,
		logger: logger,
	}
}

func (s *IncomeService) Query(ctx context.Context, userID string, filter IncomeFilter) (IncomeQueryResult, error) {
	records, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return IncomeQueryResult{}, fmt.Errorf("list income: %w", err)
	}
	return QueryIncome(records, filter), nil
}

func (s *IncomeService) Create(ctx context.Context, userID string, draft IncomeDraft) (models.Income, error) {
	income, err := NewIncome(userID, draft)
	if err != nil {
		return models.Income{}, err
	}

	if err := s.store.Create(ctx, &income); err != nil {
		return models.Income{}, fmt.Errorf("save income: %w", err)
	}

	s.logger.Info("Income created",
		zap.String("id", income.ID),
		zap.String("user_id", userID),
		zap.String("source", income.Source),
	)

	return income, nil
}
