package service

import (
	"context"
	"fmt"

	"finboard/internal/models"

	"go.uber.org/zap"
)

type ExpenseService struct {
	store  ExpenseStore
	logger *zap.Logger
}

func NewExpenseService(store ExpenseStore, logger *zap.Logger) *ExpenseService {
	return &ExpenseService{
		store:  store,
		logger: logger,
	}
}

// Query runs the expense engine over the user's records.
func (s *ExpenseService) Query(ctx context.Context, userID string, filter ExpenseFilter) (ExpenseQueryResult, error) {
	records, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return ExpenseQueryResult{}, fmt.Errorf("list expenses: %w", err)
	}

	result := QueryExpenses(records, filter)

	s.logger.Debug("Expense query completed",
		zap.String("user_id", userID),
		zap.String("category", filter.Category),
		zap.Int("scanned", len(records)),
		zap.Int("matched", len(result.Expenses)),
	)

	return result, nil
}

// Create validates the draft and stores the resulting record.
func (s *ExpenseService) Create(ctx context.Context, userID string, draft ExpenseDraft) (models.Expense, error) {
	expense, err := NewExpense(userID, draft)
	if err != nil {
		return models.Expense{}, err
	}

	if err := s.store.Create(ctx, &expense); err != nil {
		return models.Expense{}, fmt.Errorf("save expense: %w", err)
	}

	s.logger.Info("Expense created",
		zap.String("id", expense.ID),
		zap.String("user_id", userID),
		zap.String("category", expense.Category),
	)

	return expense, nil
}
