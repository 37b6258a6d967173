// Package seed loads the demo account and its sample records into any store.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finboard/internal/models"
	"finboard/internal/repository"
	"finboard/internal/service"
	"finboard/pkg/auth"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DemoEmail    = "user@example.com"
	DemoPassword = "password123"
	DemoName     = "John Doe"
)

var sampleExpenses = []service.ExpenseDraft{
	{Amount: "85.75", Category: "Food", Description: "Grocery Shopping", Date: "2023-03-15", Merchant: "Whole Foods"},
	{Amount: "120.50", Category: "Utilities", Description: "Electricity Bill", Date: "2023-03-10", Merchant: "Power Co"},
	{Amount: "65.30", Category: "Food", Description: "Dinner with Friends", Date: "2023-03-12", Merchant: "Restaurant"},
	{Amount: "1200.00", Category: "Housing", Description: "Monthly Rent", Date: "2023-03-01", Merchant: "Property Management"},
	{Amount: "45.99", Category: "Entertainment", Description: "Streaming Services", Date: "2023-03-05", Merchant: "Netflix"},
}

var sampleIncome = []service.IncomeDraft{
	{Amount: "4500.00", Source: "Salary", Description: "Monthly Salary", Date: "2023-03-01"},
	{Amount: "850.00", Source: "Freelance", Description: "Freelance Project", Date: "2023-03-08"},
}

type batchExpenseStore interface {
	CreateBatch(ctx context.Context, expenses []*models.Expense) error
}

type Stores struct {
	Users    service.UserStore
	Expenses service.ExpenseStore
	Income   service.IncomeStore
}

// Run creates the demo user with sample expenses and income.
// A demo user that already exists is left untouched.
func Run(ctx context.Context, stores Stores, logger *zap.Logger) (*models.User, error) {
	existing, err := stores.Users.GetByEmail(ctx, DemoEmail)
	if err == nil {
		logger.Info("Demo user already present, skipping sample data", zap.String("user_id", existing.ID.String()))
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup demo user: %w", err)
	}

	hash, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:        uuid.New(),
		Name:      DemoName,
		Email:     DemoEmail,
		Password:  hash,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := stores.Users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create demo user: %w", err)
	}

	userID := user.ID.String()
	expenses := make([]*models.Expense, 0, len(sampleExpenses))
	for i, draft := range sampleExpenses {
		e, err := service.NewExpense(userID, draft)
		if err != nil {
			return nil, fmt.Errorf("sample expense %q: %w", draft.Description, err)
		}
		// distinct timestamps keep the listing order stable in postgres
		e.CreatedAt = now.Add(time.Duration(i) * time.Millisecond)
		expenses = append(expenses, &e)
	}
	if err := storeExpenses(ctx, stores.Expenses, expenses); err != nil {
		return nil, fmt.Errorf("store sample expenses: %w", err)
	}
	for i, draft := range sampleIncome {
		in, err := service.NewIncome(userID, draft)
		if err != nil {
			return nil, fmt.Errorf("sample income %q: %w", draft.Description, err)
		}
		in.CreatedAt = now.Add(time.Duration(i) * time.Millisecond)
		if err := stores.Income.Create(ctx, &in); err != nil {
			return nil, fmt.Errorf("store sample income: %w", err)
		}
	}

	logger.Info("Sample data loaded",
		zap.String("user_id", userID),
		zap.Int("expenses", len(sampleExpenses)),
		zap.Int("income", len(sampleIncome)),
	)

	return user, nil
}

func storeExpenses(ctx context.Context, store service.ExpenseStore, expenses []*models.Expense) error {
	if batch, ok := store.(batchExpenseStore); ok {
		return batch.CreateBatch(ctx, expenses)
	}
	for _, e := range expenses {
		if err := store.Create(ctx, e); err != nil {
			return err
		}
	}
	return nil
}
