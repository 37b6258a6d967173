package seed

import (
	"context"
	"testing"

	"finboard/internal/models"
	"finboard/internal/repository"
	"finboard/pkg/auth"

	"go.uber.org/zap"
)

func memoryStores() Stores {
	return Stores{
		Users:    repository.NewMemoryUserRepository(),
		Expenses: repository.NewMemoryExpenseRepository(),
		Income:   repository.NewMemoryIncomeRepository(),
	}
}

func TestRunLoadsSampleData(t *testing.T) {
	ctx := context.Background()
	stores := memoryStores()

	user, err := Run(ctx, stores, zap.NewNop())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !auth.CheckPasswordHash(DemoPassword, user.Password) {
		t.Error("demo password should verify against stored hash")
	}

	expenses, _ := stores.Expenses.ListByUser(ctx, user.ID.String())
	if len(expenses) != len(sampleExpenses) {
		t.Errorf("expenses = %d, want %d", len(expenses), len(sampleExpenses))
	}
	income, _ := stores.Income.ListByUser(ctx, user.ID.String())
	if len(income) != len(sampleIncome) {
		t.Errorf("income = %d, want %d", len(income), len(sampleIncome))
	}
	if expenses[0].Merchant != "Whole Foods" || expenses[0].Amount.String() != "85.75" {
		t.Errorf("unexpected first expense %+v", expenses[0])
	}
}

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	stores := memoryStores()

	first, err := Run(ctx, stores, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	second, err := Run(ctx, stores, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if first.ID != second.ID {
		t.Errorf("second run created a new user")
	}

	expenses, _ := stores.Expenses.ListByUser(ctx, first.ID.String())
	if len(expenses) != len(sampleExpenses) {
		t.Errorf("expenses = %d after two runs, want %d", len(expenses), len(sampleExpenses))
	}
}

type recordingBatchStore struct {
	*repository.MemoryExpenseRepository
	batches int
}

func (s *recordingBatchStore) CreateBatch(ctx context.Context, expenses []*models.Expense) error {
	s.batches++
	for _, e := range expenses {
		if err := s.Create(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func TestRunPrefersBatchInsert(t *testing.T) {
	ctx := context.Background()
	store := &recordingBatchStore{MemoryExpenseRepository: repository.NewMemoryExpenseRepository()}
	stores := memoryStores()
	stores.Expenses = store

	user, err := Run(ctx, stores, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if store.batches != 1 {
		t.Errorf("batches = %d, want 1", store.batches)
	}

	expenses, _ := store.ListByUser(ctx, user.ID.String())
	for i := 1; i < len(expenses); i++ {
		if !expenses[i].CreatedAt.After(expenses[i-1].CreatedAt) {
			t.Errorf("created_at not increasing at %d", i)
		}
	}
}
