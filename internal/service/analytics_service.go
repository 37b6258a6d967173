package service

import (
	"context"
	"fmt"
	"time"

	"finboard/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const recentTransactionCount = 10

type Dashboard struct {
	TotalBalance       decimal.Decimal
	Income             decimal.Decimal
	Expenses           decimal.Decimal
	ExpenseCount       int
	ExpensesByCategory []CategoryShare
	Overview           []PeriodComparison
	RecentTransactions []models.Expense
	TopMerchants       []MerchantTotal
}

// AnalyticsService feeds a user's records into the analytics functions.
type AnalyticsService struct {
	expenses ExpenseStore
	income   IncomeStore
	logger   *zap.Logger
	now      func() time.Time
}

func NewAnalyticsService(expenses ExpenseStore, income IncomeStore, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		expenses: expenses,
		income:   income,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock replaces the time source used for trailing windows.
func (s *AnalyticsService) WithClock(now func() time.Time) *AnalyticsService {
	s.now = now
	return s
}

func (s *AnalyticsService) load(ctx context.Context, userID string, withIncome bool) ([]models.Expense, []models.Income, error) {
	expenses, err := s.expenses.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("list expenses: %w", err)
	}
	if !withIncome {
		return expenses, nil, nil
	}
	income, err := s.income.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("list income: %w", err)
	}
	return expenses, income, nil
}

func (s *AnalyticsService) CategoryBreakdown(ctx context.Context, userID string, start, end *time.Time) (CategoryBreakdownResult, error) {
	expenses, _, err := s.load(ctx, userID, false)
	if err != nil {
		return CategoryBreakdownResult{}, err
	}
	return CategoryBreakdown(expenses, start, end), nil
}

func (s *AnalyticsService) TopMerchants(ctx context.Context, userID string, n int) ([]MerchantTotal, error) {
	expenses, _, err := s.load(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	return TopMerchants(expenses, n), nil
}

func (s *AnalyticsService) Report(ctx context.Context, userID string, start, end *time.Time) (ExpenseReport, error) {
	expenses, _, err := s.load(ctx, userID, false)
	if err != nil {
		return ExpenseReport{}, err
	}
	return Report(expenses, start, end), nil
}

func (s *AnalyticsService) ExpensesOverTime(ctx context.Context, userID string, freq Frequency) ([]PeriodAmount, error) {
	expenses, _, err := s.load(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	return ExpensesOverTime(expenses, freq)
}

func (s *AnalyticsService) IncomeVsExpenses(ctx context.Context, userID string, freq Frequency) ([]PeriodComparison, error) {
	expenses, income, err := s.load(ctx, userID, true)
	if err != nil {
		return nil, err
	}
	return IncomeVsExpenses(income, expenses, freq)
}

func (s *AnalyticsService) Budget(ctx context.Context, userID string) ([]BudgetLine, error) {
	expenses, income, err := s.load(ctx, userID, true)
	if err != nil {
		return nil, err
	}
	return Budget(income, expenses, s.now()), nil
}

// Dashboard assembles the landing summary in one pass over the user's records.
func (s *AnalyticsService) Dashboard(ctx context.Context, userID string) (Dashboard, error) {
	expenses, income, err := s.load(ctx, userID, true)
	if err != nil {
		return Dashboard{}, err
	}

	w := budgetWindow(s.now())
	overview, err := IncomeVsExpenses(income, expenses, Monthly)
	if err != nil {
		return Dashboard{}, err
	}

	totalIncome := QueryIncome(income, IncomeFilter{}).Total
	totalExpenses := QueryExpenses(expenses, ExpenseFilter{}).Total

	d := Dashboard{
		TotalBalance:       totalIncome.Sub(totalExpenses),
		Income:             totalIncome,
		Expenses:           totalExpenses,
		ExpenseCount:       len(expenses),
		ExpensesByCategory: CategoryBreakdown(expenses, w.start, w.end).Categories,
		Overview:           overview,
		RecentTransactions: RecentExpenses(expenses, recentTransactionCount),
		TopMerchants:       TopMerchants(expenses, defaultTopMerchants),
	}

	s.logger.Debug("Dashboard built",
		zap.String("user_id", userID),
		zap.Int("expenses", len(expenses)),
		zap.Int("income", len(income)),
	)

	return d, nil
}
