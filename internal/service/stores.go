package service

import (
	"context"

	"finboard/internal/models"

	"github.com/google/uuid"
)

// ExpenseStore supplies and records a user's expenses in insertion order.
type ExpenseStore interface {
	ListByUser(ctx context.Context, userID string) ([]models.Expense, error)
	Create(ctx context.Context, expense *models.Expense) error
}

type IncomeStore interface {
	ListByUser(ctx context.Context, userID string) ([]models.Income, error)
	Create(ctx context.Context, income *models.Income) error
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}
