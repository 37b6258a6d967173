package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"finboard/internal/models"

	"github.com/google/uuid"
)

// MemoryExpenseRepository keeps expenses per user in insertion order.
type MemoryExpenseRepository struct {
	mu     sync.RWMutex
	byUser map[string][]models.Expense
	ids    map[string]struct{}
}

func NewMemoryExpenseRepository() *MemoryExpenseRepository {
	return &MemoryExpenseRepository{
		byUser: make(map[string][]models.Expense),
		ids:    make(map[string]struct{}),
	}
}

func (r *MemoryExpenseRepository) Create(_ context.Context, e *models.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.ids[e.ID]; dup {
		return fmt.Errorf("expense %s: %w", e.ID, ErrDuplicate)
	}
	r.ids[e.ID] = struct{}{}
	r.byUser[e.UserID] = append(r.byUser[e.UserID], *e)
	return nil
}

func (r *MemoryExpenseRepository) ListByUser(_ context.Context, userID string) ([]models.Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	src := r.byUser[userID]
	out := make([]models.Expense, len(src))
	copy(out, src)
	return out, nil
}

type MemoryIncomeRepository struct {
	mu     sync.RWMutex
	byUser map[string][]models.Income
	ids    map[string]struct{}
}

func NewMemoryIncomeRepository() *MemoryIncomeRepository {
	return &MemoryIncomeRepository{
		byUser: make(map[string][]models.Income),
		ids:    make(map[string]struct{}),
	}
}

func (r *MemoryIncomeRepository) Create(_ context.Context, in *models.Income) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.ids[in.ID]; dup {
		return fmt.Errorf("income %s: %w", in.ID, ErrDuplicate)
	}
	r.ids[in.ID] = struct{}{}
	r.byUser[in.UserID] = append(r.byUser[in.UserID], *in)
	return nil
}

func (r *MemoryIncomeRepository) ListByUser(_ context.Context, userID string) ([]models.Income, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	src := r.byUser[userID]
	out := make([]models.Income, len(src))
	copy(out, src)
	return out, nil
}

type MemoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]models.User
	byEmail map[string]uuid.UUID
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:    make(map[uuid.UUID]models.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(user.Email)
	if _, dup := r.byEmail[email]; dup {
		return fmt.Errorf("user with email %s: %w", email, ErrDuplicate)
	}
	r.byID[user.ID] = *user
	r.byEmail[email] = user.ID
	return nil
}

func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, ErrNotFound
	}
	u := r.byID[id]
	return &u, nil
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}
