package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const maxChatMessageLength = 2000

// Responder produces an assistant reply for one user message.
type Responder interface {
	Respond(ctx context.Context, message string, data ChatContext) (string, error)
}

type ChatService struct {
	primary  Responder
	fallback Responder
	expenses ExpenseStore
	income   IncomeStore
	logger   *zap.Logger
	now      func() time.Time
}

// NewChatService answers with primary and drops to fallback when primary fails.
// A nil fallback disables the safety net.
func NewChatService(primary, fallback Responder, expenses ExpenseStore, income IncomeStore, logger *zap.Logger) *ChatService {
	return &ChatService{
		primary:  primary,
		fallback: fallback,
		expenses: expenses,
		income:   income,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock replaces the time source used for relative periods.
func (s *ChatService) WithClock(now func() time.Time) *ChatService {
	s.now = now
	return s
}

func (s *ChatService) load(ctx context.Context, userID string) (ChatContext, error) {
	expenses, err := s.expenses.ListByUser(ctx, userID)
	if err != nil {
		return ChatContext{}, fmt.Errorf("list expenses: %w", err)
	}
	income, err := s.income.ListByUser(ctx, userID)
	if err != nil {
		return ChatContext{}, fmt.Errorf("list income: %w", err)
	}
	return ChatContext{Now: s.now(), Expenses: expenses, Income: income}, nil
}

func (s *ChatService) Reply(ctx context.Context, userID, message string) (string, error) {
	message = cleanText(message)
	if message == "" {
		return "", missingField("message")
	}
	if len(message) > maxChatMessageLength {
		return "", invalidField("message", "is too long")
	}

	data, err := s.load(ctx, userID)
	if err != nil {
		return "", err
	}

	reply, err := s.primary.Respond(ctx, message, data)
	if err == nil && strings.TrimSpace(reply) != "" {
		return reply, nil
	}
	if s.fallback == nil {
		if err == nil {
			return "", errEmptyReply
		}
		return "", err
	}

	s.logger.Warn("Primary chat responder failed, using rule table", zap.Error(err))
	return s.fallback.Respond(ctx, message, data)
}
