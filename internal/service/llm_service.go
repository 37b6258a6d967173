package service

import (
	"context"
	"fmt"
	"strings"

	"finboard/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

const chatSystemInstruction = `You are a helpful financial assistant inside a personal finance dashboard.
Give helpful, concise answers about the user's finances.
Each message comes with a summary of the user's recent records; base figures on it and never invent numbers.
If they ask about investments, recommend index funds and ETFs for beginners.
If they ask about budgeting, suggest the 50/30/20 rule.
Keep every response under 150 words.`

// GigaChatResponder forwards chat messages to the GigaChat API.
type GigaChatResponder struct {
	client *gigago.Client
	model  *gigago.GenerativeModel
	logger *zap.Logger
}

func NewGigaChatResponder(ctx context.Context, cfg *config.GigaChatConfig, logger *zap.Logger) (*GigaChatResponder, error) {
	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SystemInstruction = chatSystemInstruction
	model.Temperature = 0.3

	logger.Info("Using GigaChat model", zap.String("model", cfg.Model))

	return &GigaChatResponder{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

func buildChatPrompt(message string, data ChatContext) string {
	return fmt.Sprintf("%s\nThe user says: %s\nProvide a helpful, concise response about their finances.",
		summarizeForPrompt(data), message)
}

func (r *GigaChatResponder) Respond(ctx context.Context, message string, data ChatContext) (string, error) {
	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: buildChatPrompt(message, data)},
	}

	resp, err := r.model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from LLM")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	r.logger.Debug("GigaChat response received", zap.Int("length", len(text)))
	return text, nil
}

func (r *GigaChatResponder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}
