package service

import (
	"context"
	"strings"
)

// ChatRule answers when Match accepts the lower-cased message.
// Answer, when set, computes a reply from the user's data and may decline;
// Response is used next, and an empty Response passes to the following rule.
type ChatRule struct {
	Name     string
	Match    func(message string) bool
	Answer   func(message string, data ChatContext) (string, bool)
	Response string
}

func containsAny(words ...string) func(string) bool {
	return func(message string) bool {
		for _, w := range words {
			if strings.Contains(message, w) {
				return true
			}
		}
		return false
	}
}

const (
	defaultChatResponse = "I'm your AI financial assistant. I can help you with budgeting, investment advice, debt management, and analyzing your spending patterns. What specific financial question can I help you with today?"

	debtAdvice = "To tackle debt effectively, consider the avalanche method (paying off highest interest debt first) or the snowball method (paying off smallest debts first for psychological wins). The avalanche method saves more money in the long run."
)

// DefaultChatRules is evaluated top to bottom; the first reply wins.
var DefaultChatRules = []ChatRule{
	{
		Name:     "spending",
		Match:    containsAny("expense", "spend", "spent", "paid"),
		Answer:   answerSpending,
		Response: "I don't see any expenses recorded yet. Once you add some, I can break your spending down by category and period.",
	},
	{
		Name:     "income",
		Match:    containsAny("income", "earning", "salary", "earned"),
		Answer:   answerIncome,
		Response: "I don't see any income recorded yet. Add your salary or other income and I can summarise it by source.",
	},
	{
		Name:     "budget",
		Match:    containsAny("budget"),
		Answer:   answerBudget,
		Response: "I recommend allocating 50% of your income to necessities, 30% to wants, and 20% to savings and debt repayment. This 50/30/20 rule is a good starting point for most people.",
	},
	{
		Name:     "savings",
		Match:    containsAny("saving", "save"),
		Answer:   answerSavings,
		Response: "A good target is to save at least 20% of your income. Automate a transfer to savings each payday and trim discretionary categories like Entertainment and Shopping.",
	},
	{
		Name:     "investment",
		Match:    containsAny("invest"),
		Response: "For beginners, I recommend starting with index funds which provide broad market exposure with lower fees. Consider setting up a regular investment plan to take advantage of dollar-cost averaging.",
	},
	{
		Name:     "debt",
		Match:    containsAny("debt", "loan"),
		Answer:   answerDebt,
		Response: debtAdvice,
	},
}

// RuleResponder answers from a rule table with an explicit default.
type RuleResponder struct {
	rules    []ChatRule
	fallback string
}

func NewRuleResponder(rules []ChatRule, fallback string) *RuleResponder {
	if fallback == "" {
		fallback = defaultChatResponse
	}
	return &RuleResponder{rules: rules, fallback: fallback}
}

func NewDefaultRuleResponder() *RuleResponder {
	return NewRuleResponder(DefaultChatRules, defaultChatResponse)
}

func (r *RuleResponder) Respond(_ context.Context, message string, data ChatContext) (string, error) {
	lower := strings.ToLower(message)
	for _, rule := range r.rules {
		if !rule.Match(lower) {
			continue
		}
		if rule.Answer != nil {
			if reply, ok := rule.Answer(lower, data); ok {
				return reply, nil
			}
		}
		if rule.Response != "" {
			return rule.Response, nil
		}
	}
	return r.fallback, nil
}
