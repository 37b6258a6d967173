package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"finboard/internal/api/handlers"
	"finboard/internal/repository"
	"finboard/internal/seed"
	"finboard/internal/service"
	"finboard/pkg/auth"
	"finboard/pkg/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type testServer struct {
	app *fiber.App
	t   *testing.T
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := zap.NewNop()

	stores := seed.Stores{
		Users:    repository.NewMemoryUserRepository(),
		Expenses: repository.NewMemoryExpenseRepository(),
		Income:   repository.NewMemoryIncomeRepository(),
	}
	if _, err := seed.Run(context.Background(), stores, logger); err != nil {
		t.Fatalf("seed: %v", err)
	}

	jwtManager := auth.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	clock := func() time.Time { return time.Date(2023, 3, 31, 12, 0, 0, 0, time.UTC) }
	analytics := service.NewAnalyticsService(stores.Expenses, stores.Income, logger).
		WithClock(clock)
	chat := service.NewChatService(service.NewDefaultRuleResponder(), nil, stores.Expenses, stores.Income, logger).
		WithClock(clock)

	h := Handlers{
		Auth:      handlers.NewAuthHandler(service.NewAuthService(stores.Users, jwtManager, logger), logger),
		Expenses:  handlers.NewExpenseHandler(service.NewExpenseService(stores.Expenses, logger), logger),
		Income:    handlers.NewIncomeHandler(service.NewIncomeService(stores.Income, logger), logger),
		Analytics: handlers.NewAnalyticsHandler(analytics, logger),
		Chat:      handlers.NewChatHandler(chat, logger),
	}

	return &testServer{
		app: SetupRouter(h, &config.ServerConfig{}, jwtManager, logger),
		t:   t,
	}
}

// do sends a request and decodes a JSON response body into out when out is non-nil.
func (s *testServer) do(method, path, token string, body any, out any) int {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			s.t.Fatal(err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	if err != nil {
		s.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			s.t.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

type tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (s *testServer) login() tokens {
	s.t.Helper()
	var tok tokens
	status := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    seed.DemoEmail,
		"password": seed.DemoPassword,
	}, &tok)
	if status != http.StatusOK || tok.AccessToken == "" {
		s.t.Fatalf("login status = %d, tokens = %+v", status, tok)
	}
	return tok
}

type queryBody struct {
	Expenses []struct {
		ID       string  `json:"id"`
		Amount   float64 `json:"amount"`
		Category string  `json:"category"`
		Date     string  `json:"date"`
		Merchant string  `json:"merchant"`
	} `json:"expenses"`
	Total      float64 `json:"total"`
	ByCategory []struct {
		Category string  `json:"category"`
		Total    float64 `json:"total"`
		Count    int     `json:"count"`
	} `json:"byCategory"`
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	if status := s.do(http.MethodGet, "/health", "", nil, nil); status != http.StatusOK {
		t.Errorf("status = %d", status)
	}
}

func TestExpensesRequireAccessToken(t *testing.T) {
	s := newTestServer(t)

	if status := s.do(http.MethodGet, "/api/v1/expenses", "", nil, nil); status != http.StatusUnauthorized {
		t.Errorf("no token status = %d, want 401", status)
	}
	if status := s.do(http.MethodGet, "/api/v1/expenses", "garbage", nil, nil); status != http.StatusUnauthorized {
		t.Errorf("bad token status = %d, want 401", status)
	}

	tok := s.login()
	if status := s.do(http.MethodGet, "/api/v1/expenses", tok.RefreshToken, nil, nil); status != http.StatusUnauthorized {
		t.Errorf("refresh token status = %d, want 401", status)
	}
}

func TestQueryExpenses(t *testing.T) {
	s := newTestServer(t)
	tok := s.login()

	var body queryBody
	status := s.do(http.MethodGet, "/api/v1/expenses?category=food", tok.AccessToken, nil, &body)
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if len(body.Expenses) != 2 || body.Expenses[0].Merchant != "Whole Foods" || body.Expenses[1].Date != "2023-03-12" {
		t.Errorf("expenses = %+v", body.Expenses)
	}
	if body.Total != 151.05 {
		t.Errorf("total = %v, want 151.05", body.Total)
	}
	if len(body.ByCategory) != 1 || body.ByCategory[0].Category != "Food" || body.ByCategory[0].Count != 2 {
		t.Errorf("byCategory = %+v", body.ByCategory)
	}

	body = queryBody{}
	status = s.do(http.MethodGet, "/api/v1/expenses?startDate=2023-03-11&endDate=2023-03-16", tok.AccessToken, nil, &body)
	if status != http.StatusOK || len(body.Expenses) != 2 {
		t.Errorf("date window status = %d, expenses = %+v", status, body.Expenses)
	}
}

func TestQueryExpensesRejectsMalformedDate(t *testing.T) {
	s := newTestServer(t)
	tok := s.login()

	var body map[string]string
	status := s.do(http.MethodGet, "/api/v1/expenses?startDate=03/11/2023", tok.AccessToken, nil, &body)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if body["field"] != "startDate" {
		t.Errorf("body = %v", body)
	}
}

func TestCreateExpense(t *testing.T) {
	s := newTestServer(t)
	tok := s.login()

	var created struct {
		Success bool `json:"success"`
		Expense struct {
			ID       string  `json:"id"`
			Amount   float64 `json:"amount"`
			Merchant string  `json:"merchant"`
		} `json:"expense"`
	}
	status := s.do(http.MethodPost, "/api/v1/expenses", tok.AccessToken, map[string]any{
		"amount":      "40.25",
		"category":    "Transportation",
		"description": "Gas",
		"date":        "2023-03-08",
	}, &created)
	if status != http.StatusCreated {
		t.Fatalf("status = %d, want 201", status)
	}
	if !created.Success || created.Expense.ID == "" || created.Expense.Merchant != "Unknown" || created.Expense.Amount != 40.25 {
		t.Errorf("created = %+v", created)
	}

	var body queryBody
	s.do(http.MethodGet, "/api/v1/expenses?category=TRANSPORTATION", tok.AccessToken, nil, &body)
	if len(body.Expenses) != 1 || body.Expenses[0].ID != created.Expense.ID {
		t.Errorf("new expense not listed: %+v", body.Expenses)
	}

	var numeric map[string]any
	status = s.do(http.MethodPost, "/api/v1/expenses", tok.AccessToken, map[string]any{
		"amount":      12.5,
		"category":    "Food",
		"description": "Lunch",
		"date":        "2023-03-09",
		"merchant":    "Cafe",
	}, &numeric)
	if status != http.StatusCreated {
		t.Errorf("numeric amount status = %d, body = %v", status, numeric)
	}
}

func TestCreateExpenseValidation(t *testing.T) {
	s := newTestServer(t)
	tok := s.login()

	var body map[string]string
	status := s.do(http.MethodPost, "/api/v1/expenses", tok.AccessToken, map[string]any{
		"category":    "Food",
		"description": "x",
		"date":        "2023-03-08",
	}, &body)
	if status != http.StatusBadRequest || body["field"] != "amount" {
		t.Errorf("status = %d, body = %v", status, body)
	}
}

func TestCreateExpenseRejectsOutOfRangeAmounts(t *testing.T) {
	s := newTestServer(t)
	tok := s.login()

	for _, amount := range []any{"1e400", "1e-9999999", "1e20000000", json.RawMessage("1e400")} {
		var body map[string]string
		status := s.do(http.MethodPost, "/api/v1/expenses", tok.AccessToken, map[string]any{
			"amount":      amount,
			"category":    "Food",
			"description": "x",
			"date":        "2023-03-08",
		}, &body)
		if status != http.StatusBadRequest || body["field"] != "amount" {
			t.Errorf("amount %s: status = %d, body = %v", amount, status, body)
		}
	}

	var list queryBody
	if status := s.do(http.MethodGet, "/api/v1/expenses", tok.AccessToken, nil, &list); status != http.StatusOK {
		t.Fatalf("list status = %d, want 200", status)
	}
	if len(list.Expenses) != 5 {
		t.Errorf("listed %d expenses, want the 5 seeded ones", len(list.Expenses))
	}
}

func TestOutOfRangeDates(t *testing.T) {
	s := newTestServer(t)
	tok := s.login()

	var body map[string]string
	status := s.do(http.MethodPost, "/api/v1/expenses", tok.AccessToken, map[string]any{
		"amount": "1", "category": "Food", "description": "x", "date": "0001-01-01",
	}, &body)
	if status != http.StatusBadRequest || body["field"] != "date" {
		t.Errorf("create status = %d, body = %v", status, body)
	}

	body = nil
	status = s.do(http.MethodGet, "/api/v1/expenses?endDate=9999-01-01", tok.AccessToken, nil, &body)
	if status != http.StatusBadRequest || body["field"] != "endDate" {
		t.Errorf("filter status = %d, body = %v", status, body)
	}

	if status := s.do(http.MethodGet, "/api/v1/analysis/expenses-over-time?frequency=D", tok.AccessToken, nil, nil); status != http.StatusOK {
		t.Errorf("daily series status = %d, want 200", status)
	}
}

func TestRecordsCarryOwner(t *testing.T) {
	s := newTestServer(t)
	tok := s.login()

	var me struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": seed.DemoEmail, "password": seed.DemoPassword,
	}, &me)

	var expenses struct {
		Expenses []struct {
			UserID string `json:"userId"`
		} `json:"expenses"`
	}
	s.do(http.MethodGet, "/api/v1/expenses", tok.AccessToken, nil, &expenses)
	if len(expenses.Expenses) == 0 {
		t.Fatal("no expenses listed")
	}
	for i, e := range expenses.Expenses {
		if e.UserID != me.User.ID {
			t.Errorf("expense %d userId = %q, want %q", i, e.UserID, me.User.ID)
		}
	}

	var income struct {
		Income []struct {
			UserID string `json:"userId"`
		} `json:"income"`
	}
	s.do(http.MethodGet, "/api/v1/income", tok.AccessToken, nil, &income)
	if len(income.Income) == 0 {
		t.Fatal("no income listed")
	}
	for i, in := range income.Income {
		if in.UserID != me.User.ID {
			t.Errorf("income %d userId = %q, want %q", i, in.UserID, me.User.ID)
		}
	}
}

func TestRefreshToken(t *testing.T) {
	s := newTestServer(t)
	tok := s.login()

	var refreshed tokens
	status := s.do(http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refreshToken": tok.RefreshToken}, &refreshed)
	if status != http.StatusOK || refreshed.AccessToken == "" {
		t.Fatalf("status = %d, tokens = %+v", status, refreshed)
	}

	status = s.do(http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refreshToken": tok.AccessToken}, nil)
	if status != http.StatusUnauthorized {
		t.Errorf("access token as refresh status = %d, want 401", status)
	}
}

func TestRegister(t *testing.T) {
	s := newTestServer(t)

	status := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name": "Jane", "email": "jane@example.com", "password": "secret1",
	}, nil)
	if status != http.StatusCreated {
		t.Errorf("register status = %d, want 201", status)
	}

	status = s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name": "Jane", "email": seed.DemoEmail, "password": "secret1",
	}, nil)
	if status != http.StatusConflict {
		t.Errorf("duplicate status = %d, want 409", status)
	}

	var body map[string]string
	status = s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name": "Jane", "email": "jane2@example.com", "password": "123",
	}, &body)
	if status != http.StatusBadRequest || body["field"] != "password" {
		t.Errorf("short password status = %d, body = %v", status, body)
	}

	body = nil
	status = s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name": "Jane", "email": "jane3@example.com", "password": strings.Repeat("x", 73),
	}, &body)
	if status != http.StatusBadRequest || body["field"] != "password" {
		t.Errorf("long password status = %d, body = %v", status, body)
	}

	status = s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": seed.DemoEmail, "password": "wrong-password",
	}, nil)
	if status != http.StatusUnauthorized {
		t.Errorf("wrong password status = %d, want 401", status)
	}
}

func TestAnalysisRoutes(t *testing.T) {
	s := newTestServer(t)
	tok := s.login()

	var series struct {
		Data []struct {
			Date   string  `json:"date"`
			Amount float64 `json:"amount"`
		} `json:"data"`
	}
	if status := s.do(http.MethodGet, "/api/v1/analysis/expenses-over-time?frequency=M", tok.AccessToken, nil, &series); status != http.StatusOK {
		t.Fatalf("expenses-over-time status = %d", status)
	}
	if len(series.Data) != 1 || series.Data[0].Date != "2023-03-31" || series.Data[0].Amount != 1517.54 {
		t.Errorf("monthly series = %+v", series.Data)
	}

	if status := s.do(http.MethodGet, "/api/v1/analysis/expenses-over-time?frequency=Q", tok.AccessToken, nil, nil); status != http.StatusBadRequest {
		t.Errorf("bad frequency status = %d, want 400", status)
	}
	if status := s.do(http.MethodGet, "/api/v1/analysis/income-vs-expenses?frequency=D", tok.AccessToken, nil, nil); status != http.StatusBadRequest {
		t.Errorf("daily income-vs-expenses status = %d, want 400", status)
	}

	var merchants struct {
		Merchants []struct {
			Merchant string  `json:"merchant"`
			Amount   float64 `json:"amount"`
		} `json:"merchants"`
	}
	s.do(http.MethodGet, "/api/v1/analysis/top-merchants?n=2", tok.AccessToken, nil, &merchants)
	if len(merchants.Merchants) != 2 || merchants.Merchants[0].Merchant != "Property Management" {
		t.Errorf("merchants = %+v", merchants.Merchants)
	}

	var breakdown struct {
		Data []struct {
			Category string `json:"category"`
			Color    string `json:"color"`
		} `json:"data"`
		Total float64 `json:"total"`
	}
	s.do(http.MethodGet, "/api/v1/analysis/category-breakdown", tok.AccessToken, nil, &breakdown)
	if len(breakdown.Data) != 4 || breakdown.Data[0].Category != "Food" || breakdown.Total != 1517.54 {
		t.Errorf("breakdown = %+v", breakdown)
	}

	var budget struct {
		Budget []struct {
			Category string  `json:"category"`
			Budgeted float64 `json:"budgeted"`
		} `json:"budget"`
	}
	s.do(http.MethodGet, "/api/v1/budget", tok.AccessToken, nil, &budget)
	if n := len(budget.Budget); n == 0 || budget.Budget[n-1].Category != "Savings" {
		t.Errorf("budget = %+v", budget.Budget)
	}

	var dashboard struct {
		TotalBalance float64 `json:"totalBalance"`
		ExpenseCount int     `json:"expenseCount"`
	}
	s.do(http.MethodGet, "/api/v1/dashboard", tok.AccessToken, nil, &dashboard)
	if dashboard.ExpenseCount != 5 || dashboard.TotalBalance != 3832.46 {
		t.Errorf("dashboard = %+v", dashboard)
	}
}

func TestExpenseReportRoute(t *testing.T) {
	s := newTestServer(t)
	tok := s.login()

	var report struct {
		StartDate        string  `json:"startDate"`
		EndDate          string  `json:"endDate"`
		Total            float64 `json:"total"`
		TransactionCount int     `json:"transactionCount"`
		ByCategory       []struct {
			Category string `json:"category"`
		} `json:"byCategory"`
		Daily []struct {
			Date string `json:"date"`
		} `json:"daily"`
	}
	if status := s.do(http.MethodGet, "/api/v1/analysis/report", tok.AccessToken, nil, &report); status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if report.TransactionCount != 5 || report.Total != 1517.54 || len(report.ByCategory) != 4 {
		t.Errorf("report = %+v", report)
	}
	if report.StartDate == "" || report.EndDate == "" || len(report.Daily) == 0 {
		t.Errorf("report bounds = %q..%q, daily = %+v", report.StartDate, report.EndDate, report.Daily)
	}

	var body map[string]string
	status := s.do(http.MethodGet, "/api/v1/analysis/report?startDate=yesterday", tok.AccessToken, nil, &body)
	if status != http.StatusBadRequest || body["field"] != "startDate" {
		t.Errorf("bad startDate status = %d, body = %v", status, body)
	}
}

func TestIncomeRoutes(t *testing.T) {
	s := newTestServer(t)
	tok := s.login()

	var list struct {
		Total    float64 `json:"total"`
		BySource []struct {
			Source string `json:"source"`
		} `json:"bySource"`
	}
	s.do(http.MethodGet, "/api/v1/income", tok.AccessToken, nil, &list)
	if list.Total != 5350 || len(list.BySource) != 2 {
		t.Errorf("income = %+v", list)
	}

	status := s.do(http.MethodPost, "/api/v1/income", tok.AccessToken, map[string]any{
		"amount": 100, "source": "Gift", "description": "Birthday", "date": "2023-03-20",
	}, nil)
	if status != http.StatusCreated {
		t.Errorf("create income status = %d, want 201", status)
	}
}

func TestChat(t *testing.T) {
	s := newTestServer(t)
	tok := s.login()

	var reply struct {
		Response string `json:"response"`
	}
	status := s.do(http.MethodPost, "/api/v1/chat", tok.AccessToken, map[string]string{"message": "How do I invest?"}, &reply)
	if status != http.StatusOK || reply.Response == "" {
		t.Errorf("status = %d, reply = %+v", status, reply)
	}

	tests := []struct {
		message string
		want    string
	}{
		{"How much did I spend on food?", "Your total food expenses are $151.05."},
		{"What were my expenses this month?", "Your total expenses this month were $1517.54."},
		{"Show my income", "Your total income over the last 3 months was $5350.00."},
		{"How are my savings?", "you've saved $3832.46"},
	}
	for _, tt := range tests {
		reply.Response = ""
		status := s.do(http.MethodPost, "/api/v1/chat", tok.AccessToken, map[string]string{"message": tt.message}, &reply)
		if status != http.StatusOK || !strings.Contains(reply.Response, tt.want) {
			t.Errorf("%q: status = %d, reply = %q, want it to contain %q", tt.message, status, reply.Response, tt.want)
		}
	}

	if status := s.do(http.MethodPost, "/api/v1/chat", tok.AccessToken, map[string]string{"message": "  "}, nil); status != http.StatusBadRequest {
		t.Errorf("blank message status = %d, want 400", status)
	}
}
