package service

import (
	"context"
	"testing"
	"time"

	"finboard/internal/models"
	"finboard/internal/repository"

	"go.uber.org/zap"
)

func reportRecords() []models.Expense {
	return []models.Expense{
		withMerchant(expense("1", "85.75", "Food", "2023-03-15"), "Whole Foods"),
		withMerchant(expense("2", "120.50", "Utilities", "2023-03-10"), "City Power"),
		withMerchant(expense("3", "65.30", "Food", "2023-03-12"), "Trader Joe's"),
		withMerchant(expense("4", "14.70", "Food", "2023-03-15"), "Whole Foods"),
	}
}

func optionalDay(s string) *time.Time {
	if s == "" {
		return nil
	}
	return dayPtr(s)
}

func TestReport(t *testing.T) {
	r := Report(reportRecords(), nil, nil)

	if r.StartDate == nil || !r.StartDate.Equal(day("2023-03-10")) {
		t.Errorf("start = %v, want 2023-03-10", r.StartDate)
	}
	if r.EndDate == nil || !r.EndDate.Equal(day("2023-03-15")) {
		t.Errorf("end = %v, want 2023-03-15", r.EndDate)
	}
	assertAmount(t, "total", r.Total, "286.25")
	if r.TransactionCount != 4 {
		t.Errorf("count = %d, want 4", r.TransactionCount)
	}

	if len(r.ByCategory) != 2 || r.ByCategory[0].Category != "Food" || r.ByCategory[0].Count != 3 {
		t.Fatalf("byCategory = %+v", r.ByCategory)
	}
	assertAmount(t, "food", r.ByCategory[0].Total, "165.75")

	if len(r.TopMerchants) != 3 || r.TopMerchants[0].Merchant != "City Power" || r.TopMerchants[1].Merchant != "Whole Foods" {
		t.Fatalf("merchants = %+v", r.TopMerchants)
	}
	assertAmount(t, "top merchant", r.TopMerchants[0].Amount, "120.50")
	assertAmount(t, "second merchant", r.TopMerchants[1].Amount, "100.45")

	want := []struct {
		date   string
		amount string
	}{
		{"2023-03-10", "120.50"},
		{"2023-03-12", "65.30"},
		{"2023-03-15", "100.45"},
	}
	if len(r.Daily) != len(want) {
		t.Fatalf("daily = %+v", r.Daily)
	}
	for i, w := range want {
		if !r.Daily[i].Date.Equal(day(w.date)) {
			t.Errorf("daily[%d] date = %s, want %s", i, r.Daily[i].Date, w.date)
		}
		assertAmount(t, "daily "+w.date, r.Daily[i].Amount, w.amount)
	}
}

func TestReportWindow(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		count      int
		total      string
		from, to   string
	}{
		{"both bounds kept as given", "2023-03-11", "2023-03-14", 1, "65.30", "2023-03-11", "2023-03-14"},
		{"open end falls back to latest", "2023-03-12", "", 3, "165.75", "2023-03-12", "2023-03-15"},
		{"open start falls back to earliest", "", "2023-03-12", 2, "185.80", "2023-03-10", "2023-03-12"},
		{"empty window", "2023-04-01", "2023-04-30", 0, "0", "2023-04-01", "2023-04-30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Report(reportRecords(), optionalDay(tt.start), optionalDay(tt.end))
			if r.TransactionCount != tt.count {
				t.Errorf("count = %d, want %d", r.TransactionCount, tt.count)
			}
			assertAmount(t, "total", r.Total, tt.total)
			if r.StartDate == nil || !r.StartDate.Equal(day(tt.from)) {
				t.Errorf("start = %v, want %s", r.StartDate, tt.from)
			}
			if r.EndDate == nil || !r.EndDate.Equal(day(tt.to)) {
				t.Errorf("end = %v, want %s", r.EndDate, tt.to)
			}
		})
	}
}

func TestReportEmpty(t *testing.T) {
	r := Report(nil, nil, nil)
	if r.StartDate != nil || r.EndDate != nil {
		t.Errorf("open empty report should have no bounds, got %v %v", r.StartDate, r.EndDate)
	}
	if r.Daily == nil || r.ByCategory == nil || r.TopMerchants == nil {
		t.Error("empty report should carry non-nil slices")
	}
	if !r.Total.IsZero() || r.TransactionCount != 0 {
		t.Errorf("report = %+v", r)
	}
}

func TestReportTopMerchantsLimit(t *testing.T) {
	var records []models.Expense
	for i := 0; i < 12; i++ {
		id := string(rune('a' + i))
		records = append(records, withMerchant(expense(id, "1", "Food", "2023-03-01"), "Shop "+id))
	}
	if got := Report(records, nil, nil).TopMerchants; len(got) != reportMerchants {
		t.Errorf("merchants = %d, want %d", len(got), reportMerchants)
	}
}

func TestAnalyticsServiceReport(t *testing.T) {
	ctx := context.Background()
	expenses := repository.NewMemoryExpenseRepository()
	for _, e := range reportRecords() {
		if err := expenses.Create(ctx, &e); err != nil {
			t.Fatal(err)
		}
	}
	svc := NewAnalyticsService(expenses, repository.NewMemoryIncomeRepository(), zap.NewNop())

	r, err := svc.Report(ctx, "user1", dayPtr("2023-03-15"), nil)
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	assertAmount(t, "total", r.Total, "100.45")
	if r.TransactionCount != 2 {
		t.Errorf("count = %d, want 2", r.TransactionCount)
	}

	other, err := svc.Report(ctx, "someone-else", nil, nil)
	if err != nil || other.TransactionCount != 0 {
		t.Errorf("other user report = %+v, %v", other, err)
	}
}
