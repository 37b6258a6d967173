package handlers

import (
	"time"

	"finboard/internal/dto"
	"finboard/internal/models"
	"finboard/internal/service"

	"github.com/shopspring/decimal"
)

func money(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func toExpenseResponse(e models.Expense) dto.ExpenseResponse {
	return dto.ExpenseResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		Amount:      money(e.Amount),
		Category:    e.Category,
		Description: e.Description,
		Date:        e.Date.Format(models.DateLayout),
		Merchant:    e.Merchant,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
	}
}

func toExpenseResponses(expenses []models.Expense) []dto.ExpenseResponse {
	out := make([]dto.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseResponse(e))
	}
	return out
}

func toCategoryAggregates(aggs []models.CategoryAggregate) []dto.CategoryAggregateResponse {
	out := make([]dto.CategoryAggregateResponse, 0, len(aggs))
	for _, agg := range aggs {
		out = append(out, dto.CategoryAggregateResponse{
			Category: agg.Category,
			Total:    money(agg.Total),
			Count:    agg.Count,
		})
	}
	return out
}

func toExpenseQueryResponse(res service.ExpenseQueryResult) dto.ExpenseQueryResponse {
	return dto.ExpenseQueryResponse{
		Expenses:   toExpenseResponses(res.Expenses),
		Total:      money(res.Total),
		ByCategory: toCategoryAggregates(res.ByCategory),
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(models.DateLayout)
}

func toExpenseReportResponse(r service.ExpenseReport) dto.ExpenseReportResponse {
	return dto.ExpenseReportResponse{
		StartDate:        formatDate(r.StartDate),
		EndDate:          formatDate(r.EndDate),
		Total:            money(r.Total),
		ByCategory:       toCategoryAggregates(r.ByCategory),
		TopMerchants:     toMerchantResponses(r.TopMerchants),
		Daily:            toPeriodAmounts(r.Daily),
		TransactionCount: r.TransactionCount,
	}
}

func toIncomeResponse(in models.Income) dto.IncomeResponse {
	return dto.IncomeResponse{
		ID:          in.ID,
		UserID:      in.UserID,
		Amount:      money(in.Amount),
		Source:      in.Source,
		Description: in.Description,
		Date:        in.Date.Format(models.DateLayout),
		CreatedAt:   in.CreatedAt.Format(time.RFC3339),
	}
}

func toIncomeQueryResponse(res service.IncomeQueryResult) dto.IncomeQueryResponse {
	income := make([]dto.IncomeResponse, 0, len(res.Income))
	for _, in := range res.Income {
		income = append(income, toIncomeResponse(in))
	}
	bySource := make([]dto.SourceAggregateResponse, 0, len(res.BySource))
	for _, agg := range res.BySource {
		bySource = append(bySource, dto.SourceAggregateResponse{
			Source: agg.Source,
			Total:  money(agg.Total),
			Count:  agg.Count,
		})
	}
	return dto.IncomeQueryResponse{
		Income:   income,
		Total:    money(res.Total),
		BySource: bySource,
	}
}

func toMerchantResponses(merchants []service.MerchantTotal) []dto.MerchantResponse {
	out := make([]dto.MerchantResponse, 0, len(merchants))
	for _, m := range merchants {
		out = append(out, dto.MerchantResponse{Merchant: m.Merchant, Amount: money(m.Amount)})
	}
	return out
}

func toCategoryBreakdownResponse(res service.CategoryBreakdownResult) dto.CategoryBreakdownResponse {
	data := make([]dto.CategoryShareResponse, 0, len(res.Categories))
	for _, s := range res.Categories {
		data = append(data, dto.CategoryShareResponse{
			Category:   s.Category,
			Amount:     money(s.Amount),
			Percentage: s.Percentage,
			Color:      s.Color,
		})
	}
	return dto.CategoryBreakdownResponse{Data: data, Total: money(res.Total)}
}

func toPeriodAmounts(series []service.PeriodAmount) []dto.PeriodAmountResponse {
	out := make([]dto.PeriodAmountResponse, 0, len(series))
	for _, p := range series {
		out = append(out, dto.PeriodAmountResponse{
			Date:   p.Date.Format(models.DateLayout),
			Amount: money(p.Amount),
		})
	}
	return out
}

func toPeriodComparisons(rows []service.PeriodComparison) []dto.PeriodComparisonResponse {
	out := make([]dto.PeriodComparisonResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.PeriodComparisonResponse{
			Date:     r.Date.Format(models.DateLayout),
			Income:   money(r.Income),
			Expenses: money(r.Expenses),
			Savings:  money(r.Savings),
		})
	}
	return out
}

func toBudgetResponse(lines []service.BudgetLine) dto.BudgetResponse {
	out := make([]dto.BudgetLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.BudgetLineResponse{
			Category:   l.Category,
			Budgeted:   money(l.Budgeted),
			Actual:     money(l.Actual),
			Percentage: l.Percentage,
		})
	}
	return dto.BudgetResponse{Budget: out}
}

func toDashboardResponse(d service.Dashboard) dto.DashboardResponse {
	overview := make([]dto.OverviewPoint, 0, len(d.Overview))
	for _, p := range d.Overview {
		overview = append(overview, dto.OverviewPoint{
			Name:     p.Date.Format("Jan"),
			Date:     p.Date.Format(models.DateLayout),
			Income:   money(p.Income),
			Expenses: money(p.Expenses),
		})
	}
	categories := make([]dto.DashboardCategory, 0, len(d.ExpensesByCategory))
	for _, s := range d.ExpensesByCategory {
		categories = append(categories, dto.DashboardCategory{
			Name:  s.Category,
			Value: money(s.Amount),
			Color: s.Color,
		})
	}

	return dto.DashboardResponse{
		TotalBalance:       money(d.TotalBalance),
		Income:             money(d.Income),
		Expenses:           money(d.Expenses),
		ExpenseCount:       d.ExpenseCount,
		OverviewData:       overview,
		ExpensesByCategory: categories,
		RecentTransactions: toExpenseResponses(d.RecentTransactions),
		TopMerchants:       toMerchantResponses(d.TopMerchants),
	}
}
