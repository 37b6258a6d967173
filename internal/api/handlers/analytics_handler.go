package handlers

import (
	"errors"

	"finboard/internal/dto"
	"finboard/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AnalyticsHandler struct {
	analytics *service.AnalyticsService
	logger    *zap.Logger
}

func NewAnalyticsHandler(analytics *service.AnalyticsService, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analytics: analytics,
		logger:    logger,
	}
}

// ExpensesOverTime godoc
// @Summary Spending per period
// @Description Totals per day, week (ending Sunday) or month (labelled by its last day), gaps filled with zero
// @Tags analysis
// @Produce json
// @Param frequency query string false "D, W or M" default(W)
// @Security Bearer
// @Success 200 {object} dto.ExpensesOverTimeResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/analysis/expenses-over-time [get]
func (h *AnalyticsHandler) ExpensesOverTime(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	freq, err := service.ParseFrequency(c.Query("frequency", string(service.Weekly)))
	if err != nil {
		return badRequest(c, "frequency must be one of D, W, M")
	}

	series, err := h.analytics.ExpensesOverTime(c.Context(), userID, freq)
	if err != nil {
		if errors.Is(err, service.ErrSeriesTooLong) {
			return badRequest(c, "date range too long, use a coarser frequency")
		}
		return failed(c, h.logger, err, "Failed to analyze expenses")
	}

	return c.JSON(dto.ExpensesOverTimeResponse{Data: toPeriodAmounts(series)})
}

// IncomeVsExpenses godoc
// @Summary Income, expenses and savings per period
// @Tags analysis
// @Produce json
// @Param frequency query string false "W or M" default(M)
// @Security Bearer
// @Success 200 {object} dto.IncomeVsExpensesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/analysis/income-vs-expenses [get]
func (h *AnalyticsHandler) IncomeVsExpenses(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	freq, err := service.ParseFrequency(c.Query("frequency", string(service.Monthly)))
	if err != nil {
		return badRequest(c, "frequency must be W or M")
	}

	rows, err := h.analytics.IncomeVsExpenses(c.Context(), userID, freq)
	if err != nil {
		if errors.Is(err, service.ErrInvalidFrequency) {
			return badRequest(c, "frequency must be W or M")
		}
		if errors.Is(err, service.ErrSeriesTooLong) {
			return badRequest(c, "date range too long, use a coarser frequency")
		}
		return failed(c, h.logger, err, "Failed to analyze income")
	}

	return c.JSON(dto.IncomeVsExpensesResponse{Data: toPeriodComparisons(rows)})
}

// TopMerchants godoc
// @Summary Merchants ranked by spend
// @Tags analysis
// @Produce json
// @Param n query int false "Number of merchants" default(5)
// @Security Bearer
// @Success 200 {object} dto.TopMerchantsResponse
// @Router /api/v1/analysis/top-merchants [get]
func (h *AnalyticsHandler) TopMerchants(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	merchants, err := h.analytics.TopMerchants(c.Context(), userID, c.QueryInt("n", 5))
	if err != nil {
		return failed(c, h.logger, err, "Failed to rank merchants")
	}

	return c.JSON(dto.TopMerchantsResponse{Merchants: toMerchantResponses(merchants)})
}

// CategoryBreakdown godoc
// @Summary Spending share per category
// @Tags analysis
// @Produce json
// @Param startDate query string false "Earliest date (YYYY-MM-DD)"
// @Param endDate query string false "Latest date (YYYY-MM-DD)"
// @Security Bearer
// @Success 200 {object} dto.CategoryBreakdownResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/analysis/category-breakdown [get]
func (h *AnalyticsHandler) CategoryBreakdown(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	start, err := parseDateQuery(c, "startDate")
	if err != nil {
		return failed(c, h.logger, err, "Failed to break down expenses")
	}
	end, err := parseDateQuery(c, "endDate")
	if err != nil {
		return failed(c, h.logger, err, "Failed to break down expenses")
	}

	res, err := h.analytics.CategoryBreakdown(c.Context(), userID, start, end)
	if err != nil {
		return failed(c, h.logger, err, "Failed to break down expenses")
	}

	return c.JSON(toCategoryBreakdownResponse(res))
}

// Report godoc
// @Summary Expense report for a date window
// @Description Totals by category, top ten merchants and per-day spending; open bounds fall back to the earliest and latest expense
// @Tags analysis
// @Produce json
// @Param startDate query string false "Earliest date (YYYY-MM-DD)"
// @Param endDate query string false "Latest date (YYYY-MM-DD)"
// @Security Bearer
// @Success 200 {object} dto.ExpenseReportResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/analysis/report [get]
func (h *AnalyticsHandler) Report(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	start, err := parseDateQuery(c, "startDate")
	if err != nil {
		return failed(c, h.logger, err, "Failed to build report")
	}
	end, err := parseDateQuery(c, "endDate")
	if err != nil {
		return failed(c, h.logger, err, "Failed to build report")
	}

	report, err := h.analytics.Report(c.Context(), userID, start, end)
	if err != nil {
		return failed(c, h.logger, err, "Failed to build report")
	}

	return c.JSON(toExpenseReportResponse(report))
}

// Budget godoc
// @Summary 50/30/20 budget against actual spending
// @Tags budget
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.BudgetResponse
// @Router /api/v1/budget [get]
func (h *AnalyticsHandler) Budget(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	lines, err := h.analytics.Budget(c.Context(), userID)
	if err != nil {
		return failed(c, h.logger, err, "Failed to build budget")
	}

	return c.JSON(toBudgetResponse(lines))
}

// Dashboard godoc
// @Summary Dashboard summary
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.DashboardResponse
// @Router /api/v1/dashboard [get]
func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	d, err := h.analytics.Dashboard(c.Context(), userID)
	if err != nil {
		return failed(c, h.logger, err, "Failed to build dashboard")
	}

	return c.JSON(toDashboardResponse(d))
}
