package handlers

import (
	"finboard/internal/dto"
	"finboard/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ExpenseHandler struct {
	expenseService *service.ExpenseService
	logger         *zap.Logger
}

func NewExpenseHandler(expenseService *service.ExpenseService, logger *zap.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
		logger:         logger,
	}
}

// ListExpenses godoc
// @Summary Query expenses
// @Description Filter the user's expenses by category and inclusive date range, with totals per category
// @Tags expenses
// @Produce json
// @Param category query string false "Category, matched case-insensitively"
// @Param startDate query string false "Earliest date (YYYY-MM-DD)"
// @Param endDate query string false "Latest date (YYYY-MM-DD)"
// @Security Bearer
// @Success 200 {object} dto.ExpenseQueryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/v1/expenses [get]
func (h *ExpenseHandler) ListExpenses(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	start, err := parseDateQuery(c, "startDate")
	if err != nil {
		return failed(c, h.logger, err, "Failed to query expenses")
	}
	end, err := parseDateQuery(c, "endDate")
	if err != nil {
		return failed(c, h.logger, err, "Failed to query expenses")
	}

	res, err := h.expenseService.Query(c.Context(), userID, service.ExpenseFilter{
		Category:  c.Query("category"),
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return failed(c, h.logger, err, "Failed to query expenses")
	}

	return c.JSON(toExpenseQueryResponse(res))
}

// CreateExpense godoc
// @Summary Add an expense
// @Description Validate and record a new expense; merchant defaults to "Unknown"
// @Tags expenses
// @Accept json
// @Produce json
// @Param request body dto.CreateExpenseRequest true "Expense"
// @Security Bearer
// @Success 201 {object} dto.CreateExpenseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/v1/expenses [post]
func (h *ExpenseHandler) CreateExpense(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	expense, err := h.expenseService.Create(c.Context(), userID, service.ExpenseDraft{
		Amount:      string(req.Amount),
		Category:    req.Category,
		Description: req.Description,
		Date:        req.Date,
		Merchant:    req.Merchant,
	})
	if err != nil {
		return failed(c, h.logger, err, "Failed to create expense")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreateExpenseResponse{
		Success: true,
		Expense: toExpenseResponse(expense),
	})
}
