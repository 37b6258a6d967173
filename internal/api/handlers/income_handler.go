package handlers

import (
	"finboard/internal/dto"
	"finboard/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type IncomeHandler struct {
	incomeService *service.IncomeService
	logger        *zap.Logger
}

func NewIncomeHandler(incomeService *service.IncomeService, logger *zap.Logger) *IncomeHandler {
	return &IncomeHandler{
		incomeService: incomeService,
		logger:        logger,
	}
}

// ListIncome godoc
// @Summary Query income
// @Tags income
// @Produce json
// @Param source query string false "Source, matched case-insensitively"
// @Param startDate query string false "Earliest date (YYYY-MM-DD)"
// @Param endDate query string false "Latest date (YYYY-MM-DD)"
// @Security Bearer
// @Success 200 {object} dto.IncomeQueryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/income [get]
func (h *IncomeHandler) ListIncome(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	start, err := parseDateQuery(c, "startDate")
	if err != nil {
		return failed(c, h.logger, err, "Failed to query income")
	}
	end, err := parseDateQuery(c, "endDate")
	if err != nil {
		return failed(c, h.logger, err, "Failed to query income")
	}

	res, err := h.incomeService.Query(c.Context(), userID, service.IncomeFilter{
		Source:    c.Query("source"),
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return failed(c, h.logger, err, "Failed to query income")
	}

	return c.JSON(toIncomeQueryResponse(res))
}

// CreateIncome godoc
// @Summary Add income
// @Tags income
// @Accept json
// @Produce json
// @Param request body dto.CreateIncomeRequest true "Income"
// @Security Bearer
// @Success 201 {object} dto.CreateIncomeResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/income [post]
func (h *IncomeHandler) CreateIncome(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateIncomeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	income, err := h.incomeService.Create(c.Context(), userID, service.IncomeDraft{
		Amount:      string(req.Amount),
		Source:      req.Source,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		return failed(c, h.logger, err, "Failed to create income")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreateIncomeResponse{
		Success: true,
		Income:  toIncomeResponse(income),
	})
}
