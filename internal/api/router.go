package api

import (
	"errors"

	"finboard/docs"
	"finboard/internal/api/handlers"
	"finboard/pkg/auth"
	"finboard/pkg/config"
	"finboard/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	Expenses  *handlers.ExpenseHandler
	Income    *handlers.IncomeHandler
	Analytics *handlers.AnalyticsHandler
	Chat      *handlers.ChatHandler
}

func SetupRouter(
	h Handlers,
	serverCfg *config.ServerConfig,
	jwtManager *auth.JWTManager,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "finboard",
		ReadTimeout:  serverCfg.ReadTimeout,
		WriteTimeout: serverCfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-Request-ID",
	}))
	app.Use(middleware.RequestLogger(appLogger.Named("http")))

	// importing docs registers the swagger spec
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	// Auth routes (public)
	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", h.Auth.Register)
	authRoutes.Post("/login", h.Auth.Login)
	authRoutes.Post("/refresh", h.Auth.RefreshToken)

	// Protected routes
	protected := api.Group("", middleware.AuthMiddleware(jwtManager, appLogger.Named("auth")))

	protected.Get("/expenses", h.Expenses.ListExpenses)
	protected.Post("/expenses", h.Expenses.CreateExpense)

	protected.Get("/income", h.Income.ListIncome)
	protected.Post("/income", h.Income.CreateIncome)

	protected.Get("/budget", h.Analytics.Budget)
	protected.Get("/dashboard", h.Analytics.Dashboard)

	analysis := protected.Group("/analysis")
	analysis.Get("/expenses-over-time", h.Analytics.ExpensesOverTime)
	analysis.Get("/income-vs-expenses", h.Analytics.IncomeVsExpenses)
	analysis.Get("/top-merchants", h.Analytics.TopMerchants)
	analysis.Get("/category-breakdown", h.Analytics.CategoryBreakdown)
	analysis.Get("/report", h.Analytics.Report)

	protected.Post("/chat", h.Chat.Chat)

	return app
}
