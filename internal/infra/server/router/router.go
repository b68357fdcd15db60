// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/homeledger/backend/internal/integration/entrypoint/controller"
	"github.com/homeledger/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine              *gin.Engine
	healthController    *controller.HealthController
	authController      *controller.AuthController
	flowController      *controller.FlowController
	bookController      *controller.BookController
	incomeController    *controller.IncomeController
	expenseController   *controller.ExpenseController
	categoryController  *controller.CategoryController
	remnantController   *controller.RemnantController
	budgetController    *controller.BudgetController
	dashboardController *controller.DashboardController
	loginRateLimiter    *middleware.RateLimiter
	authMiddleware      *middleware.AuthMiddleware
}

// Controllers groups the controllers served by the router.
type Controllers struct {
	Health    *controller.HealthController
	Auth      *controller.AuthController
	Flow      *controller.FlowController
	Book      *controller.BookController
	Income    *controller.IncomeController
	Expense   *controller.ExpenseController
	Category  *controller.CategoryController
	Remnant   *controller.RemnantController
	Budget    *controller.BudgetController
	Dashboard *controller.DashboardController
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	controllers Controllers,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:    controllers.Health,
		authController:      controllers.Auth,
		flowController:      controllers.Flow,
		bookController:      controllers.Book,
		incomeController:    controllers.Income,
		expenseController:   controllers.Expense,
		categoryController:  controllers.Category,
		remnantController:   controllers.Remnant,
		budgetController:    controllers.Budget,
		dashboardController: controllers.Dashboard,
		loginRateLimiter:    loginRateLimiter,
		authMiddleware:      authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", r.authController.Register)
		auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
	}

	// Everything below requires a bearer token
	api := v1.Group("")
	api.Use(r.authMiddleware.Authenticate())

	flows := api.Group("/flows")
	{
		flows.GET("", r.flowController.List)
		flows.POST("", r.flowController.Create)
		flows.GET("/:id", r.flowController.Get)
		flows.DELETE("/:id", r.flowController.Delete)
		flows.POST("/:id/close", r.flowController.Close)
		flows.GET("/:id/report", r.flowController.Report)
		flows.GET("/:id/remnants", r.remnantController.ListByFlow)
		flows.POST("/:id/withdrawals", r.remnantController.Withdraw)
	}

	books := api.Group("/books")
	{
		books.GET("/:id", r.bookController.Get)
		books.POST("/:id/close", r.bookController.Close)
		books.POST("/:id/incomes", r.bookController.AddIncome)
	}

	incomes := api.Group("/incomes")
	{
		incomes.GET("/:id", r.incomeController.Get)
		incomes.DELETE("/:id", r.incomeController.Delete)
		incomes.POST("/:id/expenses", r.incomeController.AddExpense)
	}

	expenses := api.Group("/expenses")
	{
		expenses.PATCH("/:id", r.expenseController.Update)
		expenses.DELETE("/:id", r.expenseController.Delete)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", r.categoryController.List)
		categories.POST("", r.categoryController.Create)
		categories.PATCH("/:id", r.categoryController.Update)
		categories.DELETE("/:id", r.categoryController.Delete)
	}

	api.GET("/remnants", r.remnantController.List)
	api.GET("/remnants/:id", r.remnantController.Get)
	api.POST("/withdrawals/:id/apply", r.remnantController.Apply)

	budgets := api.Group("/budgets")
	{
		budgets.GET("", r.budgetController.List)
		budgets.POST("", r.budgetController.Create)
		budgets.GET("/:id", r.budgetController.Get)
		budgets.DELETE("/:id", r.budgetController.Delete)
		budgets.POST("/:id/items", r.budgetController.AddItem)
	}

	budgetItems := api.Group("/budget-items")
	{
		budgetItems.PATCH("/:id", r.budgetController.UpdateItem)
		budgetItems.DELETE("/:id", r.budgetController.DeleteItem)
		budgetItems.POST("/:id/export", r.budgetController.ExportItem)
	}

	api.GET("/dashboard", r.dashboardController.Get)
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
