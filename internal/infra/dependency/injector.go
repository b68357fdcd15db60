// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/homeledger/backend/config"
	"github.com/homeledger/backend/internal/application/adapter"
	"github.com/homeledger/backend/internal/application/usecase/auth"
	"github.com/homeledger/backend/internal/application/usecase/book"
	"github.com/homeledger/backend/internal/application/usecase/budget"
	"github.com/homeledger/backend/internal/application/usecase/category"
	"github.com/homeledger/backend/internal/application/usecase/expense"
	"github.com/homeledger/backend/internal/application/usecase/flow"
	"github.com/homeledger/backend/internal/application/usecase/income"
	"github.com/homeledger/backend/internal/application/usecase/ledger"
	"github.com/homeledger/backend/internal/application/usecase/remnant"
	"github.com/homeledger/backend/internal/application/usecase/report"
	"github.com/homeledger/backend/internal/domain/valueobject"
	"github.com/homeledger/backend/internal/infra/server/router"
	"github.com/homeledger/backend/internal/integration/adapters"
	reportcache "github.com/homeledger/backend/internal/integration/cache"
	"github.com/homeledger/backend/internal/integration/entrypoint/controller"
	"github.com/homeledger/backend/internal/integration/entrypoint/middleware"
	"github.com/homeledger/backend/internal/integration/persistence"
)

// Options carries the runtime collaborators that differ between production and tests.
type Options struct {
	Cache         adapter.ReportCache
	Clock         adapter.Clock
	BcryptCost    int
	DBHealthCheck func(ctx context.Context) bool
}

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, opts Options) *Injector {
	clock := opts.Clock
	if clock == nil {
		clock = adapters.NewSystemClock()
	}
	cache := opts.Cache
	if cache == nil {
		cache = reportcache.NewNoopReportCache()
	}
	money := valueobject.NewMoneyFormatter(cfg.Ledger.ThousandsSeparator)

	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	flowRepo := persistence.NewFlowRepository(db)
	bookRepo := persistence.NewBookRepository(db)
	incomeRepo := persistence.NewIncomeRepository(db)
	expenseRepo := persistence.NewExpenseRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	remnantRepo := persistence.NewRemnantRepository(db)
	withdrawalRepo := persistence.NewWithdrawalRepository(db)
	budgetRepo := persistence.NewBudgetRepository(db)
	queries := persistence.NewLedgerQueryRepository(db)
	transactor := persistence.NewTransactor(db)
	balances := ledger.NewBalanceCalculator(queries)

	// Create adapters/services
	passwordService := adapters.NewPasswordService(opts.BcryptCost)
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, clock)

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService, clock)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)

	// Create flow and book use cases
	createFlowUseCase := flow.NewCreateFlowUseCase(flowRepo, clock)
	listFlowsUseCase := flow.NewListFlowsUseCase(flowRepo, balances)
	closeFlowUseCase := flow.NewCloseFlowUseCase(flowRepo, bookRepo, transactor, cache)
	deleteFlowUseCase := flow.NewDeleteFlowUseCase(flowRepo, cache)
	closeBookUseCase := book.NewCloseBookUseCase(flowRepo, bookRepo, remnantRepo, balances, closeFlowUseCase, transactor, clock, cache)

	// Create income and expense use cases
	addIncomeUseCase := income.NewAddIncomeUseCase(bookRepo, incomeRepo, transactor, clock, cache)
	deleteIncomeUseCase := income.NewDeleteIncomeUseCase(bookRepo, incomeRepo, expenseRepo, transactor, cache)
	addExpenseUseCase := expense.NewAddExpenseUseCase(bookRepo, incomeRepo, expenseRepo, categoryRepo, balances, transactor, clock, cache)
	updateExpenseUseCase := expense.NewUpdateExpenseUseCase(bookRepo, incomeRepo, expenseRepo, categoryRepo, balances, transactor, cache)
	deleteExpenseUseCase := expense.NewDeleteExpenseUseCase(bookRepo, incomeRepo, expenseRepo, budgetRepo, transactor, cache)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo, clock)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo, clock)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo, expenseRepo, transactor)

	// Create remnant use cases
	listRemnantsUseCase := remnant.NewListRemnantsUseCase(flowRepo, remnantRepo)
	getRemnantUseCase := remnant.NewGetRemnantUseCase(remnantRepo)
	withdrawRemnantUseCase := remnant.NewWithdrawRemnantUseCase(flowRepo, bookRepo, incomeRepo, remnantRepo, withdrawalRepo, balances, transactor, clock, cache)

	// Create budget use cases
	createBudgetUseCase := budget.NewCreateBudgetUseCase(budgetRepo, clock)
	listBudgetsUseCase := budget.NewListBudgetsUseCase(budgetRepo)
	getBudgetUseCase := budget.NewGetBudgetUseCase(budgetRepo, incomeRepo, queries)
	deleteBudgetUseCase := budget.NewDeleteBudgetUseCase(budgetRepo, transactor)
	itemsUseCase := budget.NewItemsUseCase(budgetRepo, transactor, clock)
	exportItemUseCase := budget.NewExportItemUseCase(budgetRepo, bookRepo, incomeRepo, expenseRepo, categoryRepo, balances, transactor, clock, cache)

	// Create report use cases
	flowSummaryUseCase := report.NewFlowSummaryUseCase(flowRepo, balances, clock)
	bookDetailUseCase := report.NewBookDetailUseCase(flowRepo, bookRepo, incomeRepo, remnantRepo, queries)
	incomeDetailUseCase := report.NewIncomeDetailUseCase(bookRepo, incomeRepo, expenseRepo, categoryRepo)
	annualReportUseCase := report.NewAnnualReportUseCase(flowRepo, incomeRepo, queries, balances, cache)
	dashboardUseCase := report.NewDashboardUseCase(flowRepo, balances, clock)

	// Create controllers
	dbHealthCheck := opts.DBHealthCheck
	if dbHealthCheck == nil {
		dbHealthCheck = func(ctx context.Context) bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.PingContext(ctx) == nil
		}
	}

	controllers := router.Controllers{
		Health: controller.NewHealthController(dbHealthCheck, cache, clock),
		Auth:   controller.NewAuthController(registerUseCase, loginUseCase),
		Flow: controller.NewFlowController(
			createFlowUseCase,
			listFlowsUseCase,
			closeFlowUseCase,
			deleteFlowUseCase,
			flowSummaryUseCase,
			annualReportUseCase,
			money,
		),
		Book:    controller.NewBookController(bookDetailUseCase, closeBookUseCase, addIncomeUseCase, money),
		Income:  controller.NewIncomeController(incomeDetailUseCase, deleteIncomeUseCase, addExpenseUseCase, money),
		Expense: controller.NewExpenseController(updateExpenseUseCase, deleteExpenseUseCase, money),
		Category: controller.NewCategoryController(
			listCategoriesUseCase,
			createCategoryUseCase,
			updateCategoryUseCase,
			deleteCategoryUseCase,
		),
		Remnant: controller.NewRemnantController(listRemnantsUseCase, getRemnantUseCase, withdrawRemnantUseCase, clock, money),
		Budget: controller.NewBudgetController(
			createBudgetUseCase,
			listBudgetsUseCase,
			getBudgetUseCase,
			deleteBudgetUseCase,
			itemsUseCase,
			exportItemUseCase,
			money,
		),
		Dashboard: controller.NewDashboardController(dashboardUseCase, money),
	}

	// Create middleware
	loginRateLimiter := middleware.NewRateLimiterWithConfig(cfg.Server.LoginRateLimit, time.Minute)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	return &Injector{
		Config: cfg,
		DB:     db,
		Router: router.NewRouter(controllers, loginRateLimiter, authMiddleware),
	}
}
