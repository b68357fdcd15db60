package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/homeledger/backend/internal/application/usecase/expense"
	"github.com/homeledger/backend/internal/application/usecase/income"
	"github.com/homeledger/backend/internal/application/usecase/report"
	domainerror "github.com/homeledger/backend/internal/domain/error"
	"github.com/homeledger/backend/internal/domain/valueobject"
	"github.com/homeledger/backend/internal/integration/entrypoint/dto"
)

// IncomeController handles income endpoints.
type IncomeController struct {
	detailUseCase     *report.IncomeDetailUseCase
	deleteUseCase     *income.DeleteIncomeUseCase
	addExpenseUseCase *expense.AddExpenseUseCase
	money             valueobject.MoneyFormatter
}

// NewIncomeController creates a new income controller instance.
func NewIncomeController(
	detailUseCase *report.IncomeDetailUseCase,
	deleteUseCase *income.DeleteIncomeUseCase,
	addExpenseUseCase *expense.AddExpenseUseCase,
	money valueobject.MoneyFormatter,
) *IncomeController {
	return &IncomeController{
		detailUseCase:     detailUseCase,
		deleteUseCase:     deleteUseCase,
		addExpenseUseCase: addExpenseUseCase,
		money:             money,
	}
}

// Get handles GET /incomes/:id requests.
func (c *IncomeController) Get(ctx *gin.Context) {
	incomeID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	output, err := c.detailUseCase.Execute(ctx.Request.Context(), report.IncomeDetailInput{IncomeID: incomeID})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToIncomeDetailResponse(output, c.money))
}

// Delete handles DELETE /incomes/:id requests.
func (c *IncomeController) Delete(ctx *gin.Context) {
	incomeID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), income.DeleteIncomeInput{IncomeID: incomeID}); err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// AddExpense handles POST /incomes/:id/expenses requests.
func (c *IncomeController) AddExpense(ctx *gin.Context) {
	incomeID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, domainerror.ErrCodeInvalidDescription)
		return
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		invalidBody(ctx, domainerror.ErrCodeInvalidID)
		return
	}
	amount, ok := parseAmount(ctx, req.Amount)
	if !ok {
		return
	}

	output, err := c.addExpenseUseCase.Execute(ctx.Request.Context(), expense.AddExpenseInput{
		IncomeID:    incomeID,
		CategoryID:  categoryID,
		Description: strings.TrimSpace(req.Description),
		Amount:      amount,
	})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ExpenseWithBalanceResponse{
		Expense:       dto.ToExpenseResponse(output.Expense, c.money),
		IncomeBalance: dto.NewMoney(output.IncomeBalance, c.money),
	})
}
