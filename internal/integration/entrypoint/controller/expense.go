package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/homeledger/backend/internal/application/usecase/expense"
	domainerror "github.com/homeledger/backend/internal/domain/error"
	"github.com/homeledger/backend/internal/domain/valueobject"
	"github.com/homeledger/backend/internal/integration/entrypoint/dto"
)

// ExpenseController handles expense endpoints.
type ExpenseController struct {
	updateUseCase *expense.UpdateExpenseUseCase
	deleteUseCase *expense.DeleteExpenseUseCase
	money         valueobject.MoneyFormatter
}

// NewExpenseController creates a new expense controller instance.
func NewExpenseController(
	updateUseCase *expense.UpdateExpenseUseCase,
	deleteUseCase *expense.DeleteExpenseUseCase,
	money valueobject.MoneyFormatter,
) *ExpenseController {
	return &ExpenseController{
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
		money:         money,
	}
}

// Update handles PATCH /expenses/:id requests.
func (c *ExpenseController) Update(ctx *gin.Context) {
	expenseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, domainerror.ErrCodeInvalidDescription)
		return
	}

	input := expense.UpdateExpenseInput{
		ExpenseID:   expenseID,
		Description: req.Description,
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			invalidBody(ctx, domainerror.ErrCodeInvalidID)
			return
		}
		input.CategoryID = &categoryID
	}
	if req.Amount != nil {
		amount, ok := parseAmount(ctx, *req.Amount)
		if !ok {
			return
		}
		input.Amount = &amount
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ExpenseWithBalanceResponse{
		Expense:       dto.ToExpenseResponse(output.Expense, c.money),
		IncomeBalance: dto.NewMoney(output.IncomeBalance, c.money),
	})
}

// Delete handles DELETE /expenses/:id requests.
func (c *ExpenseController) Delete(ctx *gin.Context) {
	expenseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), expense.DeleteExpenseInput{ExpenseID: expenseID}); err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
