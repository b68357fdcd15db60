package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/homeledger/backend/internal/application/usecase/budget"
	domainerror "github.com/homeledger/backend/internal/domain/error"
	"github.com/homeledger/backend/internal/domain/valueobject"
	"github.com/homeledger/backend/internal/integration/entrypoint/dto"
)

// BudgetController handles budget plan endpoints.
type BudgetController struct {
	createUseCase *budget.CreateBudgetUseCase
	listUseCase   *budget.ListBudgetsUseCase
	getUseCase    *budget.GetBudgetUseCase
	deleteUseCase *budget.DeleteBudgetUseCase
	itemsUseCase  *budget.ItemsUseCase
	exportUseCase *budget.ExportItemUseCase
	money         valueobject.MoneyFormatter
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(
	createUseCase *budget.CreateBudgetUseCase,
	listUseCase *budget.ListBudgetsUseCase,
	getUseCase *budget.GetBudgetUseCase,
	deleteUseCase *budget.DeleteBudgetUseCase,
	itemsUseCase *budget.ItemsUseCase,
	exportUseCase *budget.ExportItemUseCase,
	money valueobject.MoneyFormatter,
) *BudgetController {
	return &BudgetController{
		createUseCase: createUseCase,
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		deleteUseCase: deleteUseCase,
		itemsUseCase:  itemsUseCase,
		exportUseCase: exportUseCase,
		money:         money,
	}
}

// List handles GET /budgets requests.
func (c *BudgetController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetListResponse(output.Budgets, c.money))
}

// Create handles POST /budgets requests.
func (c *BudgetController) Create(ctx *gin.Context) {
	var req dto.CreateBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, domainerror.ErrCodeInvalidBudgetName)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), budget.CreateBudgetInput{Name: req.Name})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToBudgetResponse(output.Budget, c.money))
}

// Get handles GET /budgets/:id requests.
func (c *BudgetController) Get(ctx *gin.Context) {
	budgetID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), budget.GetBudgetInput{BudgetID: budgetID})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetDetailResponse(output, c.money))
}

// Delete handles DELETE /budgets/:id requests.
func (c *BudgetController) Delete(ctx *gin.Context) {
	budgetID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), budget.DeleteBudgetInput{BudgetID: budgetID}); err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// AddItem handles POST /budgets/:id/items requests.
func (c *BudgetController) AddItem(ctx *gin.Context) {
	budgetID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateBudgetItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, domainerror.ErrCodeInvalidBudgetName)
		return
	}
	cost, ok := parseAmount(ctx, req.Cost)
	if !ok {
		return
	}

	output, err := c.itemsUseCase.Add(ctx.Request.Context(), budget.AddItemInput{
		BudgetID:    budgetID,
		Name:        req.Name,
		URL:         req.URL,
		Description: req.Description,
		Cost:        cost,
	})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToBudgetItemResponse(output.Item, c.money))
}

// UpdateItem handles PATCH /budget-items/:id requests.
func (c *BudgetController) UpdateItem(ctx *gin.Context) {
	itemID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateBudgetItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, domainerror.ErrCodeInvalidBudgetName)
		return
	}

	input := budget.UpdateItemInput{
		ItemID:      itemID,
		Name:        req.Name,
		URL:         req.URL,
		Description: req.Description,
	}
	if req.Cost != nil {
		cost, ok := parseAmount(ctx, *req.Cost)
		if !ok {
			return
		}
		input.Cost = &cost
	}

	output, err := c.itemsUseCase.Update(ctx.Request.Context(), input)
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetItemResponse(output.Item, c.money))
}

// DeleteItem handles DELETE /budget-items/:id requests.
func (c *BudgetController) DeleteItem(ctx *gin.Context) {
	itemID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.itemsUseCase.Delete(ctx.Request.Context(), budget.DeleteItemInput{ItemID: itemID}); err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ExportItem handles POST /budget-items/:id/export requests.
func (c *BudgetController) ExportItem(ctx *gin.Context) {
	itemID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ExportBudgetItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, domainerror.ErrCodeNoIncomesSelected)
		return
	}

	incomeIDs := make([]uuid.UUID, 0, len(req.IncomeIDs))
	for _, raw := range req.IncomeIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			invalidBody(ctx, domainerror.ErrCodeInvalidID)
			return
		}
		incomeIDs = append(incomeIDs, id)
	}

	output, err := c.exportUseCase.Execute(ctx.Request.Context(), budget.ExportItemInput{
		ItemID:    itemID,
		IncomeIDs: incomeIDs,
	})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExportBudgetItemResponse(output, c.money))
}
