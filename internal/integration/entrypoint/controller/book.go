package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/homeledger/backend/internal/application/usecase/book"
	"github.com/homeledger/backend/internal/application/usecase/income"
	"github.com/homeledger/backend/internal/application/usecase/report"
	domainerror "github.com/homeledger/backend/internal/domain/error"
	"github.com/homeledger/backend/internal/domain/valueobject"
	"github.com/homeledger/backend/internal/integration/entrypoint/dto"
)

// BookController handles monthly income book endpoints.
type BookController struct {
	detailUseCase    *report.BookDetailUseCase
	closeUseCase     *book.CloseBookUseCase
	addIncomeUseCase *income.AddIncomeUseCase
	money            valueobject.MoneyFormatter
}

// NewBookController creates a new book controller instance.
func NewBookController(
	detailUseCase *report.BookDetailUseCase,
	closeUseCase *book.CloseBookUseCase,
	addIncomeUseCase *income.AddIncomeUseCase,
	money valueobject.MoneyFormatter,
) *BookController {
	return &BookController{
		detailUseCase:    detailUseCase,
		closeUseCase:     closeUseCase,
		addIncomeUseCase: addIncomeUseCase,
		money:            money,
	}
}

// Get handles GET /books/:id requests.
func (c *BookController) Get(ctx *gin.Context) {
	bookID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	output, err := c.detailUseCase.Execute(ctx.Request.Context(), report.BookDetailInput{BookID: bookID})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBookDetailResponse(output, c.money))
}

// Close handles POST /books/:id/close requests.
func (c *BookController) Close(ctx *gin.Context) {
	bookID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	output, err := c.closeUseCase.Execute(ctx.Request.Context(), book.CloseBookInput{BookID: bookID})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCloseBookResponse(output, c.money))
}

// AddIncome handles POST /books/:id/incomes requests.
func (c *BookController) AddIncome(ctx *gin.Context) {
	bookID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateIncomeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, domainerror.ErrCodeInvalidDescription)
		return
	}
	amount, ok := parseAmount(ctx, req.Amount)
	if !ok {
		return
	}

	output, err := c.addIncomeUseCase.Execute(ctx.Request.Context(), income.AddIncomeInput{
		BookID:      bookID,
		Description: strings.TrimSpace(req.Description),
		Amount:      amount,
	})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToIncomeResponse(output.Income, c.money))
}
