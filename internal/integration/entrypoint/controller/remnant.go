package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/homeledger/backend/internal/application/adapter"
	"github.com/homeledger/backend/internal/application/usecase/remnant"
	domainerror "github.com/homeledger/backend/internal/domain/error"
	"github.com/homeledger/backend/internal/domain/valueobject"
	"github.com/homeledger/backend/internal/integration/entrypoint/dto"
)

// RemnantController handles remnant and withdrawal endpoints.
type RemnantController struct {
	listUseCase     *remnant.ListRemnantsUseCase
	getUseCase      *remnant.GetRemnantUseCase
	withdrawUseCase *remnant.WithdrawRemnantUseCase
	clock           adapter.Clock
	money           valueobject.MoneyFormatter
}

// NewRemnantController creates a new remnant controller instance.
func NewRemnantController(
	listUseCase *remnant.ListRemnantsUseCase,
	getUseCase *remnant.GetRemnantUseCase,
	withdrawUseCase *remnant.WithdrawRemnantUseCase,
	clock adapter.Clock,
	money valueobject.MoneyFormatter,
) *RemnantController {
	return &RemnantController{
		listUseCase:     listUseCase,
		getUseCase:      getUseCase,
		withdrawUseCase: withdrawUseCase,
		clock:           clock,
		money:           money,
	}
}

// List handles GET /remnants requests.
func (c *RemnantController) List(ctx *gin.Context) {
	c.list(ctx, remnant.ListRemnantsInput{})
}

// ListByFlow handles GET /flows/:id/remnants requests.
func (c *RemnantController) ListByFlow(ctx *gin.Context) {
	flowID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	c.list(ctx, remnant.ListRemnantsInput{FlowID: &flowID})
}

func (c *RemnantController) list(ctx *gin.Context, input remnant.ListRemnantsInput) {
	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRemnantListResponse(output.Remnants, output.Total, c.money))
}

// Get handles GET /remnants/:id requests.
func (c *RemnantController) Get(ctx *gin.Context) {
	remnantID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	record, err := c.getUseCase.Execute(ctx.Request.Context(), remnant.GetRemnantInput{RemnantID: remnantID})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRemnantListItemResponse(record, c.money))
}

// Withdraw handles POST /flows/:id/withdrawals requests.
func (c *RemnantController) Withdraw(ctx *gin.Context) {
	flowID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.WithdrawRemnantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, domainerror.ErrCodeInvalidAmount)
		return
	}
	amount, ok := parseAmount(ctx, req.Amount)
	if !ok {
		return
	}

	// Without an explicit month the income lands in the current month's book.
	targetMonth := int(c.clock.Now().Month())
	if req.TargetMonth != nil {
		targetMonth = *req.TargetMonth
	}

	output, err := c.withdrawUseCase.Execute(ctx.Request.Context(), remnant.WithdrawRemnantInput{
		FlowID:      flowID,
		Amount:      amount,
		Description: strings.TrimSpace(req.Description),
		TargetMonth: targetMonth,
	})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToWithdrawRemnantResponse(output, c.money))
}

// Apply handles POST /withdrawals/:id/apply requests.
func (c *RemnantController) Apply(ctx *gin.Context) {
	withdrawalID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	output, err := c.withdrawUseCase.ApplyPending(ctx.Request.Context(), remnant.ApplyPendingInput{WithdrawalID: withdrawalID})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToWithdrawRemnantResponse(output, c.money))
}
