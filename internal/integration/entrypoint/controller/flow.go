package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/homeledger/backend/internal/application/usecase/flow"
	"github.com/homeledger/backend/internal/application/usecase/report"
	domainerror "github.com/homeledger/backend/internal/domain/error"
	"github.com/homeledger/backend/internal/domain/valueobject"
	"github.com/homeledger/backend/internal/integration/entrypoint/dto"
)

// FlowController handles annual flow endpoints.
type FlowController struct {
	createUseCase  *flow.CreateFlowUseCase
	listUseCase    *flow.ListFlowsUseCase
	closeUseCase   *flow.CloseFlowUseCase
	deleteUseCase  *flow.DeleteFlowUseCase
	summaryUseCase *report.FlowSummaryUseCase
	reportUseCase  *report.AnnualReportUseCase
	money          valueobject.MoneyFormatter
}

// NewFlowController creates a new flow controller instance.
func NewFlowController(
	createUseCase *flow.CreateFlowUseCase,
	listUseCase *flow.ListFlowsUseCase,
	closeUseCase *flow.CloseFlowUseCase,
	deleteUseCase *flow.DeleteFlowUseCase,
	summaryUseCase *report.FlowSummaryUseCase,
	reportUseCase *report.AnnualReportUseCase,
	money valueobject.MoneyFormatter,
) *FlowController {
	return &FlowController{
		createUseCase:  createUseCase,
		listUseCase:    listUseCase,
		closeUseCase:   closeUseCase,
		deleteUseCase:  deleteUseCase,
		summaryUseCase: summaryUseCase,
		reportUseCase:  reportUseCase,
		money:          money,
	}
}

// List handles GET /flows requests.
func (c *FlowController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToFlowListResponse(output, c.money))
}

// Create handles POST /flows requests.
func (c *FlowController) Create(ctx *gin.Context) {
	var req dto.CreateFlowRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, domainerror.ErrCodeInvalidYear)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), flow.CreateFlowInput{Year: req.Year})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToFlowResponse(output.Flow))
}

// Get handles GET /flows/:id requests.
func (c *FlowController) Get(ctx *gin.Context) {
	flowID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), report.FlowSummaryInput{FlowID: flowID})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToFlowSummaryResponse(output, c.money))
}

// Delete handles DELETE /flows/:id requests.
func (c *FlowController) Delete(ctx *gin.Context) {
	flowID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), flow.DeleteFlowInput{FlowID: flowID}); err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Close handles POST /flows/:id/close requests.
func (c *FlowController) Close(ctx *gin.Context) {
	flowID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	output, err := c.closeUseCase.Execute(ctx.Request.Context(), flow.CloseFlowInput{FlowID: flowID})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CloseFlowResponse{
		FlowID: output.FlowID.String(),
		Year:   output.Year,
		State:  "closed",
	})
}

// Report handles GET /flows/:id/report requests.
func (c *FlowController) Report(ctx *gin.Context) {
	flowID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	output, err := c.reportUseCase.Execute(ctx.Request.Context(), report.AnnualReportInput{FlowID: flowID})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAnnualReportResponse(output, c.money))
}
