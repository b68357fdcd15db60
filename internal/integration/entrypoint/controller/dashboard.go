package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/homeledger/backend/internal/application/usecase/report"
	"github.com/homeledger/backend/internal/domain/valueobject"
	"github.com/homeledger/backend/internal/integration/entrypoint/dto"
)

// DashboardController handles the dashboard endpoint.
type DashboardController struct {
	dashboardUseCase *report.DashboardUseCase
	money            valueobject.MoneyFormatter
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(dashboardUseCase *report.DashboardUseCase, money valueobject.MoneyFormatter) *DashboardController {
	return &DashboardController{
		dashboardUseCase: dashboardUseCase,
		money:            money,
	}
}

// Get handles GET /dashboard requests.
func (c *DashboardController) Get(ctx *gin.Context) {
	output, err := c.dashboardUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDashboardResponse(output, c.money))
}
