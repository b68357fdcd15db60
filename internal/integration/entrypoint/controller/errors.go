package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/homeledger/backend/internal/domain/error"
	"github.com/homeledger/backend/internal/domain/valueobject"
	"github.com/homeledger/backend/internal/integration/entrypoint/dto"
)

// handleLedgerError writes the JSON error response for a failed ledger operation.
func handleLedgerError(ctx *gin.Context, err error) {
	var ledgerErr *domainerror.LedgerError
	if errors.As(err, &ledgerErr) {
		status := statusForLedgerError(ledgerErr)
		if status >= http.StatusInternalServerError {
			slog.ErrorContext(ctx.Request.Context(), "Ledger workflow failed", "code", ledgerErr.Code, "error", err)
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error:   ledgerErr.Message,
			Code:    string(ledgerErr.Code),
			Details: renderDetails(ledgerErr.Details),
		})
		return
	}

	slog.ErrorContext(ctx.Request.Context(), "Unexpected error", "path", ctx.FullPath(), "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
		Code:  string(domainerror.ErrCodeInternal),
	})
}

// statusForLedgerError maps ledger error codes to HTTP status codes.
func statusForLedgerError(err *domainerror.LedgerError) int {
	switch err.Code {
	case domainerror.ErrCodeDuplicateYear,
		domainerror.ErrCodeCategoryNameExists,
		domainerror.ErrCodeBookAlreadyClosed,
		domainerror.ErrCodeFlowAlreadyClosed,
		domainerror.ErrCodeFlowHasOpenBooks:
		return http.StatusConflict
	case domainerror.ErrCodeExpenseExceedsBalance,
		domainerror.ErrCodeWithdrawalExceedsRemnant,
		domainerror.ErrCodeInsufficientFunds:
		return http.StatusUnprocessableEntity
	}

	switch err.Kind {
	case domainerror.KindValidation:
		return http.StatusBadRequest
	case domainerror.KindIntegrity:
		return http.StatusConflict
	case domainerror.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// renderDetails prints money details in their exact two-decimal form.
func renderDetails(details map[string]any) map[string]any {
	if len(details) == 0 {
		return nil
	}
	rendered := make(map[string]any, len(details))
	for key, value := range details {
		if amount, ok := value.(decimal.Decimal); ok {
			rendered[key] = valueobject.FormatAmount(amount)
			continue
		}
		rendered[key] = value
	}
	return rendered
}

// parseIDParam reads a UUID path parameter, answering 400 when it is malformed.
func parseIDParam(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + name,
			Code:  string(domainerror.ErrCodeInvalidID),
		})
		return uuid.Nil, false
	}
	return id, true
}

// parseAmount validates a request amount, answering 400 when it is malformed.
func parseAmount(ctx *gin.Context, field dto.AmountField) (decimal.Decimal, bool) {
	amount, err := field.Parse()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid amount: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidAmount),
		})
		return decimal.Zero, false
	}
	return amount, true
}

func invalidBody(ctx *gin.Context, code domainerror.LedgerErrorCode) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "Invalid request body",
		Code:  string(code),
	})
}
