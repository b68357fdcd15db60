package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/homeledger/backend/internal/domain/error"
	"github.com/homeledger/backend/internal/integration/entrypoint/dto"
)

func TestStatusForLedgerError(t *testing.T) {
	tests := []struct {
		code     domainerror.LedgerErrorCode
		expected int
	}{
		{domainerror.ErrCodeInvalidAmount, http.StatusBadRequest},
		{domainerror.ErrCodeInvalidMonth, http.StatusBadRequest},
		{domainerror.ErrCodeDuplicateYear, http.StatusConflict},
		{domainerror.ErrCodeBookAlreadyClosed, http.StatusConflict},
		{domainerror.ErrCodeFlowHasOpenBooks, http.StatusConflict},
		{domainerror.ErrCodeExpenseExceedsBalance, http.StatusUnprocessableEntity},
		{domainerror.ErrCodeWithdrawalExceedsRemnant, http.StatusUnprocessableEntity},
		{domainerror.ErrCodeInsufficientFunds, http.StatusUnprocessableEntity},
		{domainerror.ErrCodeCategoryInUse, http.StatusConflict},
		{domainerror.ErrCodeBookClosed, http.StatusConflict},
		{domainerror.ErrCodeFlowNotFound, http.StatusNotFound},
		{domainerror.ErrCodeTargetBookNotFound, http.StatusNotFound},
		{domainerror.ErrCodeMonthCloseFailed, http.StatusInternalServerError},
		{domainerror.ErrCodeWithdrawalFailed, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := domainerror.NewLedgerError(tt.code, "message", nil)
			assert.Equal(t, tt.expected, statusForLedgerError(err))
		})
	}
}

func TestHandleLedgerError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
		expectedDetail any
	}{
		{
			name: "ledger error with decimal detail",
			err: domainerror.NewLedgerError(domainerror.ErrCodeExpenseExceedsBalance, "too much", nil).
				WithDetail("available", decimal.RequireFromString("60")),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   "LED-010006",
			expectedDetail: "60.00",
		},
		{
			name:           "unexpected error",
			err:            errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "LED-040004",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(w)
			ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			handleLedgerError(ctx, tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)
			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedCode, body.Code)
			if tt.expectedDetail != nil {
				assert.Equal(t, tt.expectedDetail, body.Details["available"])
			} else {
				assert.Empty(t, body.Details)
			}
			assert.NotContains(t, body.Error, "boom")
		})
	}
}
