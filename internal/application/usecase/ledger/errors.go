package ledger

import (
	"errors"
	"fmt"

	domainerror "github.com/homeledger/backend/internal/domain/error"
)

var notFoundCodes = []struct {
	sentinel error
	code     domainerror.LedgerErrorCode
}{
	{domainerror.ErrFlowNotFound, domainerror.ErrCodeFlowNotFound},
	{domainerror.ErrBookNotFound, domainerror.ErrCodeBookNotFound},
	{domainerror.ErrIncomeNotFound, domainerror.ErrCodeIncomeNotFound},
	{domainerror.ErrExpenseNotFound, domainerror.ErrCodeExpenseNotFound},
	{domainerror.ErrCategoryNotFound, domainerror.ErrCodeCategoryNotFound},
	{domainerror.ErrWithdrawalNotFound, domainerror.ErrCodeWithdrawalNotFound},
	{domainerror.ErrRemnantNotFound, domainerror.ErrCodeRemnantNotFound},
	{domainerror.ErrBudgetNotFound, domainerror.ErrCodeBudgetNotFound},
	{domainerror.ErrBudgetItemNotFound, domainerror.ErrCodeBudgetItemNotFound},
}

// Translate maps repository errors to ledger errors. Not-found sentinels become
// not-found LedgerErrors, LedgerErrors pass through, anything else is wrapped with action.
func Translate(err error, action string) error {
	if err == nil {
		return nil
	}

	var ledgerErr *domainerror.LedgerError
	if errors.As(err, &ledgerErr) {
		return err
	}

	for _, nf := range notFoundCodes {
		if errors.Is(err, nf.sentinel) {
			return domainerror.NewLedgerError(nf.code, nf.sentinel.Error(), nf.sentinel)
		}
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

// BookClosedError reports an attempt to change the contents of a closed book.
func BookClosedError(month string) *domainerror.LedgerError {
	return domainerror.NewLedgerError(
		domainerror.ErrCodeBookClosed,
		"the monthly book of "+month+" is closed",
		nil,
	)
}

// InvalidAmountError reports a malformed or out-of-range amount.
func InvalidAmountError(err error) *domainerror.LedgerError {
	return domainerror.NewLedgerError(domainerror.ErrCodeInvalidAmount, "invalid amount", err)
}

// InvalidDescriptionError reports a blank or overlong description.
func InvalidDescriptionError(max int) *domainerror.LedgerError {
	return domainerror.NewLedgerError(
		domainerror.ErrCodeInvalidDescription,
		fmt.Sprintf("description is required and must be at most %d characters", max),
		nil,
	)
}
