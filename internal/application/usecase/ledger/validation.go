package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/homeledger/backend/internal/domain/entity"
	"github.com/homeledger/backend/internal/domain/valueobject"
)

// ValidateAmount checks that an amount is not negative and has at most two decimals.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return InvalidAmountError(valueobject.ErrNegativeAmount)
	}
	if !valueobject.HasMoneyScale(amount) {
		return InvalidAmountError(valueobject.ErrAmountTooPrecise)
	}
	return nil
}

// ValidateDescription checks that a description is present and at most entity.MaxDescriptionLength long.
func ValidateDescription(description string) error {
	if !entity.IsValidDescription(description, entity.MaxDescriptionLength) {
		return InvalidDescriptionError(entity.MaxDescriptionLength)
	}
	return nil
}
