// Package error defines domain-specific errors for the ledger.
package error

import (
	"errors"
	"strings"
)

// Ledger domain errors returned by repositories and entities.
var (
	// ErrFlowNotFound is returned when an annual flow does not exist.
	ErrFlowNotFound = errors.New("annual flow not found")

	// ErrBookNotFound is returned when a monthly book does not exist.
	ErrBookNotFound = errors.New("monthly book not found")

	// ErrIncomeNotFound is returned when an income does not exist.
	ErrIncomeNotFound = errors.New("income not found")

	// ErrExpenseNotFound is returned when an expense does not exist.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrCategoryNotFound is returned when an expense category does not exist.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrWithdrawalNotFound is returned when a remnant withdrawal does not exist.
	ErrWithdrawalNotFound = errors.New("remnant withdrawal not found")

	// ErrRemnantNotFound is returned when a remnant entry does not exist.
	ErrRemnantNotFound = errors.New("remnant not found")

	// ErrBudgetNotFound is returned when a budget does not exist.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrBudgetItemNotFound is returned when a budget item does not exist.
	ErrBudgetItemNotFound = errors.New("budget item not found")

	// ErrFlowYearExists is returned when a flow already exists for a year.
	ErrFlowYearExists = errors.New("annual flow already exists for year")

	// ErrCategoryNameExists is returned when a category name is already taken.
	ErrCategoryNameExists = errors.New("category name already exists")

	// ErrStateChanged is returned when a conditional state update matched no row.
	ErrStateChanged = errors.New("state changed concurrently")
)

// ErrorKind groups ledger errors by how callers should react to them.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindIntegrity  ErrorKind = "integrity"
	KindNotFound   ErrorKind = "not_found"
	KindWorkflow   ErrorKind = "workflow"
)

// LedgerErrorCode defines error codes for ledger errors.
// Format: LED-XXYYYY where XX is the kind and YYYY is the specific error.
type LedgerErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAmount            LedgerErrorCode = "LED-010001"
	ErrCodeInvalidDescription       LedgerErrorCode = "LED-010002"
	ErrCodeInvalidYear              LedgerErrorCode = "LED-010003"
	ErrCodeInvalidMonth             LedgerErrorCode = "LED-010004"
	ErrCodeDuplicateYear            LedgerErrorCode = "LED-010005"
	ErrCodeExpenseExceedsBalance    LedgerErrorCode = "LED-010006"
	ErrCodeWithdrawalExceedsRemnant LedgerErrorCode = "LED-010007"
	ErrCodeBookAlreadyClosed        LedgerErrorCode = "LED-010008"
	ErrCodeFlowAlreadyClosed        LedgerErrorCode = "LED-010009"
	ErrCodeFlowHasOpenBooks         LedgerErrorCode = "LED-010010"
	ErrCodeInvalidCategoryName      LedgerErrorCode = "LED-010011"
	ErrCodeCategoryNameExists       LedgerErrorCode = "LED-010012"
	ErrCodeInvalidID                LedgerErrorCode = "LED-010013"
	ErrCodeInvalidBudgetName        LedgerErrorCode = "LED-010014"
	ErrCodeNoIncomesSelected        LedgerErrorCode = "LED-010015"
	ErrCodeInsufficientFunds        LedgerErrorCode = "LED-010016"

	// Integrity errors (02XXXX)
	ErrCodeCategoryInUse          LedgerErrorCode = "LED-020001"
	ErrCodeIncomeHasExpenses      LedgerErrorCode = "LED-020002"
	ErrCodeBookClosed             LedgerErrorCode = "LED-020003"
	ErrCodeBudgetItemExported     LedgerErrorCode = "LED-020004"
	ErrCodeBudgetHasExportedItems LedgerErrorCode = "LED-020005"

	// Not found errors (03XXXX)
	ErrCodeFlowNotFound       LedgerErrorCode = "LED-030001"
	ErrCodeBookNotFound       LedgerErrorCode = "LED-030002"
	ErrCodeIncomeNotFound     LedgerErrorCode = "LED-030003"
	ErrCodeExpenseNotFound    LedgerErrorCode = "LED-030004"
	ErrCodeCategoryNotFound   LedgerErrorCode = "LED-030005"
	ErrCodeWithdrawalNotFound LedgerErrorCode = "LED-030006"
	ErrCodeBudgetNotFound     LedgerErrorCode = "LED-030007"
	ErrCodeBudgetItemNotFound LedgerErrorCode = "LED-030008"
	ErrCodeTargetBookNotFound LedgerErrorCode = "LED-030009"
	ErrCodeRemnantNotFound    LedgerErrorCode = "LED-030010"

	// Workflow errors (04XXXX)
	ErrCodeMonthCloseFailed LedgerErrorCode = "LED-040001"
	ErrCodeWithdrawalFailed LedgerErrorCode = "LED-040002"
	ErrCodeExportFailed     LedgerErrorCode = "LED-040003"
	ErrCodeInternal         LedgerErrorCode = "LED-040004"
)

// Kind derives the error kind from the code group.
func (c LedgerErrorCode) Kind() ErrorKind {
	switch {
	case strings.HasPrefix(string(c), "LED-01"):
		return KindValidation
	case strings.HasPrefix(string(c), "LED-02"):
		return KindIntegrity
	case strings.HasPrefix(string(c), "LED-03"):
		return KindNotFound
	default:
		return KindWorkflow
	}
}

// LedgerError represents a ledger error with code, kind, message and optional details.
type LedgerError struct {
	Code    LedgerErrorCode
	Kind    ErrorKind
	Message string
	Details map[string]any
	Err     error
}

// Error implements the error interface.
func (e *LedgerError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// WithDetail attaches a detail value reported to the caller, e.g. the available balance.
func (e *LedgerError) WithDetail(key string, value any) *LedgerError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// NewLedgerError creates a new LedgerError with the given code and message.
func NewLedgerError(code LedgerErrorCode, message string, err error) *LedgerError {
	return &LedgerError{
		Code:    code,
		Kind:    code.Kind(),
		Message: message,
		Err:     err,
	}
}

// IsLedgerErrorCode reports whether err is a LedgerError with the given code.
func IsLedgerErrorCode(err error, code LedgerErrorCode) bool {
	var ledgerErr *LedgerError
	return errors.As(err, &ledgerErr) && ledgerErr.Code == code
}
