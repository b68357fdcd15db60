// Package remnant contains remnant listing and withdrawal use cases.
package remnant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/homeledger/backend/internal/application/adapter"
	"github.com/homeledger/backend/internal/application/usecase/ledger"
	"github.com/homeledger/backend/internal/domain/entity"
	domainerror "github.com/homeledger/backend/internal/domain/error"
	"github.com/homeledger/backend/internal/domain/valueobject"
)

// WithdrawRemnantInput represents the input for a remnant withdrawal.
type WithdrawRemnantInput struct {
	FlowID      uuid.UUID
	Amount      decimal.Decimal
	Description string
	TargetMonth int
}

// WithdrawRemnantOutput represents the output of a remnant withdrawal.
type WithdrawRemnantOutput struct {
	Withdrawal         *entity.RemnantWithdrawal
	Remnant            *entity.Remnant
	Income             *entity.Income
	AccumulatedRemnant decimal.Decimal
}

// WithdrawRemnantUseCase moves part of the accumulated remnant into an income of the target month.
// The withdrawal row and both side effects are written in one transaction, keyed by the withdrawal ID.
type WithdrawRemnantUseCase struct {
	flowRepo       adapter.FlowRepository
	bookRepo       adapter.BookRepository
	incomeRepo     adapter.IncomeRepository
	remnantRepo    adapter.RemnantRepository
	withdrawalRepo adapter.WithdrawalRepository
	balances       *ledger.BalanceCalculator
	transactor     adapter.Transactor
	clock          adapter.Clock
	cache          adapter.ReportCache
}

// NewWithdrawRemnantUseCase creates a new WithdrawRemnantUseCase instance.
func NewWithdrawRemnantUseCase(
	flowRepo adapter.FlowRepository,
	bookRepo adapter.BookRepository,
	incomeRepo adapter.IncomeRepository,
	remnantRepo adapter.RemnantRepository,
	withdrawalRepo adapter.WithdrawalRepository,
	balances *ledger.BalanceCalculator,
	transactor adapter.Transactor,
	clock adapter.Clock,
	cache adapter.ReportCache,
) *WithdrawRemnantUseCase {
	return &WithdrawRemnantUseCase{
		flowRepo:       flowRepo,
		bookRepo:       bookRepo,
		incomeRepo:     incomeRepo,
		remnantRepo:    remnantRepo,
		withdrawalRepo: withdrawalRepo,
		balances:       balances,
		transactor:     transactor,
		clock:          clock,
		cache:          cache,
	}
}

// Execute performs the withdrawal.
func (uc *WithdrawRemnantUseCase) Execute(ctx context.Context, input WithdrawRemnantInput) (*WithdrawRemnantOutput, error) {
	// Validate amount, description and target month
	if err := ledger.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}
	if !input.Amount.IsPositive() {
		return nil, ledger.InvalidAmountError(errors.New("withdrawal amount must be greater than zero"))
	}
	if err := ledger.ValidateDescription(input.Description); err != nil {
		return nil, err
	}
	if !valueobject.IsValidMonth(input.TargetMonth) {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidMonth,
			"target month must be between 1 and 12",
			nil,
		).WithDetail("month", input.TargetMonth)
	}

	output := &WithdrawRemnantOutput{}
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		annualFlow, err := uc.flowRepo.FindByIDForUpdate(ctx, input.FlowID)
		if err != nil {
			return ledger.Translate(err, "lock flow")
		}

		book, err := uc.lockTargetBook(ctx, annualFlow, input.TargetMonth)
		if err != nil {
			return err
		}

		// The accumulated remnant is the only source of withdrawable money
		available, err := uc.balances.AccumulatedRemnant(ctx, annualFlow.ID)
		if err != nil {
			return err
		}
		if input.Amount.GreaterThan(available) {
			return domainerror.NewLedgerError(
				domainerror.ErrCodeWithdrawalExceedsRemnant,
				"the withdrawal exceeds the accumulated remnant",
				nil,
			).
				WithDetail("available", valueobject.FormatAmount(available)).
				WithDetail("requested", valueobject.FormatAmount(input.Amount))
		}

		// The deposit is an income, which a closed book cannot receive
		if book.IsClosed() {
			return ledger.BookClosedError(book.MonthName())
		}

		withdrawal := entity.NewRemnantWithdrawal(annualFlow.ID, input.Amount, input.Description, input.TargetMonth, uc.clock.Now())
		if err := uc.withdrawalRepo.Create(ctx, withdrawal); err != nil {
			return err
		}

		remnant, income, err := uc.apply(ctx, withdrawal, book)
		if err != nil {
			return err
		}

		output.Withdrawal = withdrawal
		output.Remnant = remnant
		output.Income = income
		output.AccumulatedRemnant = available.Sub(input.Amount)
		return nil
	})
	if err != nil {
		return nil, asWorkflowError(ctx, err, input.FlowID)
	}

	ledger.InvalidateReports(ctx, uc.cache, input.FlowID)
	slog.InfoContext(ctx, "Remnant withdrawn",
		"withdrawal_id", output.Withdrawal.ID,
		"flow_id", input.FlowID,
		"amount", valueobject.FormatAmount(input.Amount),
		"target_month", input.TargetMonth,
	)

	return output, nil
}

// ApplyPendingInput represents the input for re-applying a withdrawal.
type ApplyPendingInput struct {
	WithdrawalID uuid.UUID
}

// ApplyPending writes the side effects of a pending withdrawal. Rows that already exist are kept,
// and an applied withdrawal is left untouched, so the call is idempotent.
func (uc *WithdrawRemnantUseCase) ApplyPending(ctx context.Context, input ApplyPendingInput) (*WithdrawRemnantOutput, error) {
	output := &WithdrawRemnantOutput{}
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		withdrawal, err := uc.withdrawalRepo.FindByIDForUpdate(ctx, input.WithdrawalID)
		if err != nil {
			return ledger.Translate(err, "lock withdrawal")
		}
		output.Withdrawal = withdrawal
		if withdrawal.IsApplied() {
			return nil
		}

		annualFlow, err := uc.flowRepo.FindByIDForUpdate(ctx, withdrawal.FlowID)
		if err != nil {
			return ledger.Translate(err, "lock flow")
		}
		book, err := uc.lockTargetBook(ctx, annualFlow, withdrawal.TargetMonth)
		if err != nil {
			return err
		}
		if book.IsClosed() {
			return ledger.BookClosedError(book.MonthName())
		}

		output.Remnant, output.Income, err = uc.apply(ctx, withdrawal, book)
		return err
	})
	if err != nil {
		return nil, asWorkflowError(ctx, err, input.WithdrawalID)
	}

	remnant, err := uc.balances.AccumulatedRemnant(ctx, output.Withdrawal.FlowID)
	if err != nil {
		return nil, err
	}
	output.AccumulatedRemnant = remnant

	ledger.InvalidateReports(ctx, uc.cache, output.Withdrawal.FlowID)
	return output, nil
}

func (uc *WithdrawRemnantUseCase) lockTargetBook(ctx context.Context, annualFlow *entity.AnnualFlow, month int) (*entity.MonthlyIncomeBook, error) {
	book, err := uc.bookRepo.FindByFlowAndMonth(ctx, annualFlow.ID, month)
	if err != nil {
		if errors.Is(err, domainerror.ErrBookNotFound) {
			return nil, domainerror.NewLedgerError(
				domainerror.ErrCodeTargetBookNotFound,
				fmt.Sprintf("no monthly book for %s", valueobject.MonthKey{Year: annualFlow.Year, Month: month}),
				err,
			).WithDetail("month", month)
		}
		return nil, err
	}
	return uc.bookRepo.FindByIDForUpdate(ctx, book.ID)
}

// apply writes the negative remnant and the deposit income unless they already exist, then marks the withdrawal applied.
func (uc *WithdrawRemnantUseCase) apply(
	ctx context.Context,
	withdrawal *entity.RemnantWithdrawal,
	book *entity.MonthlyIncomeBook,
) (*entity.Remnant, *entity.Income, error) {
	now := uc.clock.Now()

	var remnant *entity.Remnant
	remnantExists, err := uc.remnantRepo.ExistsByWithdrawalID(ctx, withdrawal.ID)
	if err != nil {
		return nil, nil, err
	}
	if !remnantExists {
		remnant = entity.NewWithdrawalRemnant(book.ID, withdrawal, now)
		if err := uc.remnantRepo.Create(ctx, remnant); err != nil {
			return nil, nil, err
		}
	}

	var income *entity.Income
	incomeExists, err := uc.incomeRepo.ExistsByWithdrawalID(ctx, withdrawal.ID)
	if err != nil {
		return nil, nil, err
	}
	if !incomeExists {
		income = withdrawal.Income(book.ID, now)
		if err := uc.incomeRepo.Create(ctx, income); err != nil {
			return nil, nil, err
		}
	}

	if err := uc.withdrawalRepo.MarkApplied(ctx, withdrawal.ID, now); err != nil && !errors.Is(err, domainerror.ErrStateChanged) {
		return nil, nil, err
	}
	withdrawal.State = entity.WithdrawalApplied
	appliedAt := now.UTC()
	withdrawal.AppliedAt = &appliedAt

	return remnant, income, nil
}

func asWorkflowError(ctx context.Context, err error, id uuid.UUID) error {
	var ledgerErr *domainerror.LedgerError
	if errors.As(err, &ledgerErr) {
		return err
	}

	slog.ErrorContext(ctx, "Remnant withdrawal failed", "id", id, "error", err)
	return domainerror.NewLedgerError(
		domainerror.ErrCodeWithdrawalFailed,
		"the remnant withdrawal could not be completed",
		err,
	)
}
