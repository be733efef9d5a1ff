package payroll

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/myominkyaw1661994/ltk-restaurant-sub000/internal/purchases"
	"github.com/myominkyaw1661994/ltk-restaurant-sub000/internal/staff"
)

var (
	// ErrStaffNotFound indicates an unknown staff id.
	ErrStaffNotFound = errors.New("staff not found")
	// ErrInactiveStaff rejects disbursement to non-active members.
	ErrInactiveStaff = errors.New("only active staff can receive salary payments")
	// ErrAlreadyPaid indicates a payment already exists for the period.
	ErrAlreadyPaid = errors.New("salary already paid for period")
	// ErrInvalidPeriod rejects malformed pay periods.
	ErrInvalidPeriod = errors.New("pay period month must be between 1 and 12")
	// ErrTransactionFailure indicates the run's commit failed; none of the
	// run's payments persisted.
	ErrTransactionFailure = errors.New("payroll transaction failed")
)

// AlreadyPaidError carries the conflicting payment for single-member
// disbursement responses.
type AlreadyPaidError struct {
	Payment Payment
}

func (e *AlreadyPaidError) Error() string {
	return fmt.Sprintf("%s %s", ErrAlreadyPaid.Error(), e.Payment.Period())
}

func (e *AlreadyPaidError) Unwrap() error {
	return ErrAlreadyPaid
}

// StaffDirectory supplies the payroll roster. The engine trusts the status
// field as given but still re-checks it per member.
type StaffDirectory interface {
	Get(ctx context.Context, id string) (staff.Member, error)
	ListActive(ctx context.Context) ([]staff.Member, error)
}

// DisburseOptions tunes a disbursement run.
type DisburseOptions struct {
	// PaymentDate defaults to the current time when zero.
	PaymentDate time.Time
	// Notes overrides the generated per-payment note.
	Notes string
	// CreatedBy records the operator who triggered the run.
	CreatedBy string
}

// Service is the payroll disbursement engine. Each successful disbursement
// writes a purchase record and a linked salary payment atomically; the
// (staff, year, month) uniqueness constraint is the duplicate backstop.
type Service struct {
	repo     Repository
	staffDir StaffDirectory
	now      func() time.Time
}

// NewService constructs the engine.
func NewService(repo Repository, staffDir StaffDirectory) *Service {
	return &Service{repo: repo, staffDir: staffDir, now: time.Now}
}

// Disburse pays every roster member for the period inside one transaction.
// Per-member failures are collected, not fatal: a member that is inactive or
// errors lands in Failed, an already-paid member lands in Skipped, and the
// run continues. Only a commit failure voids the whole run; in that case the
// returned result is empty and the error wraps ErrTransactionFailure.
func (s *Service) Disburse(ctx context.Context, period PayPeriod, roster []staff.Member, opts DisburseOptions) (DisbursementResult, error) {
	if !period.Valid() {
		return DisbursementResult{}, ErrInvalidPeriod
	}
	paymentDate := opts.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = s.now()
	}
	notes := opts.Notes
	if notes == "" {
		notes = "Salary payment for " + period.String()
	}

	var result DisbursementResult
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		for _, member := range roster {
			if !member.Active() {
				result.Failed = append(result.Failed, FailedStaff{
					StaffID:   member.ID,
					StaffName: member.Name,
					Error:     ErrInactiveStaff.Error(),
				})
				continue
			}

			disbursed, err := s.disburseMember(ctx, tx, member, period, paymentDate, notes, opts.CreatedBy)
			switch {
			case err == nil:
				result.Successful = append(result.Successful, disbursed)
			case errors.Is(err, ErrAlreadyPaid):
				result.Skipped = append(result.Skipped, SkippedStaff{
					StaffID:   member.ID,
					StaffName: member.Name,
					Reason:    "already paid for " + period.String(),
				})
			default:
				result.Failed = append(result.Failed, FailedStaff{
					StaffID:   member.ID,
					StaffName: member.Name,
					Error:     err.Error(),
				})
			}
		}
		return nil
	})
	if err != nil {
		return DisbursementResult{}, fmt.Errorf("%w: %v", ErrTransactionFailure, err)
	}
	return result, nil
}

// DisburseAll runs Disburse over every active staff member for the period
// derived from the payment date.
func (s *Service) DisburseAll(ctx context.Context, opts DisburseOptions) (DisbursementResult, error) {
	roster, err := s.staffDir.ListActive(ctx)
	if err != nil {
		return DisbursementResult{}, fmt.Errorf("load roster: %w", err)
	}
	paymentDate := opts.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = s.now()
		opts.PaymentDate = paymentDate
	}
	return s.Disburse(ctx, PeriodFromDate(paymentDate), roster, opts)
}

// DisburseOne pays a single staff member in its own transaction. Unlike bulk
// mode there is no partial state to preserve, so any failure rolls the
// transaction back and surfaces to the caller. An existing payment for the
// period is a hard error carrying the conflicting payment.
func (s *Service) DisburseOne(ctx context.Context, staffID string, opts DisburseOptions) (DisbursedPayment, error) {
	member, err := s.staffDir.Get(ctx, staffID)
	if err != nil {
		if errors.Is(err, staff.ErrNotFound) {
			return DisbursedPayment{}, ErrStaffNotFound
		}
		return DisbursedPayment{}, fmt.Errorf("load staff: %w", err)
	}
	if !member.Active() {
		return DisbursedPayment{}, ErrInactiveStaff
	}

	paymentDate := opts.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = s.now()
	}
	period := PeriodFromDate(paymentDate)
	notes := opts.Notes
	if notes == "" {
		notes = "Salary payment for " + period.String()
	}

	var disbursed DisbursedPayment
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		var err error
		disbursed, err = s.disburseMember(ctx, tx, member, period, paymentDate, notes, opts.CreatedBy)
		return err
	})
	if err != nil {
		var alreadyPaid *AlreadyPaidError
		if errors.As(err, &alreadyPaid) {
			return DisbursedPayment{}, err
		}
		if errors.Is(err, ErrAlreadyPaid) {
			// Lost the race to a concurrent run; attach the winner's payment.
			if existing, findErr := s.repo.FindPayment(ctx, member.ID, period); findErr == nil {
				return DisbursedPayment{}, &AlreadyPaidError{Payment: existing}
			}
			return DisbursedPayment{}, ErrAlreadyPaid
		}
		return DisbursedPayment{}, fmt.Errorf("disburse salary: %w", err)
	}
	return disbursed, nil
}

// disburseMember runs the single-member procedure against an open
// transaction: duplicate check, purchase insert, payment insert. The
// purchase amount is the salary rounded to whole minor units; the payment
// keeps the unrounded amount.
func (s *Service) disburseMember(ctx context.Context, tx TxRepository, member staff.Member, period PayPeriod, paymentDate time.Time, notes, createdBy string) (DisbursedPayment, error) {
	existing, err := tx.FindPayment(ctx, member.ID, period)
	if err == nil {
		return DisbursedPayment{}, &AlreadyPaidError{Payment: existing}
	}
	if !errors.Is(err, ErrPaymentNotFound) {
		return DisbursedPayment{}, fmt.Errorf("check existing payment: %w", err)
	}

	now := s.now()
	purchase := purchases.Record{
		ID:           uuid.NewString(),
		Name:         "Salary Payment - " + member.Name,
		Description:  "Salary payment for " + member.Name,
		TotalAmount:  int64(math.Round(member.Salary)),
		Status:       purchases.StatusCompleted,
		Supplier:     member.Name,
		PurchaseDate: paymentDate,
		Notes:        notes,
		CreatedBy:    createdBy,
		CreatedAt:    now,
	}
	payment := Payment{
		ID:          uuid.NewString(),
		StaffID:     member.ID,
		StaffName:   member.Name,
		Amount:      member.Salary,
		PaymentDate: paymentDate,
		PurchaseID:  purchase.ID,
		Year:        period.Year,
		Month:       period.Month,
		Status:      PaymentStatusCompleted,
		Notes:       notes,
		CreatedBy:   createdBy,
		CreatedAt:   now,
	}

	// Both rows land or neither does: a payment insert failure must not
	// leave an orphan purchase behind.
	err = tx.Atomic(ctx, func(tx TxRepository) error {
		if err := tx.InsertPurchase(ctx, purchase); err != nil {
			return fmt.Errorf("insert purchase: %w", err)
		}
		if err := tx.InsertPayment(ctx, payment); err != nil {
			if errors.Is(err, ErrAlreadyPaid) {
				return err
			}
			return fmt.Errorf("insert salary payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return DisbursedPayment{}, err
	}

	return DisbursedPayment{
		StaffID:    member.ID,
		StaffName:  member.Name,
		Amount:     member.Salary,
		PaymentID:  payment.ID,
		PurchaseID: purchase.ID,
	}, nil
}

// ListPayments returns a page of salary payments plus the total count.
func (s *Service) ListPayments(ctx context.Context, req ListPaymentsRequest) ([]Payment, int, error) {
	return s.repo.ListPayments(ctx, req)
}
