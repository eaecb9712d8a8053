package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Shaurya01836/Flux-Wallet/internal/models"
	"github.com/Shaurya01836/Flux-Wallet/internal/repository"
	"github.com/Shaurya01836/Flux-Wallet/internal/util"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentService orchestrates the payment ledger: owner resolution,
// field encryption on write, tolerant decryption on read and monthly
// balance aggregation.
type PaymentService struct {
	payments *repository.PaymentRepository
	users    *repository.UserRepository
	cipher   *util.FieldCipher
	log      *slog.Logger
}

func NewPaymentService(payments *repository.PaymentRepository, users *repository.UserRepository, cipher *util.FieldCipher, log *slog.Logger) *PaymentService {
	return &PaymentService{
		payments: payments,
		users:    users,
		cipher:   cipher,
		log:      log,
	}
}

// AddPayment validates and stores one payment with Title (always) and
// Description (when non-empty) encrypted at rest. The response carries
// the in-memory plaintexts, so no decrypt round-trip happens here.
func (s *PaymentService) AddPayment(in PaymentData) (*PaymentData, error) {
	if _, err := s.users.FindByID(in.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidPayment)
	}
	if err := util.ValidatePaymentType(in.Type); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayment, err)
	}
	if err := util.ValidateAmount(in.Amount); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayment, err)
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	titleEnc, err := s.cipher.Encrypt(in.Title)
	if err != nil {
		return nil, fmt.Errorf("encrypt title: %w", err)
	}
	descEnc := in.Description
	if in.Description != "" {
		if descEnc, err = s.cipher.Encrypt(in.Description); err != nil {
			return nil, fmt.Errorf("encrypt description: %w", err)
		}
	}

	payment := models.Payment{
		UserID:      in.UserID,
		Title:       titleEnc,
		Description: descEnc,
		Category:    in.Category,
		Amount:      in.Amount,
		Type:        in.Type,
		Date:        date,
	}
	if err := s.payments.Create(&payment); err != nil {
		return nil, err
	}

	out := toPaymentData(&payment)
	out.Title = in.Title
	out.Description = in.Description
	return &out, nil
}

// DeletePayment removes the payment and returns a decrypted snapshot of
// what was deleted, using the tolerant policy for both fields.
func (s *PaymentService) DeletePayment(id uint) (*PaymentData, error) {
	payment, err := s.payments.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("find payment: %w", err)
	}

	if err := s.payments.Delete(payment); err != nil {
		return nil, err
	}

	out := toPaymentData(payment)
	out.Title, _ = s.cipher.DecryptTolerant(payment.Title)
	if payment.Description != "" {
		out.Description, _ = s.cipher.DecryptTolerant(payment.Description)
	}
	return &out, nil
}

// GetPaymentsByUser returns one page of the user's payments, newest
// first. Each record is decrypted independently: a corrupt ciphertext
// is logged and surfaces its raw stored value instead of failing the
// whole page.
func (s *PaymentService) GetPaymentsByUser(userID uint, page, pageSize int) ([]PaymentData, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	payments, err := s.payments.FindByUserOrderByDateDesc(userID, offset, pageSize)
	if err != nil {
		return nil, err
	}
	return s.decryptPayments(payments), nil
}

// GetAllPaymentsByUser returns every payment of the user, newest first,
// decrypted with the same per-record tolerant policy. Used by exports.
func (s *PaymentService) GetAllPaymentsByUser(userID uint) ([]PaymentData, error) {
	payments, err := s.payments.FindByUserOrderByDateDesc(userID, 0, -1)
	if err != nil {
		return nil, err
	}
	return s.decryptPayments(payments), nil
}

func (s *PaymentService) decryptPayments(payments []models.Payment) []PaymentData {
	items := make([]PaymentData, 0, len(payments))
	for i := range payments {
		p := &payments[i]
		out := toPaymentData(p)

		title, ok := s.cipher.DecryptTolerant(p.Title)
		if !ok {
			s.log.Warn("decrypt failed, returning stored value",
				"payment_id", p.ID, "field", "title")
		}
		out.Title = title

		if p.Description != "" {
			desc, ok := s.cipher.DecryptTolerant(p.Description)
			if !ok {
				s.log.Warn("decrypt failed, returning stored value",
					"payment_id", p.ID, "field", "description")
			}
			out.Description = desc
		}

		items = append(items, out)
	}
	return items
}

// GetUserBalance sums the user's CREDIT and DEBIT amounts over the
// calendar month named by "YYYY-MM". Months with no payments yield
// zeros, never nulls.
func (s *PaymentService) GetUserBalance(userID uint, month string) (*BalanceSummary, error) {
	start, end, err := monthInterval(month)
	if err != nil {
		return nil, ErrInvalidMonth
	}

	credit, err := s.payments.SumAmount(userID, models.PaymentTypeCredit, &start, &end)
	if err != nil {
		return nil, err
	}
	debit, err := s.payments.SumAmount(userID, models.PaymentTypeDebit, &start, &end)
	if err != nil {
		return nil, err
	}

	summary := BalanceSummary{
		MonthlyCredit: decimal.Zero,
		MonthlyDebit:  decimal.Zero,
	}
	if credit != nil {
		summary.MonthlyCredit = *credit
	}
	if debit != nil {
		summary.MonthlyDebit = *debit
	}
	return &summary, nil
}

// monthInterval turns "YYYY-MM" into the half-open interval
// [first day of month 00:00, first day of next month 00:00) in the
// local zone. AddDate carries December over into January.
func monthInterval(month string) (start, end time.Time, err error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return start, end, fmt.Errorf("parse month: %w", err)
	}
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.Local)
	end = start.AddDate(0, 1, 0)
	return start, end, nil
}
