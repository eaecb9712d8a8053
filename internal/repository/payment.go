package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Shaurya01836/Flux-Wallet/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentRepository 负责 payments 表的持久化操作
type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create inserts the payment and assigns its id.
func (r *PaymentRepository) Create(p *models.Payment) error {
	if err := r.db.Create(p).Error; err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

// FindByID returns gorm.ErrRecordNotFound when the payment does not exist.
func (r *PaymentRepository) FindByID(id uint) (*models.Payment, error) {
	var p models.Payment
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes the payment permanently.
func (r *PaymentRepository) Delete(p *models.Payment) error {
	if err := r.db.Delete(p).Error; err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return nil
}

// FindByUserOrderByDateDesc returns one page of the user's payments,
// newest transaction date first. Ties on date fall back to id so the
// order stays stable across pages.
func (r *PaymentRepository) FindByUserOrderByDateDesc(userID uint, offset, limit int) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

// SumAmount sums the user's payment amounts of the given type over the
// half-open interval [from, to). Either bound may be nil. Returns nil
// when no rows matched; the caller decides what absence means.
func (r *PaymentRepository) SumAmount(userID uint, paymentType string, from, to *time.Time) (*decimal.Decimal, error) {
	q := r.db.Model(&models.Payment{}).
		Select("SUM(amount)").
		Where("user_id = ? AND type = ?", userID, paymentType)
	if from != nil {
		q = q.Where("date >= ?", *from)
	}
	if to != nil {
		q = q.Where("date < ?", *to)
	}

	var sum sql.NullFloat64
	if err := q.Row().Scan(&sum); err != nil {
		return nil, fmt.Errorf("sum amount: %w", err)
	}
	if !sum.Valid {
		return nil, nil
	}
	d := decimal.NewFromFloat(sum.Float64)
	return &d, nil
}
