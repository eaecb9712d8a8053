package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget holds the single spending budget for a (user, month) pair.
type Budget struct {
	ID        uint            `gorm:"primaryKey"`
	UserID    uint            `gorm:"uniqueIndex:idx_budgets_user_month;not null"`
	Month     string          `gorm:"size:7;uniqueIndex:idx_budgets_user_month;not null"` // YYYY-MM
	Amount    decimal.Decimal `gorm:"type:numeric;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
