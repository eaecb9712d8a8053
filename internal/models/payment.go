package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment direction of cash flow.
const (
	PaymentTypeCredit = "CREDIT"
	PaymentTypeDebit  = "DEBIT"
)

// Payment 表示一笔收支记录
// Title 和 Description 落库前加密（AES+base64），明文只存在于内存里
type Payment struct {
	ID          uint            `gorm:"primaryKey"`
	UserID      uint            `gorm:"index;not null"`
	Title       string          `gorm:"size:1024;not null"`     // 标题密文
	Description string          `gorm:"size:4000"`              // 备注密文，允许为空
	Category    string          `gorm:"size:64"`
	Amount      decimal.Decimal `gorm:"type:numeric;not null"`
	Type        string          `gorm:"size:16;index;not null"` // CREDIT / DEBIT
	Date        time.Time       `gorm:"index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}

// BeforeCreate defaults Date to the current time when the caller omitted it.
func (p *Payment) BeforeCreate(_ *gorm.DB) error {
	if p.Date.IsZero() {
		p.Date = time.Now()
	}
	return nil
}
