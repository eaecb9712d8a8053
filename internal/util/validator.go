package util

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var maxAmount = decimal.NewFromInt(10_000_000) // 单笔金额上限

// ValidateAmount 验证金额（必须为非负数且不超过上限）
func ValidateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("amount must not be negative, got %s", amount)
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return fmt.Errorf("amount too large, got %s", amount)
	}
	return nil
}

// ValidateMonth 验证月份格式（必须为 YYYY-MM）
func ValidateMonth(month string) error {
	if month == "" {
		return fmt.Errorf("month is empty")
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		return fmt.Errorf("invalid month format: %w", err)
	}
	return nil
}

// ValidatePaymentType 验证收支类型（CREDIT / DEBIT）
func ValidatePaymentType(t string) error {
	if t != "CREDIT" && t != "DEBIT" {
		return fmt.Errorf("invalid payment type %q", t)
	}
	return nil
}
