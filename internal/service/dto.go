package service

import (
	"time"

	"github.com/Shaurya01836/Flux-Wallet/internal/models"

	"github.com/shopspring/decimal"
)

// PaymentData is the wire-facing payment shape. Title and Description
// are always plaintext here; ciphertext lives only in models.Payment.
type PaymentData struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Date        time.Time       `json:"date"`
	UserID      uint            `json:"user_id"`
}

// BalanceSummary is derived, never persisted. Both sums are zero-filled
// when the month has no matching payments.
type BalanceSummary struct {
	MonthlyCredit decimal.Decimal `json:"monthly_credit"`
	MonthlyDebit  decimal.Decimal `json:"monthly_debit"`
}

type BudgetData struct {
	UserID uint            `json:"user_id"`
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

type UserData struct {
	ID          uint   `json:"id"`
	Email       string `json:"email"`
	Username    string `json:"username,omitempty"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number,omitempty"`
	PictureURL  string `json:"picture_url,omitempty"`
}

// toPaymentData copies the entity as stored; the caller is responsible
// for putting plaintext into Title/Description before handing it out.
func toPaymentData(p *models.Payment) PaymentData {
	return PaymentData{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Amount:      p.Amount,
		Type:        p.Type,
		Date:        p.Date,
		UserID:      p.UserID,
	}
}

func toUserData(u *models.User) UserData {
	out := UserData{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		PhoneNumber: u.PhoneNumber,
		PictureURL:  u.PictureURL,
	}
	if u.Username != nil {
		out.Username = *u.Username
	}
	return out
}

func toBudgetData(b *models.Budget) BudgetData {
	return BudgetData{
		UserID: b.UserID,
		Month:  b.Month,
		Amount: b.Amount,
	}
}
