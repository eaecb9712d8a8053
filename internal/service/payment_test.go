package service

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/Shaurya01836/Flux-Wallet/internal/config"
	"github.com/Shaurya01836/Flux-Wallet/internal/database"
	"github.com/Shaurya01836/Flux-Wallet/internal/models"
	"github.com/Shaurya01836/Flux-Wallet/internal/repository"
	"github.com/Shaurya01836/Flux-Wallet/internal/util"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Init(config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newTestPaymentService(t *testing.T, db *gorm.DB) *PaymentService {
	t.Helper()
	cipher, err := util.NewFieldCipher("payment-service-test-key")
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPaymentService(
		repository.NewPaymentRepository(db),
		repository.NewUserRepository(db),
		cipher,
		logger,
	)
}

func createServiceTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := models.User{Email: email, Name: "Test User"}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func TestAddPayment_ReturnsPlaintextStoresCiphertext(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPaymentService(t, db)
	user := createServiceTestUser(t, db, "add@example.com")

	out, err := svc.AddPayment(PaymentData{
		Title:       "Rent",
		Description: "May rent, split with roommate",
		Category:    "Housing",
		Amount:      decimal.NewFromFloat(850.50),
		Type:        models.PaymentTypeDebit,
		UserID:      user.ID,
	})
	require.NoError(t, err)
	require.NotZero(t, out.ID)

	// the response carries the plaintext
	assert.Equal(t, "Rent", out.Title)
	assert.Equal(t, "May rent, split with roommate", out.Description)

	// the row holds ciphertext
	var stored models.Payment
	require.NoError(t, db.First(&stored, out.ID).Error)
	assert.NotEqual(t, "Rent", stored.Title)
	assert.NotEqual(t, "May rent, split with roommate", stored.Description)

	cipher, err := util.NewFieldCipher("payment-service-test-key")
	require.NoError(t, err)
	title, err := cipher.Decrypt(stored.Title)
	require.NoError(t, err)
	assert.Equal(t, "Rent", title)
}

func TestAddPayment_EmptyDescriptionStaysEmpty(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPaymentService(t, db)
	user := createServiceTestUser(t, db, "nodesc@example.com")

	out, err := svc.AddPayment(PaymentData{
		Title:  "Coffee",
		Amount: decimal.NewFromFloat(4.25),
		Type:   models.PaymentTypeDebit,
		UserID: user.ID,
	})
	require.NoError(t, err)
	assert.Empty(t, out.Description)

	var stored models.Payment
	require.NoError(t, db.First(&stored, out.ID).Error)
	assert.Empty(t, stored.Description)
}

func TestAddPayment_DefaultsDate(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPaymentService(t, db)
	user := createServiceTestUser(t, db, "defdate@example.com")

	before := time.Now()
	out, err := svc.AddPayment(PaymentData{
		Title:  "Lunch",
		Amount: decimal.NewFromInt(12),
		Type:   models.PaymentTypeDebit,
		UserID: user.ID,
	})
	require.NoError(t, err)
	assert.False(t, out.Date.Before(before.Add(-time.Second)))
	assert.False(t, out.Date.After(time.Now().Add(time.Second)))
}

func TestAddPayment_UserNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPaymentService(t, db)

	_, err := svc.AddPayment(PaymentData{
		Title:  "Rent",
		Amount: decimal.NewFromInt(100),
		Type:   models.PaymentTypeDebit,
		UserID: 999,
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAddPayment_Invalid(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPaymentService(t, db)
	user := createServiceTestUser(t, db, "invalid@example.com")

	cases := []PaymentData{
		{Title: "", Amount: decimal.NewFromInt(1), Type: models.PaymentTypeDebit, UserID: user.ID},
		{Title: "x", Amount: decimal.NewFromInt(1), Type: "TRANSFER", UserID: user.ID},
		{Title: "x", Amount: decimal.NewFromInt(-1), Type: models.PaymentTypeDebit, UserID: user.ID},
	}
	for _, in := range cases {
		_, err := svc.AddPayment(in)
		assert.ErrorIs(t, err, ErrInvalidPayment)
	}
}

func TestDeletePayment_ReturnsDecryptedSnapshot(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPaymentService(t, db)
	user := createServiceTestUser(t, db, "del@example.com")

	created, err := svc.AddPayment(PaymentData{
		Title:       "Rent",
		Description: "April",
		Amount:      decimal.NewFromInt(900),
		Type:        models.PaymentTypeDebit,
		UserID:      user.ID,
	})
	require.NoError(t, err)

	deleted, err := svc.DeletePayment(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rent", deleted.Title)
	assert.Equal(t, "April", deleted.Description)

	// hard delete, no tombstone
	var count int64
	require.NoError(t, db.Model(&models.Payment{}).Where("id = ?", created.ID).Count(&count).Error)
	assert.Zero(t, count)

	_, err = svc.DeletePayment(created.ID)
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestGetPaymentsByUser_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPaymentService(t, db)
	user := createServiceTestUser(t, db, "page@example.com")

	base := time.Date(2024, 4, 1, 10, 0, 0, 0, time.Local)
	for i, title := range []string{"first", "second", "third"} {
		_, err := svc.AddPayment(PaymentData{
			Title:  title,
			Amount: decimal.NewFromInt(int64(i + 1)),
			Type:   models.PaymentTypeDebit,
			Date:   base.AddDate(0, 0, i),
			UserID: user.ID,
		})
		require.NoError(t, err)
	}

	items, err := svc.GetPaymentsByUser(user.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "third", items[0].Title)
	assert.Equal(t, "second", items[1].Title)
	assert.Equal(t, "first", items[2].Title)
}

func TestGetPaymentsByUser_ToleratesCorruptRecord(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPaymentService(t, db)
	user := createServiceTestUser(t, db, "corrupt@example.com")

	base := time.Date(2024, 4, 1, 10, 0, 0, 0, time.Local)
	var corruptID uint
	for i := 0; i < 5; i++ {
		out, err := svc.AddPayment(PaymentData{
			Title:  "payment",
			Amount: decimal.NewFromInt(10),
			Type:   models.PaymentTypeDebit,
			Date:   base.AddDate(0, 0, i),
			UserID: user.ID,
		})
		require.NoError(t, err)
		if i == 2 {
			corruptID = out.ID
		}
	}

	// corrupt one stored title
	require.NoError(t, db.Model(&models.Payment{}).
		Where("id = ?", corruptID).
		Update("title", "!!not-a-ciphertext!!").Error)

	items, err := svc.GetPaymentsByUser(user.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, items, 5)

	degraded := 0
	for _, item := range items {
		if item.ID == corruptID {
			assert.Equal(t, "!!not-a-ciphertext!!", item.Title)
			degraded++
		} else {
			assert.Equal(t, "payment", item.Title)
		}
	}
	assert.Equal(t, 1, degraded)
}

func TestGetUserBalance_ZeroWhenEmpty(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPaymentService(t, db)
	user := createServiceTestUser(t, db, "empty@example.com")

	balance, err := svc.GetUserBalance(user.ID, "2024-06")
	require.NoError(t, err)
	assert.True(t, balance.MonthlyCredit.IsZero())
	assert.True(t, balance.MonthlyDebit.IsZero())
}

func TestGetUserBalance_MonthBoundaries(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPaymentService(t, db)
	user := createServiceTestUser(t, db, "bounds@example.com")

	add := func(pType string, amount float64, date time.Time) {
		t.Helper()
		_, err := svc.AddPayment(PaymentData{
			Title:  "p",
			Amount: decimal.NewFromFloat(amount),
			Type:   pType,
			Date:   date,
			UserID: user.ID,
		})
		require.NoError(t, err)
	}

	// last instant of February (leap year) is inside, first of March is not
	add(models.PaymentTypeCredit, 100.25, time.Date(2024, 2, 29, 23, 59, 59, 0, time.Local))
	add(models.PaymentTypeCredit, 999, time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local))
	add(models.PaymentTypeDebit, 40.50, time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local))

	balance, err := svc.GetUserBalance(user.ID, "2024-02")
	require.NoError(t, err)
	assert.True(t, balance.MonthlyCredit.Equal(decimal.NewFromFloat(100.25)), "credit %s", balance.MonthlyCredit)
	assert.True(t, balance.MonthlyDebit.Equal(decimal.NewFromFloat(40.50)), "debit %s", balance.MonthlyDebit)
}

func TestGetUserBalance_YearRollover(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPaymentService(t, db)
	user := createServiceTestUser(t, db, "rollover@example.com")

	add := func(amount float64, date time.Time) {
		t.Helper()
		_, err := svc.AddPayment(PaymentData{
			Title:  "p",
			Amount: decimal.NewFromFloat(amount),
			Type:   models.PaymentTypeCredit,
			Date:   date,
			UserID: user.ID,
		})
		require.NoError(t, err)
	}

	add(250, time.Date(2024, 12, 31, 23, 0, 0, 0, time.Local))
	add(999, time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local))

	balance, err := svc.GetUserBalance(user.ID, "2024-12")
	require.NoError(t, err)
	assert.True(t, balance.MonthlyCredit.Equal(decimal.NewFromInt(250)), "credit %s", balance.MonthlyCredit)
}

func TestGetUserBalance_InvalidMonth(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPaymentService(t, db)
	user := createServiceTestUser(t, db, "badmonth@example.com")

	for _, month := range []string{"", "2024", "2024-13", "June"} {
		_, err := svc.GetUserBalance(user.ID, month)
		assert.ErrorIs(t, err, ErrInvalidMonth, "month %q", month)
	}
}

func TestMonthInterval(t *testing.T) {
	start, end, err := monthInterval("2024-12")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.Local), start)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local), end)

	start, end, err = monthInterval("2024-02")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local), start)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local), end)
}
