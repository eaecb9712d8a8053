package repository

import (
	"fmt"

	"github.com/Shaurya01836/Flux-Wallet/internal/models"

	"gorm.io/gorm"
)

// BudgetRepository 负责 budgets 表的持久化操作
type BudgetRepository struct {
	db *gorm.DB
}

func NewBudgetRepository(db *gorm.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// FindByUserAndMonth returns gorm.ErrRecordNotFound when no budget row
// exists for the (user, month) pair.
func (r *BudgetRepository) FindByUserAndMonth(userID uint, month string) (*models.Budget, error) {
	var b models.Budget
	if err := r.db.Where("user_id = ? AND month = ?", userID, month).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// Save inserts or updates the budget row.
func (r *BudgetRepository) Save(b *models.Budget) error {
	if err := r.db.Save(b).Error; err != nil {
		return fmt.Errorf("save budget: %w", err)
	}
	return nil
}
