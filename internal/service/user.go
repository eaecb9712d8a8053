package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/Shaurya01836/Flux-Wallet/internal/models"
	"github.com/Shaurya01836/Flux-Wallet/internal/repository"
	"github.com/Shaurya01836/Flux-Wallet/internal/util"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UserService handles the login upsert, profile updates and per-month
// budgets.
type UserService struct {
	users   *repository.UserRepository
	budgets *repository.BudgetRepository
}

func NewUserService(users *repository.UserRepository, budgets *repository.BudgetRepository) *UserService {
	return &UserService{
		users:   users,
		budgets: budgets,
	}
}

// Login upserts the user by email. An existing user keeps its id and
// createdAt; name, picture and lastLoginAt are refreshed on every call.
func (s *UserService) Login(email, name, pictureURL string) (*UserData, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}

	now := time.Now()
	user, err := s.users.FindByEmail(email)
	switch {
	case err == nil:
		user.Name = name
		user.PictureURL = pictureURL
		user.LastLoginAt = &now
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = &models.User{
			Email:       email,
			Name:        name,
			PictureURL:  pictureURL,
			LastLoginAt: &now,
		}
	default:
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	if err := s.users.Save(user); err != nil {
		return nil, err
	}

	out := toUserData(user)
	return &out, nil
}

// UpdateUserInfo sets username and/or phone number. A username already
// held by a different user is a conflict and leaves the target
// untouched.
func (s *UserService) UpdateUserInfo(id uint, username, phoneNumber string) (*UserData, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if username != "" {
		owner, err := s.users.FindByUsername(username)
		switch {
		case err == nil && owner.ID != user.ID:
			return nil, ErrUsernameTaken
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("find user by username: %w", err)
		}
		user.Username = &username
	}
	if phoneNumber != "" {
		user.PhoneNumber = phoneNumber
	}

	if err := s.users.Save(user); err != nil {
		return nil, err
	}

	out := toUserData(user)
	return &out, nil
}

// AddBudget creates or overwrites the single budget row for the
// (user, month) pair.
func (s *UserService) AddBudget(userID uint, month string, amount decimal.Decimal) (*BudgetData, error) {
	if _, err := s.users.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if err := util.ValidateMonth(month); err != nil {
		return nil, ErrInvalidMonth
	}
	if err := util.ValidateAmount(amount); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayment, err)
	}

	budget, err := s.budgets.FindByUserAndMonth(userID, month)
	switch {
	case err == nil:
		budget.Amount = amount
	case errors.Is(err, gorm.ErrRecordNotFound):
		budget = &models.Budget{
			UserID: userID,
			Month:  month,
			Amount: amount,
		}
	default:
		return nil, fmt.Errorf("find budget: %w", err)
	}

	if err := s.budgets.Save(budget); err != nil {
		return nil, err
	}

	out := toBudgetData(budget)
	return &out, nil
}

// GetBudget returns the budget for the (user, month) pair, or a
// zero-valued default when none has been set.
func (s *UserService) GetBudget(userID uint, month string) (*BudgetData, error) {
	if _, err := s.users.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if err := util.ValidateMonth(month); err != nil {
		return nil, ErrInvalidMonth
	}

	budget, err := s.budgets.FindByUserAndMonth(userID, month)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &BudgetData{
				UserID: userID,
				Month:  month,
				Amount: decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("find budget: %w", err)
	}

	out := toBudgetData(budget)
	return &out, nil
}
