package models

import "time"

// User represents an application user created through Google login.
type User struct {
	ID          uint    `gorm:"primaryKey"`
	Email       string  `gorm:"size:255;uniqueIndex;not null"`
	Username    *string `gorm:"size:64;uniqueIndex"` // pointer so the unique index admits multiple NULLs
	Name        string  `gorm:"size:128"`
	PhoneNumber string  `gorm:"size:32"`
	PictureURL  string  `gorm:"size:2000"`
	CreatedAt   time.Time
	LastLoginAt *time.Time
}
