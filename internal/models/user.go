package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account.
type User struct {
	gorm.Model
	Username     string `gorm:"size:255;unique;not null"`
	Email        string `gorm:"size:255;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`

	// Gender is nil when the user prefers not to say.
	Gender    *string `gorm:"size:1"`
	Country   string  `gorm:"size:100"`
	BirthDate time.Time

	Ratings []UserRating `gorm:"foreignKey:UserID"`
}
