package models

import "gorm.io/gorm"

// UserRating is one user's rating of one game. A user rates a game on at
// most one platform at a time, so (UserID, GameID) is unique; changing
// platform moves the rating rather than adding a second row.
//
// For every UserRating row there is exactly one Release whose running
// totals include the row's current value.
type UserRating struct {
	gorm.Model
	UserID     uint `gorm:"not null;uniqueIndex:idx_user_game"`
	GameID     uint `gorm:"not null;uniqueIndex:idx_user_game"`
	PlatformID uint `gorm:"not null"`

	// Rating is in [0, 5] with at most one decimal place.
	Rating float64 `gorm:"not null"`

	User     User     `gorm:"foreignKey:UserID"`
	Game     Game     `gorm:"foreignKey:GameID"`
	Platform Platform `gorm:"foreignKey:PlatformID"`
}
