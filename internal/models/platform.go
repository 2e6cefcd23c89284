package models

import (
	"time"

	"gorm.io/gorm"
)

// Platform represents a system a game can be released on.
type Platform struct {
	gorm.Model
	Name string `gorm:"size:255;unique;not null"`
}

// Release is the availability of a game on one platform. It carries the
// per-platform metadata plus the running player-rating aggregates.
//
// TotalPlayerRating and NumPlayersRated are either both nil (no ratings)
// or both non-nil with NumPlayersRated >= 1 and TotalPlayerRating >= 0.
// The average user rating for the release is total/count when defined.
type Release struct {
	gorm.Model
	GameID     uint `gorm:"not null;uniqueIndex:idx_game_platform"`
	PlatformID uint `gorm:"not null;uniqueIndex:idx_game_platform"`

	ReleaseDate    *time.Time
	BusinessModel  string `gorm:"size:100"`
	MaturityRating string `gorm:"size:50"`
	Price          *float64

	// CriticPct is the average critic rating for this release as a
	// percentage (0-100), externally supplied. Nil when unrated.
	CriticPct *float64

	TotalPlayerRating *float64
	NumPlayersRated   *int64

	Game     Game     `gorm:"foreignKey:GameID"`
	Platform Platform `gorm:"foreignKey:PlatformID"`

	Media        []ReleaseMedium      `gorm:"foreignKey:ReleaseID"`
	InputDevices []ReleaseInputDevice `gorm:"foreignKey:ReleaseID"`
}

// ReleaseMedium is a distribution medium for one release (e.g. "Blu-ray").
type ReleaseMedium struct {
	gorm.Model
	ReleaseID uint   `gorm:"not null;index"`
	Name      string `gorm:"size:100;not null"`
}

// ReleaseInputDevice is a supported input device for one release.
type ReleaseInputDevice struct {
	gorm.Model
	ReleaseID uint   `gorm:"not null;index"`
	Name      string `gorm:"size:100;not null"`
}
