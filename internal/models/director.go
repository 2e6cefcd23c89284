package models

import "gorm.io/gorm"

// Director is a person credited with directing games.
type Director struct {
	gorm.Model
	Name       string `gorm:"size:255;not null;index"`
	PictureURL string `gorm:"size:512"`
	Biography  string

	Games    []*Game           `gorm:"many2many:game_directors;"`
	Websites []DirectorWebsite `gorm:"foreignKey:DirectorID"`
}

// DirectorWebsite is an external link belonging to a director.
type DirectorWebsite struct {
	gorm.Model
	DirectorID uint   `gorm:"not null;index"`
	URL        string `gorm:"size:512;not null"`
}
