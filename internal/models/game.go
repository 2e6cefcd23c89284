package models

import "gorm.io/gorm"

// Game represents a game in the catalog.
type Game struct {
	gorm.Model
	Name        string `gorm:"size:255;not null;index"`
	Description string
	CoverURL    string `gorm:"size:512"`
	SiteURL     string `gorm:"size:512"`

	// CuratedScore is an externally supplied quality score,
	// independent of user ratings. Nil when unknown.
	CuratedScore *float64

	Releases   []Release        `gorm:"foreignKey:GameID"`
	Taxonomies []*TaxonomyValue `gorm:"many2many:game_taxonomies;"`
	Directors  []*Director      `gorm:"many2many:game_directors;"`
	Developers []*Company       `gorm:"many2many:company_developed_games;"`
	Publishers []*Company       `gorm:"many2many:company_published_games;"`
}
