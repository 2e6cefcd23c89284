package models

import "gorm.io/gorm"

// Company develops and/or publishes games.
type Company struct {
	gorm.Model
	Name     string `gorm:"size:255;not null;index"`
	LogoURL  string `gorm:"size:512"`
	Overview string
	Country  string `gorm:"size:100"`

	DevelopedGames []*Game          `gorm:"many2many:company_developed_games;"`
	PublishedGames []*Game          `gorm:"many2many:company_published_games;"`
	Websites       []CompanyWebsite `gorm:"foreignKey:CompanyID"`
}

// CompanyWebsite is an external link belonging to a company.
type CompanyWebsite struct {
	gorm.Model
	CompanyID uint   `gorm:"not null;index"`
	URL       string `gorm:"size:512;not null"`
}
