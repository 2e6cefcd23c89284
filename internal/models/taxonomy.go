package models

import "gorm.io/gorm"

// TaxonomyKind names one of the descriptive classification axes a game
// can be tagged with.
type TaxonomyKind string

const (
	KindGenre       TaxonomyKind = "genre"
	KindSetting     TaxonomyKind = "setting"
	KindGameplay    TaxonomyKind = "gameplay"
	KindInterface   TaxonomyKind = "interface"
	KindPerspective TaxonomyKind = "perspective"
	KindVisual      TaxonomyKind = "visual"
	KindArt         TaxonomyKind = "art"
	KindNarrative   TaxonomyKind = "narrative"
	KindPacing      TaxonomyKind = "pacing"
)

// TaxonomyKinds lists every kind in display order.
var TaxonomyKinds = []TaxonomyKind{
	KindGenre,
	KindSetting,
	KindGameplay,
	KindInterface,
	KindPerspective,
	KindVisual,
	KindArt,
	KindNarrative,
	KindPacing,
}

// ParseTaxonomyKind returns the kind matching s, or false when s does not
// name a known kind.
func ParseTaxonomyKind(s string) (TaxonomyKind, bool) {
	for _, k := range TaxonomyKinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// TaxonomyValue is a named classificatory tag (e.g. genre "RPG",
// setting "Cyberpunk") attachable to many games.
type TaxonomyValue struct {
	gorm.Model
	Kind TaxonomyKind `gorm:"size:50;not null;uniqueIndex:idx_kind_name"`
	Name string       `gorm:"size:255;not null;uniqueIndex:idx_kind_name"`

	Games []*Game `gorm:"many2many:game_taxonomies;"`
}
