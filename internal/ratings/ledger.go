// Package ratings applies user rating submissions against both the
// per-user rating record and the denormalized per-release running totals.
// Every submission runs inside a single transaction; after any commit,
// num_players_rated equals the number of UserRating rows pointing at the
// release and total_player_rating equals the exact sum of their values,
// or both are NULL when that count is zero.
package ratings

import (
	"errors"
	"math"

	"gorm.io/gorm"

	"gamedex/backend/internal/models"
)

var (
	// ErrInvalidRating is returned for a rating outside [0,5] or with
	// more than one decimal place.
	ErrInvalidRating = errors.New("rating must be between 0 and 5 with at most one decimal place")

	// ErrReleaseNotFound is returned when the game has no release on the
	// requested platform.
	ErrReleaseNotFound = errors.New("game has no release on this platform")
)

// Ledger mutates rating state. All methods are safe to call concurrently;
// the database transaction is the only synchronization.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// ValidRating reports whether v is in [0,5] with at most one decimal place.
func ValidRating(v float64) bool {
	if v < 0 || v > 5 {
		return false
	}
	scaled := v * 10
	return math.Abs(scaled-math.Round(scaled)) < 1e-9
}

// Submit records a user's rating for a game on a platform, creating the
// rating or moving/updating an existing one. The release running totals
// and the rating row change as one atomic unit; on any failure nothing is
// retained.
func (l *Ledger) Submit(userID, gameID, platformID uint, rating float64) error {
	if !ValidRating(rating) {
		return ErrInvalidRating
	}

	return l.db.Transaction(func(tx *gorm.DB) error {
		var target models.Release
		err := tx.Where("game_id = ? AND platform_id = ?", gameID, platformID).
			First(&target).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReleaseNotFound
		}
		if err != nil {
			return err
		}

		var existing models.UserRating
		err = tx.Where("user_id = ? AND game_id = ?", userID, gameID).
			First(&existing).Error

		switch {
		case err == nil:
			// The user rated this game before, possibly on another
			// platform. Back the old value out of its release, then
			// apply the new one.
			if err := retractRating(tx, gameID, existing.PlatformID, existing.Rating); err != nil {
				return err
			}
			if err := applyRating(tx, gameID, platformID, rating); err != nil {
				return err
			}
			return tx.Model(&existing).Updates(map[string]interface{}{
				"rating":      rating,
				"platform_id": platformID,
			}).Error

		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := applyRating(tx, gameID, platformID, rating); err != nil {
				return err
			}
			return tx.Create(&models.UserRating{
				UserID:     userID,
				GameID:     gameID,
				PlatformID: platformID,
				Rating:     rating,
			}).Error

		default:
			return err
		}
	})
}

// applyRating adds one rating to a release's running totals, treating NULL
// aggregates as zero.
func applyRating(tx *gorm.DB, gameID, platformID uint, rating float64) error {
	return tx.Model(&models.Release{}).
		Where("game_id = ? AND platform_id = ?", gameID, platformID).
		Updates(map[string]interface{}{
			"total_player_rating": gorm.Expr("COALESCE(total_player_rating, 0) + ?", rating),
			"num_players_rated":   gorm.Expr("COALESCE(num_players_rated, 0) + 1"),
		}).Error
}

// retractRating removes one rating from a release's running totals. When
// the count drops to zero the aggregates reset to NULL; a zero-count row
// with a leftover sum, or a negative count, must never persist.
func retractRating(tx *gorm.DB, gameID, platformID uint, rating float64) error {
	err := tx.Model(&models.Release{}).
		Where("game_id = ? AND platform_id = ?", gameID, platformID).
		Updates(map[string]interface{}{
			"total_player_rating": gorm.Expr("total_player_rating - ?", rating),
			"num_players_rated":   gorm.Expr("num_players_rated - 1"),
		}).Error
	if err != nil {
		return err
	}

	return tx.Model(&models.Release{}).
		Where("game_id = ? AND platform_id = ? AND num_players_rated <= 0", gameID, platformID).
		Updates(map[string]interface{}{
			"total_player_rating": nil,
			"num_players_rated":   nil,
		}).Error
}
