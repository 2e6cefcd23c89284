package ratings_test

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gamedex/backend/internal/database"
	"gamedex/backend/internal/models"
	"gamedex/backend/internal/ratings"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A uniquely named shared-cache in-memory database, so the connection
	// pool sees one store and tests stay isolated from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

type fixture struct {
	db        *gorm.DB
	ledger    *ratings.Ledger
	user      models.User
	user2     models.User
	game      models.Game
	platformA models.Platform
	platformB models.Platform
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)

	fx := &fixture{db: db, ledger: ratings.NewLedger(db)}

	fx.user = models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	fx.user2 = models.User{Username: "bob", Email: "bob@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&fx.user).Error)
	require.NoError(t, db.Create(&fx.user2).Error)

	fx.game = models.Game{Name: "Outer Wilds"}
	require.NoError(t, db.Create(&fx.game).Error)

	fx.platformA = models.Platform{Name: "PC"}
	fx.platformB = models.Platform{Name: "Switch"}
	require.NoError(t, db.Create(&fx.platformA).Error)
	require.NoError(t, db.Create(&fx.platformB).Error)

	require.NoError(t, db.Create(&models.Release{GameID: fx.game.ID, PlatformID: fx.platformA.ID}).Error)
	require.NoError(t, db.Create(&models.Release{GameID: fx.game.ID, PlatformID: fx.platformB.ID}).Error)

	return fx
}

func (fx *fixture) release(t *testing.T, platformID uint) models.Release {
	t.Helper()
	var rel models.Release
	require.NoError(t, fx.db.Where("game_id = ? AND platform_id = ?", fx.game.ID, platformID).First(&rel).Error)
	return rel
}

func (fx *fixture) setTotals(t *testing.T, platformID uint, total float64, count int64) {
	t.Helper()
	err := fx.db.Model(&models.Release{}).
		Where("game_id = ? AND platform_id = ?", fx.game.ID, platformID).
		Updates(map[string]interface{}{
			"total_player_rating": total,
			"num_players_rated":   count,
		}).Error
	require.NoError(t, err)
}

// assertTotals checks a release's running aggregates against expectations,
// where a negative count means "both must be NULL".
func (fx *fixture) assertTotals(t *testing.T, platformID uint, total float64, count int64) {
	t.Helper()
	rel := fx.release(t, platformID)
	if count < 0 {
		assert.Nil(t, rel.TotalPlayerRating, "total should be NULL")
		assert.Nil(t, rel.NumPlayersRated, "count should be NULL")
		return
	}
	require.NotNil(t, rel.TotalPlayerRating)
	require.NotNil(t, rel.NumPlayersRated)
	assert.InDelta(t, total, *rel.TotalPlayerRating, 1e-9)
	assert.EqualValues(t, count, *rel.NumPlayersRated)
}

func TestSubmit_FirstRatingOnEmptyRelease(t *testing.T) {
	fx := newFixture(t)

	require.NoError(t, fx.ledger.Submit(fx.user.ID, fx.game.ID, fx.platformA.ID, 4.5))

	fx.assertTotals(t, fx.platformA.ID, 4.5, 1)

	var row models.UserRating
	require.NoError(t, fx.db.Where("user_id = ? AND game_id = ?", fx.user.ID, fx.game.ID).First(&row).Error)
	assert.Equal(t, fx.platformA.ID, row.PlatformID)
	assert.InDelta(t, 4.5, row.Rating, 1e-9)
}

func TestSubmit_UpdateSamePlatformAdjustsTotals(t *testing.T) {
	fx := newFixture(t)

	// Other players' accumulated state before alice rates.
	fx.setTotals(t, fx.platformA.ID, 5.5, 3)
	seedOtherRaters(t, fx, fx.platformA.ID, 2.0, 2.0, 1.5)

	require.NoError(t, fx.ledger.Submit(fx.user.ID, fx.game.ID, fx.platformA.ID, 4.5))
	fx.assertTotals(t, fx.platformA.ID, 10, 4)

	require.NoError(t, fx.ledger.Submit(fx.user.ID, fx.game.ID, fx.platformA.ID, 2.0))
	fx.assertTotals(t, fx.platformA.ID, 7.5, 4)

	// Still a single rating row for (user, game).
	var n int64
	require.NoError(t, fx.db.Model(&models.UserRating{}).
		Where("user_id = ? AND game_id = ?", fx.user.ID, fx.game.ID).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestSubmit_MoveToOtherPlatform(t *testing.T) {
	fx := newFixture(t)

	require.NoError(t, fx.ledger.Submit(fx.user.ID, fx.game.ID, fx.platformA.ID, 4.0))
	fx.assertTotals(t, fx.platformA.ID, 4.0, 1)
	fx.assertTotals(t, fx.platformB.ID, 0, -1)

	require.NoError(t, fx.ledger.Submit(fx.user.ID, fx.game.ID, fx.platformB.ID, 3.5))

	// Platform A dropped to zero raters, so its aggregates reset to NULL
	// rather than keeping a zero count or a stale sum.
	fx.assertTotals(t, fx.platformA.ID, 0, -1)
	fx.assertTotals(t, fx.platformB.ID, 3.5, 1)

	var row models.UserRating
	require.NoError(t, fx.db.Where("user_id = ? AND game_id = ?", fx.user.ID, fx.game.ID).First(&row).Error)
	assert.Equal(t, fx.platformB.ID, row.PlatformID)
	assert.InDelta(t, 3.5, row.Rating, 1e-9)
}

func TestSubmit_MoveKeepsOtherRaters(t *testing.T) {
	fx := newFixture(t)

	require.NoError(t, fx.ledger.Submit(fx.user2.ID, fx.game.ID, fx.platformA.ID, 5.0))
	require.NoError(t, fx.ledger.Submit(fx.user.ID, fx.game.ID, fx.platformA.ID, 3.0))
	fx.assertTotals(t, fx.platformA.ID, 8.0, 2)

	require.NoError(t, fx.ledger.Submit(fx.user.ID, fx.game.ID, fx.platformB.ID, 3.0))
	fx.assertTotals(t, fx.platformA.ID, 5.0, 1)
	fx.assertTotals(t, fx.platformB.ID, 3.0, 1)
}

func TestSubmit_ResubmitIdenticalRatingIsNetNoop(t *testing.T) {
	fx := newFixture(t)

	require.NoError(t, fx.ledger.Submit(fx.user.ID, fx.game.ID, fx.platformA.ID, 3.5))
	require.NoError(t, fx.ledger.Submit(fx.user.ID, fx.game.ID, fx.platformA.ID, 3.5))

	fx.assertTotals(t, fx.platformA.ID, 3.5, 1)
}

func TestSubmit_InvalidRatings(t *testing.T) {
	fx := newFixture(t)

	for _, v := range []float64{-0.1, 5.1, 4.55, 3.14} {
		err := fx.ledger.Submit(fx.user.ID, fx.game.ID, fx.platformA.ID, v)
		assert.ErrorIs(t, err, ratings.ErrInvalidRating, "rating %v", v)
	}

	// Boundary values are fine.
	assert.NoError(t, fx.ledger.Submit(fx.user.ID, fx.game.ID, fx.platformA.ID, 0))
	assert.NoError(t, fx.ledger.Submit(fx.user.ID, fx.game.ID, fx.platformA.ID, 5))
}

func TestSubmit_UnknownReleaseLeavesStateUntouched(t *testing.T) {
	fx := newFixture(t)

	require.NoError(t, fx.ledger.Submit(fx.user.ID, fx.game.ID, fx.platformA.ID, 4.0))

	err := fx.ledger.Submit(fx.user.ID, fx.game.ID, 9999, 2.0)
	assert.ErrorIs(t, err, ratings.ErrReleaseNotFound)

	// The failed submission rolled back: old rating and totals intact.
	fx.assertTotals(t, fx.platformA.ID, 4.0, 1)
	var row models.UserRating
	require.NoError(t, fx.db.Where("user_id = ? AND game_id = ?", fx.user.ID, fx.game.ID).First(&row).Error)
	assert.Equal(t, fx.platformA.ID, row.PlatformID)
	assert.InDelta(t, 4.0, row.Rating, 1e-9)
}

// TestSubmit_InvariantHoldsAcrossSequences replays a mixed sequence of
// submissions and checks after every step that each release's count equals
// its rating-row count and its total equals the exact sum of row values.
func TestSubmit_InvariantHoldsAcrossSequences(t *testing.T) {
	fx := newFixture(t)

	steps := []struct {
		userID     uint
		platformID uint
		rating     float64
	}{
		{fx.user.ID, fx.platformA.ID, 4.5},
		{fx.user2.ID, fx.platformA.ID, 2.0},
		{fx.user.ID, fx.platformB.ID, 3.0},
		{fx.user.ID, fx.platformB.ID, 3.0},
		{fx.user2.ID, fx.platformB.ID, 5.0},
		{fx.user.ID, fx.platformA.ID, 1.5},
	}

	for i, s := range steps {
		require.NoError(t, fx.ledger.Submit(s.userID, fx.game.ID, s.platformID, s.rating), "step %d", i)
		for _, pid := range []uint{fx.platformA.ID, fx.platformB.ID} {
			assertLedgerInvariant(t, fx, pid)
		}
	}
}

func assertLedgerInvariant(t *testing.T, fx *fixture, platformID uint) {
	t.Helper()

	rel := fx.release(t, platformID)

	var rows []models.UserRating
	require.NoError(t, fx.db.Where("game_id = ? AND platform_id = ?", fx.game.ID, platformID).Find(&rows).Error)

	if len(rows) == 0 {
		assert.Nil(t, rel.TotalPlayerRating)
		assert.Nil(t, rel.NumPlayersRated)
		return
	}

	var sum float64
	for _, r := range rows {
		sum += r.Rating
	}
	require.NotNil(t, rel.TotalPlayerRating)
	require.NotNil(t, rel.NumPlayersRated)
	assert.EqualValues(t, len(rows), *rel.NumPlayersRated)
	assert.InDelta(t, sum, *rel.TotalPlayerRating, 1e-9)
}

// seedOtherRaters backfills rating rows matching totals that were seeded
// directly on a release, keeping the ledger invariant intact for tests
// that start from accumulated state.
func seedOtherRaters(t *testing.T, fx *fixture, platformID uint, values ...float64) {
	t.Helper()
	for k, v := range values {
		tag := uuid.NewString()[:8]
		u := models.User{
			Username:     fmt.Sprintf("rater-%d-%s", k, tag),
			Email:        fmt.Sprintf("rater-%d-%s@example.com", k, tag),
			PasswordHash: "x",
		}
		require.NoError(t, fx.db.Create(&u).Error)
		require.NoError(t, fx.db.Create(&models.UserRating{
			UserID:     u.ID,
			GameID:     fx.game.ID,
			PlatformID: platformID,
			Rating:     v,
		}).Error)
	}
}

func TestValidRating(t *testing.T) {
	valid := []float64{0, 0.5, 2.3, 5}
	for _, v := range valid {
		assert.True(t, ratings.ValidRating(v), "%v", v)
	}
	invalid := []float64{-1, 5.5, 0.05, 4.99}
	for _, v := range invalid {
		assert.False(t, ratings.ValidRating(v), "%v", v)
	}
}
