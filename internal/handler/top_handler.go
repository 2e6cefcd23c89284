package handler

import (
	"net/http"

	"gamedex/backend/internal/database"
	"gamedex/backend/internal/models"
	"gamedex/backend/internal/stats"

	"github.com/gin-gonic/gin"
)

const topN = 5

// region --- DTOs ---

// TopGamesEntry holds the best games for one taxonomy value.
type TopGamesEntry struct {
	Value string        `json:"value"`
	Games []GameSummary `json:"games"`
}

// TopCompanyEntry holds the best developers for one genre.
type TopCompanyEntry struct {
	Value     string           `json:"value"`
	Companies []RatedRankedRow `json:"companies"`
}

// RatedRankedRow is one ranked row carrying an aggregate rating.
type RatedRankedRow struct {
	ID     uint     `json:"id"`
	Name   string   `json:"name"`
	Rating *float64 `json:"rating"`
}

// RankedDirector is one row of the directors-by-volume ranking.
type RankedDirector struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	NumGames int64  `json:"num_games"`
}

// Collaboration is a director and developer pair ranked by shared games.
type Collaboration struct {
	DirectorID   uint   `json:"director_id"`
	DirectorName string `json:"director_name"`
	CompanyID    uint   `json:"company_id"`
	CompanyName  string `json:"company_name"`
	NumGames     int64  `json:"num_games"`
}

// DreamPick is one winner of a dream game category.
type DreamPick struct {
	ID         uint     `json:"id"`
	Name       string   `json:"name"`
	UserRating *float64 `json:"user_rating"`
}

// DreamGameResponse names the highest player-rated contributor of every
// kind. Categories with no rated releases are null.
type DreamGameResponse struct {
	Developer *DreamPick            `json:"developer"`
	Publisher *DreamPick            `json:"publisher"`
	Director  *DreamPick            `json:"director"`
	Taxonomy  map[string]*DreamPick `json:"taxonomy"`
}

// endregion

// topGamesByKind builds the per-value top five for one taxonomy kind,
// ranked by curated score. Unscored games never place.
func topGamesByKind(kind models.TaxonomyKind) ([]TopGamesEntry, error) {
	var values []models.TaxonomyValue
	err := database.DB.Where("kind = ?", kind).Order("name").Find(&values).Error
	if err != nil {
		return nil, err
	}

	entries := make([]TopGamesEntry, 0, len(values))
	for _, v := range values {
		var games []GameSummary
		err := database.DB.Raw(`
			SELECT g.id, g.name, g.cover_url, g.curated_score
			FROM games g
			INNER JOIN game_taxonomies gt ON gt.game_id = g.id
			WHERE gt.taxonomy_value_id = ?
			  AND g.curated_score IS NOT NULL
			  AND g.deleted_at IS NULL
			ORDER BY g.curated_score DESC, g.name
			LIMIT ?`, v.ID, topN).Scan(&games).Error
		if err != nil {
			return nil, err
		}
		if games == nil {
			games = []GameSummary{}
		}
		entries = append(entries, TopGamesEntry{Value: v.Name, Games: games})
	}
	return entries, nil
}

// TopGamesByGenre godoc
// @Summary      Top five games of every genre by curated score
// @Tags         top
// @Produce      json
// @Success      200 {array} TopGamesEntry
// @Router       /top/games-by-genre [get]
func TopGamesByGenre(c *gin.Context) {
	entries, err := topGamesByKind(models.KindGenre)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rank games"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// TopGamesBySetting godoc
// @Summary      Top five games of every setting by curated score
// @Tags         top
// @Produce      json
// @Success      200 {array} TopGamesEntry
// @Router       /top/games-by-setting [get]
func TopGamesBySetting(c *gin.Context) {
	entries, err := topGamesByKind(models.KindSetting)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rank games"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// TopCompaniesByGenre godoc
// @Summary      Top five developers of every genre by critic average
// @Tags         top
// @Produce      json
// @Success      200 {array} TopCompanyEntry
// @Router       /top/companies-by-genre [get]
func TopCompaniesByGenre(c *gin.Context) {
	var values []models.TaxonomyValue
	err := database.DB.Where("kind = ?", models.KindGenre).Order("name").Find(&values).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rank companies"})
		return
	}

	entries := make([]TopCompanyEntry, 0, len(values))
	for _, v := range values {
		var rows []struct {
			ID        uint
			Name      string
			CriticAvg *float64
		}
		err := database.DB.Raw(`
			SELECT c.id, c.name, AVG(r.critic_pct) AS critic_avg
			FROM companies c
			INNER JOIN company_developed_games cdg ON cdg.company_id = c.id
			INNER JOIN game_taxonomies gt ON gt.game_id = cdg.game_id AND gt.taxonomy_value_id = ?
			INNER JOIN releases r ON r.game_id = cdg.game_id AND r.deleted_at IS NULL
			WHERE c.deleted_at IS NULL AND r.critic_pct IS NOT NULL
			GROUP BY c.id, c.name
			ORDER BY critic_avg DESC, c.name
			LIMIT ?`, v.ID, topN).Scan(&rows).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rank companies"})
			return
		}

		companies := make([]RatedRankedRow, 0, len(rows))
		for _, r := range rows {
			companies = append(companies, RatedRankedRow{
				ID:     r.ID,
				Name:   r.Name,
				Rating: stats.Round1Ptr(r.CriticAvg),
			})
		}
		entries = append(entries, TopCompanyEntry{Value: v.Name, Companies: companies})
	}

	c.JSON(http.StatusOK, entries)
}

// TopDirectorsByVolume godoc
// @Summary      Top five directors by number of directed games
// @Tags         top
// @Produce      json
// @Success      200 {array} RankedDirector
// @Router       /top/directors-by-volume [get]
func TopDirectorsByVolume(c *gin.Context) {
	var rows []RankedDirector
	err := database.DB.Raw(`
		SELECT d.id, d.name, COUNT(gd.game_id) AS num_games
		FROM directors d
		INNER JOIN game_directors gd ON gd.director_id = d.id
		WHERE d.deleted_at IS NULL
		GROUP BY d.id, d.name
		ORDER BY num_games DESC, d.name
		LIMIT ?`, topN).Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rank directors"})
		return
	}
	if rows == nil {
		rows = []RankedDirector{}
	}
	c.JSON(http.StatusOK, rows)
}

// TopCollaborations godoc
// @Summary      Top five director and developer pairs by shared games
// @Tags         top
// @Produce      json
// @Success      200 {array} Collaboration
// @Router       /top/collaborations [get]
func TopCollaborations(c *gin.Context) {
	var rows []Collaboration
	err := database.DB.Raw(`
		SELECT d.id AS director_id, d.name AS director_name,
		       c.id AS company_id, c.name AS company_name,
		       COUNT(gd.game_id) AS num_games
		FROM game_directors gd
		INNER JOIN company_developed_games cdg ON cdg.game_id = gd.game_id
		INNER JOIN directors d ON d.id = gd.director_id AND d.deleted_at IS NULL
		INNER JOIN companies c ON c.id = cdg.company_id AND c.deleted_at IS NULL
		GROUP BY d.id, d.name, c.id, c.name
		ORDER BY num_games DESC, d.name, c.name
		LIMIT ?`, topN).Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rank collaborations"})
		return
	}
	if rows == nil {
		rows = []Collaboration{}
	}
	c.JSON(http.StatusOK, rows)
}

// dreamPick runs a ranking query whose rows are (id, name, user_avg) and
// returns the single best entry, or nil when no release has any raters.
func dreamPick(sql string, args ...interface{}) (*DreamPick, error) {
	var rows []struct {
		ID      uint
		Name    string
		UserAvg *float64
	}
	if err := database.DB.Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &DreamPick{
		ID:         rows[0].ID,
		Name:       rows[0].Name,
		UserRating: stats.Round1Ptr(rows[0].UserAvg),
	}, nil
}

// DreamGame godoc
// @Summary      The hypothetical best possible game
// @Description  Picks the developer, publisher, director, and taxonomy value of each kind whose games players rated highest. Only releases with at least one rater count.
// @Tags         top
// @Produce      json
// @Success      200 {object} DreamGameResponse
// @Router       /dream-game [get]
func DreamGame(c *gin.Context) {
	developer, err := dreamPick(`
		SELECT c.id, c.name,
		       SUM(r.total_player_rating) / SUM(r.num_players_rated) AS user_avg
		FROM companies c
		INNER JOIN company_developed_games cdg ON cdg.company_id = c.id
		INNER JOIN releases r ON r.game_id = cdg.game_id
		        AND r.deleted_at IS NULL AND r.num_players_rated > 0
		WHERE c.deleted_at IS NULL
		GROUP BY c.id, c.name
		ORDER BY user_avg DESC
		LIMIT 1`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assemble dream game"})
		return
	}

	publisher, err := dreamPick(`
		SELECT c.id, c.name,
		       SUM(r.total_player_rating) / SUM(r.num_players_rated) AS user_avg
		FROM companies c
		INNER JOIN company_published_games cpg ON cpg.company_id = c.id
		INNER JOIN releases r ON r.game_id = cpg.game_id
		        AND r.deleted_at IS NULL AND r.num_players_rated > 0
		WHERE c.deleted_at IS NULL
		GROUP BY c.id, c.name
		ORDER BY user_avg DESC
		LIMIT 1`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assemble dream game"})
		return
	}

	director, err := dreamPick(`
		SELECT d.id, d.name,
		       SUM(r.total_player_rating) / SUM(r.num_players_rated) AS user_avg
		FROM directors d
		INNER JOIN game_directors gd ON gd.director_id = d.id
		INNER JOIN releases r ON r.game_id = gd.game_id
		        AND r.deleted_at IS NULL AND r.num_players_rated > 0
		WHERE d.deleted_at IS NULL
		GROUP BY d.id, d.name
		ORDER BY user_avg DESC
		LIMIT 1`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assemble dream game"})
		return
	}

	taxonomy := make(map[string]*DreamPick, len(models.TaxonomyKinds))
	for _, kind := range models.TaxonomyKinds {
		pick, err := dreamPick(`
			SELECT tv.id, tv.name,
			       SUM(r.total_player_rating) / SUM(r.num_players_rated) AS user_avg
			FROM taxonomy_values tv
			INNER JOIN game_taxonomies gt ON gt.taxonomy_value_id = tv.id
			INNER JOIN releases r ON r.game_id = gt.game_id
			        AND r.deleted_at IS NULL AND r.num_players_rated > 0
			WHERE tv.kind = ? AND tv.deleted_at IS NULL
			GROUP BY tv.id, tv.name
			ORDER BY user_avg DESC
			LIMIT 1`, kind)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assemble dream game"})
			return
		}
		taxonomy[string(kind)] = pick
	}

	c.JSON(http.StatusOK, DreamGameResponse{
		Developer: developer,
		Publisher: publisher,
		Director:  director,
		Taxonomy:  taxonomy,
	})
}
