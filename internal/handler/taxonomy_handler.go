package handler

import (
	"net/http"

	"gamedex/backend/internal/database"
	"gamedex/backend/internal/models"
	"gamedex/backend/internal/query"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// TaxonomyDetailResponse is the aggregate view of one taxonomy value.
type TaxonomyDetailResponse struct {
	Kind         string   `json:"kind"`
	Name         string   `json:"name"`
	NumGames     int64    `json:"num_games"`
	CriticRating *float64 `json:"critic_rating"`
	UserRating   *float64 `json:"user_rating"`
}

// endregion

// GetTaxonomies godoc
// @Summary      List every taxonomy value grouped by kind
// @Tags         taxonomies
// @Produce      json
// @Success      200 {object} map[string][]string
// @Router       /taxonomies [get]
func GetTaxonomies(c *gin.Context) {
	var values []models.TaxonomyValue
	if err := database.DB.Order("kind, name").Find(&values).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve taxonomies"})
		return
	}

	grouped := make(map[string][]string, len(models.TaxonomyKinds))
	for _, k := range models.TaxonomyKinds {
		grouped[string(k)] = []string{}
	}
	for _, v := range values {
		grouped[string(v.Kind)] = append(grouped[string(v.Kind)], v.Name)
	}

	c.JSON(http.StatusOK, grouped)
}

// findTaxonomyValue resolves the :kind/:value route parameters, replying
// with a 404 and returning ok=false when either is unknown.
func findTaxonomyValue(c *gin.Context) (models.TaxonomyValue, bool) {
	kind, ok := models.ParseTaxonomyKind(c.Param("kind"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown taxonomy kind"})
		return models.TaxonomyValue{}, false
	}

	var value models.TaxonomyValue
	err := database.DB.Where("kind = ? AND name = ?", kind, c.Param("value")).First(&value).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Taxonomy value not found"})
		return models.TaxonomyValue{}, false
	}
	return value, true
}

// GetTaxonomyValue godoc
// @Summary      Get a taxonomy value's aggregate statistics
// @Description  Retrieves the number of games tagged with the value plus the critic average and weighted user average over their releases.
// @Tags         taxonomies
// @Produce      json
// @Param        kind  path string true "Taxonomy kind"
// @Param        value path string true "Taxonomy value name"
// @Success      200 {object} TaxonomyDetailResponse
// @Failure      404 {object} ErrorResponse
// @Router       /taxonomies/{kind}/{value} [get]
func GetTaxonomyValue(c *gin.Context) {
	value, ok := findTaxonomyValue(c)
	if !ok {
		return
	}

	var numGames int64
	err := database.DB.Table("game_taxonomies").
		Where("taxonomy_value_id = ?", value.ID).
		Distinct("game_id").
		Count(&numGames).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count games"})
		return
	}

	criticAvg, userAvg, err := scopeStats(`
		SELECT AVG(r.critic_pct) AS critic_avg,
		       SUM(r.total_player_rating) / NULLIF(SUM(r.num_players_rated), 0) AS user_avg
		FROM releases r
		INNER JOIN game_taxonomies gt ON gt.game_id = r.game_id
		WHERE gt.taxonomy_value_id = ? AND r.deleted_at IS NULL`, value.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statistics"})
		return
	}

	c.JSON(http.StatusOK, TaxonomyDetailResponse{
		Kind:         string(value.Kind),
		Name:         value.Name,
		NumGames:     numGames,
		CriticRating: criticAvg,
		UserRating:   userAvg,
	})
}

// GetTaxonomyGames godoc
// @Summary      List the games tagged with a taxonomy value
// @Tags         taxonomies
// @Produce      json
// @Param        kind  path  string true "Taxonomy kind"
// @Param        value path  string true "Taxonomy value name"
// @Param        page  query int    false "Page number" default(1)
// @Success      200 {object} PaginatedResponse[GameListItem]
// @Failure      404 {object} ErrorResponse
// @Router       /taxonomies/{kind}/{value}/games [get]
func GetTaxonomyGames(c *gin.Context) {
	value, ok := findTaxonomyValue(c)
	if !ok {
		return
	}

	filter := query.GameFilter{
		Taxonomy: &query.TaxonomyFilter{Kind: value.Kind, Value: value.Name},
		Sort:     query.SortByName,
	}
	listGames(c, filter, pageParam(c))
}
