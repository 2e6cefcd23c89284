package handler

import (
	"net/http"
	"strconv"

	"gamedex/backend/internal/database"
	"gamedex/backend/internal/models"
	"gamedex/backend/internal/query"
	"gamedex/backend/internal/stats"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// PlatformResponse is one platform in the catalog list.
type PlatformResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// PlatformDetailResponse is the aggregate view of one platform.
type PlatformDetailResponse struct {
	ID           uint     `json:"id"`
	Name         string   `json:"name"`
	NumGames     int64    `json:"num_games"`
	CriticRating *float64 `json:"critic_rating"`
	UserRating   *float64 `json:"user_rating"`
}

// endregion

// scopeStats runs an aggregate query returning critic_avg and user_avg
// columns and rounds both to one decimal, preserving "no data" as nil.
func scopeStats(sql string, args ...interface{}) (criticAvg, userAvg *float64, err error) {
	var row struct {
		CriticAvg *float64
		UserAvg   *float64
	}
	if err := database.DB.Raw(sql, args...).Scan(&row).Error; err != nil {
		return nil, nil, err
	}
	return stats.Round1Ptr(row.CriticAvg), stats.Round1Ptr(row.UserAvg), nil
}

// GetPlatforms godoc
// @Summary      List platforms
// @Tags         platforms
// @Produce      json
// @Success      200 {array} PlatformResponse
// @Router       /platforms [get]
func GetPlatforms(c *gin.Context) {
	var platforms []models.Platform
	if err := database.DB.Order("name").Find(&platforms).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve platforms"})
		return
	}

	resp := make([]PlatformResponse, 0, len(platforms))
	for _, p := range platforms {
		resp = append(resp, PlatformResponse{ID: p.ID, Name: p.Name})
	}
	c.JSON(http.StatusOK, resp)
}

// GetPlatformByID godoc
// @Summary      Get a platform's aggregate statistics
// @Description  Retrieves the number of games available on a platform plus its critic average and weighted user average.
// @Tags         platforms
// @Produce      json
// @Param        id path int true "Platform ID"
// @Success      200 {object} PlatformDetailResponse
// @Failure      404 {object} ErrorResponse "Platform not found"
// @Router       /platforms/{id} [get]
func GetPlatformByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var platform models.Platform
	if err := database.DB.First(&platform, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Platform not found"})
		return
	}

	var numGames int64
	err := database.DB.Model(&models.Release{}).
		Where("platform_id = ?", platform.ID).
		Count(&numGames).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count games"})
		return
	}

	criticAvg, userAvg, err := scopeStats(`
		SELECT AVG(critic_pct) AS critic_avg,
		       SUM(total_player_rating) / NULLIF(SUM(num_players_rated), 0) AS user_avg
		FROM releases
		WHERE platform_id = ? AND deleted_at IS NULL`, platform.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statistics"})
		return
	}

	c.JSON(http.StatusOK, PlatformDetailResponse{
		ID:           platform.ID,
		Name:         platform.Name,
		NumGames:     numGames,
		CriticRating: criticAvg,
		UserRating:   userAvg,
	})
}

// GetPlatformGames godoc
// @Summary      List the games available on a platform
// @Tags         platforms
// @Produce      json
// @Param        id   path  int true  "Platform ID"
// @Param        page query int false "Page number" default(1)
// @Success      200 {object} PaginatedResponse[GameListItem]
// @Failure      404 {object} ErrorResponse "Platform not found"
// @Router       /platforms/{id}/games [get]
func GetPlatformGames(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var platform models.Platform
	if err := database.DB.First(&platform, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Platform not found"})
		return
	}

	filter := query.GameFilter{Platform: platform.Name, Sort: query.SortByName}
	listGames(c, filter, pageParam(c))
}
