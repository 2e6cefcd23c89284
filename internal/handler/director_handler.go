package handler

import (
	"net/http"
	"strconv"

	"gamedex/backend/internal/database"
	"gamedex/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// DirectorListItem is one row of the director list.
type DirectorListItem struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	PictureURL    string `json:"picture_url"`
	DirectedCount int64  `json:"directed_count"`
}

// DirectorDetailResponse is the full director view.
type DirectorDetailResponse struct {
	ID            uint          `json:"id"`
	Name          string        `json:"name"`
	PictureURL    string        `json:"picture_url"`
	Biography     string        `json:"biography"`
	DirectedCount int           `json:"directed_count"`
	CriticRating  *float64      `json:"critic_rating"`
	UserRating    *float64      `json:"user_rating"`
	Games         []GameSummary `json:"games"`
	Websites      []string      `json:"websites"`
}

// endregion

// GetDirectors godoc
// @Summary      List directors
// @Description  Retrieves a paginated director list with directed game counts.
// @Tags         directors
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Success      200 {object} PaginatedResponse[DirectorListItem]
// @Router       /directors [get]
func GetDirectors(c *gin.Context) {
	page := pageParam(c)

	var totalItems int64
	if err := database.DB.Model(&models.Director{}).Count(&totalItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count directors"})
		return
	}

	var rows []DirectorListItem
	err := database.DB.Raw(`
		SELECT d.id, d.name, d.picture_url,
		       (SELECT COUNT(*) FROM game_directors gd WHERE gd.director_id = d.id) AS directed_count
		FROM directors d
		WHERE d.deleted_at IS NULL
		ORDER BY d.name
		LIMIT ? OFFSET ?`, PageSize, pageOffset(page)).Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve directors"})
		return
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(rows, totalItems, page))
}

// GetDirectorByID godoc
// @Summary      Get a single director
// @Description  Retrieves director details with aggregate ratings over the releases of their games.
// @Tags         directors
// @Produce      json
// @Param        id path int true "Director ID"
// @Success      200 {object} DirectorDetailResponse
// @Failure      404 {object} ErrorResponse "Director not found"
// @Router       /directors/{id} [get]
func GetDirectorByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var director models.Director
	err := database.DB.
		Preload("Games").
		Preload("Websites").
		First(&director, id).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Director not found"})
		return
	}

	criticAvg, userAvg, err := scopeStats(`
		SELECT AVG(r.critic_pct) AS critic_avg,
		       SUM(r.total_player_rating) / NULLIF(SUM(r.num_players_rated), 0) AS user_avg
		FROM releases r
		INNER JOIN game_directors gd ON gd.game_id = r.game_id
		WHERE gd.director_id = ? AND r.deleted_at IS NULL`, director.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statistics"})
		return
	}

	websites := make([]string, 0, len(director.Websites))
	for _, w := range director.Websites {
		websites = append(websites, w.URL)
	}

	c.JSON(http.StatusOK, DirectorDetailResponse{
		ID:            director.ID,
		Name:          director.Name,
		PictureURL:    director.PictureURL,
		Biography:     director.Biography,
		DirectedCount: len(director.Games),
		CriticRating:  criticAvg,
		UserRating:    userAvg,
		Games:         gameSummaries(director.Games),
		Websites:      websites,
	})
}
