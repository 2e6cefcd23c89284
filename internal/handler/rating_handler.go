package handler

import (
	"errors"
	"net/http"
	"strconv"

	"gamedex/backend/internal/database"
	"gamedex/backend/internal/models"
	"gamedex/backend/internal/ratings"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// RatingInput defines the structure for a rating submission.
type RatingInput struct {
	PlatformID uint     `json:"platform_id" binding:"required"`
	Rating     *float64 `json:"rating" binding:"required"`
}

// RatedGameResponse is one entry of a user's rating list.
type RatedGameResponse struct {
	GameID   uint    `json:"game_id"`
	Name     string  `json:"name"`
	CoverURL string  `json:"cover_url"`
	Platform string  `json:"platform"`
	Rating   float64 `json:"rating"`
}

// endregion

// SubmitRating godoc
// @Summary      Rate a game
// @Description  Creates or updates the caller's rating for a game on one platform. Moving to another platform moves the rating.
// @Tags         ratings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int          true  "Game ID"
// @Param        input body  RatingInput  true  "Platform and rating value"
// @Success      200 {object} map[string]string "{"message": "Rating saved"}"
// @Failure      400 {object} ErrorResponse "Invalid rating value"
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Game or release not found"
// @Failure      500 {object} ErrorResponse "Failed to save rating"
// @Router       /games/{id}/rating [post]
func SubmitRating(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	gameID, _ := strconv.Atoi(c.Param("id"))
	var game models.Game
	if err := database.DB.First(&game, gameID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	var input RatingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ledger := ratings.NewLedger(database.DB)
	err := ledger.Submit(userID, game.ID, input.PlatformID, *input.Rating)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Rating saved"})
	case errors.Is(err, ratings.ErrInvalidRating):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ratings.ErrReleaseNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		// The transaction rolled back; no partial totals were retained.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save rating"})
	}
}

// GetMyRatings godoc
// @Summary      List the caller's ratings
// @Description  Retrieves a paginated list of the games the caller has rated.
// @Tags         ratings
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page number" default(1)
// @Success      200 {object} PaginatedResponse[RatedGameResponse]
// @Failure      401 {object} ErrorResponse
// @Router       /users/me/ratings [get]
func GetMyRatings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	page := pageParam(c)

	var totalItems int64
	err := database.DB.Model(&models.UserRating{}).
		Where("user_id = ?", userID).
		Count(&totalItems).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count ratings"})
		return
	}

	var rows []models.UserRating
	err = database.DB.
		Preload("Game").
		Preload("Platform").
		Where("user_id = ?", userID).
		Order("id").
		Offset(pageOffset(page)).
		Limit(PageSize).
		Find(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ratings"})
		return
	}

	items := make([]RatedGameResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, RatedGameResponse{
			GameID:   r.GameID,
			Name:     r.Game.Name,
			CoverURL: r.Game.CoverURL,
			Platform: r.Platform.Name,
			Rating:   r.Rating,
		})
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(items, totalItems, page))
}
