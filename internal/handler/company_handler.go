package handler

import (
	"net/http"
	"strconv"

	"gamedex/backend/internal/database"
	"gamedex/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// CompanyListItem is one row of the company list.
type CompanyListItem struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	LogoURL        string `json:"logo_url"`
	Country        string `json:"country"`
	DevelopedCount int64  `json:"developed_count"`
	PublishedCount int64  `json:"published_count"`
}

// RoleStats are the aggregate ratings over the releases of the games a
// company worked on in one role.
type RoleStats struct {
	NumGames     int      `json:"num_games"`
	CriticRating *float64 `json:"critic_rating"`
	UserRating   *float64 `json:"user_rating"`
}

// CompanyDetailResponse is the full company view.
type CompanyDetailResponse struct {
	ID             uint          `json:"id"`
	Name           string        `json:"name"`
	LogoURL        string        `json:"logo_url"`
	Overview       string        `json:"overview"`
	Country        string        `json:"country"`
	Developer      RoleStats     `json:"developer"`
	Publisher      RoleStats     `json:"publisher"`
	DevelopedGames []GameSummary `json:"developed_games"`
	PublishedGames []GameSummary `json:"published_games"`
	Websites       []string      `json:"websites"`
}

// endregion

// GetCompanies godoc
// @Summary      List companies
// @Description  Retrieves a paginated company list with developed and published game counts.
// @Tags         companies
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Success      200 {object} PaginatedResponse[CompanyListItem]
// @Router       /companies [get]
func GetCompanies(c *gin.Context) {
	page := pageParam(c)

	var totalItems int64
	if err := database.DB.Model(&models.Company{}).Count(&totalItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count companies"})
		return
	}

	var rows []CompanyListItem
	err := database.DB.Raw(`
		SELECT c.id, c.name, c.logo_url, c.country,
		       (SELECT COUNT(*) FROM company_developed_games cdg WHERE cdg.company_id = c.id) AS developed_count,
		       (SELECT COUNT(*) FROM company_published_games cpg WHERE cpg.company_id = c.id) AS published_count
		FROM companies c
		WHERE c.deleted_at IS NULL
		ORDER BY c.name
		LIMIT ? OFFSET ?`, PageSize, pageOffset(page)).Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve companies"})
		return
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(rows, totalItems, page))
}

// GetCompanyByID godoc
// @Summary      Get a single company
// @Description  Retrieves company details with per-role aggregate ratings, game lists, and websites.
// @Tags         companies
// @Produce      json
// @Param        id path int true "Company ID"
// @Success      200 {object} CompanyDetailResponse
// @Failure      404 {object} ErrorResponse "Company not found"
// @Router       /companies/{id} [get]
func GetCompanyByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var company models.Company
	err := database.DB.
		Preload("DevelopedGames").
		Preload("PublishedGames").
		Preload("Websites").
		First(&company, id).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		return
	}

	devCritic, devUser, err := scopeStats(`
		SELECT AVG(r.critic_pct) AS critic_avg,
		       SUM(r.total_player_rating) / NULLIF(SUM(r.num_players_rated), 0) AS user_avg
		FROM releases r
		INNER JOIN company_developed_games cdg ON cdg.game_id = r.game_id
		WHERE cdg.company_id = ? AND r.deleted_at IS NULL`, company.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statistics"})
		return
	}

	pubCritic, pubUser, err := scopeStats(`
		SELECT AVG(r.critic_pct) AS critic_avg,
		       SUM(r.total_player_rating) / NULLIF(SUM(r.num_players_rated), 0) AS user_avg
		FROM releases r
		INNER JOIN company_published_games cpg ON cpg.game_id = r.game_id
		WHERE cpg.company_id = ? AND r.deleted_at IS NULL`, company.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statistics"})
		return
	}

	websites := make([]string, 0, len(company.Websites))
	for _, w := range company.Websites {
		websites = append(websites, w.URL)
	}

	c.JSON(http.StatusOK, CompanyDetailResponse{
		ID:       company.ID,
		Name:     company.Name,
		LogoURL:  company.LogoURL,
		Overview: company.Overview,
		Country:  company.Country,
		Developer: RoleStats{
			NumGames:     len(company.DevelopedGames),
			CriticRating: devCritic,
			UserRating:   devUser,
		},
		Publisher: RoleStats{
			NumGames:     len(company.PublishedGames),
			CriticRating: pubCritic,
			UserRating:   pubUser,
		},
		DevelopedGames: gameSummaries(company.DevelopedGames),
		PublishedGames: gameSummaries(company.PublishedGames),
		Websites:       websites,
	})
}

func gameSummaries(games []*models.Game) []GameSummary {
	summaries := make([]GameSummary, 0, len(games))
	for _, g := range games {
		if g == nil {
			continue
		}
		summaries = append(summaries, GameSummary{
			ID:           g.ID,
			Name:         g.Name,
			CoverURL:     g.CoverURL,
			CuratedScore: g.CuratedScore,
		})
	}
	return summaries
}
