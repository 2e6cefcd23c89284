package handler

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"gamedex/backend/internal/database"
	"gamedex/backend/internal/models"
	"gamedex/backend/internal/query"
	"gamedex/backend/internal/stats"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// GameListItem is one row of the filtered game list. The rating fields are
// null when no release carries data; they never collapse to zero.
type GameListItem struct {
	ID           uint     `json:"id"`
	Name         string   `json:"name"`
	CoverURL     string   `json:"cover_url"`
	CuratedScore *float64 `json:"curated_score"`
	CriticRating *float64 `json:"critic_rating"`
	UserRating   *float64 `json:"user_rating"`
}

// OwnRating is the calling user's rating of a game.
type OwnRating struct {
	Rating   float64 `json:"rating"`
	Platform string  `json:"platform"`
}

// GameDetailResponse is the full game view.
type GameDetailResponse struct {
	ID               uint                `json:"id"`
	Name             string              `json:"name"`
	Description      string              `json:"description"`
	CoverURL         string              `json:"cover_url"`
	SiteURL          string              `json:"site_url"`
	CuratedScore     *float64            `json:"curated_score"`
	FirstReleaseDate *time.Time          `json:"first_release_date"`
	CriticRating     *float64            `json:"critic_rating"`
	UserRating       *float64            `json:"user_rating"`
	Taxonomies       map[string][]string `json:"taxonomies"`
	Developers       []CompanyRef        `json:"developers"`
	Publishers       []CompanyRef        `json:"publishers"`
	Directors        []DirectorRef       `json:"directors"`
	MyRating         *OwnRating          `json:"my_rating,omitempty"`
}

// ReleaseResponse is one platform release of a game.
type ReleaseResponse struct {
	PlatformID     uint       `json:"platform_id"`
	Platform       string     `json:"platform"`
	ReleaseDate    *time.Time `json:"release_date"`
	BusinessModel  string     `json:"business_model"`
	MaturityRating string     `json:"maturity_rating"`
	Price          *float64   `json:"price"`
	CriticRating   *float64   `json:"critic_rating"`
	UserRating     *float64   `json:"user_rating"`
	Media          []string   `json:"media"`
	InputDevices   []string   `json:"input_devices"`
}

// endregion

// gameFilterFromQuery maps the request parameters to a typed filter.
// "All" (or absence) means unfiltered; unrecognized values are silently
// treated as defaults, never an error.
func gameFilterFromQuery(c *gin.Context) query.GameFilter {
	f := query.GameFilter{
		Sort: query.ParseSortKey(c.DefaultQuery("order_by", string(query.SortByName))),
	}

	if y := c.DefaultQuery("year", query.Unfiltered); y != query.Unfiltered {
		if year, err := strconv.Atoi(y); err == nil {
			f.Year = &year
		}
	}

	if g := c.DefaultQuery("genre", query.Unfiltered); g != query.Unfiltered && g != "" {
		f.Taxonomy = &query.TaxonomyFilter{Kind: models.KindGenre, Value: g}
	} else if kindStr := c.Query("taxonomy_kind"); kindStr != "" {
		if kind, ok := models.ParseTaxonomyKind(kindStr); ok {
			if v := c.Query("taxonomy_value"); v != "" && v != query.Unfiltered {
				f.Taxonomy = &query.TaxonomyFilter{Kind: kind, Value: v}
			}
		}
	}

	if p := c.DefaultQuery("platform", query.Unfiltered); p != query.Unfiltered && p != "" {
		f.Platform = p
	}

	return f
}

// listGames runs a filter's count and page queries and wraps the rows in
// pagination metadata. Both queries share one predicate set; minor
// staleness between the two is accepted.
func listGames(c *gin.Context, filter query.GameFilter, page int) {
	countSQL, countArgs, err := filter.Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build query"})
		return
	}

	var totalItems int64
	if err := database.DB.Raw(countSQL, countArgs...).Scan(&totalItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count games"})
		return
	}

	pageSQL, pageArgs, err := filter.Page(PageSize, uint(pageOffset(page)))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build query"})
		return
	}

	var rows []query.GameRow
	if err := database.DB.Raw(pageSQL, pageArgs...).Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve games"})
		return
	}

	items := make([]GameListItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, GameListItem{
			ID:           r.ID,
			Name:         r.Name,
			CoverURL:     r.CoverURL,
			CuratedScore: r.CuratedScore,
			CriticRating: stats.Round1Ptr(r.CriticAvg),
			UserRating:   stats.Round1Ptr(r.UserAvg),
		})
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(items, totalItems, page))
}

// GetGames godoc
// @Summary      List games
// @Description  Retrieves a paginated game list with optional year, genre, taxonomy and platform filters.
// @Tags         games
// @Produce      json
// @Param        page            query  int     false  "Page number" default(1)
// @Param        year            query  string  false  "Earliest-release year, or All"
// @Param        genre           query  string  false  "Genre name, or All"
// @Param        taxonomy_kind   query  string  false  "Taxonomy kind (genre, setting, ...)"
// @Param        taxonomy_value  query  string  false  "Taxonomy value name"
// @Param        platform        query  string  false  "Platform name, or All"
// @Param        order_by        query  string  false  "Name, CriticRating, UserRating or CuratedScore"
// @Success      200  {object}  PaginatedResponse[GameListItem]
// @Router       /games [get]
func GetGames(c *gin.Context) {
	listGames(c, gameFilterFromQuery(c), pageParam(c))
}

// GetGameByID godoc
// @Summary      Get a single game
// @Description  Retrieves game details with taxonomy values, credits, aggregate ratings, and the caller's own rating when authenticated.
// @Tags         games
// @Produce      json
// @Param        id path int true "Game ID"
// @Success      200 {object} GameDetailResponse
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /games/{id} [get]
func GetGameByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var game models.Game
	err := database.DB.
		Preload("Releases").
		Preload("Taxonomies").
		Preload("Directors").
		Preload("Developers").
		Preload("Publishers").
		First(&game, id).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	resp := GameDetailResponse{
		ID:           game.ID,
		Name:         game.Name,
		Description:  game.Description,
		CoverURL:     game.CoverURL,
		SiteURL:      game.SiteURL,
		CuratedScore: game.CuratedScore,
		Taxonomies:   groupTaxonomies(game.Taxonomies),
		Developers:   companyRefs(game.Developers),
		Publishers:   companyRefs(game.Publishers),
		Directors:    directorRefs(game.Directors),
	}

	releaseRows := make([]stats.ReleaseStats, 0, len(game.Releases))
	for _, r := range game.Releases {
		releaseRows = append(releaseRows, stats.ReleaseStats{
			CriticPct:         r.CriticPct,
			TotalPlayerRating: r.TotalPlayerRating,
			NumPlayersRated:   r.NumPlayersRated,
		})
		if r.ReleaseDate != nil &&
			(resp.FirstReleaseDate == nil || r.ReleaseDate.Before(*resp.FirstReleaseDate)) {
			resp.FirstReleaseDate = r.ReleaseDate
		}
	}
	resp.CriticRating, resp.UserRating = stats.Summarize(releaseRows)

	if userID, ok := currentUserID(c); ok {
		var mine models.UserRating
		err := database.DB.Preload("Platform").
			Where("user_id = ? AND game_id = ?", userID, game.ID).
			First(&mine).Error
		if err == nil {
			resp.MyRating = &OwnRating{Rating: mine.Rating, Platform: mine.Platform.Name}
		}
	}

	c.JSON(http.StatusOK, resp)
}

// GetGameReleases godoc
// @Summary      List a game's platform releases
// @Description  Retrieves every release of a game with its media types, input devices, and per-release user average.
// @Tags         games
// @Produce      json
// @Param        id path int true "Game ID"
// @Success      200 {array} ReleaseResponse
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /games/{id}/releases [get]
func GetGameReleases(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var game models.Game
	if err := database.DB.First(&game, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	var releases []models.Release
	err := database.DB.
		Preload("Platform").
		Preload("Media").
		Preload("InputDevices").
		Where("game_id = ?", game.ID).
		Find(&releases).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve releases"})
		return
	}

	sort.Slice(releases, func(i, j int) bool {
		di, dj := releases[i].ReleaseDate, releases[j].ReleaseDate
		switch {
		case di == nil && dj != nil:
			return true
		case di != nil && dj == nil:
			return false
		case di != nil && dj != nil && !di.Equal(*dj):
			return di.Before(*dj)
		}
		return releases[i].Platform.Name < releases[j].Platform.Name
	})

	resp := make([]ReleaseResponse, 0, len(releases))
	for _, r := range releases {
		media := make([]string, 0, len(r.Media))
		for _, m := range r.Media {
			media = append(media, m.Name)
		}
		devices := make([]string, 0, len(r.InputDevices))
		for _, d := range r.InputDevices {
			devices = append(devices, d.Name)
		}

		resp = append(resp, ReleaseResponse{
			PlatformID:     r.PlatformID,
			Platform:       r.Platform.Name,
			ReleaseDate:    r.ReleaseDate,
			BusinessModel:  r.BusinessModel,
			MaturityRating: r.MaturityRating,
			Price:          r.Price,
			CriticRating:   r.CriticPct,
			UserRating:     stats.ReleaseAverage(r.TotalPlayerRating, r.NumPlayersRated),
			Media:          media,
			InputDevices:   devices,
		})
	}

	c.JSON(http.StatusOK, resp)
}

func groupTaxonomies(values []*models.TaxonomyValue) map[string][]string {
	grouped := make(map[string][]string, len(models.TaxonomyKinds))
	for _, v := range values {
		if v == nil {
			continue
		}
		grouped[string(v.Kind)] = append(grouped[string(v.Kind)], v.Name)
	}
	for _, names := range grouped {
		sort.Strings(names)
	}
	return grouped
}

func companyRefs(companies []*models.Company) []CompanyRef {
	refs := make([]CompanyRef, 0, len(companies))
	for _, co := range companies {
		if co == nil {
			continue
		}
		refs = append(refs, CompanyRef{ID: co.ID, Name: co.Name, LogoURL: co.LogoURL})
	}
	return refs
}

func directorRefs(directors []*models.Director) []DirectorRef {
	refs := make([]DirectorRef, 0, len(directors))
	for _, d := range directors {
		if d == nil {
			continue
		}
		refs = append(refs, DirectorRef{ID: d.ID, Name: d.Name})
	}
	return refs
}
