package handler

import "github.com/gin-gonic/gin"

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// currentUserID returns the authenticated user's ID from the gin context,
// set by the auth middleware. ok is false for anonymous requests.
func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// GameSummary is the compact game representation used by listing and
// top-N views.
type GameSummary struct {
	ID           uint     `json:"id"`
	Name         string   `json:"name"`
	CoverURL     string   `json:"cover_url"`
	CuratedScore *float64 `json:"curated_score"`
}

// CompanyRef is the compact company representation embedded in other views.
type CompanyRef struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	LogoURL string `json:"logo_url"`
}

// DirectorRef is the compact director representation embedded in other views.
type DirectorRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
