package handlers

import (
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
	"github.com/pastryvapors/promohub/backend/internal/promo"
	"github.com/pastryvapors/promohub/backend/internal/repositories"
)

// RankingHandler serves the points leaderboard
type RankingHandler struct {
	userRepository repositories.UserRepository
}

// NewRankingHandler creates a new RankingHandler
func NewRankingHandler(userRepo repositories.UserRepository) *RankingHandler {
	return &RankingHandler{userRepository: userRepo}
}

// RegisterRankingRoutes registers leaderboard routes
func (h *RankingHandler) RegisterRankingRoutes(g *echo.Group) {
	g.GET("/rankings", h.GetRankings)
}

type rankingEntry struct {
	Position       int     `json:"position"`
	UserID         uint    `json:"user_id"`
	Name           string  `json:"name"`
	ProfilePicture string  `json:"profile_picture"`
	Rank           string  `json:"rank"`
	Points         int     `json:"points"`
	ApprovedPosts  int     `json:"approved_posts"`
	AveragePoints  float64 `json:"average_points"`
}

// GetRankings returns promoters ordered by points, plus the podium in
// display order (runner-up, leader, third place).
func (h *RankingHandler) GetRankings(c echo.Context) error {
	promoters, err := h.userRepository.GetPromoters()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	sort.SliceStable(promoters, func(i, j int) bool {
		return promoters[i].Points > promoters[j].Points
	})

	entries := make([]rankingEntry, 0, len(promoters))
	for i, p := range promoters {
		entries = append(entries, rankingEntry{
			Position:       i + 1,
			UserID:         p.ID,
			Name:           p.DisplayName(),
			ProfilePicture: p.ProfilePicture,
			Rank:           p.Rank,
			Points:         p.Points,
			ApprovedPosts:  p.TotalApprovedPosts,
			AveragePoints:  promo.AveragePoints(p.Points, p.TotalApprovedPosts),
		})
	}

	podium := make([]rankingEntry, 0, 3)
	for _, idx := range promo.PodiumIndexes(len(entries)) {
		podium = append(podium, entries[idx])
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"rankings": entries,
		"podium":   podium,
	})
}
