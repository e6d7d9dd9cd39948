package routes

import (
	"errors"
	"net/http"

	"github.com/ryuzo-k/kokoro-graph/internal/server/middleware"
	"github.com/ryuzo-k/kokoro-graph/pkg/match"
	"github.com/ryuzo-k/kokoro-graph/pkg/store"
	pgstore "github.com/ryuzo-k/kokoro-graph/pkg/store/pgx"

	"github.com/labstack/echo/v4"
)

func GetRecommendationsHandler(c echo.Context) error {
	type getRecommendationsResponse struct {
		Matches []match.CommunityMatch `json:"matches"`
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	storage := pgstore.NewNetworkDBStorageWithConnection(conn)

	profile, err := storage.GetProfile(ctx, user.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Profile not scored yet"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	communities, err := storage.ListCommunities(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, getRecommendationsResponse{
		Matches: match.Score(profile, communities),
	})
}
