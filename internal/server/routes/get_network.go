package routes

import (
	"net/http"

	"github.com/ryuzo-k/kokoro-graph/internal/server/middleware"
	"github.com/ryuzo-k/kokoro-graph/pkg/analytics"
	"github.com/ryuzo-k/kokoro-graph/pkg/common"
	"github.com/ryuzo-k/kokoro-graph/pkg/layout"
	"github.com/ryuzo-k/kokoro-graph/pkg/network"
	"github.com/ryuzo-k/kokoro-graph/pkg/store"
	pgstore "github.com/ryuzo-k/kokoro-graph/pkg/store/pgx"

	"github.com/labstack/echo/v4"
)

func loadAggregate(c echo.Context, storage store.NetworkStorage, ownerID string) ([]common.Person, []common.Connection, error) {
	ctx := c.Request().Context()

	meetings, err := storage.ListMeetings(ctx, ownerID)
	if err != nil {
		return nil, nil, err
	}
	details, err := storage.ListPersonDetails(ctx, ownerID)
	if err != nil {
		return nil, nil, err
	}
	return network.Aggregate(meetings, details)
}

func GetNetworkHandler(c echo.Context) error {
	type getNetworkParams struct {
		Iterations      int     `query:"iterations" validate:"omitempty,min=1,max=2000"`
		Charge          float64 `query:"charge" validate:"omitempty,lt=0"`
		RestLength      float64 `query:"rest_length" validate:"omitempty,gt=0"`
		CollisionRadius float64 `query:"collision_radius" validate:"omitempty,gt=0"`
	}

	type getNetworkResponse struct {
		People      []common.Person         `json:"people"`
		Connections []common.Connection     `json:"connections"`
		Positions   map[string]layout.Point `json:"positions"`
	}

	params := new(getNetworkParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	conn := c.(*middleware.AppContext).App.DBConn
	storage := pgstore.NewNetworkDBStorageWithConnection(conn)

	people, connections, err := loadAggregate(c, storage, user.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	cfg := layout.Config{
		Iterations:      params.Iterations,
		ChargeStrength:  params.Charge,
		LinkRestLength:  params.RestLength,
		CollisionRadius: params.CollisionRadius,
	}

	return c.JSON(http.StatusOK, getNetworkResponse{
		People:      people,
		Connections: connections,
		Positions:   layout.Compute(people, connections, cfg),
	})
}

func GetNetworkAnalyticsHandler(c echo.Context) error {
	type getNetworkAnalyticsResponse struct {
		Metrics     map[string]analytics.NodeMetrics `json:"metrics"`
		Influence   map[string]float64               `json:"influence"`
		Communities map[string]int                   `json:"communities"`
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	storage := pgstore.NewNetworkDBStorageWithConnection(conn)

	relationships, err := storage.ListRelationships(ctx, user.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	people, _, err := loadAggregate(c, storage, user.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	analyzer := analytics.NewAnalyzer(relationships, people)

	return c.JSON(http.StatusOK, getNetworkAnalyticsResponse{
		Metrics:     analyzer.Metrics(),
		Influence:   analyzer.InfluenceMap(),
		Communities: analyzer.Communities(),
	})
}

func GetNetworkPathHandler(c echo.Context) error {
	type getNetworkPathParams struct {
		From string `query:"from" validate:"required"`
		To   string `query:"to" validate:"required"`
	}

	type getNetworkPathResponse struct {
		Path []string `json:"path"`
	}

	params := new(getNetworkPathParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	storage := pgstore.NewNetworkDBStorageWithConnection(conn)

	relationships, err := storage.ListRelationships(ctx, user.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	people, _, err := loadAggregate(c, storage, user.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	analyzer := analytics.NewAnalyzer(relationships, people)

	return c.JSON(http.StatusOK, getNetworkPathResponse{
		Path: analyzer.ShortestPath(params.From, params.To),
	})
}

func GetNetworkSuggestionsHandler(c echo.Context) error {
	type getNetworkSuggestionsResponse struct {
		Suggestions map[string][]analytics.Suggestion `json:"suggestions"`
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	storage := pgstore.NewNetworkDBStorageWithConnection(conn)

	relationships, err := storage.ListRelationships(ctx, user.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	people, _, err := loadAggregate(c, storage, user.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	analyzer := analytics.NewAnalyzer(relationships, people)

	return c.JSON(http.StatusOK, getNetworkSuggestionsResponse{
		Suggestions: analyzer.SuggestConnections(),
	})
}
