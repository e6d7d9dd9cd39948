package routes

import (
	"net/http"

	"github.com/ryuzo-k/kokoro-graph/internal/server/middleware"
	pgstore "github.com/ryuzo-k/kokoro-graph/pkg/store/pgx"

	"github.com/labstack/echo/v4"
)

func GetMeetingsHandler(c echo.Context) error {
	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	storage := pgstore.NewNetworkDBStorageWithConnection(conn)

	meetings, err := storage.ListMeetings(ctx, user.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, meetings)
}
