package routes

import (
	"encoding/json"
	"net/http"

	"github.com/ryuzo-k/kokoro-graph/internal/queue"
	"github.com/ryuzo-k/kokoro-graph/internal/server/middleware"
	"github.com/ryuzo-k/kokoro-graph/pkg/logger"

	"github.com/labstack/echo/v4"
)

func ExportNetworkHandler(c echo.Context) error {
	type exportResponse struct {
		Message string `json:"message"`
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, exportResponse{Message: "Unauthorized"})
	}

	payload, err := json.Marshal(queue.ExportMessage{OwnerID: user.UserID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, exportResponse{Message: "Internal server error"})
	}

	ch := c.(*middleware.AppContext).App.Queue
	if err := queue.PublishFIFO(ch, queue.ExportQueue, payload); err != nil {
		logger.Error("[Server][Export] Failed to enqueue export", "err", err)
		return c.JSON(http.StatusInternalServerError, exportResponse{Message: "Internal server error"})
	}

	return c.JSON(http.StatusAccepted, exportResponse{Message: "Export queued"})
}
