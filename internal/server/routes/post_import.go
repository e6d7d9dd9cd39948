package routes

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/ryuzo-k/kokoro-graph/internal/queue"
	"github.com/ryuzo-k/kokoro-graph/internal/server/middleware"
	"github.com/ryuzo-k/kokoro-graph/pkg/logger"

	"github.com/labstack/echo/v4"
)

func ImportMeetingsHandler(c echo.Context) error {
	type importResponse struct {
		Message string `json:"message"`
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, importResponse{Message: "Unauthorized"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, importResponse{Message: "Missing file upload"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, importResponse{Message: "Invalid file upload"})
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return c.JSON(http.StatusBadRequest, importResponse{Message: "Invalid file upload"})
	}
	if len(content) == 0 {
		return c.JSON(http.StatusBadRequest, importResponse{Message: "Uploaded file is empty"})
	}

	payload, err := json.Marshal(queue.ImportMessage{
		OwnerID: user.UserID,
		CSV:     content,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, importResponse{Message: "Internal server error"})
	}

	ch := c.(*middleware.AppContext).App.Queue
	if err := queue.PublishFIFO(ch, queue.ImportQueue, payload); err != nil {
		logger.Error("[Server][Import] Failed to enqueue import", "err", err)
		return c.JSON(http.StatusInternalServerError, importResponse{Message: "Internal server error"})
	}

	return c.JSON(http.StatusAccepted, importResponse{Message: "Import queued"})
}
