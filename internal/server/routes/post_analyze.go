package routes

import (
	"encoding/json"
	"net/http"

	"github.com/ryuzo-k/kokoro-graph/internal/queue"
	"github.com/ryuzo-k/kokoro-graph/internal/server/middleware"
	"github.com/ryuzo-k/kokoro-graph/pkg/logger"

	"github.com/labstack/echo/v4"
)

func AnalyzeNetworkHandler(c echo.Context) error {
	type refreshParams struct {
		Name         string `json:"name" validate:"required"`
		GithubURL    string `json:"github_url" validate:"omitempty,url"`
		LinkedinURL  string `json:"linkedin_url" validate:"omitempty,url"`
		PortfolioURL string `json:"portfolio_url" validate:"omitempty,url"`
	}

	type analyzeParams struct {
		Refresh *refreshParams `json:"refresh"`
	}

	type analyzeResponse struct {
		Message string `json:"message"`
	}

	params := new(analyzeParams)
	// The body is optional; a bare POST triggers a plain rebuild.
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, analyzeResponse{Message: "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, analyzeResponse{Message: "Invalid request params"})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, analyzeResponse{Message: "Unauthorized"})
	}

	msg := queue.AnalyzeMessage{OwnerID: user.UserID}
	if params.Refresh != nil {
		msg.Refresh = &queue.ProfileRefresh{
			Name:         params.Refresh.Name,
			GithubURL:    params.Refresh.GithubURL,
			LinkedinURL:  params.Refresh.LinkedinURL,
			PortfolioURL: params.Refresh.PortfolioURL,
		}
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, analyzeResponse{Message: "Internal server error"})
	}

	ch := c.(*middleware.AppContext).App.Queue
	if err := queue.PublishFIFO(ch, queue.AnalyzeQueue, payload); err != nil {
		logger.Error("[Server][Analyze] Failed to enqueue analysis", "err", err)
		return c.JSON(http.StatusInternalServerError, analyzeResponse{Message: "Internal server error"})
	}

	return c.JSON(http.StatusAccepted, analyzeResponse{Message: "Analysis queued"})
}
