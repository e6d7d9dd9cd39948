package routes

import (
	"net/http"
	"time"

	"github.com/ryuzo-k/kokoro-graph/internal/server/middleware"
	"github.com/ryuzo-k/kokoro-graph/pkg/common"
	pgstore "github.com/ryuzo-k/kokoro-graph/pkg/store/pgx"

	"github.com/labstack/echo/v4"
)

func CreateMeetingHandler(c echo.Context) error {
	type dimensionScoresParams struct {
		Trustworthiness int `json:"trustworthiness" validate:"omitempty,min=1,max=5"`
		Expertise       int `json:"expertise" validate:"omitempty,min=1,max=5"`
		Communication   int `json:"communication" validate:"omitempty,min=1,max=5"`
		Collaboration   int `json:"collaboration" validate:"omitempty,min=1,max=5"`
		Leadership      int `json:"leadership" validate:"omitempty,min=1,max=5"`
		Innovation      int `json:"innovation" validate:"omitempty,min=1,max=5"`
		Integrity       int `json:"integrity" validate:"omitempty,min=1,max=5"`
	}

	type createMeetingParams struct {
		InitiatorName string                 `json:"initiator_name" validate:"required"`
		SubjectName   string                 `json:"subject_name" validate:"required"`
		Location      string                 `json:"location"`
		Rating        int                    `json:"rating" validate:"required,min=1,max=5"`
		Feedback      string                 `json:"feedback"`
		Scores        *dimensionScoresParams `json:"scores"`
	}

	params := new(createMeetingParams)
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

	meeting := common.Meeting{
		InitiatorName: params.InitiatorName,
		SubjectName:   params.SubjectName,
		Location:      params.Location,
		Rating:        params.Rating,
		Feedback:      params.Feedback,
		CreatedAt:     time.Now().UTC(),
	}
	if params.Scores != nil {
		meeting.Scores = &common.DimensionScores{
			Trustworthiness: params.Scores.Trustworthiness,
			Expertise:       params.Scores.Expertise,
			Communication:   params.Scores.Communication,
			Collaboration:   params.Scores.Collaboration,
			Leadership:      params.Scores.Leadership,
			Innovation:      params.Scores.Innovation,
			Integrity:       params.Scores.Integrity,
		}
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	storage := pgstore.NewNetworkDBStorageWithConnection(conn)

	created, err := storage.InsertMeeting(ctx, user.UserID, meeting)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusCreated, created)
}
