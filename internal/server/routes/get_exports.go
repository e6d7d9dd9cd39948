package routes

import (
	"net/http"
	"time"

	"github.com/ryuzo-k/kokoro-graph/internal/server/middleware"
	"github.com/ryuzo-k/kokoro-graph/internal/storage"
	"github.com/ryuzo-k/kokoro-graph/pkg/logger"
	pgstore "github.com/ryuzo-k/kokoro-graph/pkg/store/pgx"

	"github.com/labstack/echo/v4"
)

func GetExportsHandler(c echo.Context) error {
	type exportEntry struct {
		ID          string    `json:"id"`
		CreatedAt   time.Time `json:"created_at"`
		DownloadURL string    `json:"download_url,omitempty"`
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	store := pgstore.NewNetworkDBStorageWithConnection(conn)

	snapshots, err := store.ListSnapshots(ctx, user.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	s3Client := c.(*middleware.AppContext).App.S3

	entries := make([]exportEntry, 0, len(snapshots))
	for _, s := range snapshots {
		entry := exportEntry{ID: s.ID, CreatedAt: s.CreatedAt}
		url, err := storage.GenerateDownloadLink(ctx, s3Client, s.ObjectKey)
		if err != nil {
			// Surface the snapshot even when presigning fails, the
			// metadata is still useful.
			logger.Warn("[Server][Exports] Failed to presign snapshot", "key", s.ObjectKey, "err", err)
		} else {
			entry.DownloadURL = url
		}
		entries = append(entries, entry)
	}

	return c.JSON(http.StatusOK, entries)
}
