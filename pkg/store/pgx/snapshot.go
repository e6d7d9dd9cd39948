package pgx

import (
	"context"
	"fmt"
	"time"

	"github.com/ryuzo-k/kokoro-graph/internal/util"
	"github.com/ryuzo-k/kokoro-graph/pkg/common"
)

func (s *NetworkDBStorage) InsertSnapshot(ctx context.Context, snapshot common.Snapshot) (common.Snapshot, error) {
	if snapshot.ID == "" {
		id, err := util.NewPublicID()
		if err != nil {
			return common.Snapshot{}, err
		}
		snapshot.ID = id
	}
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = time.Now().UTC()
	}

	_, err := s.conn.Exec(ctx, `
		INSERT INTO snapshots (public_id, owner_id, object_key, created_at)
		VALUES ($1, $2, $3, $4)
	`, snapshot.ID, snapshot.OwnerID, snapshot.ObjectKey, snapshot.CreatedAt)
	if err != nil {
		return common.Snapshot{}, fmt.Errorf("insert snapshot: %w", err)
	}
	return snapshot, nil
}

func (s *NetworkDBStorage) ListSnapshots(ctx context.Context, ownerID string) ([]common.Snapshot, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT public_id, owner_id, object_key, created_at
		FROM snapshots
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := make([]common.Snapshot, 0)
	for rows.Next() {
		var snap common.Snapshot
		err := rows.Scan(&snap.ID, &snap.OwnerID, &snap.ObjectKey, &snap.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}
