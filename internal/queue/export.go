package queue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ryuzo-k/kokoro-graph/internal/storage"
	"github.com/ryuzo-k/kokoro-graph/internal/util"
	"github.com/ryuzo-k/kokoro-graph/pkg/analytics"
	"github.com/ryuzo-k/kokoro-graph/pkg/common"
	"github.com/ryuzo-k/kokoro-graph/pkg/layout"
	"github.com/ryuzo-k/kokoro-graph/pkg/logger"
	"github.com/ryuzo-k/kokoro-graph/pkg/network"
	"github.com/ryuzo-k/kokoro-graph/pkg/store"

	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
)

// NetworkSnapshot is the exported document: the full derived view of
// one owner's network at a point in time.
type NetworkSnapshot struct {
	OwnerID     string                           `json:"owner_id"`
	ExportedAt  time.Time                        `json:"exported_at"`
	People      []common.Person                  `json:"people"`
	Connections []common.Connection              `json:"connections"`
	Positions   map[string]layout.Point          `json:"positions"`
	Metrics     map[string]analytics.NodeMetrics `json:"metrics"`
	Influence   map[string]float64               `json:"influence"`
}

// ProcessExportMessage computes the owner's full network view, uploads
// it as a JSON snapshot, and records the object key.
func ProcessExportMessage(
	ctx context.Context,
	s3Client *awss3.Client,
	networkStorage store.NetworkStorage,
	msg string,
) error {
	data := new(ExportMessage)
	if err := json.Unmarshal([]byte(msg), data); err != nil {
		return err
	}
	if data.OwnerID == "" {
		return fmt.Errorf("export message has no owner")
	}

	meetings, err := networkStorage.ListMeetings(ctx, data.OwnerID)
	if err != nil {
		return err
	}
	details, err := networkStorage.ListPersonDetails(ctx, data.OwnerID)
	if err != nil {
		return err
	}
	relationships, err := networkStorage.ListRelationships(ctx, data.OwnerID)
	if err != nil {
		return err
	}

	people, connections, err := network.Aggregate(meetings, details)
	if err != nil {
		return fmt.Errorf("aggregate: %w", err)
	}

	analyzer := analytics.NewAnalyzer(relationships, people)
	snapshot := NetworkSnapshot{
		OwnerID:     data.OwnerID,
		ExportedAt:  time.Now().UTC(),
		People:      people,
		Connections: connections,
		Positions:   layout.Compute(people, connections, layout.DefaultConfig()),
		Metrics:     analyzer.Metrics(),
		Influence:   analyzer.InfluenceMap(),
	}

	body, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	snapshotID, err := util.NewPublicID()
	if err != nil {
		return err
	}

	key, err := storage.PutSnapshot(ctx, s3Client, data.OwnerID, snapshotID, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("upload snapshot: %w", err)
	}

	if _, err := networkStorage.InsertSnapshot(ctx, common.Snapshot{
		ID:        snapshotID,
		OwnerID:   data.OwnerID,
		ObjectKey: key,
	}); err != nil {
		return fmt.Errorf("record snapshot: %w", err)
	}

	logger.Info("[Queue][Export] Exported snapshot",
		"owner", data.OwnerID,
		"key", key,
		"people", len(people),
	)
	return nil
}
