package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ryuzo-k/kokoro-graph/pkg/loader"
	"github.com/ryuzo-k/kokoro-graph/pkg/logger"
	"github.com/ryuzo-k/kokoro-graph/pkg/store"

	"github.com/rabbitmq/amqp091-go"
)

// ProcessImportMessage parses a CSV import payload, bulk-inserts the
// meetings, and chains an analyze run so the relationship graph catches
// up with the new data.
func ProcessImportMessage(
	ctx context.Context,
	storage store.NetworkStorage,
	ch *amqp091.Channel,
	msg string,
) error {
	data := new(ImportMessage)
	if err := json.Unmarshal([]byte(msg), data); err != nil {
		return err
	}
	if data.OwnerID == "" {
		return fmt.Errorf("import message has no owner")
	}

	meetings, err := loader.ParseMeetingsCSV(data.CSV)
	if err != nil {
		return fmt.Errorf("parse import: %w", err)
	}

	inserted, err := storage.BulkInsertMeetings(ctx, data.OwnerID, meetings)
	if err != nil {
		return fmt.Errorf("bulk insert: %w", err)
	}
	logger.Info("[Queue][Import] Imported meetings", "owner", data.OwnerID, "count", inserted)

	followUp, err := json.Marshal(AnalyzeMessage{OwnerID: data.OwnerID})
	if err != nil {
		return err
	}
	if err := PublishFIFO(ch, AnalyzeQueue, followUp); err != nil {
		return fmt.Errorf("enqueue analyze: %w", err)
	}

	return nil
}
