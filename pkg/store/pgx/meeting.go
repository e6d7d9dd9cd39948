package pgx

import (
	"context"
	"fmt"
	"time"

	"github.com/ryuzo-k/kokoro-graph/internal/util"
	"github.com/ryuzo-k/kokoro-graph/pkg/common"
	"github.com/ryuzo-k/kokoro-graph/pkg/logger"
	"github.com/ryuzo-k/kokoro-graph/pkg/store"
)

const meetingColumns = `
	public_id, initiator_name, subject_name, location, rating,
	trustworthiness, expertise, communication, collaboration,
	leadership, innovation, integrity, feedback, created_at`

func scanMeeting(row interface{ Scan(dest ...any) error }) (common.Meeting, error) {
	var m common.Meeting
	var dims [7]*int
	err := row.Scan(
		&m.ID, &m.InitiatorName, &m.SubjectName, &m.Location, &m.Rating,
		&dims[0], &dims[1], &dims[2], &dims[3], &dims[4], &dims[5], &dims[6],
		&m.Feedback, &m.CreatedAt,
	)
	if err != nil {
		return common.Meeting{}, err
	}

	for _, d := range dims {
		if d == nil {
			continue
		}
		m.Scores = &common.DimensionScores{}
		break
	}
	if m.Scores != nil {
		assign := func(dst *int, src *int) {
			if src != nil {
				*dst = *src
			}
		}
		assign(&m.Scores.Trustworthiness, dims[0])
		assign(&m.Scores.Expertise, dims[1])
		assign(&m.Scores.Communication, dims[2])
		assign(&m.Scores.Collaboration, dims[3])
		assign(&m.Scores.Leadership, dims[4])
		assign(&m.Scores.Innovation, dims[5])
		assign(&m.Scores.Integrity, dims[6])
	}
	return m, nil
}

func dimValues(scores *common.DimensionScores) [7]*int {
	var out [7]*int
	if scores == nil {
		return out
	}
	set := func(i int, v int) {
		if v != 0 {
			out[i] = &v
		}
	}
	set(0, scores.Trustworthiness)
	set(1, scores.Expertise)
	set(2, scores.Communication)
	set(3, scores.Collaboration)
	set(4, scores.Leadership)
	set(5, scores.Innovation)
	set(6, scores.Integrity)
	return out
}

func (s *NetworkDBStorage) ListMeetings(ctx context.Context, ownerID string) ([]common.Meeting, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT `+meetingColumns+`
		FROM meetings
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	defer rows.Close()

	meetings := make([]common.Meeting, 0)
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meeting: %w", err)
		}
		meetings = append(meetings, m)
	}
	return meetings, rows.Err()
}

func (s *NetworkDBStorage) InsertMeeting(ctx context.Context, ownerID string, meeting common.Meeting) (common.Meeting, error) {
	if meeting.ID == "" {
		id, err := util.NewPublicID()
		if err != nil {
			return common.Meeting{}, err
		}
		meeting.ID = id
	}
	if meeting.CreatedAt.IsZero() {
		meeting.CreatedAt = time.Now().UTC()
	}

	dims := dimValues(meeting.Scores)
	_, err := s.conn.Exec(ctx, `
		INSERT INTO meetings (
			public_id, owner_id, initiator_name, subject_name, location, rating,
			trustworthiness, expertise, communication, collaboration,
			leadership, innovation, integrity, feedback, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`,
		meeting.ID, ownerID, meeting.InitiatorName, meeting.SubjectName,
		meeting.Location, meeting.Rating,
		dims[0], dims[1], dims[2], dims[3], dims[4], dims[5], dims[6],
		meeting.Feedback, meeting.CreatedAt,
	)
	if err != nil {
		return common.Meeting{}, fmt.Errorf("insert meeting: %w", err)
	}
	return meeting, nil
}

// BulkInsertMeetings inserts import batches in chunks of 250 rows, one
// transaction per chunk, so a failure late in a large import does not
// roll back everything already committed.
func (s *NetworkDBStorage) BulkInsertMeetings(ctx context.Context, ownerID string, meetings []common.Meeting) (int, error) {
	inserted := 0
	err := store.ChunkRange(len(meetings), 250, func(start, end int) error {
		chunk := meetings[start:end]
		logger.Debug("[Store][BulkInsertMeetings] Inserting chunk", "meetings", len(chunk))

		tx, err := s.conn.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		for _, m := range chunk {
			if m.ID == "" {
				id, err := util.NewPublicID()
				if err != nil {
					return err
				}
				m.ID = id
			}
			if m.CreatedAt.IsZero() {
				m.CreatedAt = time.Now().UTC()
			}
			dims := dimValues(m.Scores)
			_, err := tx.Exec(ctx, `
				INSERT INTO meetings (
					public_id, owner_id, initiator_name, subject_name, location, rating,
					trustworthiness, expertise, communication, collaboration,
					leadership, innovation, integrity, feedback, created_at
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			`,
				m.ID, ownerID, m.InitiatorName, m.SubjectName, m.Location, m.Rating,
				dims[0], dims[1], dims[2], dims[3], dims[4], dims[5], dims[6],
				m.Feedback, m.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("bulk insert meeting: %w", err)
			}
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}
		inserted += len(chunk)
		return nil
	})
	if err != nil {
		return inserted, err
	}
	return inserted, nil
}
