package pgx

import (
	"context"
	"fmt"

	"github.com/ryuzo-k/kokoro-graph/internal/util"
	"github.com/ryuzo-k/kokoro-graph/pkg/common"
)

func (s *NetworkDBStorage) ListPersonDetails(ctx context.Context, ownerID string) ([]common.PersonDetail, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT public_id, name, company, position, location, avatar_url
		FROM person_details
		WHERE owner_id = $1
		ORDER BY id
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list person details: %w", err)
	}
	defer rows.Close()

	details := make([]common.PersonDetail, 0)
	for rows.Next() {
		var d common.PersonDetail
		err := rows.Scan(&d.ID, &d.Name, &d.Company, &d.Position, &d.Location, &d.AvatarURL)
		if err != nil {
			return nil, fmt.Errorf("scan person detail: %w", err)
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (s *NetworkDBStorage) UpsertPersonDetail(ctx context.Context, ownerID string, detail common.PersonDetail) (common.PersonDetail, error) {
	if detail.ID == "" {
		id, err := util.NewPublicID()
		if err != nil {
			return common.PersonDetail{}, err
		}
		detail.ID = id
	}

	// Name is the conflict key: details are merged into aggregation by
	// exact-name lookup, so one record per (owner, name).
	var publicID string
	err := s.conn.QueryRow(ctx, `
		INSERT INTO person_details (public_id, owner_id, name, company, position, location, avatar_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (owner_id, name) DO UPDATE SET
			company = EXCLUDED.company,
			position = EXCLUDED.position,
			location = EXCLUDED.location,
			avatar_url = EXCLUDED.avatar_url
		RETURNING public_id
	`,
		detail.ID, ownerID, detail.Name, detail.Company,
		detail.Position, detail.Location, detail.AvatarURL,
	).Scan(&publicID)
	if err != nil {
		return common.PersonDetail{}, fmt.Errorf("upsert person detail: %w", err)
	}
	detail.ID = publicID
	return detail, nil
}
