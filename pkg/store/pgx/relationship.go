package pgx

import (
	"context"
	"fmt"

	"github.com/ryuzo-k/kokoro-graph/internal/util"
	"github.com/ryuzo-k/kokoro-graph/pkg/common"
	"github.com/ryuzo-k/kokoro-graph/pkg/logger"
)

func (s *NetworkDBStorage) ListRelationships(ctx context.Context, ownerID string) ([]common.Relationship, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT public_id, person1_id, person2_id, relationship_strength,
		       trust_score, total_meetings, last_interaction_at, status, is_mutual
		FROM relationships
		WHERE owner_id = $1
		ORDER BY id
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list relationships: %w", err)
	}
	defer rows.Close()

	relationships := make([]common.Relationship, 0)
	for rows.Next() {
		var r common.Relationship
		err := rows.Scan(
			&r.ID, &r.Person1ID, &r.Person2ID, &r.RelationshipStrength,
			&r.TrustScore, &r.TotalMeetings, &r.LastInteractionAt, &r.Status, &r.IsMutual,
		)
		if err != nil {
			return nil, fmt.Errorf("scan relationship: %w", err)
		}
		relationships = append(relationships, r)
	}
	return relationships, rows.Err()
}

// UpsertRelationships rewrites the analysis worker's derived records in
// one transaction. Person IDs are stored sorted so the unordered pair
// is unique regardless of input order.
func (s *NetworkDBStorage) UpsertRelationships(ctx context.Context, ownerID string, relationships []common.Relationship) error {
	if len(relationships) == 0 {
		return nil
	}
	logger.Debug("[Store][UpsertRelationships] Upserting", "relationships", len(relationships))

	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, r := range relationships {
		p1, p2 := r.Person1ID, r.Person2ID
		if p2 < p1 {
			p1, p2 = p2, p1
		}
		if r.ID == "" {
			id, err := util.NewPublicID()
			if err != nil {
				return err
			}
			r.ID = id
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO relationships (
				public_id, owner_id, person1_id, person2_id, relationship_strength,
				trust_score, total_meetings, last_interaction_at, status, is_mutual
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (owner_id, person1_id, person2_id) DO UPDATE SET
				relationship_strength = EXCLUDED.relationship_strength,
				trust_score = EXCLUDED.trust_score,
				total_meetings = EXCLUDED.total_meetings,
				last_interaction_at = EXCLUDED.last_interaction_at,
				status = EXCLUDED.status,
				is_mutual = EXCLUDED.is_mutual
		`,
			r.ID, ownerID, p1, p2, r.RelationshipStrength,
			r.TrustScore, r.TotalMeetings, r.LastInteractionAt, r.Status, r.IsMutual,
		)
		if err != nil {
			return fmt.Errorf("upsert relationship %s-%s: %w", p1, p2, err)
		}
	}

	return tx.Commit(ctx)
}
