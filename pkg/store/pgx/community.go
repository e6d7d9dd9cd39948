package pgx

import (
	"context"
	"fmt"

	"github.com/ryuzo-k/kokoro-graph/pkg/common"
)

func (s *NetworkDBStorage) ListCommunities(ctx context.Context) ([]common.Community, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT public_id, name, description, member_count, is_public
		FROM communities
		WHERE is_public
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list communities: %w", err)
	}
	defer rows.Close()

	communities := make([]common.Community, 0)
	for rows.Next() {
		var c common.Community
		err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.MemberCount, &c.IsPublic)
		if err != nil {
			return nil, fmt.Errorf("scan community: %w", err)
		}
		communities = append(communities, c)
	}
	return communities, rows.Err()
}
