package pgx

import (
	"context"
	"errors"
	"fmt"
	"time"

	pgxv5 "github.com/jackc/pgx/v5"

	"github.com/ryuzo-k/kokoro-graph/pkg/common"
	"github.com/ryuzo-k/kokoro-graph/pkg/store"
)

func (s *NetworkDBStorage) GetProfile(ctx context.Context, userID string) (common.Profile, error) {
	var p common.Profile
	var fraudRisk *string
	err := s.conn.QueryRow(ctx, `
		SELECT user_id, github_score, linkedin_score, portfolio_score,
		       fraud_risk_level, updated_at
		FROM profiles
		WHERE user_id = $1
	`, userID).Scan(
		&p.UserID, &p.GithubScore, &p.LinkedinScore, &p.PortfolioScore,
		&fraudRisk, &p.UpdatedAt,
	)
	if errors.Is(err, pgxv5.ErrNoRows) {
		return common.Profile{}, store.ErrNotFound
	}
	if err != nil {
		return common.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	if fraudRisk != nil {
		p.FraudRiskLevel = common.FraudRiskLevel(*fraudRisk)
	}
	return p, nil
}

func (s *NetworkDBStorage) UpsertProfile(ctx context.Context, profile common.Profile) error {
	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = time.Now().UTC()
	}

	var fraudRisk *string
	if profile.FraudRiskLevel != "" {
		v := string(profile.FraudRiskLevel)
		fraudRisk = &v
	}

	_, err := s.conn.Exec(ctx, `
		INSERT INTO profiles (user_id, github_score, linkedin_score, portfolio_score, fraud_risk_level, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			github_score = EXCLUDED.github_score,
			linkedin_score = EXCLUDED.linkedin_score,
			portfolio_score = EXCLUDED.portfolio_score,
			fraud_risk_level = EXCLUDED.fraud_risk_level,
			updated_at = EXCLUDED.updated_at
	`,
		profile.UserID, profile.GithubScore, profile.LinkedinScore,
		profile.PortfolioScore, fraudRisk, profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}
