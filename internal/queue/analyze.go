package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ryuzo-k/kokoro-graph/pkg/ai"
	"github.com/ryuzo-k/kokoro-graph/pkg/common"
	"github.com/ryuzo-k/kokoro-graph/pkg/leaselock"
	"github.com/ryuzo-k/kokoro-graph/pkg/loader/web"
	"github.com/ryuzo-k/kokoro-graph/pkg/logger"
	"github.com/ryuzo-k/kokoro-graph/pkg/network"
	"github.com/ryuzo-k/kokoro-graph/pkg/store"

	"golang.org/x/sync/errgroup"
)

// relationship strength saturates once a pair has met this many times.
const strengthSaturationMeetings = 10

// ProcessAnalyzeMessage rebuilds one owner's derived relationship
// records from their meeting history, optionally refreshing the
// owner's profile scores through the oracle. The rebuild runs under a
// per-owner lease so concurrent workers never write the same owner's
// relationships at once.
func ProcessAnalyzeMessage(
	ctx context.Context,
	locks *leaselock.Client,
	storage store.NetworkStorage,
	oracle ai.ProfileOracle,
	pages *web.PageLoader,
	msg string,
) error {
	data := new(AnalyzeMessage)
	if err := json.Unmarshal([]byte(msg), data); err != nil {
		return err
	}
	if data.OwnerID == "" {
		return fmt.Errorf("analyze message has no owner")
	}

	return locks.WithLease(ctx, "analyze:"+data.OwnerID, leaselock.Options{
		TTL:         2 * time.Minute,
		TokenPrefix: "analyze-",
	}, func(ctx context.Context) error {
		eg, ectx := errgroup.WithContext(ctx)

		eg.Go(func() error {
			return rebuildRelationships(ectx, storage, data.OwnerID)
		})

		if data.Refresh != nil {
			eg.Go(func() error {
				return refreshProfile(ectx, storage, oracle, pages, data.OwnerID, *data.Refresh)
			})
		}

		return eg.Wait()
	})
}

func rebuildRelationships(ctx context.Context, storage store.NetworkStorage, ownerID string) error {
	meetings, err := storage.ListMeetings(ctx, ownerID)
	if err != nil {
		return err
	}
	details, err := storage.ListPersonDetails(ctx, ownerID)
	if err != nil {
		return err
	}

	people, connections, err := network.Aggregate(meetings, details)
	if err != nil {
		return fmt.Errorf("aggregate: %w", err)
	}

	idByName := make(map[string]string, len(people))
	for _, p := range people {
		idByName[p.Name] = p.ID
	}

	// A pair is mutual when meetings exist in both directions.
	initiated := make(map[string]map[string]bool)
	for _, m := range meetings {
		if initiated[m.InitiatorName] == nil {
			initiated[m.InitiatorName] = make(map[string]bool)
		}
		initiated[m.InitiatorName][m.SubjectName] = true
	}

	relationships := make([]common.Relationship, 0, len(connections))
	for _, c := range connections {
		strength := float64(c.MeetingCount) / strengthSaturationMeetings
		if strength > 1 {
			strength = 1
		}
		relationships = append(relationships, common.Relationship{
			Person1ID:            idByName[c.PersonA],
			Person2ID:            idByName[c.PersonB],
			RelationshipStrength: strength,
			TrustScore:           c.AverageRating,
			TotalMeetings:        c.MeetingCount,
			LastInteractionAt:    c.LastMeetingAt,
			Status:               common.RelationshipActive,
			IsMutual:             initiated[c.PersonA][c.PersonB] && initiated[c.PersonB][c.PersonA],
		})
	}

	if err := storage.UpsertRelationships(ctx, ownerID, relationships); err != nil {
		return fmt.Errorf("upsert relationships: %w", err)
	}

	logger.Info("[Queue][Analyze] Rebuilt relationships",
		"owner", ownerID,
		"people", len(people),
		"relationships", len(relationships),
	)
	return nil
}

func refreshProfile(
	ctx context.Context,
	storage store.NetworkStorage,
	oracle ai.ProfileOracle,
	pages *web.PageLoader,
	ownerID string,
	refresh ProfileRefresh,
) error {
	if oracle == nil {
		return fmt.Errorf("profile refresh requested but no oracle configured")
	}

	input := ai.ProfileInput{
		Name:         refresh.Name,
		GithubURL:    refresh.GithubURL,
		LinkedinURL:  refresh.LinkedinURL,
		PortfolioURL: refresh.PortfolioURL,
	}

	if refresh.PortfolioURL != "" && pages != nil {
		text, err := pages.GetPageText(ctx, refresh.PortfolioURL)
		if err != nil {
			// Portfolio text improves scoring but its absence should
			// not fail the whole refresh.
			logger.Warn("[Queue][Analyze] Portfolio fetch failed", "owner", ownerID, "err", err)
		} else {
			input.PortfolioText = text
		}
	}

	meetings, err := storage.ListMeetings(ctx, ownerID)
	if err != nil {
		return err
	}
	for _, m := range meetings {
		if m.SubjectName == refresh.Name && m.Feedback != "" {
			input.Feedback = append(input.Feedback, m.Feedback)
		}
	}

	scores, err := oracle.ScoreProfile(ctx, input)
	if err != nil {
		return fmt.Errorf("score profile: %w", err)
	}

	profile := common.Profile{
		UserID:         ownerID,
		GithubScore:    &scores.GithubScore,
		LinkedinScore:  &scores.LinkedinScore,
		PortfolioScore: &scores.PortfolioScore,
		FraudRiskLevel: common.FraudRiskLevel(scores.FraudRiskLevel),
		UpdatedAt:      time.Now().UTC(),
	}
	if err := storage.UpsertProfile(ctx, profile); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}

	logger.Info("[Queue][Analyze] Refreshed profile scores",
		"owner", ownerID,
		"fraud_risk", scores.FraudRiskLevel,
	)
	return nil
}
