package queue

import (
	"context"
	"testing"
	"time"

	"github.com/ryuzo-k/kokoro-graph/pkg/common"
	"github.com/ryuzo-k/kokoro-graph/pkg/store/base"
)

func seedMeetings(t *testing.T, s *base.MemoryStorage, ownerID string, meetings []common.Meeting) {
	t.Helper()
	for _, m := range meetings {
		if _, err := s.InsertMeeting(context.Background(), ownerID, m); err != nil {
			t.Fatalf("InsertMeeting() error = %v", err)
		}
	}
}

func TestRebuildRelationships(t *testing.T) {
	ctx := context.Background()
	s := base.NewMemoryStorage(base.MemoryStorageParams{})
	when := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	seedMeetings(t, s, "owner", []common.Meeting{
		{InitiatorName: "Alice", SubjectName: "Bob", Rating: 4, CreatedAt: when},
		{InitiatorName: "Bob", SubjectName: "Alice", Rating: 5, CreatedAt: when.Add(time.Hour)},
		{InitiatorName: "Alice", SubjectName: "Carol", Rating: 3, CreatedAt: when},
	})

	if err := rebuildRelationships(ctx, s, "owner"); err != nil {
		t.Fatalf("rebuildRelationships() error = %v", err)
	}

	rels, err := s.ListRelationships(ctx, "owner")
	if err != nil {
		t.Fatalf("ListRelationships() error = %v", err)
	}
	if len(rels) != 2 {
		t.Fatalf("rebuilt %d relationships, want 2", len(rels))
	}

	byPair := make(map[string]common.Relationship)
	for _, r := range rels {
		byPair[r.Person1ID+"|"+r.Person2ID] = r
	}

	ab, ok := byPair["Alice|Bob"]
	if !ok {
		t.Fatalf("Alice-Bob relationship missing: %v", byPair)
	}
	if !ab.IsMutual {
		t.Errorf("Alice-Bob should be mutual, both initiated meetings")
	}
	if ab.TotalMeetings != 2 {
		t.Errorf("Alice-Bob TotalMeetings = %d, want 2", ab.TotalMeetings)
	}
	// Plain mean of raw ratings: (4+5)/2.
	if ab.TrustScore != 4.5 {
		t.Errorf("Alice-Bob TrustScore = %v, want 4.5", ab.TrustScore)
	}
	if ab.RelationshipStrength != 0.2 {
		t.Errorf("Alice-Bob RelationshipStrength = %v, want 0.2", ab.RelationshipStrength)
	}
	if !ab.LastInteractionAt.Equal(when.Add(time.Hour)) {
		t.Errorf("Alice-Bob LastInteractionAt = %v", ab.LastInteractionAt)
	}

	ac, ok := byPair["Alice|Carol"]
	if !ok {
		t.Fatalf("Alice-Carol relationship missing: %v", byPair)
	}
	if ac.IsMutual {
		t.Errorf("Alice-Carol should not be mutual, Carol never initiated")
	}
}

func TestRebuildRelationshipsStrengthSaturates(t *testing.T) {
	ctx := context.Background()
	s := base.NewMemoryStorage(base.MemoryStorageParams{})
	when := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	meetings := make([]common.Meeting, 0, 15)
	for i := 0; i < 15; i++ {
		meetings = append(meetings, common.Meeting{
			InitiatorName: "Alice",
			SubjectName:   "Bob",
			Rating:        4,
			CreatedAt:     when.Add(time.Duration(i) * time.Minute),
		})
	}
	seedMeetings(t, s, "owner", meetings)

	if err := rebuildRelationships(ctx, s, "owner"); err != nil {
		t.Fatalf("rebuildRelationships() error = %v", err)
	}

	rels, err := s.ListRelationships(ctx, "owner")
	if err != nil {
		t.Fatalf("ListRelationships() error = %v", err)
	}
	if len(rels) != 1 {
		t.Fatalf("rebuilt %d relationships, want 1", len(rels))
	}
	if rels[0].RelationshipStrength != 1 {
		t.Errorf("strength = %v, want saturation at 1", rels[0].RelationshipStrength)
	}
}
