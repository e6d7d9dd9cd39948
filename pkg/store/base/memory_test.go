package base

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ryuzo-k/kokoro-graph/pkg/common"
	"github.com/ryuzo-k/kokoro-graph/pkg/store"
)

func TestMemoryStorageMeetingsOrderedNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage(MemoryStorageParams{})

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"old", "mid", "new"} {
		_, err := s.InsertMeeting(ctx, "owner", common.Meeting{
			InitiatorName: name,
			SubjectName:   "x",
			Rating:        3,
			CreatedAt:     base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("InsertMeeting() error = %v", err)
		}
	}

	got, err := s.ListMeetings(ctx, "owner")
	if err != nil {
		t.Fatalf("ListMeetings() error = %v", err)
	}
	if len(got) != 3 || got[0].InitiatorName != "new" || got[2].InitiatorName != "old" {
		t.Errorf("meetings not ordered newest first: %v", got)
	}

	other, err := s.ListMeetings(ctx, "someone-else")
	if err != nil {
		t.Fatalf("ListMeetings() error = %v", err)
	}
	if len(other) != 0 {
		t.Errorf("owner partition leaked %d meetings", len(other))
	}
}

func TestMemoryStorageRelationshipUpsertCollapsesPairOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage(MemoryStorageParams{})

	err := s.UpsertRelationships(ctx, "owner", []common.Relationship{
		{Person1ID: "alice", Person2ID: "bob", TrustScore: 3},
	})
	if err != nil {
		t.Fatalf("UpsertRelationships() error = %v", err)
	}
	err = s.UpsertRelationships(ctx, "owner", []common.Relationship{
		{Person1ID: "bob", Person2ID: "alice", TrustScore: 4},
	})
	if err != nil {
		t.Fatalf("UpsertRelationships() error = %v", err)
	}

	got, err := s.ListRelationships(ctx, "owner")
	if err != nil {
		t.Fatalf("ListRelationships() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("pair stored %d times, want 1", len(got))
	}
	if got[0].TrustScore != 4 {
		t.Errorf("TrustScore = %v, want updated value 4", got[0].TrustScore)
	}
}

func TestMemoryStorageProfileNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage(MemoryStorageParams{})

	_, err := s.GetProfile(ctx, "ghost")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetProfile(missing) error = %v, want store.ErrNotFound", err)
	}

	profile := common.Profile{UserID: "u1"}
	if err := s.UpsertProfile(ctx, profile); err != nil {
		t.Fatalf("UpsertProfile() error = %v", err)
	}
	got, err := s.GetProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if got.UserID != "u1" {
		t.Errorf("GetProfile().UserID = %q, want u1", got.UserID)
	}
}

func TestMemoryStoragePersonDetailUpsertByName(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage(MemoryStorageParams{})

	first, err := s.UpsertPersonDetail(ctx, "owner", common.PersonDetail{Name: "Alice", Company: "Acme"})
	if err != nil {
		t.Fatalf("UpsertPersonDetail() error = %v", err)
	}
	second, err := s.UpsertPersonDetail(ctx, "owner", common.PersonDetail{Name: "Alice", Company: "Initech"})
	if err != nil {
		t.Fatalf("UpsertPersonDetail() error = %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("upsert minted new ID %q for existing name (was %q)", second.ID, first.ID)
	}

	got, err := s.ListPersonDetails(ctx, "owner")
	if err != nil {
		t.Fatalf("ListPersonDetails() error = %v", err)
	}
	if len(got) != 1 || got[0].Company != "Initech" {
		t.Errorf("details = %v, want single updated record", got)
	}
}
