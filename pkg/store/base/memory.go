// Package base provides an in-memory NetworkStorage used by tests and
// by local development runs without a database.
package base

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/ryuzo-k/kokoro-graph/pkg/common"
	"github.com/ryuzo-k/kokoro-graph/pkg/store"
)

// MemoryStorage keeps all records in process memory, partitioned by
// owner the same way the SQL backend partitions by owner_id. Safe for
// concurrent use.
type MemoryStorage struct {
	mu sync.Mutex

	meetings      map[string][]common.Meeting
	details       map[string][]common.PersonDetail
	relationships map[string]map[string]common.Relationship
	profiles      map[string]common.Profile
	communities   []common.Community
	snapshots     map[string][]common.Snapshot

	nextID int
}

var _ store.NetworkStorage = (*MemoryStorage)(nil)

type MemoryStorageParams struct {
	// Communities seeds the catalog; the memory backend has no other
	// way to create catalog entries.
	Communities []common.Community
}

func NewMemoryStorage(params MemoryStorageParams) *MemoryStorage {
	return &MemoryStorage{
		meetings:      make(map[string][]common.Meeting),
		details:       make(map[string][]common.PersonDetail),
		relationships: make(map[string]map[string]common.Relationship),
		profiles:      make(map[string]common.Profile),
		communities:   params.Communities,
		snapshots:     make(map[string][]common.Snapshot),
	}
}

func (s *MemoryStorage) newID() string {
	s.nextID++
	return "mem-" + strconv.Itoa(s.nextID)
}

func (s *MemoryStorage) ListMeetings(_ context.Context, ownerID string) ([]common.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]common.Meeting, len(s.meetings[ownerID]))
	copy(out, s.meetings[ownerID])
	// Newest first, matching the SQL backend's created_at DESC order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStorage) InsertMeeting(_ context.Context, ownerID string, meeting common.Meeting) (common.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if meeting.ID == "" {
		meeting.ID = s.newID()
	}
	if meeting.CreatedAt.IsZero() {
		meeting.CreatedAt = time.Now().UTC()
	}
	s.meetings[ownerID] = append(s.meetings[ownerID], meeting)
	return meeting, nil
}

func (s *MemoryStorage) BulkInsertMeetings(ctx context.Context, ownerID string, meetings []common.Meeting) (int, error) {
	for _, m := range meetings {
		if _, err := s.InsertMeeting(ctx, ownerID, m); err != nil {
			return 0, err
		}
	}
	return len(meetings), nil
}

func (s *MemoryStorage) ListPersonDetails(_ context.Context, ownerID string) ([]common.PersonDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]common.PersonDetail, len(s.details[ownerID]))
	copy(out, s.details[ownerID])
	return out, nil
}

func (s *MemoryStorage) UpsertPersonDetail(_ context.Context, ownerID string, detail common.PersonDetail) (common.PersonDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.details[ownerID] {
		if existing.Name == detail.Name {
			detail.ID = existing.ID
			s.details[ownerID][i] = detail
			return detail, nil
		}
	}
	if detail.ID == "" {
		detail.ID = s.newID()
	}
	s.details[ownerID] = append(s.details[ownerID], detail)
	return detail, nil
}

func pairID(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}

func (s *MemoryStorage) ListRelationships(_ context.Context, ownerID string) ([]common.Relationship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byPair := s.relationships[ownerID]
	keys := make([]string, 0, len(byPair))
	for k := range byPair {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]common.Relationship, 0, len(byPair))
	for _, k := range keys {
		out = append(out, byPair[k])
	}
	return out, nil
}

func (s *MemoryStorage) UpsertRelationships(_ context.Context, ownerID string, relationships []common.Relationship) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byPair := s.relationships[ownerID]
	if byPair == nil {
		byPair = make(map[string]common.Relationship)
		s.relationships[ownerID] = byPair
	}
	for _, r := range relationships {
		key := pairID(r.Person1ID, r.Person2ID)
		if existing, ok := byPair[key]; ok {
			r.ID = existing.ID
		} else if r.ID == "" {
			r.ID = s.newID()
		}
		byPair[key] = r
	}
	return nil
}

func (s *MemoryStorage) GetProfile(_ context.Context, userID string) (common.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[userID]
	if !ok {
		return common.Profile{}, store.ErrNotFound
	}
	return profile, nil
}

func (s *MemoryStorage) UpsertProfile(_ context.Context, profile common.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles[profile.UserID] = profile
	return nil
}

func (s *MemoryStorage) ListCommunities(_ context.Context) ([]common.Community, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]common.Community, len(s.communities))
	copy(out, s.communities)
	return out, nil
}

func (s *MemoryStorage) InsertSnapshot(_ context.Context, snapshot common.Snapshot) (common.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snapshot.ID == "" {
		snapshot.ID = s.newID()
	}
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = time.Now().UTC()
	}
	s.snapshots[snapshot.OwnerID] = append(s.snapshots[snapshot.OwnerID], snapshot)
	return snapshot, nil
}

func (s *MemoryStorage) ListSnapshots(_ context.Context, ownerID string) ([]common.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]common.Snapshot, len(s.snapshots[ownerID]))
	copy(out, s.snapshots[ownerID])
	return out, nil
}
