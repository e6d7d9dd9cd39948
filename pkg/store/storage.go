package store

import (
	"context"
	"errors"

	"github.com/ryuzo-k/kokoro-graph/pkg/common"
)

// ErrNotFound is returned by single-record lookups when no row matches.
var ErrNotFound = errors.New("store: not found")

// MeetingStore persists the raw meeting records that feed aggregation.
type MeetingStore interface {
	ListMeetings(ctx context.Context, ownerID string) ([]common.Meeting, error)
	InsertMeeting(ctx context.Context, ownerID string, meeting common.Meeting) (common.Meeting, error)
	BulkInsertMeetings(ctx context.Context, ownerID string, meetings []common.Meeting) (int, error)
}

// PersonDetailStore serves the detail records merged into aggregation
// output by exact-name lookup.
type PersonDetailStore interface {
	ListPersonDetails(ctx context.Context, ownerID string) ([]common.PersonDetail, error)
	UpsertPersonDetail(ctx context.Context, ownerID string, detail common.PersonDetail) (common.PersonDetail, error)
}

// RelationshipStore persists the analysis worker's derived relationship
// records. One record exists per unordered person pair.
type RelationshipStore interface {
	ListRelationships(ctx context.Context, ownerID string) ([]common.Relationship, error)
	UpsertRelationships(ctx context.Context, ownerID string, relationships []common.Relationship) error
}

// ProfileStore holds the oracle-produced profile scores.
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (common.Profile, error)
	UpsertProfile(ctx context.Context, profile common.Profile) error
}

// CommunityStore serves the community catalog used by recommendation
// scoring.
type CommunityStore interface {
	ListCommunities(ctx context.Context) ([]common.Community, error)
}

// SnapshotStore records exported network snapshots and their object keys.
type SnapshotStore interface {
	InsertSnapshot(ctx context.Context, snapshot common.Snapshot) (common.Snapshot, error)
	ListSnapshots(ctx context.Context, ownerID string) ([]common.Snapshot, error)
}

// NetworkStorage is the full persistence surface of the application. The
// server and workers depend on this interface, never on a concrete
// backend.
type NetworkStorage interface {
	MeetingStore
	PersonDetailStore
	RelationshipStore
	ProfileStore
	CommunityStore
	SnapshotStore
}
