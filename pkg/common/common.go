package common

import "time"

// Meeting represents one recorded, directed encounter between two named
// people. The rating is always the initiator's rating of the subject,
// on a 1-5 scale.
//
// Meetings are immutable once created. They are inserted either by an
// explicit user action or by the bulk import worker.
type Meeting struct {
	ID            string    `json:"id"`
	InitiatorName string    `json:"initiator_name"`
	SubjectName   string    `json:"subject_name"`
	Location      string    `json:"location,omitempty"`
	Rating        int       `json:"rating"`
	CreatedAt     time.Time `json:"created_at"`

	// Optional per-dimension scores, each 1-5 when present.
	Scores   *DimensionScores `json:"scores,omitempty"`
	Feedback string           `json:"feedback,omitempty"`
}

// DimensionScores holds the optional multi-dimensional ratings attached
// to a meeting.
type DimensionScores struct {
	Trustworthiness int `json:"trustworthiness,omitempty"`
	Expertise       int `json:"expertise,omitempty"`
	Communication   int `json:"communication,omitempty"`
	Collaboration   int `json:"collaboration,omitempty"`
	Leadership      int `json:"leadership,omitempty"`
	Innovation      int `json:"innovation,omitempty"`
	Integrity       int `json:"integrity,omitempty"`
}

// PersonDetail is the richer, externally maintained record for a person.
// It is merged into aggregation output by exact-name lookup.
type PersonDetail struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Company   string `json:"company,omitempty"`
	Position  string `json:"position,omitempty"`
	Location  string `json:"location,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Person is a node in the meeting-derived graph. It is materialized fresh
// on every aggregation pass and never persisted at this layer. When no
// detail record exists for the name, ID falls back to the name itself.
type Person struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Company       string    `json:"company,omitempty"`
	Position      string    `json:"position,omitempty"`
	Location      string    `json:"location,omitempty"`
	AvatarURL     string    `json:"avatar_url,omitempty"`
	AverageRating float64   `json:"average_rating"`
	MeetingCount  int       `json:"meeting_count"`
	Meetings      []Meeting `json:"meetings"`
}

// Connection is the derived, undirected aggregate over all meetings
// between an unordered pair of named people. PairKey is the two names
// sorted lexicographically and joined, so (A,B) and (B,A) collapse.
type Connection struct {
	PairKey       string    `json:"pair_key"`
	PersonA       string    `json:"person_a"`
	PersonB       string    `json:"person_b"`
	MeetingCount  int       `json:"meeting_count"`
	AverageRating float64   `json:"average_rating"`
	LastMeetingAt time.Time `json:"last_meeting_at"`
}

// RelationshipStatus enumerates the lifecycle states of a Relationship.
type RelationshipStatus string

const (
	RelationshipActive   RelationshipStatus = "active"
	RelationshipInactive RelationshipStatus = "inactive"
	RelationshipBlocked  RelationshipStatus = "blocked"
)

// Relationship is the separately persisted, explicitly maintained
// symmetric link between two people. Exactly one record exists per
// unordered pair; lookups must test both orderings.
//
// Relationships are written by the analysis worker and read-only from
// the analytics package's perspective.
type Relationship struct {
	ID                   string             `json:"id"`
	Person1ID            string             `json:"person1_id"`
	Person2ID            string             `json:"person2_id"`
	RelationshipStrength float64            `json:"relationship_strength"`
	TrustScore           float64            `json:"trust_score"`
	TotalMeetings        int                `json:"total_meetings"`
	LastInteractionAt    time.Time          `json:"last_interaction_at"`
	Status               RelationshipStatus `json:"status"`
	IsMutual             bool               `json:"is_mutual"`
}

// Community is a catalog entry users can be recommended into. Distinct
// from the graph-sense communities detected by pkg/analytics.
type Community struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MemberCount int    `json:"member_count"`
	IsPublic    bool   `json:"is_public"`
}

// FraudRiskLevel enumerates the oracle's fraud assessment.
type FraudRiskLevel string

const (
	FraudRiskLow    FraudRiskLevel = "low"
	FraudRiskMedium FraudRiskLevel = "medium"
	FraudRiskHigh   FraudRiskLevel = "high"
)

// Profile holds the scalar 0-100 scores produced by the LLM-backed
// scoring oracle. The core treats these as already-validated inputs.
type Profile struct {
	UserID         string         `json:"user_id"`
	GithubScore    *int           `json:"github_score,omitempty"`
	LinkedinScore  *int           `json:"linkedin_score,omitempty"`
	PortfolioScore *int           `json:"portfolio_score,omitempty"`
	FraudRiskLevel FraudRiskLevel `json:"fraud_risk_level,omitempty"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// Snapshot records an exported network snapshot stored in object storage.
type Snapshot struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	ObjectKey string    `json:"object_key"`
	CreatedAt time.Time `json:"created_at"`
}
