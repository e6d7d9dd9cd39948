package analytics

import (
	"github.com/ryuzo-k/kokoro-graph/pkg/common"
)

// node is the ephemeral per-run accumulator for one person in the
// relationship graph. Nodes are built fresh for every Analyzer and
// discarded with it.
type node struct {
	id          string
	neighbors   []string
	neighborSet map[string]struct{}

	trustSum     float64
	relCount     int
	meetingCount int
}

func (n *node) addNeighbor(id string) {
	if _, ok := n.neighborSet[id]; ok {
		return
	}
	n.neighborSet[id] = struct{}{}
	n.neighbors = append(n.neighbors, id)
}

// Analyzer computes influence, path, community, and suggestion outputs
// over a snapshot of relationships and people. The graph is assumed
// best-effort and incomplete: unknown person IDs yield empty results,
// never errors. Analyzers are cheap to build and hold no state beyond
// the snapshot, so repeated construction over unchanged input is
// idempotent.
type Analyzer struct {
	relationships []common.Relationship
	nodes         map[string]*node
	order         []string

	detector CommunityDetector
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithCommunityDetector swaps the community detection strategy. The
// default is SharedNeighborDetector with a minimum of 2 shared
// connections.
func WithCommunityDetector(d CommunityDetector) Option {
	return func(a *Analyzer) {
		a.detector = d
	}
}

// NewAnalyzer builds the per-run node structures from the relationship
// and person snapshots. Neighbor order follows the relationship list,
// so equal-length path ties and traversal order are reproducible.
func NewAnalyzer(
	relationships []common.Relationship,
	people []common.Person,
	opts ...Option,
) *Analyzer {
	a := &Analyzer{
		relationships: relationships,
		nodes:         make(map[string]*node),
		detector:      &SharedNeighborDetector{MinShared: 2},
	}
	for _, opt := range opts {
		opt(a)
	}

	for _, p := range people {
		a.ensureNode(p.ID)
	}
	for _, r := range relationships {
		if r.Person1ID == "" || r.Person2ID == "" {
			continue
		}
		n1 := a.ensureNode(r.Person1ID)
		n2 := a.ensureNode(r.Person2ID)
		n1.addNeighbor(r.Person2ID)
		n2.addNeighbor(r.Person1ID)

		for _, n := range []*node{n1, n2} {
			n.trustSum += r.TrustScore
			n.relCount++
			n.meetingCount += r.TotalMeetings
		}
	}

	return a
}

func (a *Analyzer) ensureNode(id string) *node {
	if n, ok := a.nodes[id]; ok {
		return n
	}
	n := &node{
		id:          id,
		neighborSet: make(map[string]struct{}),
	}
	a.nodes[id] = n
	a.order = append(a.order, id)
	return n
}

// NodeIDs returns all node IDs in first-seen order.
func (a *Analyzer) NodeIDs() []string {
	return a.order
}

// Neighbors returns a node's neighbors in discovery order. Unknown IDs
// yield nil.
func (a *Analyzer) Neighbors(id string) []string {
	n, ok := a.nodes[id]
	if !ok {
		return nil
	}
	return n.neighbors
}

// InfluenceMap sums relationship strengths per endpoint. The total is
// deliberately not normalized by relationship count: a person with many
// weak relationships can outscore one with few strong ones, reflecting
// reach rather than average intensity.
func (a *Analyzer) InfluenceMap() map[string]float64 {
	influence := make(map[string]float64, len(a.nodes))
	for _, id := range a.order {
		influence[id] = 0
	}
	for _, r := range a.relationships {
		if r.Person1ID == "" || r.Person2ID == "" {
			continue
		}
		influence[r.Person1ID] += r.RelationshipStrength
		influence[r.Person2ID] += r.RelationshipStrength
	}
	return influence
}

// NodeMetrics holds the derived per-node scores surfaced to the UI.
type NodeMetrics struct {
	// DegreeCentrality is the neighbor count normalized by the maximum
	// possible degree (node count minus one).
	DegreeCentrality float64 `json:"degree_centrality"`
	// InfluenceScore is a weighted linear blend of degree, average
	// trust, and a saturating meeting-volume signal. It is a heuristic,
	// not a learned model.
	InfluenceScore float64 `json:"influence_score"`
	// BridgeScore is 1 when the node's neighbors span more than one
	// detected community, else 0.
	BridgeScore int `json:"bridge_score"`
	// Community is the heuristic cluster label assigned by the
	// configured CommunityDetector.
	Community int `json:"community"`
}

// Metrics computes centrality, influence, bridge, and community values
// for every node in the graph.
func (a *Analyzer) Metrics() map[string]NodeMetrics {
	communities := a.Communities()
	metrics := make(map[string]NodeMetrics, len(a.nodes))

	for _, id := range a.order {
		n := a.nodes[id]

		degree := 0.0
		if len(a.order) > 1 {
			degree = float64(len(n.neighbors)) / float64(len(a.order)-1)
		}

		trust := 0.0
		if n.relCount > 0 {
			trust = n.trustSum / float64(n.relCount) / 5
		}

		volume := float64(n.meetingCount) / 10
		if volume > 1 {
			volume = 1
		}

		bridge := 0
		seen := make(map[int]struct{}, 2)
		for _, neighbor := range n.neighbors {
			seen[communities[neighbor]] = struct{}{}
		}
		if len(seen) > 1 {
			bridge = 1
		}

		metrics[id] = NodeMetrics{
			DegreeCentrality: degree,
			InfluenceScore:   0.4*degree + 0.3*trust + 0.3*volume,
			BridgeScore:      bridge,
			Community:        communities[id],
		}
	}

	return metrics
}
