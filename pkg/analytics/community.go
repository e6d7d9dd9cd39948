package analytics

// GraphView is the read-only node and adjacency view handed to
// community detectors.
type GraphView interface {
	NodeIDs() []string
	Neighbors(id string) []string
}

// CommunityDetector assigns a community label to every node in the
// graph. It is a named, swappable strategy so a stronger algorithm
// (e.g. modularity-based clustering) can replace the default without
// touching callers.
type CommunityDetector interface {
	Detect(g GraphView) map[string]int
}

// SharedNeighborDetector is the default detector: a flood fill that
// only traverses to neighbors sharing at least MinShared common
// connections with the current node. Weakly connected or isolated
// nodes become singleton communities.
//
// This is a deliberate simplification, not a rigorous community
// detection algorithm.
type SharedNeighborDetector struct {
	MinShared int
}

// Detect labels all nodes, visiting them in NodeIDs order so labels
// are deterministic for a given snapshot.
func (d *SharedNeighborDetector) Detect(g GraphView) map[string]int {
	communities := make(map[string]int)
	label := 0

	for _, start := range g.NodeIDs() {
		if _, visited := communities[start]; visited {
			continue
		}

		communities[start] = label
		queue := []string{start}
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]

			for _, neighbor := range g.Neighbors(current) {
				if _, visited := communities[neighbor]; visited {
					continue
				}
				if sharedNeighbors(g, current, neighbor) < d.MinShared {
					continue
				}
				communities[neighbor] = label
				queue = append(queue, neighbor)
			}
		}

		label++
	}

	return communities
}

func sharedNeighbors(g GraphView, a, b string) int {
	bSet := make(map[string]struct{})
	for _, n := range g.Neighbors(b) {
		bSet[n] = struct{}{}
	}
	shared := 0
	for _, n := range g.Neighbors(a) {
		if _, ok := bSet[n]; ok {
			shared++
		}
	}
	return shared
}

// Communities runs the configured detector over the current snapshot.
func (a *Analyzer) Communities() map[string]int {
	return a.detector.Detect(a)
}
