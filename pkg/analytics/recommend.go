package analytics

import "sort"

// Suggestion is one recommended connection, annotated with every
// heuristic that nominated the candidate.
type Suggestion struct {
	PersonID string   `json:"person_id"`
	Reasons  []string `json:"reasons"`
}

const maxSuggestionsPerPerson = 5

const (
	reasonSameCommunity = "shares your community"
	reasonTopInfluence  = "highly influential in the network"
	reasonBridge        = "bridges multiple communities"
)

// SuggestConnections proposes up to five new connections per person by
// unioning three candidate pools: members of the same detected
// community, the ten most influential nodes, and bridge nodes. The
// person themself and their existing neighbors are excluded; duplicate
// candidates are merged with their reasons combined.
func (a *Analyzer) SuggestConnections() map[string][]Suggestion {
	metrics := a.Metrics()

	topInfluence := make([]string, 0, len(a.order))
	topInfluence = append(topInfluence, a.order...)
	sort.SliceStable(topInfluence, func(i, j int) bool {
		return metrics[topInfluence[i]].InfluenceScore > metrics[topInfluence[j]].InfluenceScore
	})
	if len(topInfluence) > 10 {
		topInfluence = topInfluence[:10]
	}

	bridges := make([]string, 0)
	for _, id := range a.order {
		if metrics[id].BridgeScore == 1 {
			bridges = append(bridges, id)
		}
	}

	suggestions := make(map[string][]Suggestion, len(a.order))
	for _, id := range a.order {
		n := a.nodes[id]
		community := metrics[id].Community

		candidates := make([]Suggestion, 0)
		candidateIdx := make(map[string]int)

		add := func(candidate, reason string) {
			if candidate == id {
				return
			}
			if _, connected := n.neighborSet[candidate]; connected {
				return
			}
			if idx, ok := candidateIdx[candidate]; ok {
				for _, r := range candidates[idx].Reasons {
					if r == reason {
						return
					}
				}
				candidates[idx].Reasons = append(candidates[idx].Reasons, reason)
				return
			}
			candidateIdx[candidate] = len(candidates)
			candidates = append(candidates, Suggestion{
				PersonID: candidate,
				Reasons:  []string{reason},
			})
		}

		for _, other := range a.order {
			if metrics[other].Community == community {
				add(other, reasonSameCommunity)
			}
		}
		for _, other := range topInfluence {
			add(other, reasonTopInfluence)
		}
		for _, other := range bridges {
			add(other, reasonBridge)
		}

		if len(candidates) > maxSuggestionsPerPerson {
			candidates = candidates[:maxSuggestionsPerPerson]
		}
		suggestions[id] = candidates
	}

	return suggestions
}
