package analytics

// ShortestPath runs a breadth-first search over the undirected
// relationship graph and returns the path from start to end inclusive.
// Neighbors are explored in relationship-list discovery order, so ties
// between equal-length paths break deterministically.
//
// An empty slice is returned when either endpoint is absent or no path
// exists; a missing node is normal, not an error. When start equals
// end the path is the single node itself.
func (a *Analyzer) ShortestPath(startID, endID string) []string {
	if _, ok := a.nodes[startID]; !ok {
		return []string{}
	}
	if _, ok := a.nodes[endID]; !ok {
		return []string{}
	}
	if startID == endID {
		return []string{startID}
	}

	parent := map[string]string{startID: ""}
	queue := []string{startID}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, neighbor := range a.nodes[current].neighbors {
			if _, visited := parent[neighbor]; visited {
				continue
			}
			parent[neighbor] = current
			if neighbor == endID {
				return buildPath(parent, startID, endID)
			}
			queue = append(queue, neighbor)
		}
	}

	return []string{}
}

func buildPath(parent map[string]string, startID, endID string) []string {
	reversed := []string{endID}
	for current := parent[endID]; current != ""; current = parent[current] {
		reversed = append(reversed, current)
	}

	path := make([]string, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		path = append(path, reversed[i])
	}
	if path[0] != startID {
		return []string{}
	}
	return path
}
