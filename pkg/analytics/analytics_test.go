package analytics

import (
	"reflect"
	"testing"

	"github.com/ryuzo-k/kokoro-graph/pkg/common"
)

func rel(a, b string, strength, trust float64, meetings int) common.Relationship {
	return common.Relationship{
		Person1ID:            a,
		Person2ID:            b,
		RelationshipStrength: strength,
		TrustScore:           trust,
		TotalMeetings:        meetings,
		Status:               common.RelationshipActive,
	}
}

func people(ids ...string) []common.Person {
	ps := make([]common.Person, 0, len(ids))
	for _, id := range ids {
		ps = append(ps, common.Person{ID: id, Name: id})
	}
	return ps
}

func TestShortestPath(t *testing.T) {
	a := NewAnalyzer([]common.Relationship{
		rel("A", "B", 1, 3, 1),
		rel("B", "C", 1, 3, 1),
		rel("C", "D", 1, 3, 1),
	}, people("A", "B", "C", "D", "E"))

	tests := []struct {
		name  string
		start string
		end   string
		want  []string
	}{
		{"chain", "A", "D", []string{"A", "B", "C", "D"}},
		{"reverse chain", "D", "A", []string{"D", "C", "B", "A"}},
		{"self", "A", "A", []string{"A"}},
		{"disconnected", "A", "E", []string{}},
		{"unknown start", "Zed", "A", []string{}},
		{"unknown end", "A", "Zed", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.ShortestPath(tt.start, tt.end)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ShortestPath(%q, %q) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestShortestPathPrefersFewerHops(t *testing.T) {
	// A-B-D is shorter than A-B-C-D even though C appears first in the
	// relationship list.
	a := NewAnalyzer([]common.Relationship{
		rel("A", "B", 1, 3, 1),
		rel("B", "C", 1, 3, 1),
		rel("C", "D", 1, 3, 1),
		rel("B", "D", 1, 3, 1),
	}, nil)

	want := []string{"A", "B", "D"}
	if got := a.ShortestPath("A", "D"); !reflect.DeepEqual(got, want) {
		t.Errorf("ShortestPath(A, D) = %v, want %v", got, want)
	}
}

func TestInfluenceMap(t *testing.T) {
	a := NewAnalyzer([]common.Relationship{
		rel("A", "B", 2.5, 3, 1),
		rel("A", "C", 1.5, 3, 1),
	}, people("A", "B", "C", "D"))

	want := map[string]float64{"A": 4.0, "B": 2.5, "C": 1.5, "D": 0}
	if got := a.InfluenceMap(); !reflect.DeepEqual(got, want) {
		t.Errorf("InfluenceMap() = %v, want %v", got, want)
	}
}

func TestMetricsSingleNode(t *testing.T) {
	a := NewAnalyzer(nil, people("Solo"))

	m := a.Metrics()["Solo"]
	if m.DegreeCentrality != 0 {
		t.Errorf("DegreeCentrality = %v, want 0 for a single node", m.DegreeCentrality)
	}
	if m.InfluenceScore != 0 {
		t.Errorf("InfluenceScore = %v, want 0 for a node with no relationships", m.InfluenceScore)
	}
	if m.BridgeScore != 0 {
		t.Errorf("BridgeScore = %v, want 0", m.BridgeScore)
	}
}

func TestMetricsInfluenceBlend(t *testing.T) {
	// Two nodes, one relationship: degree 1/1, trust 4/5, volume 5/10.
	a := NewAnalyzer([]common.Relationship{
		rel("A", "B", 1, 4, 5),
	}, nil)

	m := a.Metrics()["A"]
	want := 0.4*1.0 + 0.3*(4.0/5) + 0.3*0.5
	if diff := m.InfluenceScore - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("InfluenceScore = %v, want %v", m.InfluenceScore, want)
	}
}

func TestMetricsVolumeSaturates(t *testing.T) {
	few := NewAnalyzer([]common.Relationship{rel("A", "B", 1, 5, 10)}, nil)
	many := NewAnalyzer([]common.Relationship{rel("A", "B", 1, 5, 100)}, nil)

	if f, m := few.Metrics()["A"].InfluenceScore, many.Metrics()["A"].InfluenceScore; f != m {
		t.Errorf("influence at 10 meetings = %v, at 100 meetings = %v; want equal past saturation", f, m)
	}
}

func TestMetricsInfluenceMonotonicInDegree(t *testing.T) {
	base := []common.Relationship{
		rel("A", "B", 1, 3, 2),
		rel("C", "D", 1, 3, 2),
	}
	more := append([]common.Relationship{}, base...)
	more = append(more, rel("A", "C", 1, 3, 2))

	lo := NewAnalyzer(base, nil).Metrics()["A"].InfluenceScore
	hi := NewAnalyzer(more, nil).Metrics()["A"].InfluenceScore
	if hi <= lo {
		t.Errorf("influence did not increase with degree: before %v, after %v", lo, hi)
	}
}

// cliqueRels links every pair among ids.
func cliqueRels(ids ...string) []common.Relationship {
	rels := make([]common.Relationship, 0)
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			rels = append(rels, rel(ids[i], ids[j], 1, 3, 2))
		}
	}
	return rels
}

func TestCommunitiesTwoCliques(t *testing.T) {
	rels := cliqueRels("A", "B", "C", "D")
	rels = append(rels, cliqueRels("X", "Y", "Z", "W")...)
	a := NewAnalyzer(rels, nil)

	got := a.Communities()
	for _, pair := range [][2]string{{"A", "B"}, {"A", "C"}, {"A", "D"}, {"X", "Y"}, {"X", "Z"}} {
		if got[pair[0]] != got[pair[1]] {
			t.Errorf("%s and %s assigned different communities: %d vs %d", pair[0], pair[1], got[pair[0]], got[pair[1]])
		}
	}
	if got["A"] == got["X"] {
		t.Errorf("disjoint cliques share community %d", got["A"])
	}
}

func TestCommunitiesWeakTieNotMerged(t *testing.T) {
	// A single edge between the cliques shares no common neighbors, so
	// the flood fill must not cross it.
	rels := cliqueRels("A", "B", "C", "D")
	rels = append(rels, cliqueRels("X", "Y", "Z", "W")...)
	rels = append(rels, rel("D", "X", 1, 3, 1))
	a := NewAnalyzer(rels, nil)

	got := a.Communities()
	if got["A"] != got["D"] {
		t.Errorf("clique members A and D assigned different communities: %d vs %d", got["A"], got["D"])
	}
	if got["A"] == got["X"] {
		t.Errorf("weakly tied cliques merged into community %d", got["A"])
	}
}

func TestCommunitiesIsolatedNodeIsSingleton(t *testing.T) {
	a := NewAnalyzer(cliqueRels("A", "B", "C", "D"), people("A", "B", "C", "D", "Loner"))

	got := a.Communities()
	for _, id := range []string{"A", "B", "C", "D"} {
		if got[id] == got["Loner"] {
			t.Errorf("isolated node shares community %d with %s", got["Loner"], id)
		}
	}
}

func TestMetricsBridgeSpansCommunities(t *testing.T) {
	// M touches both cliques but merges into neither, so its neighbors
	// land in different communities while clique interiors stay uniform.
	rels := cliqueRels("A", "B", "C", "D")
	rels = append(rels, cliqueRels("X", "Y", "Z", "W")...)
	rels = append(rels, rel("M", "A", 1, 3, 1), rel("M", "X", 1, 3, 1))
	a := NewAnalyzer(rels, nil)

	metrics := a.Metrics()
	if metrics["M"].BridgeScore != 1 {
		t.Errorf("BridgeScore for connector = %d, want 1", metrics["M"].BridgeScore)
	}
	if metrics["B"].BridgeScore != 0 {
		t.Errorf("BridgeScore for clique-internal node = %d, want 0", metrics["B"].BridgeScore)
	}
}

func TestSuggestConnectionsCapAndExclusions(t *testing.T) {
	// Three separate cliques give every node at least eight
	// non-neighbor candidates through the influence pool.
	rels := cliqueRels("A", "B", "C", "D")
	rels = append(rels, cliqueRels("E", "F", "G", "H")...)
	rels = append(rels, cliqueRels("I", "J", "K", "L")...)
	a := NewAnalyzer(rels, nil)

	suggestions := a.SuggestConnections()
	for id, s := range suggestions {
		if len(s) > maxSuggestionsPerPerson {
			t.Errorf("%s got %d suggestions, want at most %d", id, len(s), maxSuggestionsPerPerson)
		}
		for _, sug := range s {
			if sug.PersonID == id {
				t.Errorf("%s was suggested to connect with themself", id)
			}
			if len(sug.Reasons) == 0 {
				t.Errorf("suggestion %s -> %s has no reasons", id, sug.PersonID)
			}
		}
	}
}

func TestSuggestConnectionsExcludesNeighbors(t *testing.T) {
	// A is already connected to everyone in its clique; candidates must
	// come from elsewhere.
	rels := cliqueRels("A", "B", "C", "D")
	rels = append(rels, cliqueRels("X", "Y", "Z")...)
	a := NewAnalyzer(rels, nil)

	for _, sug := range a.SuggestConnections()["A"] {
		switch sug.PersonID {
		case "B", "C", "D":
			t.Errorf("existing neighbor %s suggested to A", sug.PersonID)
		}
	}
}

func TestSuggestConnectionsMergesReasons(t *testing.T) {
	// In one big clique minus the A-H edge, H is both in A's community
	// and in the top-influence pool.
	rels := make([]common.Relationship, 0)
	ids := []string{"A", "B", "C", "D", "E", "H"}
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			if ids[i] == "A" && ids[j] == "H" {
				continue
			}
			rels = append(rels, rel(ids[i], ids[j], 1, 4, 3))
		}
	}
	a := NewAnalyzer(rels, nil)

	var forH *Suggestion
	for _, sug := range a.SuggestConnections()["A"] {
		if sug.PersonID == "H" {
			s := sug
			forH = &s
			break
		}
	}
	if forH == nil {
		t.Fatalf("H not suggested to A")
	}
	if len(forH.Reasons) < 2 {
		t.Errorf("reasons for H = %v, want both community and influence heuristics", forH.Reasons)
	}
}

func TestNeighborsUnknownID(t *testing.T) {
	a := NewAnalyzer(nil, people("A"))
	if got := a.Neighbors("Zed"); got != nil {
		t.Errorf("Neighbors(unknown) = %v, want nil", got)
	}
}
