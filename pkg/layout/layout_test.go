package layout

import (
	"math"
	"reflect"
	"testing"

	"github.com/ryuzo-k/kokoro-graph/pkg/common"
)

func testPeople(names ...string) []common.Person {
	people := make([]common.Person, 0, len(names))
	for _, n := range names {
		people = append(people, common.Person{ID: n, Name: n})
	}
	return people
}

func TestComputeEmptyGraph(t *testing.T) {
	got := Compute(nil, nil, Config{})
	if len(got) != 0 {
		t.Errorf("Compute() returned %d positions, want 0", len(got))
	}
}

func TestComputeSingleNode(t *testing.T) {
	got := Compute(testPeople("Alice"), nil, Config{})
	if len(got) != 1 {
		t.Fatalf("Compute() returned %d positions, want 1", len(got))
	}
	p := got["Alice"]
	if p.X != 0 || p.Y != 0 {
		t.Errorf("single node position = (%v, %v), want origin", p.X, p.Y)
	}
}

func TestComputeDeterminism(t *testing.T) {
	people := testPeople("Alice", "Bob", "Carol", "Dave")
	connections := []common.Connection{
		{PairKey: "Alice-Bob", PersonA: "Alice", PersonB: "Bob", MeetingCount: 3},
		{PairKey: "Bob-Carol", PersonA: "Bob", PersonB: "Carol", MeetingCount: 1},
	}

	first := Compute(people, connections, Config{})
	second := Compute(people, connections, Config{})

	if !reflect.DeepEqual(first, second) {
		t.Errorf("positions differ between identical runs:\nfirst  = %#v\nsecond = %#v", first, second)
	}
}

func TestComputeCollisionSeparation(t *testing.T) {
	people := testPeople("A", "B", "C", "D", "E", "F")
	connections := []common.Connection{
		{PairKey: "A-B", PersonA: "A", PersonB: "B", MeetingCount: 5},
		{PairKey: "B-C", PersonA: "B", PersonB: "C", MeetingCount: 2},
		{PairKey: "D-E", PersonA: "D", PersonB: "E", MeetingCount: 1},
	}
	cfg := DefaultConfig()

	positions := Compute(people, connections, cfg)
	if len(positions) != len(people) {
		t.Fatalf("Compute() returned %d positions, want %d", len(positions), len(people))
	}

	ids := make([]string, 0, len(positions))
	for id := range positions {
		ids = append(ids, id)
	}
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a, b := positions[ids[i]], positions[ids[j]]
			dist := math.Hypot(b.X-a.X, b.Y-a.Y)
			if dist < cfg.CollisionRadius-1e-6 {
				t.Errorf("nodes %s and %s are %v apart, want >= %v", ids[i], ids[j], dist, cfg.CollisionRadius)
			}
		}
	}
}

func TestComputeUnknownConnectionIgnored(t *testing.T) {
	people := testPeople("Alice", "Bob")
	connections := []common.Connection{
		{PairKey: "Alice-Zed", PersonA: "Alice", PersonB: "Zed", MeetingCount: 1},
	}

	got := Compute(people, connections, Config{Iterations: 10})
	if len(got) != 2 {
		t.Errorf("Compute() returned %d positions, want 2", len(got))
	}
	if _, ok := got["Zed"]; ok {
		t.Errorf("Compute() produced a position for a person not in the input")
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	want := Config{
		Iterations:      200,
		ChargeStrength:  -250,
		LinkRestLength:  120,
		CollisionRadius: 90,
	}
	if cfg != want {
		t.Errorf("withDefaults() = %+v, want %+v", cfg, want)
	}

	custom := Config{Iterations: 50, ChargeStrength: -100, LinkRestLength: 60, CollisionRadius: 30}
	if got := custom.withDefaults(); got != custom {
		t.Errorf("withDefaults() overwrote explicit values: %+v", got)
	}
}
