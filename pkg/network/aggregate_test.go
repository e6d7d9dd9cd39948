package network

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/ryuzo-k/kokoro-graph/pkg/common"
)

func TestPairKey(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want string
	}{
		{name: "already sorted", a: "Alice", b: "Bob", want: "Alice-Bob"},
		{name: "reversed", a: "Bob", b: "Alice", want: "Alice-Bob"},
		{name: "equal names", a: "Alice", b: "Alice", want: "Alice-Alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PairKey(tt.a, tt.b); got != tt.want {
				t.Errorf("PairKey(%q, %q) = %q, want %q", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestAggregateEmpty(t *testing.T) {
	people, connections, err := Aggregate(nil, nil)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if len(people) != 0 {
		t.Errorf("Aggregate() returned %d people, want 0", len(people))
	}
	if len(connections) != 0 {
		t.Errorf("Aggregate() returned %d connections, want 0", len(connections))
	}
}

func TestAggregateInvalidMeeting(t *testing.T) {
	meetings := []common.Meeting{
		{InitiatorName: "Alice", SubjectName: "", Rating: 3},
	}
	_, _, err := Aggregate(meetings, nil)
	if !errors.Is(err, ErrInvalidMeeting) {
		t.Errorf("Aggregate() error = %v, want ErrInvalidMeeting", err)
	}
}

func TestAggregateRatingInversion(t *testing.T) {
	// A single meeting where I rates S with r must yield S.avg == r and
	// I.avg == 6-r.
	meetings := []common.Meeting{
		{ID: "m1", InitiatorName: "Ichiro", SubjectName: "Sato", Rating: 5},
	}

	people, _, err := Aggregate(meetings, nil)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if len(people) != 2 {
		t.Fatalf("Aggregate() returned %d people, want 2", len(people))
	}

	byName := make(map[string]common.Person)
	for _, p := range people {
		byName[p.Name] = p
	}

	if got := byName["Sato"].AverageRating; got != 5 {
		t.Errorf("subject average = %v, want 5", got)
	}
	if got := byName["Ichiro"].AverageRating; got != 1 {
		t.Errorf("initiator average = %v, want 1 (6-5)", got)
	}
}

func TestAggregateConnectionSymmetry(t *testing.T) {
	meetings := []common.Meeting{
		{ID: "m1", InitiatorName: "Alice", SubjectName: "Bob", Rating: 5},
		{ID: "m2", InitiatorName: "Bob", SubjectName: "Alice", Rating: 4},
	}

	people, connections, err := Aggregate(meetings, nil)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	if len(connections) != 1 {
		t.Fatalf("Aggregate() returned %d connections, want 1", len(connections))
	}
	conn := connections[0]
	if conn.PairKey != "Alice-Bob" {
		t.Errorf("PairKey = %q, want %q", conn.PairKey, "Alice-Bob")
	}
	if conn.MeetingCount != 2 {
		t.Errorf("MeetingCount = %d, want 2", conn.MeetingCount)
	}
	// Connection averages use raw ratings, no inversion: (5+4)/2.
	if conn.AverageRating != 4.5 {
		t.Errorf("AverageRating = %v, want 4.5", conn.AverageRating)
	}

	// End-to-end person averages for the same scenario: Alice collects
	// 6-5=1 as initiator of m1 and the raw 4 as subject of m2; Bob
	// collects the raw 5 and 6-4=2.
	byName := make(map[string]common.Person)
	for _, p := range people {
		byName[p.Name] = p
	}
	if got := byName["Alice"].AverageRating; got != 2.5 {
		t.Errorf("Alice average = %v, want 2.5", got)
	}
	if got := byName["Bob"].AverageRating; got != 3.5 {
		t.Errorf("Bob average = %v, want 3.5", got)
	}
	if got := byName["Alice"].MeetingCount; got != 2 {
		t.Errorf("Alice meeting count = %d, want 2", got)
	}
}

func TestAggregateIdempotence(t *testing.T) {
	meetings := []common.Meeting{
		{ID: "m1", InitiatorName: "Alice", SubjectName: "Bob", Rating: 5, Location: "Tokyo"},
		{ID: "m2", InitiatorName: "Carol", SubjectName: "Alice", Rating: 3},
		{ID: "m3", InitiatorName: "Bob", SubjectName: "Carol", Rating: 4},
	}
	details := []common.PersonDetail{
		{ID: "p-alice", Name: "Alice", Company: "Acme"},
	}

	people1, conns1, err := Aggregate(meetings, details)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	people2, conns2, err := Aggregate(meetings, details)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	if !reflect.DeepEqual(people1, people2) {
		t.Errorf("people differ between identical aggregation passes")
	}
	if !reflect.DeepEqual(conns1, conns2) {
		t.Errorf("connections differ between identical aggregation passes")
	}
}

func TestAggregateFirstSeenOrder(t *testing.T) {
	meetings := []common.Meeting{
		{ID: "m1", InitiatorName: "Carol", SubjectName: "Alice", Rating: 3},
		{ID: "m2", InitiatorName: "Alice", SubjectName: "Bob", Rating: 4},
	}

	people, connections, err := Aggregate(meetings, nil)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	gotNames := make([]string, 0, len(people))
	for _, p := range people {
		gotNames = append(gotNames, p.Name)
	}
	wantNames := []string{"Carol", "Alice", "Bob"}
	if !reflect.DeepEqual(gotNames, wantNames) {
		t.Errorf("people order = %v, want %v", gotNames, wantNames)
	}

	gotKeys := make([]string, 0, len(connections))
	for _, c := range connections {
		gotKeys = append(gotKeys, c.PairKey)
	}
	wantKeys := []string{"Alice-Carol", "Alice-Bob"}
	if !reflect.DeepEqual(gotKeys, wantKeys) {
		t.Errorf("connection order = %v, want %v", gotKeys, wantKeys)
	}
}

func TestAggregateDetailBackfill(t *testing.T) {
	meetings := []common.Meeting{
		{ID: "m1", InitiatorName: "Alice", SubjectName: "Bob", Rating: 4, Location: "Osaka"},
		{ID: "m2", InitiatorName: "Alice", SubjectName: "Bob", Rating: 5, Location: "Kyoto"},
	}
	details := []common.PersonDetail{
		{ID: "p-alice", Name: "Alice", Company: "Acme", Position: "Engineer", Location: "Tokyo"},
		{ID: "p-alice-dup", Name: "Alice", Company: "Other"},
	}

	people, _, err := Aggregate(meetings, details)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	byName := make(map[string]common.Person)
	for _, p := range people {
		byName[p.Name] = p
	}

	alice := byName["Alice"]
	if alice.ID != "p-alice" {
		t.Errorf("Alice.ID = %q, want first detail match %q", alice.ID, "p-alice")
	}
	if alice.Company != "Acme" {
		t.Errorf("Alice.Company = %q, want %q (first match wins)", alice.Company, "Acme")
	}
	// Detail location is set, so meeting locations never overwrite it.
	if alice.Location != "Tokyo" {
		t.Errorf("Alice.Location = %q, want %q", alice.Location, "Tokyo")
	}

	bob := byName["Bob"]
	if bob.ID != "Bob" {
		t.Errorf("Bob.ID = %q, want name fallback %q", bob.ID, "Bob")
	}
	// No detail record: location comes from the first meeting with a
	// non-empty location, not the last.
	if bob.Location != "Osaka" {
		t.Errorf("Bob.Location = %q, want %q (first wins)", bob.Location, "Osaka")
	}
}

func TestAggregateLastMeetingAt(t *testing.T) {
	t1 := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	meetings := []common.Meeting{
		{ID: "m1", InitiatorName: "Alice", SubjectName: "Bob", Rating: 4, CreatedAt: t2},
		{ID: "m2", InitiatorName: "Bob", SubjectName: "Alice", Rating: 3, CreatedAt: t1},
	}

	_, connections, err := Aggregate(meetings, nil)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if len(connections) != 1 {
		t.Fatalf("Aggregate() returned %d connections, want 1", len(connections))
	}
	if !connections[0].LastMeetingAt.Equal(t2) {
		t.Errorf("LastMeetingAt = %v, want %v", connections[0].LastMeetingAt, t2)
	}
}
