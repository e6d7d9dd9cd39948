package network

import (
	"errors"
	"fmt"

	"github.com/ryuzo-k/kokoro-graph/pkg/common"
)

// ErrInvalidMeeting is returned when a meeting is structurally invalid,
// e.g. a missing initiator or subject name. Malformed records are a
// caller defect and fail the whole aggregation pass rather than being
// silently skipped.
var ErrInvalidMeeting = errors.New("invalid meeting record")

// maxRatingScale is the upper bound of the 1-5 rating scale. A person's
// own recordings are folded into their average as the inverted rating
// (maxRatingScale + 1 - rating). This asymmetry mirrors the product's
// original scoring convention and is pinned by tests; do not "fix" it
// without revisiting the aggregate tests.
const maxRatingScale = 5

// PairKey returns the canonical undirected key for two participant
// names: both names sorted lexicographically and joined, so (A,B) and
// (B,A) collapse to the same connection.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "-" + b
}

// Aggregate converts a flat list of meetings into a deduplicated set of
// people and undirected connections, computing per-person and
// per-connection average ratings.
//
// The function is pure: identical input always yields identical output,
// and the output order of people and connections is the first-seen order
// during a single pass over meetings. Detail fields are backfilled by
// exact-name lookup against details, first match wins; a person's
// location falls back to the first meeting with a non-empty location
// when the detail record left it unset.
func Aggregate(
	meetings []common.Meeting,
	details []common.PersonDetail,
) ([]common.Person, []common.Connection, error) {
	people := make([]common.Person, 0)
	connections := make([]common.Connection, 0)

	detailByName := make(map[string]common.PersonDetail, len(details))
	for _, d := range details {
		if _, ok := detailByName[d.Name]; ok {
			continue
		}
		detailByName[d.Name] = d
	}

	personIdx := make(map[string]int)
	ratingSums := make(map[string]float64)
	ratingCounts := make(map[string]int)

	connIdx := make(map[string]int)
	connRatingSums := make(map[string]float64)

	register := func(name string) int {
		if idx, ok := personIdx[name]; ok {
			return idx
		}
		p := common.Person{
			ID:       name,
			Name:     name,
			Meetings: make([]common.Meeting, 0, 1),
		}
		if d, ok := detailByName[name]; ok {
			if d.ID != "" {
				p.ID = d.ID
			}
			p.Company = d.Company
			p.Position = d.Position
			p.Location = d.Location
			p.AvatarURL = d.AvatarURL
		}
		personIdx[name] = len(people)
		people = append(people, p)
		return personIdx[name]
	}

	for i, m := range meetings {
		if m.InitiatorName == "" || m.SubjectName == "" {
			return nil, nil, fmt.Errorf("%w: meeting %d is missing a participant name", ErrInvalidMeeting, i)
		}

		initIdx := register(m.InitiatorName)
		subjIdx := register(m.SubjectName)

		indices := []int{initIdx, subjIdx}
		if initIdx == subjIdx {
			indices = indices[:1]
		}
		for _, idx := range indices {
			people[idx].Meetings = append(people[idx].Meetings, m)
			people[idx].MeetingCount++
			if people[idx].Location == "" && m.Location != "" {
				people[idx].Location = m.Location
			}
		}

		// The subject is scored with the raw rating; the initiator's own
		// recording counts toward them as the inverted rating.
		ratingSums[m.SubjectName] += float64(m.Rating)
		ratingCounts[m.SubjectName]++
		ratingSums[m.InitiatorName] += float64(maxRatingScale + 1 - m.Rating)
		ratingCounts[m.InitiatorName]++

		key := PairKey(m.InitiatorName, m.SubjectName)
		idx, ok := connIdx[key]
		if !ok {
			a, b := m.InitiatorName, m.SubjectName
			if b < a {
				a, b = b, a
			}
			connIdx[key] = len(connections)
			connections = append(connections, common.Connection{
				PairKey: key,
				PersonA: a,
				PersonB: b,
			})
			idx = connIdx[key]
		}
		connections[idx].MeetingCount++
		// Connection averages use raw ratings in both directions, without
		// the person-level inversion.
		connRatingSums[key] += float64(m.Rating)
		if m.CreatedAt.After(connections[idx].LastMeetingAt) {
			connections[idx].LastMeetingAt = m.CreatedAt
		}
	}

	for i := range people {
		if count := ratingCounts[people[i].Name]; count > 0 {
			people[i].AverageRating = ratingSums[people[i].Name] / float64(count)
		}
	}
	for i := range connections {
		if connections[i].MeetingCount > 0 {
			connections[i].AverageRating = connRatingSums[connections[i].PairKey] / float64(connections[i].MeetingCount)
		}
	}

	return people, connections, nil
}
