// Package loader parses bulk meeting import payloads.
package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ryuzo-k/kokoro-graph/pkg/common"
)

// ParseMeetingsCSV parses a CSV import payload into meeting records.
// The first row must be a header; recognized columns are initiator,
// subject, location, rating, feedback and created_at (RFC 3339).
// Column order is free and unknown columns are ignored.
//
// Rows are validated individually: a bad row fails the whole parse
// with its line number, so the caller can surface a precise error
// instead of silently importing a partial file.
func ParseMeetingsCSV(content []byte) ([]common.Meeting, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("import file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	colIdx := make(map[string]int, len(header))
	for i, name := range header {
		colIdx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"initiator", "subject", "rating"} {
		if _, ok := colIdx[required]; !ok {
			return nil, fmt.Errorf("import file is missing required column %q", required)
		}
	}

	field := func(record []string, name string) string {
		idx, ok := colIdx[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	meetings := make([]common.Meeting, 0)
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		empty := true
		for _, f := range record {
			if strings.TrimSpace(f) != "" {
				empty = false
				break
			}
		}
		if empty {
			continue
		}

		m := common.Meeting{
			InitiatorName: field(record, "initiator"),
			SubjectName:   field(record, "subject"),
			Location:      field(record, "location"),
			Feedback:      field(record, "feedback"),
		}
		if m.InitiatorName == "" || m.SubjectName == "" {
			return nil, fmt.Errorf("line %d: initiator and subject are required", line)
		}

		rating, err := strconv.Atoi(field(record, "rating"))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid rating %q", line, field(record, "rating"))
		}
		if rating < 1 || rating > 5 {
			return nil, fmt.Errorf("line %d: rating %d out of range 1-5", line, rating)
		}
		m.Rating = rating

		if raw := field(record, "created_at"); raw != "" {
			createdAt, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid created_at %q", line, raw)
			}
			m.CreatedAt = createdAt.UTC()
		}

		meetings = append(meetings, m)
	}

	if len(meetings) == 0 {
		return nil, fmt.Errorf("import file contains no data rows")
	}
	return meetings, nil
}
