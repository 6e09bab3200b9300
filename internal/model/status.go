package model

import "strings"

// Status is a decision status. The well-known vocabulary is small; anything
// else is a custom status kept verbatim. Comparison is case-insensitive,
// storage preserves the text as written.
type Status string

// The well-known status vocabulary.
const (
	StatusProposed   Status = "proposed"
	StatusAccepted   Status = "accepted"
	StatusDeprecated Status = "deprecated"
	StatusSuperseded Status = "superseded"
)

// ParseStatus interprets a status string. Known statuses are matched
// case-insensitively ("superceded" is accepted as an adr-tools era spelling
// of superseded); anything else is preserved verbatim as a custom status.
func ParseStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "proposed":
		return StatusProposed
	case "accepted":
		return StatusAccepted
	case "deprecated":
		return StatusDeprecated
	case "superseded", "superceded":
		return StatusSuperseded
	default:
		return Status(strings.TrimSpace(s))
	}
}

// Equal compares two statuses case-insensitively.
func (s Status) Equal(other Status) bool {
	return equalFold(string(s), string(other))
}

// Known reports whether the status belongs to the well-known vocabulary.
func (s Status) Known() bool {
	switch Status(strings.ToLower(string(s))) {
	case StatusProposed, StatusAccepted, StatusDeprecated, StatusSuperseded:
		return true
	}
	return false
}

// Display returns the status capitalized for prose output ("Accepted").
// Custom statuses are returned as written.
func (s Status) Display() string {
	if !s.Known() {
		return string(s)
	}
	str := strings.ToLower(string(s))
	return strings.ToUpper(str[:1]) + str[1:]
}

func (s Status) String() string { return string(s) }

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
