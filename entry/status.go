package entry

import (
	"fmt"
	"strings"
)

// Status is the user's relationship to a title.
// The numeric values match the legacy list encoding, hence the gap at 5.
type Status int

const (
	NotInList Status = 0
	Current   Status = 1
	Completed Status = 2
	OnHold    Status = 3
	Dropped   Status = 4
	Planned   Status = 6
)

// Statuses lists every status value in declaration order.
var Statuses = []Status{NotInList, Current, Completed, OnHold, Dropped, Planned}

var statusNames = map[Status]string{
	NotInList: "not in list",
	Current:   "current",
	Completed: "completed",
	OnHold:    "on hold",
	Dropped:   "dropped",
	Planned:   "planned",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Valid reports whether s is one of the six statuses.
func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// Listed reports whether s places the title in the list.
func (s Status) Listed() bool {
	return s != NotInList && s.Valid()
}

// ParseStatus accepts the status names, with spaces, dashes or underscores, case-insensitively.
func ParseStatus(s string) (Status, error) {
	normalized := strings.NewReplacer("_", " ", "-", " ").Replace(strings.ToLower(strings.TrimSpace(s)))
	for status, name := range statusNames {
		if name == normalized {
			return status, nil
		}
	}
	switch normalized {
	case "watching", "reading":
		return Current, nil
	case "plan to watch", "plan to read", "planning":
		return Planned, nil
	case "paused":
		return OnHold, nil
	}
	return NotInList, fmt.Errorf("unknown list status %q", s)
}
