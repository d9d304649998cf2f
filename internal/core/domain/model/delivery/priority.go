package delivery

import (
	"fmt"
	"strings"

	"lastmile/internal/pkg/errs"
)

type Priority int

const (
	PriorityUnknown Priority = iota
	PriorityLow
	PriorityNormal
	PriorityHigh
	PriorityUrgent
)

func priorityNames() map[Priority]string {
	return map[Priority]string{
		PriorityUnknown: "UNKNOWN",
		PriorityLow:     "LOW",
		PriorityNormal:  "NORMAL",
		PriorityHigh:    "HIGH",
		PriorityUrgent:  "URGENT",
	}
}

// ParsePriority maps a wire name to a Priority. An empty string yields
// PriorityNormal.
func ParsePriority(s string) (Priority, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "" {
		return PriorityNormal, nil
	}
	for p, n := range priorityNames() {
		if p != PriorityUnknown && n == name {
			return p, nil
		}
	}
	return PriorityUnknown, errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%q is not a priority", s))
}

func (p Priority) String() string {
	if name, ok := priorityNames()[p]; ok {
		return name
	}
	return "UNKNOWN"
}

func (p Priority) Validate() error {
	if p < PriorityLow || p > PriorityUrgent {
		return errs.NewValueIsOutOfRangeError("priority", int(p), int(PriorityLow), int(PriorityUrgent))
	}
	return nil
}
