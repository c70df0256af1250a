package model

import (
	"fmt"
	"strings"
)

// Direction selects which way a descriptor is synchronized.
type Direction string

const (
	// Pull copies the resource's current contents into the associated data file.
	Pull Direction = "pull"

	// Push writes the associated data file's contents back into the resource.
	Push Direction = "push"
)

// IsValid returns true if the direction is recognized.
func (d Direction) IsValid() bool {
	switch d {
	case Pull, Push:
		return true
	default:
		return false
	}
}

// AllDirections returns all supported directions.
func AllDirections() []Direction {
	return []Direction{Pull, Push}
}

// String returns the string representation of the direction.
func (d Direction) String() string {
	return string(d)
}

// PastTense returns the verb used when announcing a completed sync ("pulled", "pushed").
func (d Direction) PastTense() string {
	switch d {
	case Pull:
		return "pulled"
	case Push:
		return "pushed"
	default:
		return "synced"
	}
}

// ParseDirection converts a string to a Direction.
// Returns Pull if the string is empty.
func ParseDirection(s string) (Direction, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "" {
		return Pull, nil
	}

	d := Direction(normalized)
	if d.IsValid() {
		return d, nil
	}

	switch normalized {
	case "yoink", "fetch", "capture":
		return Pull, nil
	case "apply", "restore":
		return Push, nil
	default:
		return "", fmt.Errorf("unknown direction %q (valid: pull, push)", s)
	}
}
