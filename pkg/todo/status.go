// Package todo turns raw Notion pages into the normalized todo items the
// rest of the service publishes: classification, filtering, mapping and
// ordering. Everything here is pure; network and state live elsewhere.
package todo

import "strings"

// Status is the completion state of a todo item.
type Status string

const (
	StatusNeedsAction Status = "needs_action"
	StatusCompleted   Status = "completed"
)

// StatusFromLabel classifies a raw status label. A label containing "done"
// or "complete" (case-insensitive) is completed; everything else, including
// an absent label, needs action.
func StatusFromLabel(label string) Status {
	lowered := strings.ToLower(label)

	if strings.Contains(lowered, "done") || strings.Contains(lowered, "complete") {
		return StatusCompleted
	}

	return StatusNeedsAction
}
