package todo

import (
	"strings"
	"time"

	"github.com/todosync/notion-todo/pkg/notion"
)

// Filter decides which pages make it into the published list. Match is a
// pure predicate; a zero Filter admits everything.
type Filter struct {
	include       map[string]struct{}
	exclude       map[string]struct{}
	dueWithinDays int
}

// NewFilter builds a filter from status lists (matched case-insensitively,
// exact) and an optional due window in days. dueWithinDays <= 0 disables
// the window.
func NewFilter(include, exclude []string, dueWithinDays int) Filter {
	return Filter{
		include:       statusSet(include),
		exclude:       statusSet(exclude),
		dueWithinDays: dueWithinDays,
	}
}

func statusSet(statuses []string) map[string]struct{} {
	if len(statuses) == 0 {
		return nil
	}

	set := make(map[string]struct{}, len(statuses))
	for _, status := range statuses {
		set[strings.ToLower(strings.TrimSpace(status))] = struct{}{}
	}

	return set
}

// Match reports whether a page with the given status label and due date is
// included. Rules, in order:
//
//  1. A label in the exclude set rejects the page, even if it is also in
//     the include set.
//  2. A non-empty include set admits only labels it contains.
//  3. A configured due window additionally requires a due date within
//     [today, today+N] in local calendar days; undated pages fail it.
//
// now supplies "today"; only its local calendar day is used.
func (f Filter) Match(label string, due *notion.Due, now time.Time) bool {
	lowered := strings.ToLower(label)

	if len(f.exclude) > 0 {
		if _, excluded := f.exclude[lowered]; excluded {
			return false
		}
	}

	if len(f.include) > 0 {
		if _, included := f.include[lowered]; !included {
			return false
		}
	}

	if f.dueWithinDays > 0 {
		if due == nil {
			return false
		}

		y, m, d := now.Local().Date()
		today := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
		limit := today.AddDate(0, 0, f.dueWithinDays)

		dueDay := due.Date()
		if dueDay.Before(today) || dueDay.After(limit) {
			return false
		}
	}

	return true
}
