package todo

import (
	"sort"

	"github.com/todosync/notion-todo/pkg/notion"
)

// Item is one normalized todo entry. Its ID is the source page id; items
// are rebuilt from scratch on every refresh, there is no identity beyond
// that.
type Item struct {
	ID          string      `json:"id"`
	Summary     string      `json:"summary"`
	Description string      `json:"description,omitempty"`
	Due         *notion.Due `json:"due,omitempty"`
	Status      Status      `json:"status"`
}

// SortItems orders a snapshot for publishing: due date ascending, undated
// items last, ties broken by summary.
func SortItems(items []Item) {
	sort.Slice(items, func(i, j int) bool {
		left, right := items[i], items[j]

		switch {
		case left.Due == nil && right.Due == nil:
			return left.Summary < right.Summary
		case left.Due == nil:
			return false
		case right.Due == nil:
			return true
		case left.Due.Start.Equal(right.Due.Start):
			return left.Summary < right.Summary
		default:
			return left.Due.Start.Before(right.Due.Start)
		}
	})
}
