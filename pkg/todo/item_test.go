package todo_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/todosync/notion-todo/pkg/notion"
	"github.com/todosync/notion-todo/pkg/todo"
)

func TestSortItems(t *testing.T) {
	t.Parallel()

	day := func(offset int) *notion.Due {
		return &notion.Due{Start: time.Date(2026, 8, 1+offset, 0, 0, 0, 0, time.Local)}
	}

	items := []todo.Item{
		{ID: "e", Summary: "zeta"},
		{ID: "d", Summary: "alpha"},
		{ID: "c", Summary: "beta", Due: day(2)},
		{ID: "b", Summary: "alpha", Due: day(2)},
		{ID: "a", Summary: "omega", Due: day(0)},
	}

	todo.SortItems(items)

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}

	// Due ascending, ties by summary, undated last sorted by summary.
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids)
}
