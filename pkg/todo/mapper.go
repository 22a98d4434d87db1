package todo

import (
	"errors"
	"fmt"

	"github.com/todosync/notion-todo/pkg/notion"
	"github.com/todosync/notion-todo/pkg/tasksource"
)

// ErrTitleProperty means the configured title property name is not part of
// the page's schema. The page is skipped with a warning; the refresh as a
// whole continues.
var ErrTitleProperty = errors.New("todo: title property not found on page")

// MapPage converts one page into an item using the configured property
// names. A present-but-empty title maps to summary ""; a title property
// missing from the page schema is a mapping error.
func MapPage(page notion.Page, props tasksource.Properties) (Item, error) {
	titleProp, ok := page.Properties[props.Title]
	if !ok {
		return Item{}, fmt.Errorf("%w: %q (page %s)", ErrTitleProperty, props.Title, page.ID)
	}

	item := Item{
		ID:      page.ID,
		Summary: titleProp.PlainText(),
		Status:  StatusNeedsAction,
	}

	if props.Status != "" {
		item.Status = StatusFromLabel(page.Properties[props.Status].StatusName())
	}

	if props.Due != "" {
		item.Due = page.Properties[props.Due].Due()
	}

	if props.Description != "" {
		item.Description = page.Properties[props.Description].PlainText()
	}

	return item, nil
}
