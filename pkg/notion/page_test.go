package notion_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todosync/notion-todo/pkg/notion"
)

func TestProperty_PlainText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		property notion.Property
		expected string
	}{
		{
			name: "title parts are joined and trimmed",
			property: notion.Property{
				Type:  "title",
				Title: []notion.RichText{{PlainText: "Buy "}, {PlainText: "milk "}},
			},
			expected: "Buy milk",
		},
		{
			name: "rich_text parts are joined",
			property: notion.Property{
				Type:     "rich_text",
				RichText: []notion.RichText{{PlainText: "2%"}},
			},
			expected: "2%",
		},
		{
			name:     "other types yield empty string",
			property: notion.Property{Type: "date", Date: &notion.DateValue{Start: "2026-09-01"}},
			expected: "",
		},
		{
			name:     "zero property yields empty string",
			property: notion.Property{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tt.property.PlainText())
		})
	}
}

func TestProperty_StatusName(t *testing.T) {
	t.Parallel()

	status := notion.Property{Type: "status", Status: &notion.SelectValue{Name: "Next"}}
	assert.Equal(t, "Next", status.StatusName())

	selectProp := notion.Property{Type: "select", Select: &notion.SelectValue{Name: "Waiting"}}
	assert.Equal(t, "Waiting", selectProp.StatusName())

	unset := notion.Property{Type: "status"}
	assert.Empty(t, unset.StatusName())

	assert.Empty(t, notion.Property{}.StatusName())
}

func TestProperty_Due(t *testing.T) {
	t.Parallel()

	t.Run("date-only value is anchored at local midnight", func(t *testing.T) {
		t.Parallel()

		property := notion.Property{Type: "date", Date: &notion.DateValue{Start: "2026-09-03"}}

		due := property.Due()
		require.NotNil(t, due)
		assert.False(t, due.HasTime)
		assert.Equal(t, time.Date(2026, 9, 3, 0, 0, 0, 0, time.Local), due.Start)
		assert.Equal(t, "2026-09-03", due.String())
	})

	t.Run("datetime value keeps its time", func(t *testing.T) {
		t.Parallel()

		property := notion.Property{
			Type: "date",
			Date: &notion.DateValue{Start: "2026-09-03T14:30:00.000+02:00"},
		}

		due := property.Due()
		require.NotNil(t, due)
		assert.True(t, due.HasTime)
		assert.Equal(t, time.Date(2026, 9, 3, 12, 30, 0, 0, time.UTC).Unix(), due.Start.Unix())
	})

	t.Run("unset and malformed dates yield nil", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, notion.Property{}.Due())
		assert.Nil(t, notion.Property{Type: "date"}.Due())
		assert.Nil(t, notion.Property{Type: "date", Date: &notion.DateValue{}}.Due())
		assert.Nil(t, notion.Property{Type: "date", Date: &notion.DateValue{Start: "soon"}}.Due())
	})
}

func TestDue_Date(t *testing.T) {
	t.Parallel()

	due := notion.Due{
		Start:   time.Date(2026, 9, 3, 23, 45, 0, 0, time.Local),
		HasTime: true,
	}

	assert.Equal(t, time.Date(2026, 9, 3, 0, 0, 0, 0, time.Local), due.Date())
}
