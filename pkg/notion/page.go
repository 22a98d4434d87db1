package notion

import (
	"strings"
	"time"
)

// Page is one record of a Notion database, as returned by a query. Only the
// fields this integration reads are decoded; everything else is dropped.
type Page struct {
	ID         string              `json:"id"`
	Archived   bool                `json:"archived"`
	InTrash    bool                `json:"in_trash"`
	Properties map[string]Property `json:"properties"`
}

// Property is a single page property. The vendor encodes the value under a
// key named after its type, so the struct carries one optional field per
// supported type and accessors pick the right one.
type Property struct {
	Type     string       `json:"type"`
	Title    []RichText   `json:"title,omitempty"`
	RichText []RichText   `json:"rich_text,omitempty"`
	Select   *SelectValue `json:"select,omitempty"`
	Status   *SelectValue `json:"status,omitempty"`
	Checkbox *bool        `json:"checkbox,omitempty"`
	Date     *DateValue   `json:"date,omitempty"`
}

type RichText struct {
	PlainText string `json:"plain_text"`
}

type SelectValue struct {
	Name string `json:"name"`
}

type DateValue struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

// PlainText joins the rich text parts of a title or rich_text property into
// one trimmed string. Other property types yield "".
func (p Property) PlainText() string {
	var parts []RichText

	switch p.Type {
	case "title":
		parts = p.Title
	case "rich_text":
		parts = p.RichText
	default:
		return ""
	}

	var b strings.Builder
	for _, part := range parts {
		b.WriteString(part.PlainText)
	}

	return strings.TrimSpace(b.String())
}

// StatusName returns the selected label of a status or select property, or
// "" when the property has another type or no selection.
func (p Property) StatusName() string {
	switch p.Type {
	case "status":
		if p.Status != nil {
			return p.Status.Name
		}
	case "select":
		if p.Select != nil {
			return p.Select.Name
		}
	}

	return ""
}

// Due parses the start of a date property. Date-only values are anchored at
// local midnight so calendar-day comparisons stay in the system timezone.
// Returns nil for non-date properties, unset dates and unparseable values.
func (p Property) Due() *Due {
	if p.Type != "date" || p.Date == nil || p.Date.Start == "" {
		return nil
	}

	start := p.Date.Start
	if strings.Contains(start, "T") {
		parsed, err := time.Parse(time.RFC3339, start)
		if err != nil {
			return nil
		}

		return &Due{Start: parsed.Local(), HasTime: true}
	}

	parsed, err := time.ParseInLocation("2006-01-02", start, time.Local)
	if err != nil {
		return nil
	}

	return &Due{Start: parsed}
}

// Due is a page due date, either a bare calendar date or a timestamp.
type Due struct {
	Start   time.Time
	HasTime bool
}

// Date truncates the due moment to its local calendar day.
func (d Due) Date() time.Time {
	y, m, day := d.Start.Local().Date()

	return time.Date(y, m, day, 0, 0, 0, 0, time.Local)
}

func (d Due) String() string {
	if d.HasTime {
		return d.Start.Format(time.RFC3339)
	}

	return d.Start.Format("2006-01-02")
}

func (d Due) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// Database is the metadata of a Notion database, including the data sources
// a multi-source database fans out into.
type Database struct {
	ID          string       `json:"id"`
	Title       []RichText   `json:"title"`
	DataSources []DataSource `json:"data_sources"`
}

// DataSource identifies one sub-collection of a multi-source database.
type DataSource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TitleText joins the database title into one string.
func (d Database) TitleText() string {
	var b strings.Builder
	for _, part := range d.Title {
		b.WriteString(part.PlainText)
	}

	return strings.TrimSpace(b.String())
}
