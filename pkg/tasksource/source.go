// Package tasksource holds the configuration of one Notion-backed todo list:
// which database to poll, which page properties to read and which pages to
// keep.
package tasksource

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/todosync/notion-todo/pkg/notion"
)

// Default property names, matching the columns Notion creates for a fresh
// task database.
const (
	DefaultTitleProperty       = "Name"
	DefaultStatusProperty      = "Status"
	DefaultDueProperty         = "Due"
	DefaultDescriptionProperty = "Description"

	DefaultPollSchedule = "@every 5m"
)

// Properties maps todo item fields onto Notion property names.
type Properties struct {
	Title       string `yaml:"title"       validate:"required"`
	Status      string `yaml:"status"`
	Due         string `yaml:"due"`
	Description string `yaml:"description"`
}

// Source is the full configuration of one task source. Built once at setup
// and treated as immutable afterwards.
type Source struct {
	Name string `yaml:"name"`

	Token        string `yaml:"token"          validate:"required"`
	DatabaseID   string `yaml:"database_id"    validate:"required_without=DataSourceID"`
	DataSourceID string `yaml:"data_source_id"`

	Properties Properties `yaml:"properties"`

	IncludeStatuses []string `yaml:"include_statuses"`
	ExcludeStatuses []string `yaml:"exclude_statuses"`
	DueWithinDays   int      `yaml:"due_within_days" validate:"gte=0"`

	PollSchedule string `yaml:"poll_schedule"`
}

// ApplyDefaults fills unset property names and the poll schedule.
func (s *Source) ApplyDefaults() {
	if s.Name == "" {
		s.Name = "notion-todo"
	}

	if s.Properties.Title == "" {
		s.Properties.Title = DefaultTitleProperty
	}

	if s.Properties.Status == "" {
		s.Properties.Status = DefaultStatusProperty
	}

	if s.Properties.Due == "" {
		s.Properties.Due = DefaultDueProperty
	}

	if s.Properties.Description == "" {
		s.Properties.Description = DefaultDescriptionProperty
	}

	if s.PollSchedule == "" {
		s.PollSchedule = DefaultPollSchedule
	}
}

// Validate checks the source after defaults were applied.
func (s *Source) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid task source: %w", err)
	}

	if _, err := cron.ParseStandard(s.PollSchedule); err != nil {
		return fmt.Errorf("invalid poll schedule %q: %w", s.PollSchedule, err)
	}

	return nil
}

// QueryTarget returns the query variant for this source. A selected data
// source takes precedence over the plain database id.
func (s *Source) QueryTarget() notion.QueryTarget {
	return notion.QueryTarget{
		DatabaseID:   s.DatabaseID,
		DataSourceID: s.DataSourceID,
	}
}

// ParseStatusList splits a comma-separated list of status labels, dropping
// empty entries.
func ParseStatusList(value string) []string {
	var statuses []string

	for _, entry := range strings.Split(value, ",") {
		entry = strings.TrimSpace(entry)
		if entry != "" {
			statuses = append(statuses, entry)
		}
	}

	return statuses
}

var databaseIDPattern = regexp.MustCompile(
	`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}|[0-9a-fA-F]{32}`,
)

// DatabaseIDFromInput extracts a database id from a raw id or a pasted
// Notion URL and normalizes it to the dashed UUID form the API expects.
func DatabaseIDFromInput(value string) (string, error) {
	match := databaseIDPattern.FindString(value)
	if match == "" {
		return "", fmt.Errorf("no database id found in %q", value)
	}

	parsed, err := uuid.Parse(match)
	if err != nil {
		return "", fmt.Errorf("invalid database id %q: %w", match, err)
	}

	return parsed.String(), nil
}
