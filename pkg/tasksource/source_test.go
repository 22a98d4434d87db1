package tasksource_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todosync/notion-todo/pkg/tasksource"
)

func validSource() tasksource.Source {
	source := tasksource.Source{
		Token:      "secret",
		DatabaseID: "2f64ee8a-7a07-4c6d-9a48-4a8d3b9f2c11",
	}
	source.ApplyDefaults()

	return source
}

func TestSource_ApplyDefaults(t *testing.T) {
	t.Parallel()

	var source tasksource.Source
	source.ApplyDefaults()

	assert.Equal(t, tasksource.DefaultTitleProperty, source.Properties.Title)
	assert.Equal(t, tasksource.DefaultStatusProperty, source.Properties.Status)
	assert.Equal(t, tasksource.DefaultDueProperty, source.Properties.Due)
	assert.Equal(t, tasksource.DefaultDescriptionProperty, source.Properties.Description)
	assert.Equal(t, tasksource.DefaultPollSchedule, source.PollSchedule)
	assert.Equal(t, "notion-todo", source.Name)
}

func TestSource_ApplyDefaults_KeepsConfiguredValues(t *testing.T) {
	t.Parallel()

	source := tasksource.Source{
		Name:         "chores",
		Properties:   tasksource.Properties{Title: "Task"},
		PollSchedule: "@every 1m",
	}
	source.ApplyDefaults()

	assert.Equal(t, "chores", source.Name)
	assert.Equal(t, "Task", source.Properties.Title)
	assert.Equal(t, "@every 1m", source.PollSchedule)
	assert.Equal(t, tasksource.DefaultStatusProperty, source.Properties.Status)
}

func TestSource_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid source passes", func(t *testing.T) {
		t.Parallel()

		source := validSource()
		require.NoError(t, source.Validate())
	})

	t.Run("missing token fails", func(t *testing.T) {
		t.Parallel()

		source := validSource()
		source.Token = ""
		require.Error(t, source.Validate())
	})

	t.Run("missing database id fails without data source", func(t *testing.T) {
		t.Parallel()

		source := validSource()
		source.DatabaseID = ""
		require.Error(t, source.Validate())
	})

	t.Run("data source alone is enough", func(t *testing.T) {
		t.Parallel()

		source := validSource()
		source.DatabaseID = ""
		source.DataSourceID = "ds-1"
		require.NoError(t, source.Validate())
	})

	t.Run("negative due window fails", func(t *testing.T) {
		t.Parallel()

		source := validSource()
		source.DueWithinDays = -1
		require.Error(t, source.Validate())
	})

	t.Run("bad poll schedule fails", func(t *testing.T) {
		t.Parallel()

		source := validSource()
		source.PollSchedule = "whenever"
		require.Error(t, source.Validate())
	})
}

func TestSource_QueryTarget(t *testing.T) {
	t.Parallel()

	source := validSource()
	source.DataSourceID = "ds-1"

	target := source.QueryTarget()
	assert.Equal(t, source.DatabaseID, target.DatabaseID)
	assert.Equal(t, "ds-1", target.DataSourceID)
}

func TestParseStatusList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"Next", "In Progress"}, tasksource.ParseStatusList("Next, In Progress"))
	assert.Equal(t, []string{"Next"}, tasksource.ParseStatusList(",Next,,"))
	assert.Nil(t, tasksource.ParseStatusList(""))
	assert.Nil(t, tasksource.ParseStatusList(" , "))
}

func TestDatabaseIDFromInput(t *testing.T) {
	t.Parallel()

	const dashed = "2f64ee8a-7a07-4c6d-9a48-4a8d3b9f2c11"

	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "dashed id passes through",
			input:    dashed,
			expected: dashed,
		},
		{
			name:     "undashed id is normalized",
			input:    "2f64ee8a7a074c6d9a484a8d3b9f2c11",
			expected: dashed,
		},
		{
			name:     "id is extracted from a pasted URL",
			input:    "https://www.notion.so/acme/Tasks-2f64ee8a7a074c6d9a484a8d3b9f2c11?v=abc",
			expected: dashed,
		},
		{
			name:    "no id in input",
			input:   "https://www.notion.so/acme/Tasks",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			id, err := tasksource.DatabaseIDFromInput(tt.input)
			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, id)
		})
	}
}
