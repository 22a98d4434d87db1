package main

import (
	"context"
	"fmt"

	cli "github.com/urfave/cli/v3"

	"github.com/todosync/notion-todo/pkg/coordinator"
	"github.com/todosync/notion-todo/pkg/log"
	"github.com/todosync/notion-todo/pkg/notion"
	"github.com/todosync/notion-todo/pkg/otelhelper"
	"github.com/todosync/notion-todo/pkg/tasksource"
	"github.com/todosync/notion-todo/pkg/web"
)

const defaultPort = 8090

func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Poll the configured database and serve the todo list over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML task source config file",
				Sources: cli.EnvVars("NOTION_TODO_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "Notion integration token",
				Sources: cli.EnvVars("NOTION_TOKEN"),
			},
			&cli.StringFlag{
				Name:    "database",
				Usage:   "Notion database id or URL to poll",
				Sources: cli.EnvVars("NOTION_DATABASE"),
			},
			&cli.StringFlag{
				Name:    "data-source",
				Usage:   "Data source id, for databases with more than one data source",
				Sources: cli.EnvVars("NOTION_DATA_SOURCE"),
			},
			&cli.StringFlag{
				Name:  "title-property",
				Usage: "Page property holding the task title",
			},
			&cli.StringFlag{
				Name:  "status-property",
				Usage: "Page property holding the task status",
			},
			&cli.StringFlag{
				Name:  "due-property",
				Usage: "Page property holding the due date",
			},
			&cli.StringFlag{
				Name:  "description-property",
				Usage: "Page property holding the task description",
			},
			&cli.StringFlag{
				Name:  "include-statuses",
				Usage: "Comma-separated statuses to include (empty includes all)",
			},
			&cli.StringFlag{
				Name:  "exclude-statuses",
				Usage: "Comma-separated statuses to exclude; beats include-statuses",
			},
			&cli.IntFlag{
				Name:  "due-within-days",
				Usage: "Only include tasks due within this many days (0 disables)",
			},
			&cli.StringFlag{
				Name:    "poll-schedule",
				Usage:   "Cron expression or @every duration for the refresh schedule",
				Sources: cli.EnvVars("POLL_SCHEDULE"),
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the HTTP server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.BoolFlag{
				Name:    "tracing",
				Usage:   "Export traces via OTLP",
				Sources: cli.EnvVars("TRACING_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger := log.WithComponent("serve")
			logger.InfoContext(ctx, "Initializing notion-todo")

			source, err := buildSource(command)
			if err != nil {
				return err
			}

			if command.Bool("tracing") {
				if _, err := otelhelper.NewTracer(ctx, "notion-todo"); err != nil {
					return fmt.Errorf("failed to initialize tracer: %w", err)
				}
			}

			client := notion.NewClient(source.Token)

			coord := coordinator.New(log.WithComponent("coordinator"), client, source)
			if err := coord.Start(ctx); err != nil {
				return err
			}
			defer coord.Stop()

			server := web.NewServer(log.WithComponent("web"), coord, source.Name)

			if err := server.Start(command.Int("port")); err != nil {
				logger.ErrorContext(ctx, "Failed to start HTTP server", "error", err)

				return err
			}

			return nil
		},
	}
}

// buildSource merges the optional config file with flag overrides, then
// normalizes and validates the result.
func buildSource(command *cli.Command) (tasksource.Source, error) {
	var (
		source tasksource.Source
		err    error
	)

	if path := command.String("config"); path != "" {
		source, err = tasksource.Load(path)
		if err != nil {
			return tasksource.Source{}, err
		}
	}

	if v := command.String("token"); v != "" {
		source.Token = v
	}

	if v := command.String("database"); v != "" {
		source.DatabaseID = v
	}

	if v := command.String("data-source"); v != "" {
		source.DataSourceID = v
	}

	if v := command.String("title-property"); v != "" {
		source.Properties.Title = v
	}

	if v := command.String("status-property"); v != "" {
		source.Properties.Status = v
	}

	if v := command.String("due-property"); v != "" {
		source.Properties.Due = v
	}

	if v := command.String("description-property"); v != "" {
		source.Properties.Description = v
	}

	if command.IsSet("include-statuses") {
		source.IncludeStatuses = tasksource.ParseStatusList(command.String("include-statuses"))
	}

	if command.IsSet("exclude-statuses") {
		source.ExcludeStatuses = tasksource.ParseStatusList(command.String("exclude-statuses"))
	}

	if command.IsSet("due-within-days") {
		source.DueWithinDays = command.Int("due-within-days")
	}

	if v := command.String("poll-schedule"); v != "" {
		source.PollSchedule = v
	}

	if source.DatabaseID != "" {
		id, err := tasksource.DatabaseIDFromInput(source.DatabaseID)
		if err != nil {
			return tasksource.Source{}, err
		}

		source.DatabaseID = id
	}

	source.ApplyDefaults()

	if err := source.Validate(); err != nil {
		return tasksource.Source{}, err
	}

	return source, nil
}
