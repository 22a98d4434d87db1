package main

import (
	"context"
	"fmt"

	cli "github.com/urfave/cli/v3"

	"github.com/todosync/notion-todo/pkg/log"
	"github.com/todosync/notion-todo/pkg/notion"
)

func DatabasesCommand() *cli.Command {
	return &cli.Command{
		Name:    "databases",
		Aliases: []string{"db"},
		Usage:   "List databases the token can access, with their data sources",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "token",
				Usage:    "Notion integration token",
				Required: true,
				Sources:  cli.EnvVars("NOTION_TOKEN"),
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

			client := notion.NewClient(command.String("token"))

			databases, err := client.SearchDatabases(ctx)
			if err != nil {
				return err
			}

			if len(databases) == 0 {
				fmt.Println("No databases shared with this token.")

				return nil
			}

			for _, database := range databases {
				title := database.TitleText()
				if title == "" {
					title = "(untitled)"
				}

				fmt.Printf("%s  %s\n", database.ID, title)

				for _, source := range database.DataSources {
					fmt.Printf("    data source: %s  %s\n", source.ID, source.Name)
				}
			}

			return nil
		},
	}
}
