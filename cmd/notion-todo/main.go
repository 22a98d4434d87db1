package main

import (
	"context"
	"os"

	cli "github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:                  "notion-todo",
		Usage:                 "Expose a Notion task database as a read-only todo list",
		EnableShellCompletion: true,
		Commands: []*cli.Command{
			ServeCommand(),
			DatabasesCommand(),
		},
	}

	err := cmd.Run(context.Background(), os.Args)
	if err != nil {
		panic(err)
	}
}
