package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"hubgrip/cmd"
	"hubgrip/internal/config"
)

func main() {
	app := &cli.Command{
		Name:      "hubgrip",
		Usage:     "Search and browse cloud native packages from the terminal",
		Version:   cmd.Version,
		ArgsUsage: "[text | query string | hub URL]",
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Configuration file path",
				Value: config.DefaultPath(),
			},
			&cli.StringFlag{
				Name:  "api-url",
				Usage: "Hub base URL, overrides the configuration",
			},
		}, cmd.TUIFlags()...),
		Commands: []*cli.Command{
			cmd.TUICommand(),
			cmd.SearchCommand(),
			cmd.CheckCommand(),
		},
		Action: cmd.RunTUI,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
