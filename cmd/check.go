package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Laisky/errors/v2"
	"github.com/urfave/cli/v3"
)

// availabilityChecker is the part of the hub client check needs
type availabilityChecker interface {
	CheckAvailability(ctx context.Context, resourceKind, value string) (bool, error)
}

// CheckCommand creates the availability check command
func CheckCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Check whether a repository name or user alias is still free",
		ArgsUsage: "<repositoryName|userAlias|organizationName> <value>",
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 2 {
				return errors.New("check needs a resource kind and a value")
			}
			s, err := newSession(c)
			if err != nil {
				return err
			}
			defer s.Close()
			return checkAvailability(ctx, s.client, os.Stdout, c.Args().Get(0), c.Args().Get(1))
		},
	}
}

func checkAvailability(ctx context.Context, checker availabilityChecker, w io.Writer, kind, value string) error {
	free, err := checker.CheckAvailability(ctx, kind, value)
	if err != nil {
		return err
	}
	if free {
		fmt.Fprintf(w, "%s %q is available\n", kind, value)
	} else {
		fmt.Fprintf(w, "%s %q is taken\n", kind, value)
	}
	return nil
}
