package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	versionpkg "github.com/avdeyev/vidpull/internal/version"
)

func NewVersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show the version",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "short",
				Aliases: []string{"s"},
				Usage:   "show only the version number",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Bool("short") {
				fmt.Println(versionpkg.GetShort())
			} else {
				fmt.Println(versionpkg.GetFull())
			}
			return nil
		},
	}
}
