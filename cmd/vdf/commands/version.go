package commands

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/urfave/cli/v3"
)

// NewVersionCommand returns a cli.Command for "vdf version".
func NewVersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Shows the vdf version",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			out := cmd.Root().Writer
			info, ok := debug.ReadBuildInfo()
			if !ok {
				fmt.Fprintln(out, "vdf version not available")
				return nil
			}

			version := info.Main.Version
			// built from a checkout
			if version == "" || version == "(devel)" {
				version = "(devel)"
				for _, s := range info.Settings {
					if s.Key == "vcs.revision" {
						version += " " + s.Value
					}
				}
			}

			fmt.Fprintf(out, "vdf %s %s\n", version, info.GoVersion)
			return nil
		},
	}
}
