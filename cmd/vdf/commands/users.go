package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// NewUsersCommand returns a cli.Command for "vdf users".
func NewUsersCommand() *cli.Command {
	return &cli.Command{
		Name:  "users",
		Usage: "List the Steam accounts found in the installation",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := newEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			users, err := e.locator.Users()
			if err != nil {
				return err
			}

			for _, u := range users {
				fmt.Fprintln(e.out, u)
			}
			return nil
		},
	}
}
