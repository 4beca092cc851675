package commands

import (
	"github.com/urfave/cli/v3"
)

// NewApp creates the vdf CLI app.
func NewApp() *cli.Command {
	return &cli.Command{
		Name:                  "vdf",
		Usage:                 "Inspect and edit Steam binary VDF files",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path of a YAML, JSON or TOML configuration file",
				Sources: cli.EnvVars("VDF_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "steam-root",
				Usage: "Steam installation directory",
			},
			&cli.StringFlag{
				Name:    "user",
				Aliases: []string{"u"},
				Usage:   "Steam account id, required when several accounts exist",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "one of trace, debug, info, warn or error",
			},
		},
		Commands: []*cli.Command{
			NewUsersCommand(),
			NewDumpCommand(),
			NewListCommand(),
			NewAddCommand(),
			NewSetCommand(),
			NewRemoveCommand(),
			NewImportCommand(),
			NewExportCommand(),
			NewGridCommand(),
			NewBackupsCommand(),
			NewRestoreCommand(),
			NewVersionCommand(),
		},
	}
}
