package commands

import (
	"context"

	"github.com/urfave/cli/v3"
	"github.com/vdftool/vdf/internal/grid"
	"go.uber.org/zap"
)

// NewRemoveCommand returns a cli.Command for "vdf remove".
func NewRemoveCommand() *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Aliases:   []string{"rm"},
		Usage:     "Remove a non-Steam game",
		UsageText: `vdf remove --appid ID [--grid]`,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "appid", Usage: "app id of the shortcut", Required: true},
			&cli.BoolFlag{Name: "grid", Usage: "also delete the artwork of the shortcut"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			appid, err := parseAppID(cmd.String("appid"))
			if err != nil {
				return err
			}

			e, err := newEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			path, err := e.shortcutsPath()
			if err != nil {
				return err
			}

			c, err := e.readShortcuts(path)
			if err != nil {
				return err
			}

			c, err = c.Remove(appid)
			if err != nil {
				return err
			}

			err = e.writeShortcuts(path, c)
			if err != nil {
				return err
			}
			e.logger.Info("shortcut removed", zap.Uint32("appid", appid))

			if !cmd.Bool("grid") {
				return nil
			}

			dir, err := e.gridDir()
			if err != nil {
				return err
			}

			m := grid.Manager{Dir: dir, Logger: e.logger}
			n, err := m.Remove(appid)
			if err != nil {
				return err
			}
			e.logger.Info("artwork removed", zap.Uint32("appid", appid), zap.Int("count", n))
			return nil
		},
	}
}
