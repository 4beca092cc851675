package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"github.com/vdftool/vdf/internal/shortcut"
	"go.uber.org/zap"
)

// NewAddCommand returns a cli.Command for "vdf add".
func NewAddCommand() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a non-Steam game",
		UsageText: `vdf add --name NAME --exe PATH [options]`,
		Description: `The add command appends a shortcut to the shortcuts file of the account
and prints its app id. The app id is derived from the executable and the
name, the way the Steam client does it.

$ vdf add --name "Doom" --exe /usr/bin/gzdoom --tag shooter
2779853591`,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "name shown in the library", Required: true},
			&cli.StringFlag{Name: "exe", Usage: "path of the executable", Required: true},
			&cli.StringFlag{Name: "start-dir", Usage: "working directory. Defaults to the directory of the executable."},
			&cli.StringFlag{Name: "icon", Usage: "path of the icon"},
			&cli.StringFlag{Name: "launch-options", Usage: "command line arguments"},
			&cli.StringSliceFlag{Name: "tag", Usage: "collection the game belongs to, can be repeated"},
			&cli.BoolFlag{Name: "hidden", Usage: "hide the game in the library"},
			&cli.StringFlag{Name: "appid", Usage: "app id to use instead of the generated one"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := newEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			s := shortcut.New(cmd.String("name"), cmd.String("exe"))
			if dir := cmd.String("start-dir"); dir != "" {
				s.StartDir = shortcut.Quote(dir)
			}
			s.Icon = cmd.String("icon")
			s.LaunchOptions = cmd.String("launch-options")
			s.Tags = cmd.StringSlice("tag")
			s.IsHidden = cmd.Bool("hidden")

			if raw := cmd.String("appid"); raw != "" {
				s.AppID, err = parseAppID(raw)
				if err != nil {
					return err
				}
			}

			path, err := e.shortcutsPath()
			if err != nil {
				return err
			}

			c, err := e.readShortcuts(path)
			if err != nil {
				return err
			}

			c, err = c.Add(s)
			if err != nil {
				return err
			}

			err = e.writeShortcuts(path, c)
			if err != nil {
				return err
			}

			e.logger.Info("shortcut added", zap.Uint32("appid", s.AppID), zap.String("name", s.AppName))
			fmt.Fprintln(e.out, s.AppID)
			return nil
		},
	}
}
