package commands

import (
	"context"
	"fmt"
	"net/http"

	"github.com/urfave/cli/v3"
	"github.com/vdftool/vdf/internal/grid"
)

// NewGridCommand returns a cli.Command for "vdf grid".
func NewGridCommand() *cli.Command {
	cmd := cli.Command{
		Name:      "grid",
		Usage:     "Install or list the artwork of a non-Steam game",
		UsageText: `vdf grid --appid ID [--cover SRC] [--hero SRC] [--logo SRC] [--wide SRC] [--icon SRC]`,
		Description: `The grid command copies or downloads images to the grid directory of
the account, naming them after the app id. Sources are local files or
http(s) urls. Without any source, the installed artwork is listed.

$ vdf grid --appid 2779853591 --cover ./cover.png --hero https://example.com/hero.jpg`,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "appid", Usage: "app id of the shortcut", Required: true},
		},
	}

	for _, k := range grid.Kinds {
		cmd.Flags = append(cmd.Flags, &cli.StringFlag{
			Name:  k.String(),
			Usage: "source of the " + k.String() + " image",
		})
	}

	cmd.Action = func(ctx context.Context, cmd *cli.Command) error {
		appid, err := parseAppID(cmd.String("appid"))
		if err != nil {
			return err
		}

		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		dir, err := e.gridDir()
		if err != nil {
			return err
		}

		m := grid.Manager{
			Dir:     dir,
			Client:  &http.Client{Timeout: e.cfg.Grid.Timeout},
			Workers: e.cfg.Grid.Workers,
			Logger:  e.logger,
		}

		var jobs []grid.Job
		for _, k := range grid.Kinds {
			if src := cmd.String(k.String()); src != "" {
				jobs = append(jobs, grid.Job{Kind: k, Source: src})
			}
		}

		if len(jobs) > 0 {
			err = m.Apply(ctx, appid, jobs)
			if err != nil {
				return err
			}
		}

		assets, err := m.List(appid)
		if err != nil {
			return err
		}

		t := newTable("KIND", "PATH")
		for _, a := range assets {
			t.Row(a.Kind.String(), a.Path)
		}
		fmt.Fprintln(e.out, t.Render())
		return nil
	}

	return &cmd
}
