package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/urfave/cli/v3"
	"github.com/vdftool/vdf/internal/shortcut"
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}

// NewListCommand returns a cli.Command for "vdf list".
func NewListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List the non-Steam games of the account",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "skip-hidden",
				Usage: "leave out hidden shortcuts",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
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

			list, err := c.List()
			if err != nil {
				return err
			}

			t := newTable("APPID", "NAME", "EXE", "TAGS")
			for _, s := range list {
				if s.IsHidden && cmd.Bool("skip-hidden") {
					continue
				}
				t.Row(strconv.FormatUint(uint64(s.AppID), 10), s.AppName, shortcut.Unquote(s.Exe), strings.Join(s.Tags, ", "))
			}

			fmt.Fprintln(e.out, t.Render())
			return nil
		},
	}
}
