package commands

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"
	"github.com/vdftool/vdf/internal/shortcut"
	"github.com/vdftool/vdf/internal/types"
	"go.uber.org/zap"
)

// NewSetCommand returns a cli.Command for "vdf set".
func NewSetCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Change the fields of a non-Steam game",
		UsageText: `vdf set --appid ID [--unset field]... [field=value]...`,
		Description: `The set command edits the fields of a shortcut. Values are converted
according to the field: integers accept decimal and 0x prefixed numbers,
booleans accept true, false, 1 and 0, LastPlayTime accepts a date or a
unix timestamp and tags a comma separated list. Unknown fields are
stored as strings. Field names are case insensitive.

$ vdf set --appid 2779853591 LaunchOptions="-fullscreen" IsHidden=true`,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "appid", Usage: "app id of the shortcut", Required: true},
			&cli.StringSliceFlag{Name: "unset", Usage: "field to remove, can be repeated"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			appid, err := parseAppID(cmd.String("appid"))
			if err != nil {
				return err
			}

			type edit struct{ name, value string }
			var edits []edit
			for _, arg := range cmd.Args().Slice() {
				name, value, ok := strings.Cut(arg, "=")
				if !ok || name == "" {
					return errors.Newf("invalid edit %q, expected field=value", arg)
				}
				edits = append(edits, edit{name, value})
			}
			unset := cmd.StringSlice("unset")
			if len(edits) == 0 && len(unset) == 0 {
				return errors.New(cmd.UsageText)
			}

			e, err := newEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			for _, ed := range edits {
				if _, ok := shortcut.LookupField(ed.name); ok {
					continue
				}
				if s := shortcut.SuggestFields(ed.name); len(s) > 0 {
					e.logger.Warn("unknown field, stored as a string", zap.String("field", ed.name), zap.Strings("did_you_mean", s))
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

			c, err = c.Update(appid, func(rec *types.MapValue) error {
				for _, name := range unset {
					if err := shortcut.DeleteField(rec, name); err != nil {
						return err
					}
				}
				for _, ed := range edits {
					if err := shortcut.SetField(rec, ed.name, ed.value); err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				return err
			}

			return e.writeShortcuts(path, c)
		},
	}
}
