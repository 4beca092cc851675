package commands

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"
	"github.com/vdftool/vdf"
	"github.com/vdftool/vdf/internal/document"
	"github.com/vdftool/vdf/internal/shortcut"
)

// NewDumpCommand returns a cli.Command for "vdf dump".
func NewDumpCommand() *cli.Command {
	cmd := cli.Command{
		Name:      "dump",
		Usage:     "Print a binary VDF file as JSON",
		UsageText: `vdf dump [options] [file]`,
		Description: `The dump command decodes a binary VDF file and prints it as JSON,
keeping the order of the entries.

By default, the shortcuts file of the account is dumped:

$ vdf dump
{
    "shortcuts": {
        ...

Any binary VDF file can be given instead:

$ vdf dump ~/.steam/steam/appcache/appinfo.vdf`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "compact",
				Usage: "print the JSON on a single line",
			},
		},
	}

	cmd.Action = func(ctx context.Context, cmd *cli.Command) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		path, err := e.pathOrDefault(cmd.Args().First())
		if err != nil {
			return err
		}

		root, err := vdf.ReadFile(path)
		if err != nil {
			return err
		}

		data, err := marshalJSON(root, cmd.Bool("compact"))
		if err != nil {
			return err
		}

		_, err = e.out.Write(append(data, '\n'))
		return errors.WithStack(err)
	}

	return &cmd
}

func marshalJSON(root *vdf.MapValue, compact bool) ([]byte, error) {
	if compact {
		return document.MarshalJSON(root)
	}

	return document.MarshalJSONIndent(root, "", "    ")
}

// NewExportCommand returns a cli.Command for "vdf export".
func NewExportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Write a binary VDF file as a JSON file",
		UsageText: `vdf export [options] jsonFile`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "source",
				Aliases: []string{"s"},
				Usage:   "binary VDF file to export. Defaults to the shortcuts file of the account.",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			target := cmd.Args().First()
			if target == "" {
				return errors.New(cmd.UsageText)
			}

			e, err := newEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			path, err := e.pathOrDefault(cmd.String("source"))
			if err != nil {
				return err
			}

			root, err := vdf.ReadFile(path)
			if err != nil {
				return err
			}

			data, err := marshalJSON(root, false)
			if err != nil {
				return err
			}

			return errors.WithStack(os.WriteFile(target, append(data, '\n'), 0o644))
		},
	}
}

// NewImportCommand returns a cli.Command for "vdf import".
func NewImportCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Replace a binary VDF file with the content of a JSON file",
		UsageText: `vdf import [options] jsonFile`,
		Description: `The import command encodes a JSON document, as printed by dump or
written by export, and replaces the target file with it.
The previous content of the target is saved and can be brought back
with the restore command.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "target",
				Aliases: []string{"t"},
				Usage:   "binary VDF file to replace. Defaults to the shortcuts file of the account.",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			source := cmd.Args().First()
			if source == "" {
				return errors.New(cmd.UsageText)
			}

			e, err := newEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			data, err := os.ReadFile(source)
			if err != nil {
				return errors.WithStack(err)
			}

			root, err := document.FromJSON(data)
			if err != nil {
				return errors.Wrapf(err, "cannot parse %s", source)
			}

			target := cmd.String("target")
			if target == "" {
				// the default target must stay a valid shortcuts file
				if _, err := shortcut.Load(root); err != nil {
					return err
				}
			}

			target, err = e.pathOrDefault(target)
			if err != nil {
				return err
			}

			return e.writeTree(target, root)
		},
	}
}
