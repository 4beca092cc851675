package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"
	"github.com/vdftool/vdf"
	"go.uber.org/zap"
)

func newFileFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "file",
		Aliases: []string{"f"},
		Usage:   "file whose snapshots are used. Defaults to the shortcuts file of the account.",
	}
}

// NewBackupsCommand returns a cli.Command for "vdf backups".
func NewBackupsCommand() *cli.Command {
	return &cli.Command{
		Name:  "backups",
		Usage: "List the snapshots taken before each change",
		Flags: []cli.Flag{newFileFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := newEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			path, err := e.snapshotPath(cmd.String("file"))
			if err != nil {
				return err
			}

			store, err := e.openBackups()
			if err != nil {
				return err
			}
			defer store.Close()

			list, err := store.List(path)
			if err != nil {
				return err
			}

			t := newTable("AT", "AGE", "SIZE")
			for _, s := range list {
				t.Row(s.At.UTC().Format(time.RFC3339Nano), s.Age(), strconv.Itoa(s.Size))
			}
			fmt.Fprintln(e.out, t.Render())
			return nil
		},
	}
}

// NewRestoreCommand returns a cli.Command for "vdf restore".
func NewRestoreCommand() *cli.Command {
	return &cli.Command{
		Name:      "restore",
		Usage:     "Bring back a previous version of a file",
		UsageText: `vdf restore [--file PATH] [--at TIME]`,
		Description: `The restore command replaces a file with one of its snapshots, the
latest one unless --at is given. TIME is a value of the AT column
printed by the backups command. The current content is saved first,
so a restore can be undone with another restore.`,
		Flags: []cli.Flag{
			newFileFlag(),
			&cli.StringFlag{Name: "at", Usage: "time of the snapshot to restore"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := newEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			path, err := e.snapshotPath(cmd.String("file"))
			if err != nil {
				return err
			}

			data, err := readSnapshot(e, path, cmd.String("at"))
			if err != nil {
				return err
			}

			if _, err := vdf.Decode(data); err != nil {
				return errors.Wrap(err, "snapshot is not a valid file")
			}

			err = e.writeFile(path, data)
			if err != nil {
				return err
			}

			e.logger.Info("file restored", zap.String("path", path))
			return nil
		},
	}
}

func (e *env) snapshotPath(path string) (string, error) {
	path, err := e.pathOrDefault(path)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(path)
	return abs, errors.WithStack(err)
}

// readSnapshot returns the latest snapshot of path, or the one taken at the
// given time.
func readSnapshot(e *env, path, at string) ([]byte, error) {
	store, err := e.openBackups()
	if err != nil {
		return nil, err
	}
	defer store.Close()

	if at == "" {
		_, data, err := store.Latest(path)
		return data, err
	}

	t, err := time.Parse(time.RFC3339Nano, at)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid time %q", at)
	}

	return store.Get(path, t)
}
