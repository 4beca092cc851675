package commands

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"
	"github.com/vdftool/vdf"
	"github.com/vdftool/vdf/internal/backup"
	"github.com/vdftool/vdf/internal/config"
	"github.com/vdftool/vdf/internal/log"
	"github.com/vdftool/vdf/internal/shortcut"
	"github.com/vdftool/vdf/internal/steam"
	"go.uber.org/zap"
)

// env holds what every command needs: the configuration merged with the
// global flags, a logger and the Steam paths.
type env struct {
	cfg     *config.Config
	logger  *zap.Logger
	locator steam.Locator
	out     io.Writer
}

func newEnv(cmd *cli.Command) (*env, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	if root := cmd.String("steam-root"); root != "" {
		cfg.Steam.Root = root
	}
	if user := cmd.String("user"); user != "" {
		cfg.Steam.User = user
	}
	if level := cmd.String("log-level"); level != "" {
		cfg.Log.Level = level
	}

	logger, err := log.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	out := cmd.Root().Writer
	if out == nil {
		out = os.Stdout
	}

	return &env{
		cfg:     cfg,
		logger:  logger,
		locator: steam.Locator{Root: cfg.Steam.Root},
		out:     out,
	}, nil
}

func (e *env) close() {
	_ = e.logger.Sync()
}

func (e *env) user() (string, error) {
	return e.locator.ResolveUser(e.cfg.Steam.User)
}

func (e *env) shortcutsPath() (string, error) {
	user, err := e.user()
	if err != nil {
		return "", err
	}

	return e.locator.ShortcutsPath(user), nil
}

func (e *env) gridDir() (string, error) {
	user, err := e.user()
	if err != nil {
		return "", err
	}

	return e.locator.GridDir(user), nil
}

// pathOrDefault returns path, or the shortcuts file of the account when empty.
func (e *env) pathOrDefault(path string) (string, error) {
	if path != "" {
		return path, nil
	}

	return e.shortcutsPath()
}

func (e *env) openBackups() (*backup.Store, error) {
	return backup.Open(e.cfg.BackupDir(), backup.WithLogger(e.logger))
}

// readShortcuts loads the shortcuts file at path. A missing file is an
// empty collection.
func (e *env) readShortcuts(path string) (*shortcut.Collection, error) {
	root, err := vdf.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			e.logger.Debug("no shortcuts file yet", zap.String("path", path))
			return shortcut.NewCollection(), nil
		}
		return nil, err
	}

	return shortcut.Load(root)
}

// writeFile replaces the content of path, saving the previous content in
// the backup store first.
func (e *env) writeFile(path string, data []byte) error {
	old, err := os.ReadFile(path)
	switch {
	case err == nil:
		err = e.snapshot(path, old)
		if err != nil {
			return err
		}
	case errors.Is(err, os.ErrNotExist):
		err = os.MkdirAll(filepath.Dir(path), 0o755)
		if err != nil {
			return errors.WithStack(err)
		}
	default:
		return errors.WithStack(err)
	}

	tmp := path + ".tmp"
	err = os.WriteFile(tmp, data, 0o644)
	if err != nil {
		return errors.WithStack(err)
	}

	err = os.Rename(tmp, path)
	if err != nil {
		_ = os.Remove(tmp)
		return errors.WithStack(err)
	}

	e.logger.Info("file written", zap.String("path", path), zap.Int("size", len(data)))
	return nil
}

func (e *env) snapshot(path string, data []byte) error {
	store, err := e.openBackups()
	if err != nil {
		return err
	}
	defer store.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.WithStack(err)
	}

	snap, err := store.Save(abs, data, time.Now())
	if err != nil {
		return err
	}
	e.logger.Debug("previous content saved", zap.String("path", abs), zap.Time("at", snap.At))

	if keep := e.cfg.Backup.Keep; keep > 0 {
		_, err = store.Prune(abs, keep)
		if err != nil {
			return err
		}
	}

	return nil
}

// writeTree encodes root and writes it to path.
func (e *env) writeTree(path string, root *vdf.MapValue) error {
	data, err := vdf.Encode(root)
	if err != nil {
		return err
	}

	return e.writeFile(path, data)
}

func (e *env) writeShortcuts(path string, c *shortcut.Collection) error {
	return e.writeTree(path, c.Tree())
}

// parseAppID parses a decimal or 0x prefixed app id.
func parseAppID(raw string) (uint32, error) {
	if raw == "" {
		return 0, errors.New("missing app id")
	}

	x, err := strconv.ParseUint(strings.TrimSpace(raw), 0, 32)
	if err != nil {
		return 0, errors.Newf("invalid app id %q", raw)
	}

	id := uint32(x)
	err = shortcut.ValidateAppID(id)
	if err != nil {
		return 0, err
	}

	return id, nil
}
