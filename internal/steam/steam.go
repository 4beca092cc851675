// Package steam locates the files of a Steam installation.
package steam

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"

	"github.com/cockroachdb/errors"
)

var (
	// ErrUserNotFound is returned when the requested account has no
	// userdata directory, or when there is no account at all.
	ErrUserNotFound = errors.New("steam user not found")

	// ErrAmbiguousUser is returned when no account was requested and
	// several exist.
	ErrAmbiguousUser = errors.New("several steam users found, pick one")
)

// DefaultRoot returns the usual Steam installation directory of the
// current platform.
func DefaultRoot() string {
	home, _ := os.UserHomeDir()

	switch runtime.GOOS {
	case "windows":
		return `C:\Program Files (x86)\Steam`
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Steam")
	default:
		return filepath.Join(home, ".steam", "steam")
	}
}

// Locator builds the paths of the files of a Steam installation.
type Locator struct {
	Root string
}

func (l Locator) userdata() string {
	return filepath.Join(l.Root, "userdata")
}

// Users returns the ids of the accounts that have a userdata directory,
// sorted numerically.
func (l Locator) Users() ([]string, error) {
	entries, err := os.ReadDir(l.userdata())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to list steam users")
	}

	var ids []uint64
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		id, err := strconv.ParseUint(e.Name(), 10, 64)
		// 0 is used by Steam for anonymous data
		if err != nil || id == 0 {
			continue
		}
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	users := make([]string, len(ids))
	for i, id := range ids {
		users[i] = strconv.FormatUint(id, 10)
	}

	return users, nil
}

// ResolveUser returns user if it exists. When user is empty, it returns the
// only existing account.
func (l Locator) ResolveUser(user string) (string, error) {
	users, err := l.Users()
	if err != nil {
		return "", err
	}

	if user == "" {
		switch len(users) {
		case 0:
			return "", errors.Wrapf(ErrUserNotFound, "no account under %q", l.userdata())
		case 1:
			return users[0], nil
		default:
			return "", errors.Wrapf(ErrAmbiguousUser, "%v", users)
		}
	}

	for _, u := range users {
		if u == user {
			return u, nil
		}
	}

	return "", errors.Wrapf(ErrUserNotFound, "%q", user)
}

// ConfigDir returns the config directory of an account.
func (l Locator) ConfigDir(user string) string {
	return filepath.Join(l.userdata(), user, "config")
}

// ShortcutsPath returns the path of the shortcuts file of an account.
func (l Locator) ShortcutsPath(user string) string {
	return filepath.Join(l.ConfigDir(user), "shortcuts.vdf")
}

// GridDir returns the directory holding the custom artwork of an account.
func (l Locator) GridDir(user string) string {
	return filepath.Join(l.ConfigDir(user), "grid")
}
