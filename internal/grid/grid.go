// Package grid installs the custom artwork Steam shows for shortcuts.
//
// Artwork files live in the grid directory of an account and are named
// after the app id of the shortcut, with a suffix depending on the kind
// of image.
package grid

import (
	"context"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Kind is the kind of an artwork.
type Kind uint8

const (
	// Cover is the portrait capsule shown in the library.
	Cover Kind = iota + 1
	// Hero is the banner at the top of the game page.
	Hero
	// Logo is drawn on top of the hero.
	Logo
	// Wide is the landscape capsule.
	Wide
	// Icon is the small icon of the game list.
	Icon
)

// Kinds lists every kind.
var Kinds = []Kind{Cover, Hero, Logo, Wide, Icon}

func (k Kind) String() string {
	switch k {
	case Cover:
		return "cover"
	case Hero:
		return "hero"
	case Logo:
		return "logo"
	case Wide:
		return "wide"
	case Icon:
		return "icon"
	}

	return "kind(" + strconv.Itoa(int(k)) + ")"
}

func (k Kind) suffix() string {
	switch k {
	case Cover:
		return "p"
	case Hero:
		return "_hero"
	case Logo:
		return "_logo"
	case Icon:
		return "_icon"
	}

	return ""
}

// BaseName returns the file name of the artwork, without extension.
func (k Kind) BaseName(appid uint32) string {
	return strconv.FormatUint(uint64(appid), 10) + k.suffix()
}

var (
	// ErrUnsupportedImage is returned when the format of an image
	// can't be determined or isn't one Steam reads.
	ErrUnsupportedImage = errors.New("unsupported image format")

	// ErrDuplicateKind is returned when several jobs target the same kind.
	ErrDuplicateKind = errors.New("duplicate artwork kind")
)

var extensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".ico":  true,
}

var mediaTypes = map[string]string{
	"image/png":                ".png",
	"image/jpeg":               ".jpg",
	"image/webp":               ".webp",
	"image/x-icon":             ".ico",
	"image/vnd.microsoft.icon": ".ico",
}

// Job installs the image found at Source as the artwork of the given kind.
// Source is a local path or an http(s) URL.
type Job struct {
	Kind   Kind
	Source string
}

// Asset is an installed artwork.
type Asset struct {
	Kind Kind
	Path string
}

// Manager installs artwork in Dir.
type Manager struct {
	Dir string
	// Client is used for downloads. Defaults to http.DefaultClient.
	Client *http.Client
	// Workers is the number of jobs run concurrently. Defaults to 1.
	Workers int
	Logger  *zap.Logger
}

func (m *Manager) logger() *zap.Logger {
	if m.Logger == nil {
		return zap.NewNop()
	}

	return m.Logger
}

func (m *Manager) client() *http.Client {
	if m.Client == nil {
		return http.DefaultClient
	}

	return m.Client
}

// Apply runs the jobs concurrently. It stops at the first failure; jobs
// already done are kept.
func (m *Manager) Apply(ctx context.Context, appid uint32, jobs []Job) error {
	seen := make(map[Kind]bool)
	for _, job := range jobs {
		if seen[job.Kind] {
			return errors.Wrapf(ErrDuplicateKind, "%s", job.Kind)
		}
		seen[job.Kind] = true
	}

	err := os.MkdirAll(m.Dir, 0o755)
	if err != nil {
		return errors.Wrap(err, "failed to create grid directory")
	}

	workers := m.Workers
	if workers < 1 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, job := range jobs {
		g.Go(func() error {
			return m.apply(ctx, appid, job)
		})
	}

	return g.Wait()
}

func (m *Manager) apply(ctx context.Context, appid uint32, job Job) error {
	rc, ext, err := m.open(ctx, job.Source)
	if err != nil {
		return errors.Wrapf(err, "%s", job.Kind)
	}
	defer rc.Close()

	tmp, err := os.CreateTemp(m.Dir, ".vdf-grid-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temporary file")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	_, err = io.Copy(tmp, rc)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return errors.Wrapf(err, "%s: failed to copy %q", job.Kind, job.Source)
	}

	err = m.remove(appid, job.Kind)
	if err != nil {
		return err
	}

	dst := filepath.Join(m.Dir, job.Kind.BaseName(appid)+ext)
	err = os.Rename(tmpName, dst)
	if err != nil {
		return errors.Wrapf(err, "%s: failed to install %q", job.Kind, dst)
	}

	m.logger().Info("artwork installed",
		zap.Uint32("appid", appid),
		zap.Stringer("kind", job.Kind),
		zap.String("source", job.Source),
		zap.String("path", dst))
	return nil
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// open returns the content of source and the extension of the
// installed file.
func (m *Manager) open(ctx context.Context, source string) (io.ReadCloser, string, error) {
	if !isURL(source) {
		ext := strings.ToLower(filepath.Ext(source))
		if !extensions[ext] {
			return nil, "", errors.Wrapf(ErrUnsupportedImage, "%q", source)
		}

		f, err := os.Open(source)
		if err != nil {
			return nil, "", errors.Wrapf(err, "failed to open %q", source)
		}
		return f, ext, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, "", errors.Wrapf(err, "invalid url %q", source)
	}

	resp, err := m.client().Do(req)
	if err != nil {
		return nil, "", errors.Wrapf(err, "failed to download %q", source)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, "", errors.Newf("failed to download %q: %s", source, resp.Status)
	}

	ext, err := downloadExt(source, resp.Header.Get("Content-Type"))
	if err != nil {
		resp.Body.Close()
		return nil, "", err
	}

	return resp.Body, ext, nil
}

// downloadExt picks the extension of a downloaded image from its media
// type, or from the url path when the server didn't send a known one.
func downloadExt(source, contentType string) (string, error) {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		if ext, ok := mediaTypes[mt]; ok {
			return ext, nil
		}
	}

	if u, err := url.Parse(source); err == nil {
		ext := strings.ToLower(filepath.Ext(u.Path))
		if extensions[ext] {
			return ext, nil
		}
	}

	return "", errors.Wrapf(ErrUnsupportedImage, "%q served as %q", source, contentType)
}

// List returns the installed artwork of appid.
func (m *Manager) List(appid uint32) ([]Asset, error) {
	entries, err := os.ReadDir(m.Dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to list grid directory")
	}

	var assets []Asset
	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		name := e.Name()
		ext := filepath.Ext(name)
		if !extensions[strings.ToLower(ext)] {
			continue
		}
		base := strings.TrimSuffix(name, ext)

		for _, k := range Kinds {
			if base == k.BaseName(appid) {
				assets = append(assets, Asset{Kind: k, Path: filepath.Join(m.Dir, name)})
				break
			}
		}
	}

	return assets, nil
}

func (m *Manager) remove(appid uint32, kind Kind) error {
	assets, err := m.List(appid)
	if err != nil {
		return err
	}

	for _, a := range assets {
		if a.Kind != kind {
			continue
		}
		err := os.Remove(a.Path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return errors.Wrapf(err, "failed to remove %q", a.Path)
		}
	}

	return nil
}

// Remove deletes all the artwork of appid and returns the number of
// removed files.
func (m *Manager) Remove(appid uint32) (int, error) {
	assets, err := m.List(appid)
	if err != nil {
		return 0, err
	}

	for _, a := range assets {
		err := os.Remove(a.Path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return 0, errors.Wrapf(err, "failed to remove %q", a.Path)
		}
		m.logger().Debug("artwork removed", zap.Uint32("appid", appid), zap.String("path", a.Path))
	}

	return len(assets), nil
}
