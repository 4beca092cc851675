package grid_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vdftool/vdf/internal/grid"
	"github.com/vdftool/vdf/internal/testutil"
)

const appid = 2147483649

func writeImage(t *testing.T, dir, name, content string) string {
	t.Helper()

	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func names(t *testing.T, assets []grid.Asset) []string {
	t.Helper()

	var l []string
	for _, a := range assets {
		l = append(l, filepath.Base(a.Path))
	}
	sort.Strings(l)
	return l
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		kind grid.Kind
		want string
	}{
		{grid.Cover, "2147483649p"},
		{grid.Hero, "2147483649_hero"},
		{grid.Logo, "2147483649_logo"},
		{grid.Wide, "2147483649"},
		{grid.Icon, "2147483649_icon"},
	}

	for _, test := range tests {
		t.Run(test.kind.String(), func(t *testing.T) {
			require.Equal(t, test.want, test.kind.BaseName(appid))
		})
	}
}

func TestApplyLocal(t *testing.T) {
	src := t.TempDir()
	m := grid.Manager{Dir: filepath.Join(t.TempDir(), "grid"), Workers: 2}

	err := m.Apply(context.Background(), appid, []grid.Job{
		{Kind: grid.Cover, Source: writeImage(t, src, "cover.PNG", "cover")},
		{Kind: grid.Hero, Source: writeImage(t, src, "hero.jpg", "hero")},
		{Kind: grid.Wide, Source: writeImage(t, src, "wide.webp", "wide")},
	})
	require.NoError(t, err)

	assets, err := m.List(appid)
	require.NoError(t, err)
	require.Equal(t, []string{"2147483649.webp", "2147483649_hero.jpg", "2147483649p.png"}, names(t, assets))

	data, err := os.ReadFile(filepath.Join(m.Dir, "2147483649p.png"))
	require.NoError(t, err)
	require.Equal(t, "cover", string(data))

	// replacing an image with another format removes the old file
	err = m.Apply(context.Background(), appid, []grid.Job{
		{Kind: grid.Cover, Source: writeImage(t, src, "cover.jpg", "cover2")},
	})
	require.NoError(t, err)

	assets, err = m.List(appid)
	require.NoError(t, err)
	require.Equal(t, []string{"2147483649.webp", "2147483649_hero.jpg", "2147483649p.jpg"}, names(t, assets))
}

func TestApplyErrors(t *testing.T) {
	src := t.TempDir()
	m := grid.Manager{Dir: t.TempDir()}

	err := m.Apply(context.Background(), appid, []grid.Job{
		{Kind: grid.Cover, Source: writeImage(t, src, "a.png", "a")},
		{Kind: grid.Cover, Source: writeImage(t, src, "b.png", "b")},
	})
	testutil.ErrorIs(t, err, grid.ErrDuplicateKind)

	err = m.Apply(context.Background(), appid, []grid.Job{
		{Kind: grid.Logo, Source: writeImage(t, src, "logo.txt", "a")},
	})
	testutil.ErrorIs(t, err, grid.ErrUnsupportedImage)

	err = m.Apply(context.Background(), appid, []grid.Job{
		{Kind: grid.Logo, Source: filepath.Join(src, "missing.png")},
	})
	require.ErrorIs(t, err, os.ErrNotExist)

	assets, err := m.List(appid)
	require.NoError(t, err)
	require.Empty(t, assets)
}

func TestApplyDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/logo":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte("logo"))
		case "/icon.ico":
			w.Header().Set("Content-Type", "application/octet-stream")
			_, _ = w.Write([]byte("icon"))
		case "/page":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html>"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	m := grid.Manager{Dir: t.TempDir(), Client: srv.Client(), Workers: 4}

	err := m.Apply(context.Background(), appid, []grid.Job{
		{Kind: grid.Logo, Source: srv.URL + "/logo"},
		{Kind: grid.Icon, Source: srv.URL + "/icon.ico"},
	})
	require.NoError(t, err)

	assets, err := m.List(appid)
	require.NoError(t, err)
	require.Equal(t, []string{"2147483649_icon.ico", "2147483649_logo.png"}, names(t, assets))

	err = m.Apply(context.Background(), appid, []grid.Job{{Kind: grid.Hero, Source: srv.URL + "/page"}})
	testutil.ErrorIs(t, err, grid.ErrUnsupportedImage)

	err = m.Apply(context.Background(), appid, []grid.Job{{Kind: grid.Hero, Source: srv.URL + "/missing.png"}})
	require.Error(t, err)
}

func TestRemove(t *testing.T) {
	m := grid.Manager{Dir: t.TempDir()}
	writeImage(t, m.Dir, "2147483649p.png", "")
	writeImage(t, m.Dir, "2147483649_hero.jpg", "")
	writeImage(t, m.Dir, "2147483650p.png", "")
	writeImage(t, m.Dir, "2147483649.txt", "")

	n, err := m.Remove(appid)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	entries, err := os.ReadDir(m.Dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	n, err = (&grid.Manager{Dir: filepath.Join(m.Dir, "none")}).Remove(appid)
	require.NoError(t, err)
	require.Zero(t, n)
}
