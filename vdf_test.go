package vdf_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/vdftool/vdf"
	"github.com/vdftool/vdf/internal/testutil"
)

func TestReadWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shortcuts.vdf")

	// files written by Steam
	raw := []byte{
		0x00, 's', 'h', 'o', 'r', 't', 'c', 'u', 't', 's', 0x00,
		0x00, '0', 0x00,
		0x02, 'a', 'p', 'p', 'i', 'd', 0x00, 0x01, 0x00, 0x00, 0x80,
		0x01, 'A', 'p', 'p', 'N', 'a', 'm', 'e', 0x00, 'G', 0x00,
		0x08,
		0x08,
		0x08,
	}
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	root, err := vdf.ReadFile(path)
	require.NoError(t, err)
	testutil.RequireMapEqual(t, testutil.MakeMap(t, `{"shortcuts": {"0": {"appid": 2147483649, "AppName": "G"}}}`), root)

	err = vdf.WriteFile(path, root)
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, raw, got)
}

func TestWriteFileFailureKeepsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shortcuts.vdf")
	require.NoError(t, os.WriteFile(path, []byte{0x08}, 0o644))

	root := vdf.NewMap().Add("a", nil)
	err := vdf.WriteFile(path, root)

	var target *vdf.UnsupportedValueTypeError
	require.True(t, errors.As(err, &target))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte{0x08}, got)
}

func TestReadFileErrors(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		_, err := vdf.ReadFile(filepath.Join(t.TempDir(), "nope.vdf"))
		require.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("unknown type", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.vdf")
		require.NoError(t, os.WriteFile(path, []byte{0x05, 'a', 0x00}, 0o644))

		_, err := vdf.ReadFile(path)
		var target *vdf.UnknownTypeError
		require.True(t, errors.As(err, &target))
		require.Equal(t, byte(0x05), target.Type)
	})

	t.Run("truncated", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.vdf")
		require.NoError(t, os.WriteFile(path, nil, 0o644))

		_, err := vdf.ReadFile(path)
		testutil.ErrorIs(t, err, vdf.ErrTruncatedBuffer)
	})

	t.Run("too deep", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "deep.vdf")
		require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{0x00, 'a', 0x00}, 1000), 0o644))

		_, err := vdf.ReadFile(path)
		testutil.ErrorIs(t, err, vdf.ErrMaxDepth)
	})
}
