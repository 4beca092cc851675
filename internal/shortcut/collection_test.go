package shortcut_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vdftool/vdf/internal/shortcut"
	"github.com/vdftool/vdf/internal/testutil"
	"github.com/vdftool/vdf/internal/types"
)

const twoShortcuts = `{"shortcuts": {
	"0": {"appid": 2147483649, "AppName": "A", "Exe": "\"/a\"", "Custom": "keep"},
	"1": {"appid": 2147483650, "AppName": "B", "Exe": "\"/b\""}
}}`

func TestLoad(t *testing.T) {
	t.Run("empty root", func(t *testing.T) {
		c, err := shortcut.Load(types.NewMapValue())
		require.NoError(t, err)
		require.Equal(t, 0, c.Len())
		testutil.RequireMapEqual(t, testutil.MakeMap(t, `{"shortcuts": {}}`), c.Tree())
	})

	t.Run("records", func(t *testing.T) {
		c, err := shortcut.Load(testutil.MakeMap(t, twoShortcuts))
		require.NoError(t, err)
		require.Equal(t, 2, c.Len())

		list, err := c.List()
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Equal(t, "A", list[0].AppName)
		require.Equal(t, "B", list[1].AppName)
	})

	t.Run("keeps root casing", func(t *testing.T) {
		c, err := shortcut.Load(testutil.MakeMap(t, `{"Shortcuts": {}}`))
		require.NoError(t, err)
		testutil.RequireMapEqual(t, testutil.MakeMap(t, `{"Shortcuts": {}}`), c.Tree())
	})

	t.Run("invalid layouts", func(t *testing.T) {
		layouts := []string{
			`{"other": {}}`,
			`{"shortcuts": "x"}`,
			`{"shortcuts": {"0": 1}}`,
			`{"shortcuts": {}, "extra": {}}`,
		}

		for _, l := range layouts {
			_, err := shortcut.Load(testutil.MakeMap(t, l))
			testutil.ErrorIsf(t, err, shortcut.ErrInvalidLayout, "layout %s", l)
		}
	})

	t.Run("copies records", func(t *testing.T) {
		root := testutil.MakeMap(t, twoShortcuts)
		c, err := shortcut.Load(root)
		require.NoError(t, err)

		v, err := root.Get(shortcut.RootName)
		require.NoError(t, err)
		v, err = types.AsMap(v).Get("0")
		require.NoError(t, err)
		types.AsMap(v).Set("AppName", types.NewStringValue("changed"))

		s, err := c.Find(0x80000001)
		require.NoError(t, err)
		require.Equal(t, "A", s.AppName)
		testutil.RequireMapEqual(t, testutil.MakeMap(t, twoShortcuts), c.Tree())
	})
}

func TestCollectionAdd(t *testing.T) {
	c, err := shortcut.Load(testutil.MakeMap(t, twoShortcuts))
	require.NoError(t, err)

	s := shortcut.New("C", "/c")
	nc, err := c.Add(s)
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())
	require.Equal(t, 3, nc.Len())

	got, err := nc.Find(s.AppID)
	require.NoError(t, err)
	require.Equal(t, s, got)

	_, err = nc.Add(s)
	testutil.ErrorIs(t, err, shortcut.ErrDuplicateAppID)

	_, err = nc.Add(shortcut.Shortcut{AppID: 12, AppName: "x"})
	testutil.ErrorIs(t, err, shortcut.ErrAppIDOutOfRange)

	// a zero app id is generated
	nc, err = c.Add(shortcut.Shortcut{AppName: "D", Exe: `"/d"`})
	require.NoError(t, err)
	_, err = nc.Find(shortcut.GenerateAppID(`"/d"`, "D"))
	require.NoError(t, err)
}

func TestCollectionUpdate(t *testing.T) {
	root := testutil.MakeMap(t, twoShortcuts)
	c, err := shortcut.Load(root)
	require.NoError(t, err)

	nc, err := c.Update(0x80000001, func(rec *types.MapValue) error {
		return shortcut.SetField(rec, "appname", "A2")
	})
	require.NoError(t, err)

	want := testutil.MakeMap(t, `{"shortcuts": {
		"0": {"appid": 2147483649, "AppName": "A2", "Exe": "\"/a\"", "Custom": "keep"},
		"1": {"appid": 2147483650, "AppName": "B", "Exe": "\"/b\""}
	}}`)
	testutil.RequireMapEqual(t, want, nc.Tree())
	testutil.RequireMapEqual(t, testutil.MakeMap(t, twoShortcuts), c.Tree())

	t.Run("not found", func(t *testing.T) {
		_, err := c.Update(0x80000009, func(*types.MapValue) error { return nil })
		testutil.ErrorIs(t, err, shortcut.ErrNotFound)
	})

	t.Run("duplicate", func(t *testing.T) {
		_, err := c.Update(0x80000001, func(rec *types.MapValue) error {
			return shortcut.SetField(rec, "appid", "0x80000002")
		})
		testutil.ErrorIs(t, err, shortcut.ErrDuplicateAppID)
	})

	t.Run("callback error", func(t *testing.T) {
		_, err := c.Update(0x80000001, func(rec *types.MapValue) error {
			return shortcut.SetField(rec, "IsHidden", "maybe")
		})
		testutil.ErrorIs(t, err, shortcut.ErrInvalidField)
		testutil.RequireMapEqual(t, testutil.MakeMap(t, twoShortcuts), c.Tree())
	})
}

func TestCollectionRemove(t *testing.T) {
	c, err := shortcut.Load(testutil.MakeMap(t, twoShortcuts))
	require.NoError(t, err)

	nc, err := c.Remove(0x80000001)
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	// remaining records are renumbered
	want := testutil.MakeMap(t, `{"shortcuts": {
		"0": {"appid": 2147483650, "AppName": "B", "Exe": "\"/b\""}
	}}`)
	testutil.RequireMapEqual(t, want, nc.Tree())

	_, err = nc.Remove(0x80000001)
	testutil.ErrorIs(t, err, shortcut.ErrNotFound)
}
