package encoding_test

import (
	"bytes"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/vdftool/vdf/internal/encoding"
	"github.com/vdftool/vdf/internal/testutil"
	"github.com/vdftool/vdf/internal/types"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  *types.MapValue
	}{
		{"shortcuts", shortcutsXBytes, testutil.MakeMap(t, `{"shortcuts": {"x": 1}}`)},
		{"empty map", []byte{0x00, 'm', 0x00, 0x08, 0x08}, testutil.MakeMap(t, `{"m": {}}`)},
		{"empty root", []byte{0x08}, types.NewMapValue()},
		{"string root entry", []byte{0x01, 'k', 0x00, 'v', 0x00}, testutil.MakeMap(t, `{"k": "v"}`)},
		{"integer root entry", []byte{0x02, 'k', 0x00, 0x2a, 0x00, 0x00, 0x00}, testutil.MakeMap(t, `{"k": 42}`)},
		{"without trailing root terminator", shortcutsXBytes[:len(shortcutsXBytes)-1], testutil.MakeMap(t, `{"shortcuts": {"x": 1}}`)},
		{"order", []byte{
			0x00, 'r', 0x00,
			0x01, 'C', 0x00, 0x00,
			0x02, 'A', 0x00, 0x01, 0x00, 0x00, 0x00,
			0x00, 'B', 0x00, 0x08,
			0x08,
		}, testutil.MakeMap(t, `{"r": {"C": "", "A": 1, "B": {}}}`)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := encoding.Decode(test.input)
			require.NoError(t, err)
			testutil.RequireMapEqual(t, test.want, got)
		})
	}
}

func TestDecodeOrder(t *testing.T) {
	got, err := encoding.Decode([]byte{
		0x00, 'r', 0x00,
		0x02, 'A', 0x00, 0x01, 0x00, 0x00, 0x00,
		0x02, 'B', 0x00, 0x02, 0x00, 0x00, 0x00,
		0x02, 'C', 0x00, 0x03, 0x00, 0x00, 0x00,
		0x08, 0x08,
	})
	require.NoError(t, err)

	r, err := got.Get("r")
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B", "C"}, types.AsMap(r).Fields())
}

func TestDecodeTrailingBytes(t *testing.T) {
	want, err := encoding.Decode(shortcutsXBytes)
	require.NoError(t, err)

	for _, extra := range [][]byte{{0x08}, {0x00}, {0xff, 0xff}, {0x08, 0x08, 0x08}} {
		got, err := encoding.Decode(append(bytes.Clone(shortcutsXBytes), extra...))
		require.NoError(t, err)
		testutil.RequireMapEqual(t, want, got)
	}
}

func TestDecodeUnknownType(t *testing.T) {
	tests := []struct {
		name   string
		input  []byte
		code   byte
		offset int
	}{
		{"first byte", []byte{0x03, 'a', 0x00}, 0x03, 0},
		{"0xff", []byte{0xff}, 0xff, 0},
		{"nested", []byte{0x00, 'a', 0x00, 0x07, 'b', 0x00, 0x08, 0x08}, 0x07, 3},
		{"after entry", []byte{0x00, 'a', 0x00, 0x01, 'b', 0x00, 0x00, 0x0a}, 0x0a, 7},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := encoding.Decode(test.input)
			require.Nil(t, got)

			var target *encoding.UnknownTypeError
			require.True(t, errors.As(err, &target), "got %v", err)
			require.Equal(t, test.code, target.Type)
			require.Equal(t, test.offset, target.Offset)
		})
	}
}

func TestDecodeTruncated(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"empty", nil},
		{"no name terminator", []byte{0x00, 'a'}},
		{"tag only", []byte{0x02}},
		{"short integer", []byte{0x02, 'a', 0x00, 0x01, 0x02}},
		{"no integer", []byte{0x02, 'a', 0x00}},
		{"unterminated string", []byte{0x01, 'a', 0x00, 'b', 'c'}},
		{"no string", []byte{0x01, 'a', 0x00}},
		{"unterminated map", []byte{0x00, 'a', 0x00, 0x02, 'b', 0x00, 0x01, 0x00, 0x00, 0x00}},
		{"unterminated nested map", shortcutsXBytes[:len(shortcutsXBytes)-2]},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := encoding.Decode(test.input)
			require.Nil(t, got)
			testutil.ErrorIs(t, err, encoding.ErrTruncatedBuffer)
		})
	}
}

// nested returns depth maps named "a", each holding the next one.
func nested(depth int, closed bool) []byte {
	b := bytes.Repeat([]byte{0x00, 'a', 0x00}, depth)
	if closed {
		b = append(b, bytes.Repeat([]byte{0x08}, depth)...)
	}
	return b
}

func TestDecodeMaxDepth(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		fails bool
	}{
		{"at limit", nested(encoding.MaxDepth, true), false},
		{"past limit", nested(encoding.MaxDepth+1, true), true},
		{"unterminated past limit", nested(encoding.MaxDepth*4, false), true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := encoding.Decode(test.input)
			if test.fails {
				require.Nil(t, got)
				testutil.ErrorIs(t, err, encoding.ErrMaxDepth)
				return
			}

			require.NoError(t, err)
			depth := 0
			for v := types.Value(got); ; depth++ {
				m := types.AsMap(v)
				if m.Len() == 0 {
					break
				}
				v, err = m.Get("a")
				require.NoError(t, err)
			}
			require.Equal(t, encoding.MaxDepth, depth)
		})
	}
}

func TestDecodeToken(t *testing.T) {
	t.Run("at window limit", func(t *testing.T) {
		b := append(bytes.Repeat([]byte{'a'}, encoding.MaxTokenLen-1), 0x00, 'z')
		s, n, err := encoding.DecodeToken(b, 0)
		require.NoError(t, err)
		require.Len(t, s, encoding.MaxTokenLen-1)
		require.Equal(t, encoding.MaxTokenLen, n)
	})

	t.Run("past window limit", func(t *testing.T) {
		b := append(bytes.Repeat([]byte{'a'}, encoding.MaxTokenLen), 0x00)
		_, _, err := encoding.DecodeToken(b, 0)
		testutil.ErrorIs(t, err, encoding.ErrTokenTooLong)
	})

	t.Run("offset", func(t *testing.T) {
		s, n, err := encoding.DecodeToken([]byte{'x', 'a', 'b', 0x00, 'c'}, 1)
		require.NoError(t, err)
		require.Equal(t, "ab", s)
		require.Equal(t, 4, n)
	})
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		`{"shortcuts": {"x": 1}}`,
		`{"m": {}}`,
		`{"shortcuts": {"0": {"appid": 2147483649, "AppName": "Game", "Exe": "\"/usr/bin/game\"", "StartDir": "/usr/bin", "IsHidden": 0, "tags": {"0": "fav"}}, "1": {"appid": 4294967295, "AppName": "Other", "tags": {}}}}`,
		`{"root": {"z": "last", "a": "first", "m": {"y": 1, "b": 2}}}`,
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			want := testutil.MakeMap(t, input)

			enc, err := encoding.Encode(want)
			require.NoError(t, err)

			got, err := encoding.Decode(enc)
			require.NoError(t, err)
			testutil.RequireMapEqual(t, want, got)

			// decode then encode gives back the same bytes
			again, err := encoding.Encode(got)
			require.NoError(t, err)
			require.Equal(t, enc, again)
		})
	}
}
