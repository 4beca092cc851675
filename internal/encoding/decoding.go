package encoding

import (
	"bytes"
	"encoding/binary"

	"github.com/cockroachdb/errors"
	"github.com/vdftool/vdf/internal/types"
)

// Decode parses buf and returns the root map.
// The buffer holds a single named entry, usually a map, which becomes
// the only child of the returned root. Bytes following that entry are
// ignored: files written by Steam end with the closing byte of a root
// map that has no header of its own.
func Decode(buf []byte) (*types.MapValue, error) {
	if len(buf) == 0 {
		return nil, errors.Wrap(ErrTruncatedBuffer, "cannot read type at offset 0")
	}

	root := types.NewMapValue()

	name, v, _, end, err := decodeEntry(buf, 0, 0)
	if err != nil {
		return nil, err
	}
	if end {
		return root, nil
	}

	return root.Add(name, v), nil
}

// decodeEntry decodes the entry starting at off and returns its name, its value
// and the offset of the next entry. end is true if the entry was the
// EndOfMap byte closing the enclosing map. depth is the number of maps
// enclosing the entry.
func decodeEntry(b []byte, off, depth int) (name string, v types.Value, n int, end bool, err error) {
	if off >= len(b) {
		return "", nil, off, false, errors.Wrapf(ErrTruncatedBuffer, "cannot read type at offset %d", off)
	}

	code := b[off]
	if code == EndOfMap {
		return "", nil, off + 1, true, nil
	}
	if !isKnownCode(code) {
		return "", nil, off, false, errors.WithStack(&UnknownTypeError{Type: code, Offset: off})
	}

	name, n, err = DecodeToken(b, off+1)
	if err != nil {
		return "", nil, off, false, errors.Wrap(err, "cannot decode name")
	}

	switch code {
	case IntegerValue:
		var x uint32
		x, n, err = DecodeUint32(b, n)
		v = types.NewIntegerValue(x)
	case StringValue:
		var s string
		s, n, err = DecodeToken(b, n)
		v = types.NewStringValue(s)
	case MapValue:
		if depth >= MaxDepth {
			return "", nil, off, false, errors.Wrapf(ErrMaxDepth, "map %q at offset %d", name, off)
		}
		var m *types.MapValue
		m, n, err = decodeMap(b, n, depth+1)
		v = m
	}
	if err != nil {
		return "", nil, off, false, errors.Wrapf(err, "cannot decode value of %q", name)
	}

	return name, v, n, false, nil
}

// DecodeMap decodes entries starting at off until the closing EndOfMap byte
// and returns the offset right after it. Maps nested deeper than MaxDepth
// are rejected with ErrMaxDepth.
func DecodeMap(b []byte, off int) (*types.MapValue, int, error) {
	return decodeMap(b, off, 1)
}

func decodeMap(b []byte, off, depth int) (*types.MapValue, int, error) {
	m := types.NewMapValue()

	for {
		name, v, n, end, err := decodeEntry(b, off, depth)
		if err != nil {
			return nil, off, err
		}
		if end {
			return m, n, nil
		}

		m.Add(name, v)
		off = n
	}
}

// DecodeToken reads a NUL-terminated token starting at off.
// The terminator must be found within MaxTokenLen bytes.
func DecodeToken(b []byte, off int) (string, int, error) {
	if off >= len(b) {
		return "", off, errors.Wrapf(ErrTruncatedBuffer, "cannot read token at offset %d", off)
	}

	window := b[off:]
	if len(window) > MaxTokenLen {
		window = window[:MaxTokenLen]
	}

	i := bytes.IndexByte(window, 0)
	if i < 0 {
		if len(b)-off > MaxTokenLen {
			return "", off, errors.Wrapf(ErrTokenTooLong, "no terminator within %d bytes at offset %d", MaxTokenLen, off)
		}
		return "", off, errors.Wrapf(ErrTruncatedBuffer, "unterminated token at offset %d", off)
	}

	return string(window[:i]), off + i + 1, nil
}

// DecodeUint32 reads a little-endian uint32 starting at off.
func DecodeUint32(b []byte, off int) (uint32, int, error) {
	if len(b)-off < 4 {
		return 0, off, errors.Wrapf(ErrTruncatedBuffer, "cannot read 4 bytes at offset %d", off)
	}

	return binary.LittleEndian.Uint32(b[off:]), off + 4, nil
}
