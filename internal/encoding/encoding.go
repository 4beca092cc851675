package encoding

import (
	"encoding/binary"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/vdftool/vdf/internal/types"
)

// Encode returns the binary representation of root.
// root must be a map: its children are written one after the other,
// followed by a single EndOfMap byte. The root itself has no type code
// nor name on the wire.
func Encode(root types.Value) ([]byte, error) {
	return AppendRoot(nil, root)
}

// AppendRoot appends the binary representation of root to dst.
// Nothing is appended if an error is returned.
func AppendRoot(dst []byte, root types.Value) ([]byte, error) {
	m, ok := root.(*types.MapValue)
	if !ok || m == nil {
		return nil, errors.WithStack(&UnsupportedValueTypeError{Value: root})
	}

	return AppendMap(dst, m)
}

// AppendMap appends every child of m, in order, followed by EndOfMap.
func AppendMap(dst []byte, m *types.MapValue) ([]byte, error) {
	err := m.Iterate(func(name string, v types.Value) error {
		var err error
		dst, err = AppendEntry(dst, name, v)
		return err
	})
	if err != nil {
		return nil, err
	}

	return append(dst, EndOfMap), nil
}

// AppendEntry appends the type code of v, the name and the payload of v.
func AppendEntry(dst []byte, name string, v types.Value) ([]byte, error) {
	var err error

	switch x := v.(type) {
	case *types.MapValue:
		if x == nil {
			break
		}
		dst, err = appendHeader(dst, TypeCode(x.Type()), name)
		if err != nil {
			return nil, err
		}
		dst, err = AppendMap(dst, x)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot encode %q", name)
		}
		return dst, nil
	case types.StringValue:
		dst, err = appendHeader(dst, TypeCode(x.Type()), name)
		if err != nil {
			return nil, err
		}
		dst, err = AppendToken(dst, string(x))
		if err != nil {
			return nil, errors.Wrapf(err, "cannot encode value of %q", name)
		}
		return dst, nil
	case types.IntegerValue:
		dst, err = appendHeader(dst, TypeCode(x.Type()), name)
		if err != nil {
			return nil, err
		}
		return binary.LittleEndian.AppendUint32(dst, uint32(x)), nil
	}

	return nil, errors.Wrapf(&UnsupportedValueTypeError{Value: v}, "cannot encode %q", name)
}

func appendHeader(dst []byte, code byte, name string) ([]byte, error) {
	dst = append(dst, code)
	dst, err := AppendToken(dst, name)
	if err != nil {
		return nil, errors.Wrap(err, "cannot encode name")
	}

	return dst, nil
}

// AppendToken appends s followed by a NUL byte.
// s must leave room for the terminator within MaxTokenLen bytes so that
// the decoder can read it back.
func AppendToken(dst []byte, s string) ([]byte, error) {
	if len(s) >= MaxTokenLen {
		return nil, errors.Wrapf(ErrTokenTooLong, "token of %d bytes", len(s))
	}
	if i := strings.IndexByte(s, 0); i >= 0 {
		return nil, errors.Wrapf(ErrInvalidToken, "NUL byte at position %d", i)
	}

	dst = append(dst, s...)
	return append(dst, 0), nil
}

// An Encoder writes binary trees to an output stream.
// The tree is fully encoded in memory before anything is written,
// so a failed call leaves the writer untouched.
type Encoder struct {
	w io.Writer

	buf []byte
}

// NewEncoder creates an Encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{
		w: w,
	}
}

// Encode root to the writer.
func (e *Encoder) Encode(root types.Value) error {
	buf, err := AppendRoot(e.buf[:0], root)
	if err != nil {
		return err
	}
	e.buf = buf

	_, err = e.w.Write(e.buf)
	return errors.WithStack(err)
}
