package vdf

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/vdftool/vdf/internal/encoding"
	"github.com/vdftool/vdf/internal/types"
)

// Value is a node of a tree: *MapValue, StringValue or IntegerValue.
type Value = types.Value

// Type is the tag of a Value.
type Type = types.Type

// List of value types.
const (
	TypeMap     = types.TypeMap
	TypeString  = types.TypeString
	TypeInteger = types.TypeInteger
)

// MapValue is an ordered list of named values.
type MapValue = types.MapValue

// StringValue is a string value.
type StringValue = types.StringValue

// IntegerValue is an unsigned 32-bit integer value.
type IntegerValue = types.IntegerValue

// NewMap returns an empty map.
func NewMap() *MapValue {
	return types.NewMapValue()
}

// NewString returns a string value.
func NewString(s string) StringValue {
	return types.NewStringValue(s)
}

// NewInteger returns an integer value.
func NewInteger(x uint32) IntegerValue {
	return types.NewIntegerValue(x)
}

// Decode parses the binary representation of a tree.
func Decode(buf []byte) (*MapValue, error) {
	return encoding.Decode(buf)
}

// Encode returns the binary representation of root.
func Encode(root *MapValue) ([]byte, error) {
	return encoding.Encode(root)
}

// An Encoder writes trees to an output stream.
type Encoder = encoding.Encoder

// NewEncoder returns an Encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return encoding.NewEncoder(w)
}

// ReadFile reads and decodes the named file.
func ReadFile(name string) (*MapValue, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	root, err := Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot decode %s", name)
	}

	return root, nil
}

// WriteFile encodes root and writes it to the named file,
// creating it if necessary. The file is not touched if root
// cannot be encoded.
func WriteFile(name string, root *MapValue) (err error) {
	data, err := Encode(root)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.WithStack(err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.WithStack(cerr)
		}
	}()

	_, err = f.Write(data)
	return errors.WithStack(err)
}
