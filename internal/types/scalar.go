package types

import (
	"strconv"
)

var _ Value = NewStringValue("")

// StringValue is a NUL-terminated byte sequence on the wire.
// The Go string is not required to be valid UTF-8.
type StringValue string

// NewStringValue returns a string value.
func NewStringValue(x string) StringValue {
	return StringValue(x)
}

func (v StringValue) V() any {
	return string(v)
}

func (v StringValue) Type() Type {
	return TypeString
}

func (v StringValue) String() string {
	return strconv.Quote(string(v))
}

func (StringValue) value() {}

var _ Value = NewIntegerValue(0)

// IntegerValue is an unsigned 32-bit integer, little-endian on the wire.
type IntegerValue uint32

// NewIntegerValue returns an integer value.
func NewIntegerValue(x uint32) IntegerValue {
	return IntegerValue(x)
}

func (v IntegerValue) V() any {
	return uint32(v)
}

func (v IntegerValue) Type() Type {
	return TypeInteger
}

func (v IntegerValue) String() string {
	return strconv.FormatUint(uint64(v), 10)
}

func (IntegerValue) value() {}
