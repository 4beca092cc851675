package encoding

import (
	"github.com/vdftool/vdf/internal/types"
)

// Type codes used on the wire.
// Each entry starts with one of them, followed by the NUL-terminated
// name and the payload. EndOfMap has neither name nor payload.
const (
	MapValue     byte = 0x00
	StringValue  byte = 0x01
	IntegerValue byte = 0x02

	// 0x03 to 0x07 are used by value kinds this package does not handle
	// (floats, pointers, wide strings, colors, 64-bit integers).

	EndOfMap byte = 0x08
)

// MaxTokenLen is the size of the window in which the NUL terminator
// of a name or a string must be found.
const MaxTokenLen = 1024

// MaxDepth is the number of maps the decoder accepts on the path from
// the root to any entry.
const MaxDepth = 512

// TypeCode returns the wire code of t.
func TypeCode(t types.Type) byte {
	switch t {
	case types.TypeMap:
		return MapValue
	case types.TypeString:
		return StringValue
	case types.TypeInteger:
		return IntegerValue
	}

	panic("unsupported type " + t.String())
}

func isKnownCode(c byte) bool {
	switch c {
	case MapValue, StringValue, IntegerValue, EndOfMap:
		return true
	}

	return false
}
