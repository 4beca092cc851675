package encoding

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrTruncatedBuffer is returned when the decoder needs to read past
	// the end of the buffer.
	ErrTruncatedBuffer = errors.New("truncated buffer")

	// ErrTokenTooLong is returned when no NUL terminator is found within
	// MaxTokenLen bytes although the buffer continues.
	ErrTokenTooLong = errors.New("token exceeds maximum length")

	// ErrInvalidToken is returned when a name or a string contains a NUL byte
	// and cannot be written as a NUL-terminated token.
	ErrInvalidToken = errors.New("token contains a NUL byte")

	// ErrMaxDepth is returned when maps are nested deeper than MaxDepth.
	ErrMaxDepth = errors.New("maximum nesting depth exceeded")
)

// UnknownTypeError is returned when the decoder reads a type code
// it does not know.
type UnknownTypeError struct {
	Type   byte
	Offset int
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown type 0x%02x at offset %d", e.Type, e.Offset)
}

// UnsupportedValueTypeError is returned when the encoder is given a
// value it has no wire representation for.
type UnsupportedValueTypeError struct {
	Value any
}

func (e *UnsupportedValueTypeError) Error() string {
	return fmt.Sprintf("unsupported value type %T", e.Value)
}
