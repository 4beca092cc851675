package vdf

import (
	"github.com/vdftool/vdf/internal/encoding"
	"github.com/vdftool/vdf/internal/types"
)

var (
	// ErrTruncatedBuffer is returned when decoding needs more bytes than
	// the buffer holds.
	ErrTruncatedBuffer = encoding.ErrTruncatedBuffer

	// ErrTokenTooLong is returned when a name or a string does not fit in
	// the 1024 bytes window of the format.
	ErrTokenTooLong = encoding.ErrTokenTooLong

	// ErrInvalidToken is returned when encoding a name or a string that
	// contains a NUL byte.
	ErrInvalidToken = encoding.ErrInvalidToken

	// ErrMaxDepth is returned when decoding maps nested more than 512
	// levels deep.
	ErrMaxDepth = encoding.ErrMaxDepth

	// ErrFieldNotFound is returned by MapValue lookups.
	ErrFieldNotFound = types.ErrFieldNotFound
)

// UnknownTypeError is returned when decoding meets a type byte that is
// not one of the four known codes. It holds the byte and its offset.
type UnknownTypeError = encoding.UnknownTypeError

// UnsupportedValueTypeError is returned when encoding a value that has
// no wire representation.
type UnsupportedValueTypeError = encoding.UnsupportedValueTypeError
