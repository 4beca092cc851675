package types

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrFieldNotFound is returned by MapValue lookups when no child
	// carries the requested name.
	ErrFieldNotFound = errors.New("field not found")
)

// Type represents the tag of a value held in a tree.
type Type uint8

// List of supported types.
// The order matches the wire codes of the binary format.
const (
	TypeMap Type = iota
	TypeString
	TypeInteger
)

func (t Type) String() string {
	switch t {
	case TypeMap:
		return "map"
	case TypeString:
		return "string"
	case TypeInteger:
		return "integer"
	}

	panic(fmt.Sprintf("unsupported type %#v", t))
}

// A Value is a node of a tree. The set of implementations is closed:
// *MapValue, StringValue and IntegerValue.
type Value interface {
	Type() Type
	V() any
	String() string

	value()
}
