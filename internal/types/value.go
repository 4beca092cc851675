package types

import (
	"fmt"
)

func AsMap(v Value) *MapValue {
	mv, ok := v.(*MapValue)
	if !ok {
		panic(fmt.Errorf("value of type %s is not a map", v.Type()))
	}

	return mv
}

func AsString(v Value) string {
	sv, ok := v.(StringValue)
	if !ok {
		return v.V().(string)
	}

	return string(sv)
}

func AsUint32(v Value) uint32 {
	iv, ok := v.(IntegerValue)
	if !ok {
		return v.V().(uint32)
	}

	return uint32(iv)
}

// Equal reports whether a and b hold the same tree.
// Map children are compared in order.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Type() != b.Type() {
		return false
	}

	switch a.Type() {
	case TypeMap:
		return AsMap(a).Equal(AsMap(b))
	case TypeString:
		return AsString(a) == AsString(b)
	case TypeInteger:
		return AsUint32(a) == AsUint32(b)
	}

	return false
}

// Clone returns a deep copy of v. Scalars are returned as is.
func Clone(v Value) Value {
	if mv, ok := v.(*MapValue); ok {
		return mv.Clone()
	}

	return v
}
