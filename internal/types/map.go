package types

import (
	"strings"

	"github.com/cockroachdb/errors"
)

var _ Value = NewMapValue()

type field struct {
	Name  string
	Value Value
}

// MapValue stores an ordered group of named values in memory.
// Iteration order is insertion order. Names are not required to be unique;
// lookups return the first match.
type MapValue struct {
	fields []field
}

// NewMapValue creates an empty map.
func NewMapValue() *MapValue {
	return new(MapValue)
}

func (m *MapValue) V() any {
	return m
}

func (m *MapValue) Type() Type {
	return TypeMap
}

func (*MapValue) value() {}

// Add appends a child at the end of the map, even if another child
// already carries the same name.
func (m *MapValue) Add(name string, v Value) *MapValue {
	m.fields = append(m.fields, field{name, v})
	return m
}

// Get returns the first child named name.
func (m *MapValue) Get(name string) (Value, error) {
	for _, f := range m.fields {
		if f.Name == name {
			return f.Value, nil
		}
	}

	return nil, errors.Wrapf(ErrFieldNotFound, "field %q not found", name)
}

// GetFold is like Get but matches names case-insensitively.
func (m *MapValue) GetFold(name string) (Value, error) {
	for _, f := range m.fields {
		if strings.EqualFold(f.Name, name) {
			return f.Value, nil
		}
	}

	return nil, errors.Wrapf(ErrFieldNotFound, "field %q not found", name)
}

// Set replaces the value of the first child named name,
// or appends a new child if none exists.
func (m *MapValue) Set(name string, v Value) {
	for i := range m.fields {
		if m.fields[i].Name == name {
			m.fields[i].Value = v
			return
		}
	}

	m.Add(name, v)
}

// Delete removes the first child named name.
func (m *MapValue) Delete(name string) error {
	for i := range m.fields {
		if m.fields[i].Name == name {
			m.fields = append(m.fields[:i], m.fields[i+1:]...)
			return nil
		}
	}

	return errors.Wrapf(ErrFieldNotFound, "field %q not found", name)
}

// Iterate goes through all the children of the map and calls the given function by passing each one of them.
// If the given function returns an error, the iteration stops.
func (m *MapValue) Iterate(fn func(name string, v Value) error) error {
	if m == nil {
		return nil
	}

	for _, f := range m.fields {
		err := fn(f.Name, f.Value)
		if err != nil {
			return err
		}
	}

	return nil
}

// Fields returns the names of the children, in order.
func (m *MapValue) Fields() []string {
	if m == nil {
		return nil
	}

	names := make([]string, len(m.fields))
	for i, f := range m.fields {
		names[i] = f.Name
	}

	return names
}

// Len returns the number of children.
func (m *MapValue) Len() int {
	if m == nil {
		return 0
	}

	return len(m.fields)
}

// Clone deep copies the map. Nested maps are copied as well so that
// the result shares nothing with m.
func (m *MapValue) Clone() *MapValue {
	if m == nil {
		return nil
	}

	c := &MapValue{
		fields: make([]field, len(m.fields)),
	}
	for i, f := range m.fields {
		c.fields[i] = field{f.Name, Clone(f.Value)}
	}

	return c
}

// Equal reports whether both maps hold the same children in the same order.
func (m *MapValue) Equal(other *MapValue) bool {
	if m.Len() != other.Len() {
		return false
	}

	for i := range m.fields {
		if m.fields[i].Name != other.fields[i].Name {
			return false
		}
		if !Equal(m.fields[i].Value, other.fields[i].Value) {
			return false
		}
	}

	return true
}

func (m *MapValue) String() string {
	var sb strings.Builder

	sb.WriteByte('{')
	for i, f := range m.fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(f.Name)
		sb.WriteString(": ")
		if f.Value == nil {
			sb.WriteString("<nil>")
		} else {
			sb.WriteString(f.Value.String())
		}
	}
	sb.WriteByte('}')

	return sb.String()
}
