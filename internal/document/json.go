// Package document converts trees from and to JSON.
//
// Maps are written as JSON objects with their children in order, strings as
// JSON strings and integers as JSON numbers. Parsing keeps the order of the
// object keys, which a plain map[string]any would lose.
package document

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/buger/jsonparser"
	"github.com/cockroachdb/errors"
	"github.com/vdftool/vdf/internal/types"
)

// MarshalJSON returns the JSON representation of v.
func MarshalJSON(v types.Value) ([]byte, error) {
	var buf bytes.Buffer

	err := writeJSON(&buf, v)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// MarshalJSONIndent is like MarshalJSON but applies Indent to format the output.
func MarshalJSONIndent(v types.Value, prefix, indent string) ([]byte, error) {
	data, err := MarshalJSON(v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = json.Indent(&buf, data, prefix, indent)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v types.Value) error {
	switch x := v.(type) {
	case *types.MapValue:
		if x == nil {
			break
		}
		return writeJSONObject(buf, x)
	case types.StringValue:
		return writeJSONString(buf, string(x))
	case types.IntegerValue:
		buf.WriteString(strconv.FormatUint(uint64(x), 10))
		return nil
	}

	return errors.Errorf("cannot marshal %T to JSON", v)
}

func writeJSONObject(buf *bytes.Buffer, m *types.MapValue) error {
	buf.WriteByte('{')
	var notFirst bool
	err := m.Iterate(func(name string, v types.Value) error {
		if notFirst {
			buf.WriteString(", ")
		}
		notFirst = true

		err := writeJSONString(buf, name)
		if err != nil {
			return err
		}
		buf.WriteString(": ")

		return writeJSON(buf, v)
	})
	if err != nil {
		return err
	}
	buf.WriteByte('}')

	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)

	err := enc.Encode(s)
	if err != nil {
		return errors.WithStack(err)
	}
	// Encode terminates each value with a newline.
	buf.Truncate(buf.Len() - 1)

	return nil
}

// FromJSON parses a JSON object into a map.
// Nested objects become maps, arrays become maps keyed "0", "1", ...,
// booleans become the integers 0 and 1. Numbers must be integers that fit
// in 32 bits. null is rejected.
func FromJSON(data []byte) (*types.MapValue, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil, errors.New("expected a JSON object")
	}

	return parseJSONObject(data)
}

func parseJSONObject(data []byte) (*types.MapValue, error) {
	m := types.NewMapValue()

	err := jsonparser.ObjectEach(data, func(key []byte, value []byte, dataType jsonparser.ValueType, offset int) error {
		v, err := parseJSONValue(dataType, value)
		if err != nil {
			return errors.Wrapf(err, "field %q", key)
		}

		m.Add(string(key), v)
		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return m, nil
}

func parseJSONArray(data []byte) (*types.MapValue, error) {
	m := types.NewMapValue()

	var i int
	var perr error
	_, err := jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		if perr != nil {
			return
		}
		if err != nil {
			perr = err
			return
		}

		v, err := parseJSONValue(dataType, value)
		if err != nil {
			perr = errors.Wrapf(err, "index %d", i)
			return
		}

		m.Add(strconv.Itoa(i), v)
		i++
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if perr != nil {
		return nil, perr
	}

	return m, nil
}

func parseJSONValue(dataType jsonparser.ValueType, data []byte) (types.Value, error) {
	switch dataType {
	case jsonparser.Null:
		return nil, errors.New("null values are not supported")
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(data)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		if b {
			return types.NewIntegerValue(1), nil
		}
		return types.NewIntegerValue(0), nil
	case jsonparser.Number:
		i, err := jsonparser.ParseInt(data)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid integer %s", data)
		}
		if i < 0 || i > math.MaxUint32 {
			return nil, errors.Errorf("integer %d out of range", i)
		}
		return types.NewIntegerValue(uint32(i)), nil
	case jsonparser.String:
		s, err := jsonparser.ParseString(data)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return types.NewStringValue(s), nil
	case jsonparser.Array:
		return parseJSONArray(data)
	case jsonparser.Object:
		return parseJSONObject(data)
	}

	return nil, errors.Errorf("unexpected JSON value %s", data)
}
