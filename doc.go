/*
Package vdf reads and writes binary VDF files, the nested key-value format
Steam uses for files such as shortcuts.vdf.

# Trees

A file decodes to a tree of values. A value is either a map, a string or an
unsigned 32-bit integer. Maps keep their children in the order they were
read or added, and that order is written back as is:

	root, err := vdf.ReadFile("shortcuts.vdf")
	if err != nil {
		return err
	}

	shortcuts, err := root.Get("shortcuts")

# Wire format

Every entry is a type byte, a NUL-terminated name and a payload:

	0x00  map      entries until 0x08
	0x01  string   NUL-terminated bytes
	0x02  integer  4 bytes, little-endian
	0x08  end of the enclosing map

A file holds a single named entry. The root map returned by Decode has that
entry as its only child. When encoding, the root map itself has no header:
its children are written followed by one 0x08 byte, which is why files
written by Steam end with one more 0x08 than the decoder needs.

# Editing

Trees returned by Decode are owned by the caller. Prefer building a new
tree with MapValue.Clone and MapValue.Set and handing it to Encode over
editing a tree that is shared with other code.
*/
package vdf
