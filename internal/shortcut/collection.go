package shortcut

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/vdftool/vdf/internal/types"
)

// RootName is the name of the single child of a shortcuts tree.
const RootName = "shortcuts"

var (
	// ErrInvalidLayout is returned when a tree doesn't have the shape of a
	// shortcuts file.
	ErrInvalidLayout = errors.New("not a shortcuts tree")

	// ErrNotFound is returned when no record has the requested app id.
	ErrNotFound = errors.New("shortcut not found")

	// ErrDuplicateAppID is returned when adding a shortcut whose app id is
	// already used by another record.
	ErrDuplicateAppID = errors.New("duplicate app id")
)

// A Collection is the ordered list of records of a shortcuts file.
// Collections are never modified in place: every mutation returns a new
// Collection built from copies of the records, leaving the original and
// the tree it was loaded from untouched.
type Collection struct {
	name    string
	records []*types.MapValue
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{name: RootName}
}

// Load returns the collection held by root.
// root must have exactly one child, a map named "shortcuts" whose children
// are all maps. The records are copied.
func Load(root *types.MapValue) (*Collection, error) {
	if root.Len() == 0 {
		return NewCollection(), nil
	}
	if root.Len() != 1 {
		return nil, errors.Wrapf(ErrInvalidLayout, "root has %d children", root.Len())
	}

	name := root.Fields()[0]
	if !strings.EqualFold(name, RootName) {
		return nil, errors.Wrapf(ErrInvalidLayout, "unexpected root %q", name)
	}

	v, _ := root.Get(name)
	if v.Type() != types.TypeMap {
		return nil, errors.Wrapf(ErrInvalidLayout, "%q is a %s", name, v.Type())
	}

	c := Collection{name: name}
	err := types.AsMap(v).Iterate(func(key string, rec types.Value) error {
		if rec.Type() != types.TypeMap {
			return errors.Wrapf(ErrInvalidLayout, "record %q is a %s", key, rec.Type())
		}

		c.records = append(c.records, types.AsMap(rec).Clone())
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// Len returns the number of records.
func (c *Collection) Len() int {
	return len(c.records)
}

// List returns all the shortcuts, in order.
func (c *Collection) List() ([]Shortcut, error) {
	list := make([]Shortcut, 0, len(c.records))
	for i, rec := range c.records {
		s, err := FromValue(rec)
		if err != nil {
			return nil, errors.Wrapf(err, "record %d", i)
		}
		list = append(list, s)
	}

	return list, nil
}

// RecordAppID returns the app id of a record, generating it from the
// executable and the name when the record has none.
func RecordAppID(rec *types.MapValue) uint32 {
	if v, err := rec.GetFold(FieldAppID); err == nil && v.Type() == types.TypeInteger {
		if id := types.AsUint32(v); id != 0 {
			return id
		}
	}

	var exe, name string
	if v, err := rec.GetFold(FieldExe); err == nil && v.Type() == types.TypeString {
		exe = types.AsString(v)
	}
	if v, err := rec.GetFold(FieldAppName); err == nil && v.Type() == types.TypeString {
		name = types.AsString(v)
	}

	return GenerateAppID(exe, name)
}

// Index returns the position of the record with the given app id.
func (c *Collection) Index(appid uint32) (int, error) {
	for i, rec := range c.records {
		if RecordAppID(rec) == appid {
			return i, nil
		}
	}

	return -1, errors.Wrapf(ErrNotFound, "app id %d", appid)
}

// Find returns the shortcut with the given app id.
func (c *Collection) Find(appid uint32) (Shortcut, error) {
	i, err := c.Index(appid)
	if err != nil {
		return Shortcut{}, err
	}

	return FromValue(c.records[i])
}

func (c *Collection) clone() *Collection {
	records := make([]*types.MapValue, len(c.records))
	for i, rec := range c.records {
		records[i] = rec.Clone()
	}

	return &Collection{name: c.name, records: records}
}

// Add returns a new collection with s appended.
// A zero app id is replaced by the generated one.
func (c *Collection) Add(s Shortcut) (*Collection, error) {
	if s.AppID == 0 {
		s.AppID = GenerateAppID(s.Exe, s.AppName)
	}
	if err := ValidateAppID(s.AppID); err != nil {
		return nil, err
	}
	if _, err := c.Index(s.AppID); err == nil {
		return nil, errors.Wrapf(ErrDuplicateAppID, "app id %d", s.AppID)
	}

	nc := c.clone()
	nc.records = append(nc.records, s.Value())
	return nc, nil
}

// Update returns a new collection in which the record with the given app id
// is replaced by the result of fn. fn receives a copy of the record and may
// modify it freely; fields it doesn't know about are kept.
func (c *Collection) Update(appid uint32, fn func(rec *types.MapValue) error) (*Collection, error) {
	i, err := c.Index(appid)
	if err != nil {
		return nil, err
	}

	rec := c.records[i].Clone()
	err = fn(rec)
	if err != nil {
		return nil, err
	}

	newID := RecordAppID(rec)
	if err := ValidateAppID(newID); err != nil {
		return nil, err
	}
	if j, err := c.Index(newID); err == nil && j != i {
		return nil, errors.Wrapf(ErrDuplicateAppID, "app id %d", newID)
	}

	nc := c.clone()
	nc.records[i] = rec
	return nc, nil
}

// Remove returns a new collection without the record with the given app id.
// The remaining records are renumbered when the tree is built.
func (c *Collection) Remove(appid uint32) (*Collection, error) {
	i, err := c.Index(appid)
	if err != nil {
		return nil, err
	}

	nc := c.clone()
	nc.records = append(nc.records[:i], nc.records[i+1:]...)
	return nc, nil
}

// Tree returns a new root holding the collection, with records named
// "0", "1", ... in order.
func (c *Collection) Tree() *types.MapValue {
	m := types.NewMapValue()
	for i, rec := range c.records {
		m.Add(strconv.Itoa(i), rec.Clone())
	}

	return types.NewMapValue().Add(c.name, m)
}
