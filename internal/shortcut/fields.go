package shortcut

import (
	"math"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/cockroachdb/errors"
	"github.com/golang-module/carbon/v2"
	"github.com/vdftool/vdf/internal/types"
)

// Kind describes how a record field is stored.
type Kind uint8

const (
	KindString Kind = iota
	KindInteger
	KindBool
	KindTime
	KindTags
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	case KindTags:
		return "tags"
	}

	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Field describes a known field of a shortcut record.
type Field struct {
	Name string
	Kind Kind
}

// Names of the fields, as Steam writes them.
const (
	FieldAppID               = "appid"
	FieldAppName             = "AppName"
	FieldExe                 = "Exe"
	FieldStartDir            = "StartDir"
	FieldIcon                = "icon"
	FieldShortcutPath        = "ShortcutPath"
	FieldLaunchOptions       = "LaunchOptions"
	FieldIsHidden            = "IsHidden"
	FieldAllowDesktopConfig  = "AllowDesktopConfig"
	FieldAllowOverlay        = "AllowOverlay"
	FieldOpenVR              = "OpenVR"
	FieldDevkit              = "Devkit"
	FieldDevkitGameID        = "DevkitGameID"
	FieldDevkitOverrideAppID = "DevkitOverrideAppID"
	FieldLastPlayTime        = "LastPlayTime"
	FieldFlatpakAppID        = "FlatpakAppID"
	FieldTags                = "tags"
)

// Fields lists the known fields in the order Steam writes them.
var Fields = []Field{
	{FieldAppID, KindInteger},
	{FieldAppName, KindString},
	{FieldExe, KindString},
	{FieldStartDir, KindString},
	{FieldIcon, KindString},
	{FieldShortcutPath, KindString},
	{FieldLaunchOptions, KindString},
	{FieldIsHidden, KindBool},
	{FieldAllowDesktopConfig, KindBool},
	{FieldAllowOverlay, KindBool},
	{FieldOpenVR, KindBool},
	{FieldDevkit, KindBool},
	{FieldDevkitGameID, KindString},
	{FieldDevkitOverrideAppID, KindInteger},
	{FieldLastPlayTime, KindTime},
	{FieldFlatpakAppID, KindString},
	{FieldTags, KindTags},
}

// ErrInvalidField is returned when a field holds a value
// that doesn't match its kind.
var ErrInvalidField = errors.New("invalid field")

// LookupField returns the definition of a known field.
// Names are matched case-insensitively.
func LookupField(name string) (Field, bool) {
	for _, f := range Fields {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}

	return Field{}, false
}

// SuggestFields returns the known fields whose name is close to name,
// ignoring case. It is used to catch typos of unknown fields.
func SuggestFields(name string) []string {
	var suggestions []string
	in := strings.ToLower(name)
	for _, f := range Fields {
		// the input must be at least half the field name
		if d := levenshtein.ComputeDistance(strings.ToLower(f.Name), in); d < len(f.Name)/2 {
			suggestions = append(suggestions, f.Name)
		}
	}

	return suggestions
}

// fieldName returns the name under which rec stores name,
// keeping the casing already used by the record.
func fieldName(rec *types.MapValue, name string) string {
	for _, n := range rec.Fields() {
		if strings.EqualFold(n, name) {
			return n
		}
	}

	if f, ok := LookupField(name); ok {
		return f.Name
	}

	return name
}

// SetField parses raw according to the kind of the field and stores it in rec.
// Unknown fields are stored as strings.
func SetField(rec *types.MapValue, name, raw string) error {
	f, ok := LookupField(name)
	if !ok {
		f = Field{Name: name, Kind: KindString}
	}

	v, err := ParseFieldValue(f, raw)
	if err != nil {
		return err
	}

	rec.Set(fieldName(rec, f.Name), v)
	return nil
}

// DeleteField removes name from rec.
func DeleteField(rec *types.MapValue, name string) error {
	return rec.Delete(fieldName(rec, name))
}

// ParseFieldValue converts the textual representation of a field to a value.
func ParseFieldValue(f Field, raw string) (types.Value, error) {
	switch f.Kind {
	case KindString:
		return types.NewStringValue(raw), nil
	case KindInteger:
		x, err := strconv.ParseUint(strings.TrimSpace(raw), 0, 32)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidField, "%s: %q is not a 32-bit unsigned integer", f.Name, raw)
		}
		if f.Name == FieldAppID {
			if err := ValidateAppID(uint32(x)); err != nil {
				return nil, err
			}
		}
		return types.NewIntegerValue(uint32(x)), nil
	case KindBool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidField, "%s: %q is not a boolean", f.Name, raw)
		}
		return boolValue(b), nil
	case KindTime:
		ts, err := ParseTime(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "%s", f.Name)
		}
		return types.NewIntegerValue(ts), nil
	case KindTags:
		return tagsValue(splitTags(raw)), nil
	}

	return nil, errors.Errorf("unknown kind %s", f.Kind)
}

// ParseTime parses a unix timestamp in seconds or a date understood by
// carbon, interpreted as UTC when it has no zone.
func ParseTime(raw string) (uint32, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}

	if x, err := strconv.ParseUint(raw, 10, 32); err == nil {
		return uint32(x), nil
	}

	c := carbon.Parse(raw, "UTC")
	if c.Error != nil {
		return 0, errors.Wrapf(ErrInvalidField, "%q is not a valid time", raw)
	}

	ts := c.StdTime().Unix()
	if ts < 0 || ts > math.MaxUint32 {
		return 0, errors.Wrapf(ErrInvalidField, "%q is out of range", raw)
	}

	return uint32(ts), nil
}

func boolValue(b bool) types.IntegerValue {
	if b {
		return types.NewIntegerValue(1)
	}

	return types.NewIntegerValue(0)
}

func splitTags(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}

	return tags
}

func tagsValue(tags []string) *types.MapValue {
	m := types.NewMapValue()
	for i, t := range tags {
		m.Add(strconv.Itoa(i), types.NewStringValue(t))
	}

	return m
}
