// Package shortcut maps the records of a shortcuts.vdf tree to Go values.
//
// A shortcuts file decodes to a root map holding a single map named
// "shortcuts". Its children are the records, named "0", "1", ... in order.
// The codec knows nothing about this layout; it is checked here.
package shortcut

import (
	"math"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/vdftool/vdf/internal/types"
)

// Shortcut is a non-Steam game entry.
type Shortcut struct {
	AppID               uint32
	AppName             string
	Exe                 string
	StartDir            string
	Icon                string
	ShortcutPath        string
	LaunchOptions       string
	IsHidden            bool
	AllowDesktopConfig  bool
	AllowOverlay        bool
	OpenVR              bool
	Devkit              bool
	DevkitGameID        string
	DevkitOverrideAppID uint32
	LastPlayTime        time.Time
	FlatpakAppID        string
	Tags                []string
}

// New returns a shortcut with the defaults Steam uses when adding a
// game from the client. The app id is derived from exe and name.
func New(name, exe string) Shortcut {
	exe = Quote(exe)

	return Shortcut{
		AppID:              GenerateAppID(exe, name),
		AppName:            name,
		Exe:                exe,
		StartDir:           Quote(dir(exe)),
		AllowDesktopConfig: true,
		AllowOverlay:       true,
	}
}

// Quote surrounds path with double quotes, the way Steam stores
// executables and start directories. Quoted paths are returned as is.
func Quote(path string) string {
	if path == "" || (len(path) >= 2 && strings.HasPrefix(path, `"`) && strings.HasSuffix(path, `"`)) {
		return path
	}

	return `"` + path + `"`
}

// Unquote removes the double quotes added by Quote.
func Unquote(path string) string {
	if len(path) >= 2 && strings.HasPrefix(path, `"`) && strings.HasSuffix(path, `"`) {
		return path[1 : len(path)-1]
	}

	return path
}

func dir(exe string) string {
	p := Unquote(exe)
	i := strings.LastIndexAny(p, `/\`)
	if i <= 0 {
		return ""
	}

	return p[:i]
}

// FromValue reads a shortcut from a record.
// Field names are matched case-insensitively and missing fields are left
// to their zero value. A record without an app id gets the generated one.
func FromValue(rec *types.MapValue) (Shortcut, error) {
	var s Shortcut

	for _, f := range Fields {
		v, err := rec.GetFold(f.Name)
		if err != nil {
			continue
		}

		err = s.set(f, v)
		if err != nil {
			return Shortcut{}, err
		}
	}

	if s.AppID == 0 {
		s.AppID = GenerateAppID(s.Exe, s.AppName)
	}

	return s, nil
}

func (s *Shortcut) set(f Field, v types.Value) error {
	want := types.TypeString
	switch f.Kind {
	case KindInteger, KindBool, KindTime:
		want = types.TypeInteger
	case KindTags:
		want = types.TypeMap
	}
	if v.Type() != want {
		return errors.Wrapf(ErrInvalidField, "%s: expected %s, got %s", f.Name, want, v.Type())
	}

	switch f.Name {
	case FieldAppID:
		s.AppID = types.AsUint32(v)
	case FieldAppName:
		s.AppName = types.AsString(v)
	case FieldExe:
		s.Exe = types.AsString(v)
	case FieldStartDir:
		s.StartDir = types.AsString(v)
	case FieldIcon:
		s.Icon = types.AsString(v)
	case FieldShortcutPath:
		s.ShortcutPath = types.AsString(v)
	case FieldLaunchOptions:
		s.LaunchOptions = types.AsString(v)
	case FieldIsHidden:
		s.IsHidden = types.AsUint32(v) != 0
	case FieldAllowDesktopConfig:
		s.AllowDesktopConfig = types.AsUint32(v) != 0
	case FieldAllowOverlay:
		s.AllowOverlay = types.AsUint32(v) != 0
	case FieldOpenVR:
		s.OpenVR = types.AsUint32(v) != 0
	case FieldDevkit:
		s.Devkit = types.AsUint32(v) != 0
	case FieldDevkitGameID:
		s.DevkitGameID = types.AsString(v)
	case FieldDevkitOverrideAppID:
		s.DevkitOverrideAppID = types.AsUint32(v)
	case FieldLastPlayTime:
		if ts := types.AsUint32(v); ts != 0 {
			s.LastPlayTime = time.Unix(int64(ts), 0).UTC()
		}
	case FieldFlatpakAppID:
		s.FlatpakAppID = types.AsString(v)
	case FieldTags:
		s.Tags = nil
		return types.AsMap(v).Iterate(func(_ string, tag types.Value) error {
			if tag.Type() != types.TypeString {
				return errors.Wrapf(ErrInvalidField, "tags: expected string, got %s", tag.Type())
			}
			s.Tags = append(s.Tags, types.AsString(tag))
			return nil
		})
	}

	return nil
}

// Value returns the record of s, with every known field in Steam's order.
func (s Shortcut) Value() *types.MapValue {
	lastPlay := unixTime(s.LastPlayTime)

	return types.NewMapValue().
		Add(FieldAppID, types.NewIntegerValue(s.AppID)).
		Add(FieldAppName, types.NewStringValue(s.AppName)).
		Add(FieldExe, types.NewStringValue(s.Exe)).
		Add(FieldStartDir, types.NewStringValue(s.StartDir)).
		Add(FieldIcon, types.NewStringValue(s.Icon)).
		Add(FieldShortcutPath, types.NewStringValue(s.ShortcutPath)).
		Add(FieldLaunchOptions, types.NewStringValue(s.LaunchOptions)).
		Add(FieldIsHidden, boolValue(s.IsHidden)).
		Add(FieldAllowDesktopConfig, boolValue(s.AllowDesktopConfig)).
		Add(FieldAllowOverlay, boolValue(s.AllowOverlay)).
		Add(FieldOpenVR, boolValue(s.OpenVR)).
		Add(FieldDevkit, boolValue(s.Devkit)).
		Add(FieldDevkitGameID, types.NewStringValue(s.DevkitGameID)).
		Add(FieldDevkitOverrideAppID, types.NewIntegerValue(s.DevkitOverrideAppID)).
		Add(FieldLastPlayTime, types.NewIntegerValue(lastPlay)).
		Add(FieldFlatpakAppID, types.NewStringValue(s.FlatpakAppID)).
		Add(FieldTags, tagsValue(s.Tags))
}

// unixTime returns t as the 32-bit timestamp stored on disk.
// The zero time and times before 1970 give 0, times after 2106 give the
// largest timestamp.
func unixTime(t time.Time) uint32 {
	if t.IsZero() {
		return 0
	}

	sec := t.Unix()
	switch {
	case sec < 0:
		return 0
	case sec > math.MaxUint32:
		return math.MaxUint32
	}

	return uint32(sec)
}
