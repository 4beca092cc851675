package shortcut

import (
	"hash/crc32"

	"github.com/cockroachdb/errors"
)

// Non-Steam shortcuts live in the upper half of the 32-bit id space.
const (
	MinAppID uint32 = 0x80000000
	MaxAppID uint32 = 0xFFFFFFFF
)

// ErrAppIDOutOfRange is returned when an app id is outside of the range
// Steam reserves to non-Steam shortcuts.
var ErrAppIDOutOfRange = errors.New("app id out of range")

// GenerateAppID computes the id Steam assigns to a shortcut from its
// executable and its name, as they are stored in the record.
func GenerateAppID(exe, name string) uint32 {
	return crc32.ChecksumIEEE([]byte(exe+name)) | MinAppID
}

// ValidateAppID returns an error if id cannot be the id of a shortcut.
func ValidateAppID(id uint32) error {
	if id < MinAppID {
		return errors.Wrapf(ErrAppIDOutOfRange, "%d is below %d", id, MinAppID)
	}

	return nil
}

// GridID returns the 64-bit id used by the legacy big picture grid
// to name the artwork of a shortcut.
func GridID(appid uint32) uint64 {
	return uint64(appid)<<32 | 0x02000000
}
