// Package backup keeps snapshots of the files modified by the tool in a
// Pebble database. Every snapshot is stored under a key made of the file
// path, a separator and the big endian time of the snapshot in nanoseconds,
// so that the snapshots of a file are contiguous and sorted by time.
package backup

import (
	"encoding/binary"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble/v2"
	"github.com/cockroachdb/pebble/v2/vfs"
	"github.com/golang-module/carbon/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const separator byte = 0x1F

// ErrSnapshotNotFound is returned when a file has no snapshot matching
// the request.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Snapshot describes a saved version of a file.
type Snapshot struct {
	Path string
	At   time.Time
	Size int
}

// Age describes how long ago the snapshot was taken, e.g. "3 hours ago".
func (s Snapshot) Age() string {
	return carbon.CreateFromTimestampNano(s.At.UnixNano()).DiffForHumans()
}

// AgeAt is like Age but relative to now.
func (s Snapshot) AgeAt(now time.Time) string {
	return carbon.CreateFromTimestampNano(s.At.UnixNano()).DiffForHumans(carbon.CreateFromTimestampNano(now.UnixNano()))
}

// Store is a snapshot store.
type Store struct {
	db     *pebble.DB
	logger *zap.Logger
}

// Option configures a Store.
type Option func(*options)

type options struct {
	logger *zap.Logger
	fs     vfs.FS
}

// WithLogger sets the logger used by the store and by Pebble.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Open opens or creates the store in dir.
func Open(dir string, opts ...Option) (*Store, error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	// pebble events are only reported when debugging
	pl := zap.NewNop()
	if o.logger.Core().Enabled(zapcore.DebugLevel) {
		pl = o.logger.Named("pebble")
	}

	popts := pebble.Options{
		FS:     o.fs,
		Logger: pl.Sugar(),
	}

	db, err := pebble.Open(dir, &popts)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open backup store %q", dir)
	}

	return &Store{db: db, logger: o.logger}, nil
}

// OpenInMemory opens a store that lives in memory until closed.
func OpenInMemory(opts ...Option) (*Store, error) {
	opts = append(opts, func(o *options) {
		o.fs = vfs.NewMem()
	})

	return Open("", opts...)
}

// Close the store.
func (s *Store) Close() error {
	return s.db.Close()
}

func prefix(path string) []byte {
	path = filepath.Clean(path)
	k := make([]byte, 0, len(path)+9)
	k = append(k, path...)
	return append(k, separator)
}

func key(path string, at time.Time) []byte {
	return binary.BigEndian.AppendUint64(prefix(path), uint64(at.UnixNano()))
}

func decodeKey(k []byte) time.Time {
	ns := binary.BigEndian.Uint64(k[len(k)-8:])
	return time.Unix(0, int64(ns))
}

// Save stores data as the content of path at the given time.
func (s *Store) Save(path string, data []byte, at time.Time) (Snapshot, error) {
	err := s.db.Set(key(path, at), data, pebble.Sync)
	if err != nil {
		return Snapshot{}, errors.Wrapf(err, "failed to save snapshot of %q", path)
	}

	snap := Snapshot{Path: filepath.Clean(path), At: time.Unix(0, at.UnixNano()), Size: len(data)}
	s.logger.Debug("snapshot saved", zap.String("path", snap.Path), zap.Time("at", snap.At), zap.Int("size", snap.Size))
	return snap, nil
}

func (s *Store) iter(path string) (*pebble.Iterator, error) {
	p := prefix(path)
	upper := append([]byte{}, p...)
	upper[len(upper)-1]++

	it, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: p,
		UpperBound: upper,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to read backup store")
	}

	return it, nil
}

// List returns the snapshots of path, newest first.
func (s *Store) List(path string) ([]Snapshot, error) {
	it, err := s.iter(path)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var list []Snapshot
	for it.Last(); it.Valid(); it.Prev() {
		list = append(list, Snapshot{
			Path: filepath.Clean(path),
			At:   decodeKey(it.Key()),
			Size: len(it.Value()),
		})
	}

	return list, it.Error()
}

// Get returns the content of path saved at the given time.
func (s *Store) Get(path string, at time.Time) ([]byte, error) {
	v, closer, err := s.db.Get(key(path, at))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, errors.Wrapf(ErrSnapshotNotFound, "%q at %s", path, at.Format(time.RFC3339Nano))
		}
		return nil, errors.Wrap(err, "failed to read backup store")
	}
	defer closer.Close()

	return append([]byte{}, v...), nil
}

// Latest returns the most recent snapshot of path and its content.
func (s *Store) Latest(path string) (Snapshot, []byte, error) {
	it, err := s.iter(path)
	if err != nil {
		return Snapshot{}, nil, err
	}
	defer it.Close()

	if !it.Last() {
		if err := it.Error(); err != nil {
			return Snapshot{}, nil, err
		}
		return Snapshot{}, nil, errors.Wrapf(ErrSnapshotNotFound, "%q", path)
	}

	data := append([]byte{}, it.Value()...)
	snap := Snapshot{
		Path: filepath.Clean(path),
		At:   decodeKey(it.Key()),
		Size: len(data),
	}

	return snap, data, nil
}

// Prune removes the oldest snapshots of path, keeping the keep most recent
// ones. It returns the number of removed snapshots.
func (s *Store) Prune(path string, keep int) (int, error) {
	if keep < 0 {
		return 0, errors.Newf("invalid number of snapshots to keep: %d", keep)
	}

	list, err := s.List(path)
	if err != nil {
		return 0, err
	}
	if len(list) <= keep {
		return 0, nil
	}

	b := s.db.NewBatch()
	defer b.Close()

	for _, snap := range list[keep:] {
		err = b.Delete(key(path, snap.At), nil)
		if err != nil {
			return 0, err
		}
	}

	err = b.Commit(pebble.Sync)
	if err != nil {
		return 0, errors.Wrap(err, "failed to prune snapshots")
	}

	n := len(list) - keep
	s.logger.Debug("snapshots pruned", zap.String("path", filepath.Clean(path)), zap.Int("count", n))
	return n, nil
}
