package lbflag

import (
	"context"
	"errors"
	"strings"
)

// Store persists a flag set across invocations.
type Store interface {
	// Load returns the persisted flag set. A store that has never been saved
	// returns an empty set. External flags are never returned, even if they
	// were written to the underlying storage by other means.
	Load(ctx context.Context) (Set, error)

	// Save adds the given flags to the persisted set. Flags that are already
	// persisted stay in place, so a save never unsets a flag. External
	// flags are not persisted.
	Save(ctx context.Context, flags Set) error

	// Reset removes the given flags from persisted state. If no flags are
	// given, all flags are removed. This is an out-of-band operation that is
	// never performed by the controller itself.
	Reset(ctx context.Context, flags ...Flag) error

	// Close releases any resources held by the store.
	Close() error
}

// OpenStore opens the store at path. Paths ending in ".db" are opened as
// SQLite databases, all others as JSON documents.
func OpenStore(path string) (Store, error) {
	if path == "" {
		return nil, errors.New("missing flag state path")
	}
	if strings.HasSuffix(path, ".db") {
		return OpenSQLiteStore(path)
	}
	return NewFileStore(path), nil
}

// persistable returns the flags in s that may be persisted.
func persistable(s Set) FlagList {
	var out FlagList
	for _, f := range s.Sorted() {
		if !IsExternal(f) {
			out = append(out, f)
		}
	}
	return out
}
