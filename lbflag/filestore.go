package lbflag

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/leafbridge/leafbridge-hello/localfs"
)

// fileDocument is the on-disk layout of a FileStore.
type fileDocument struct {
	Flags   FlagList  `json:"flags"`
	Updated time.Time `json:"updated,omitzero"`
}

// FileStore persists flags as a JSON document on the local file system.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore that persists flags to path.
func NewFileStore(path string) FileStore {
	return FileStore{path: path}
}

// Path returns the path of the JSON document.
func (s FileStore) Path() string {
	return s.path
}

// Load returns the persisted flag set.
func (s FileStore) Load(ctx context.Context) (Set, error) {
	if err := ctx.Err(); err != nil {
		return Set{}, err
	}

	doc, err := s.read()
	if err != nil {
		return Set{}, err
	}

	set := NewSet()
	for i, f := range doc.Flags {
		if err := f.Validate(); err != nil {
			return Set{}, fmt.Errorf("flag state \"%s\": entry %d: %w", s.path, i, err)
		}
		if IsExternal(f) {
			continue
		}
		set.Add(f)
	}
	return set, nil
}

// Save adds flags to the persisted document. Flags that are already stored
// are kept even if they are missing from flags.
func (s FileStore) Save(ctx context.Context, flags Set) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	merged, err := s.Load(ctx)
	if err != nil {
		return err
	}
	merged.Add(flags.Sorted()...)

	return s.write(fileDocument{
		Flags:   persistable(merged),
		Updated: time.Now().UTC(),
	})
}

// Reset removes the given flags, or every flag if none are given.
func (s FileStore) Reset(ctx context.Context, flags ...Flag) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var remaining Set
	if len(flags) > 0 {
		current, err := s.Load(ctx)
		if err != nil {
			return err
		}
		remaining = current.Without(flags...)
	}

	return s.write(fileDocument{
		Flags:   persistable(remaining),
		Updated: time.Now().UTC(),
	})
}

// Close releases resources held by the store. It is a no-op for FileStore.
func (s FileStore) Close() error {
	return nil
}

func (s FileStore) read() (doc fileDocument, err error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fileDocument{}, nil
		}
		return fileDocument{}, fmt.Errorf("failed to read flag state \"%s\": %w", s.path, err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fileDocument{}, fmt.Errorf("failed to parse flag state \"%s\": %w", s.path, err)
	}
	return doc, nil
}

func (s FileStore) write(doc fileDocument) error {
	if doc.Flags == nil {
		doc.Flags = FlagList{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := localfs.WriteFile(s.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write flag state \"%s\": %w", s.path, err)
	}
	return nil
}
