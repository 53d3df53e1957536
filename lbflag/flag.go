package lbflag

import (
	"errors"
	"strings"

	"github.com/leafbridge/leafbridge-hello/idset"
)

// Flag is a named boolean fact. A flag is true when it is present in a set.
type Flag string

// Validate returns a non-nil error if the flag name is invalid.
func (f Flag) Validate() error {
	if f == "" {
		return errors.New("a flag name is missing")
	}
	if strings.TrimSpace(string(f)) != string(f) {
		return errors.New("a flag name contains leading or trailing whitespace")
	}
	return nil
}

// Flags that mark completed lifecycle stages of the hello application.
const (
	HelloInstalled     Flag = "hello.installed"
	DatabaseConfigured Flag = "database.configured"
	GunicornConfigured Flag = "gunicorn.configured"
)

// Flags that are supplied by the hosting environment on each invocation.
// They are never persisted.
const (
	DatabaseAvailable Flag = "db.master.available"
)

// FlagList is an ordered list of flags.
type FlagList []Flag

// String returns a string representation of the list.
func (list FlagList) String() string {
	var out strings.Builder
	for i, item := range list {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(string(item))
	}
	return out.String()
}

// Set is a set of flags that are currently true.
//
// Set only supports the addition of flags. Flags are removed only through an
// explicit reset of a Store.
type Set struct {
	members idset.SetOf[Flag]
}

// NewSet returns a set that holds the given flags.
func NewSet(flags ...Flag) Set {
	return Set{members: idset.Of(flags...)}
}

// Contains returns true if f is present in the set.
func (s Set) Contains(f Flag) bool {
	return s.members.Contains(f)
}

// ContainsAll returns true if every flag in list is present in the set.
func (s Set) ContainsAll(list ...Flag) bool {
	return s.members.ContainsAll(list...)
}

// ContainsAny returns true if any flag in list is present in the set.
func (s Set) ContainsAny(list ...Flag) bool {
	return s.members.ContainsAny(list...)
}

// Add sets the given flags. It reports whether any flag was newly set.
func (s *Set) Add(flags ...Flag) (changed bool) {
	if s.members == nil {
		s.members = make(idset.SetOf[Flag])
	}
	for _, f := range flags {
		if !s.members.Contains(f) {
			s.members.Add(f)
			changed = true
		}
	}
	return changed
}

// Len returns the number of flags in the set.
func (s Set) Len() int {
	return len(s.members)
}

// Clone returns an independent snapshot of the set.
func (s Set) Clone() Set {
	return Set{members: s.members.Clone()}
}

// Sorted returns the flags in the set in lexical order.
func (s Set) Sorted() FlagList {
	return FlagList(s.members.Sorted())
}

// Without returns a copy of the set that excludes the given flags.
func (s Set) Without(flags ...Flag) Set {
	out := s.Clone()
	for _, f := range flags {
		out.members.Remove(f)
	}
	return out
}

// String returns a string representation of the set.
func (s Set) String() string {
	return s.Sorted().String()
}

// IsExternal returns true if f is supplied by the hosting environment rather
// than set by a handler.
func IsExternal(f Flag) bool {
	return f == DatabaseAvailable
}
