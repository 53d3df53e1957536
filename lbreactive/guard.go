package lbreactive

import (
	"fmt"

	"github.com/leafbridge/leafbridge-hello/lbflag"
)

// Guard is a predicate over flag presence that controls whether a handler
// may run.
type Guard struct {
	// When lists flags that must all be present.
	When lbflag.FlagList `json:"when,omitzero"`

	// WhenNot lists flags that must all be absent.
	WhenNot lbflag.FlagList `json:"when-not,omitzero"`
}

// Evaluate evaluates the guard against flags.
func (g Guard) Evaluate(flags lbflag.Set) GuardResult {
	var result GuardResult
	for _, f := range g.When {
		if !flags.Contains(f) {
			result.Missing = append(result.Missing, f)
		}
	}
	for _, f := range g.WhenNot {
		if flags.Contains(f) {
			result.Present = append(result.Present, f)
		}
	}
	return result
}

// Holds returns true if the guard holds for flags.
func (g Guard) Holds(flags lbflag.Set) bool {
	return flags.ContainsAll(g.When...) && !flags.ContainsAny(g.WhenNot...)
}

// String returns a string representation of the guard.
func (g Guard) String() string {
	switch {
	case len(g.When) > 0 && len(g.WhenNot) > 0:
		return fmt.Sprintf("when [%s] and not [%s]", g.When, g.WhenNot)
	case len(g.When) > 0:
		return fmt.Sprintf("when [%s]", g.When)
	case len(g.WhenNot) > 0:
		return fmt.Sprintf("when not [%s]", g.WhenNot)
	default:
		return "always"
	}
}

// GuardResult describes the outcome of a guard evaluation.
type GuardResult struct {
	// Missing lists required flags that were absent.
	Missing lbflag.FlagList

	// Present lists forbidden flags that were present.
	Present lbflag.FlagList
}

// Holds returns true if the guard held.
func (r GuardResult) Holds() bool {
	return len(r.Missing) == 0 && len(r.Present) == 0
}

// String returns a description of the result.
func (r GuardResult) String() string {
	switch {
	case r.Holds():
		return "guard holds"
	case len(r.Missing) > 0 && len(r.Present) > 0:
		return fmt.Sprintf("missing [%s], present [%s]", r.Missing, r.Present)
	case len(r.Missing) > 0:
		return fmt.Sprintf("missing [%s]", r.Missing)
	default:
		return fmt.Sprintf("present [%s]", r.Present)
	}
}
