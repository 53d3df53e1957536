package lbreactive

import (
	"errors"
	"fmt"
	"slices"

	"github.com/leafbridge/leafbridge-hello/lbflag"
)

// HandlerID is a unique identifier for a handler.
type HandlerID string

// Validate returns a non-nil error if the handler ID is invalid.
func (id HandlerID) Validate() error {
	if id == "" {
		return errors.New("a handler ID is missing")
	}
	return nil
}

// HandlerKind identifies how a handler takes part in an evaluation pass.
type HandlerKind string

// Handler kinds.
const (
	// HandlerKindWork handlers perform side effects and set flags when they
	// succeed. Their guards are evaluated against the flag snapshot taken at
	// the start of a pass.
	HandlerKindWork HandlerKind = "work"

	// HandlerKindReporter handlers report status and never set flags. Their
	// guards are evaluated against the flags left behind by a pass.
	HandlerKindReporter HandlerKind = "reporter"
)

// Handler defines a guarded unit of work.
type Handler struct {
	ID    HandlerID       `json:"id"`
	Label string          `json:"label,omitempty"`
	Kind  HandlerKind     `json:"kind,omitempty"`
	Guard Guard           `json:"guard"`
	Sets  lbflag.FlagList `json:"sets,omitzero"`
}

// IsReporter returns true if the handler only reports status.
func (h Handler) IsReporter() bool {
	return h.Kind == HandlerKindReporter
}

// Validate returns an error if the handler definition is invalid.
func (h Handler) Validate() error {
	if err := h.ID.Validate(); err != nil {
		return err
	}

	err := func() error {
		switch h.Kind {
		case HandlerKindWork, "":
		case HandlerKindReporter:
			if len(h.Sets) > 0 {
				return fmt.Errorf("reporter handlers cannot set flags, but it sets [%s]", h.Sets)
			}
		default:
			return fmt.Errorf("the handler kind is not recognized: %s", h.Kind)
		}

		for _, list := range []lbflag.FlagList{h.Guard.When, h.Guard.WhenNot, h.Sets} {
			for _, f := range list {
				if err := f.Validate(); err != nil {
					return err
				}
			}
		}

		for _, f := range h.Guard.When {
			if slices.Contains(h.Guard.WhenNot, f) {
				return fmt.Errorf("the guard requires the \"%s\" flag to be both present and absent", f)
			}
		}

		// A handler that sets a flag must be guarded against that flag,
		// otherwise it would run again on every pass.
		for _, f := range h.Sets {
			if lbflag.IsExternal(f) {
				return fmt.Errorf("the \"%s\" flag is supplied by the hosting environment and cannot be set by a handler", f)
			}
			if !slices.Contains(h.Guard.WhenNot, f) {
				return fmt.Errorf("the handler sets the \"%s\" flag but its guard does not exclude it", f)
			}
		}

		return nil
	}()

	if err != nil {
		return HandlerError{ID: h.ID, Label: h.Label, Err: err}
	}
	return nil
}

// Table is an ordered list of handlers. Handlers are evaluated in
// declaration order.
type Table []Handler

// Validate returns an error if any handler in the table is invalid or if
// handler IDs are not unique.
func (table Table) Validate() error {
	seen := make(map[HandlerID]struct{}, len(table))
	for _, h := range table {
		if err := h.Validate(); err != nil {
			return err
		}
		if _, dup := seen[h.ID]; dup {
			return fmt.Errorf("the \"%s\" handler is defined more than once", h.ID)
		}
		seen[h.ID] = struct{}{}
	}
	return nil
}

// Work returns the work handlers in declaration order.
func (table Table) Work() Table {
	var out Table
	for _, h := range table {
		if !h.IsReporter() {
			out = append(out, h)
		}
	}
	return out
}

// Reporters returns the reporter handlers in declaration order.
func (table Table) Reporters() Table {
	var out Table
	for _, h := range table {
		if h.IsReporter() {
			out = append(out, h)
		}
	}
	return out
}

// Lookup returns the handler with the given ID.
func (table Table) Lookup(id HandlerID) (Handler, bool) {
	for _, h := range table {
		if h.ID == id {
			return h, true
		}
	}
	return Handler{}, false
}
