package lbreactive

import (
	"fmt"

	"github.com/gentlemanautomaton/structformat"
)

// HandlerError is returned when a handler definition is invalid or when a
// handler fails while it is running.
type HandlerError struct {
	ID    HandlerID
	Label string
	Err   error
}

// Unwrap returns the underlying error for the handler.
func (e HandlerError) Unwrap() error {
	return e.Err
}

// Error returns the error as a string.
func (e HandlerError) Error() string {
	var builder structformat.Builder
	switch {
	case e.ID != "" && e.Label != "":
		builder.WritePrimary(fmt.Sprintf("%s (%s)", e.ID, e.Label))
	case e.ID != "":
		builder.WritePrimary(string(e.ID))
	case e.Label != "":
		builder.WritePrimary(e.Label)
	}
	builder.WriteStandard(e.Err.Error())
	return builder.String()
}
