package lbengine

import (
	"github.com/leafbridge/leafbridge-hello/lbflag"
	"github.com/leafbridge/leafbridge-hello/lbreactive"
	"github.com/leafbridge/leafbridge-hello/lbunit"
)

// engineState keeps track of the state of a single invocation.
type engineState struct {
	invocation string
	flags      lbflag.Set
	endpoint   lbunit.Endpoint
	ran        []lbreactive.HandlerID
}

// Summary describes the outcome of an invocation.
type Summary struct {
	Invocation string
	Passes     int
	Ran        []lbreactive.HandlerID
	Flags      lbflag.Set
}
