package lbreactive

import "fmt"

// OnErrorBehavior identifies a response to take when a handler fails.
type OnErrorBehavior string

// Behavior options when a handler fails.
const (
	OnErrorUnspecified OnErrorBehavior = ""
	OnErrorStop        OnErrorBehavior = "stop"
	OnErrorContinue    OnErrorBehavior = "continue"
)

// Validate returns an error if the behavior is not recognized.
func (b OnErrorBehavior) Validate() error {
	switch b {
	case OnErrorUnspecified, OnErrorStop, OnErrorContinue:
		return nil
	default:
		return fmt.Errorf("unrecognized on-error behavior: %s", b)
	}
}

// Behavior describes behavior modifications for an evaluation pass.
type Behavior struct {
	OnError OnErrorBehavior `json:"on-error,omitempty"`
}

// OverlayBehavior overlays the given set of behaviors, giving priority
// to later members.
func OverlayBehavior(behaviors ...Behavior) Behavior {
	var out Behavior
	for _, next := range behaviors {
		if next.OnError != OnErrorUnspecified {
			out.OnError = next.OnError
		}
	}
	return out
}
