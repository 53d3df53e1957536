package lbevent

// Handler is an event handler that is capable of processing events.
type Handler interface {
	// Name returns a name for the handler that is used in error messages.
	Name() string

	// Handle processes the given event record.
	Handle(Record) error
}
