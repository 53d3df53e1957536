package lbhelloevent

import "github.com/gentlemanautomaton/structformat"

// shortID returns an abbreviated invocation ID for console messages.
func shortID(invocation string) string {
	if len(invocation) > 8 {
		return invocation[:8]
	}
	return invocation
}

// writeScope writes the invocation and handler that an event belongs to.
func writeScope(builder *structformat.Builder, invocation, handler string) {
	if invocation != "" {
		builder.WritePrimary(shortID(invocation))
	}
	if handler != "" {
		builder.WritePrimary(handler)
	}
}

func plural[T ~int | ~int64](value T, singular, plural string) string {
	if value == 1 {
		return singular
	}
	return plural
}
